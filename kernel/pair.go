// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

// accumulatePair folds the half-bond pair potential into the energy
// and (if uf) force/stress residuals for one configuration. Each
// ordered (i,neighbor) pair is visited once, relying on the neighbor
// list itself containing the reciprocal entry for the other atom, so
// no explicit Newton's-third-law reaction is applied here: only the
// central atom's own force is updated.
func accumulatePair(ctx *Context, res *Residuals, cfg *Config) error {
	uf := cfg.UseForces
	us := cfg.UseStress && ctx.Options.Stress
	for ai := cfg.Start; ai < cfg.Start+cfg.Count; ai++ {
		atom := &ctx.Atoms[ai]
		for ni := range atom.Neighbors {
			n := &atom.Neighbors[ni]
			col := ctx.Table.Phi[n.Phi.Col]
			if n.R >= col.End {
				continue
			}
			var val, grad float64
			var err error
			if uf {
				val, grad, err = col.ValueGradAt(n.Phi.Slot, n.Phi.Shift)
			} else {
				val, err = col.ValueAt(n.Phi.Slot, n.Phi.Shift)
			}
			if err != nil {
				return err
			}
			res.AddEnergy(cfg.Index, 0.5*val)
			if !uf {
				continue
			}
			var force [3]float64
			for d := 0; d < 3; d++ {
				force[d] = n.DistR[d] * grad
			}
			res.AddForce(atom.Index, force)
			if us {
				addVoigtStress(res, cfg.Index, n.Dist, force, -0.5)
			}
		}
	}
	return nil
}

// accumulatePairTersoff folds the Tersoff-style full-bond pair
// potential into the residuals, applying an explicit Newton's-third-
// law reaction on the neighbor and halving both value and gradient for
// a self-interaction entry (nr == atom's own global index). The stress
// virial here scales by r before the outer product, because the force
// itself was built from the raw displacement (Dist) rather than the
// unit vector (DistR).
func accumulatePairTersoff(ctx *Context, res *Residuals, cfg *Config) error {
	uf := cfg.UseForces
	us := cfg.UseStress && ctx.Options.Stress
	for ai := cfg.Start; ai < cfg.Start+cfg.Count; ai++ {
		atom := &ctx.Atoms[ai]
		for ni := range atom.Neighbors {
			n := &atom.Neighbors[ni]
			col := ctx.Table.Phi[n.Phi.Col]
			if n.R >= col.End {
				continue
			}
			self := n.Nr == atom.Index
			var val, grad float64
			var err error
			if uf {
				val, grad, err = col.ValueGradAt(n.Phi.Slot, n.Phi.Shift)
			} else {
				val, err = col.ValueAt(n.Phi.Slot, n.Phi.Shift)
			}
			if err != nil {
				return err
			}
			if self {
				val *= 0.5
				grad *= 0.5
			}
			res.AddEnergy(cfg.Index, val)
			if !uf {
				continue
			}
			var force [3]float64
			for d := 0; d < 3; d++ {
				force[d] = n.Dist[d] * grad
			}
			res.AddForce(atom.Index, force)
			res.AddForce(n.Nr, [3]float64{-force[0], -force[1], -force[2]})
			if us {
				var scaled [3]float64
				for d := 0; d < 3; d++ {
					scaled[d] = force[d] * n.R
				}
				addVoigtStress(res, cfg.Index, n.Dist, scaled, -1.0)
			}
		}
	}
	return nil
}
