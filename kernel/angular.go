// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

// accumulateAngular folds the three-body angular term into the
// residuals for one configuration (pair-angular family only), in
// three passes per atom:
//
//  1. caching pass -- evaluate and cache the transfer function f/f'
//     for every neighbor within its F column's range;
//  2. angular-energy pass -- for every cached (j,k) angle, evaluate
//     and cache g/g' at the angle's cosine and add f_j*f_k*g to the
//     configuration's energy;
//  3. angular-force pass -- distribute the three-body force onto the
//     central atom and both neighbors j, k using the cached f/f'/g/g'.
//
// The energy and force passes are separate loops over the angles; each
// angle's force uses only its own cached g/g' and the f/f' values
// cached in pass 1.
func accumulateAngular(ctx *Context, res *Residuals, cfg *Config) error {
	uf := cfg.UseForces
	us := cfg.UseStress && ctx.Options.Stress

	for ai := cfg.Start; ai < cfg.Start+cfg.Count; ai++ {
		atom := &ctx.Atoms[ai]
		if len(atom.Angles) == 0 {
			continue
		}

		// Pass 1: cache f, f' for every neighbor with r inside its F column.
		for ni := range atom.Neighbors {
			n := &atom.Neighbors[ni]
			col := ctx.Table.F[n.F.Col]
			if n.R >= col.End {
				n.Fval, n.Dfval = 0, 0
				continue
			}
			var err error
			if uf {
				n.Fval, n.Dfval, err = col.ValueGradAt(n.F.Slot, n.F.Shift)
			} else {
				n.Fval, err = col.ValueAt(n.F.Slot, n.F.Shift)
				n.Dfval = 0
			}
			if err != nil {
				return err
			}
		}

		// Pass 2: angular energy.
		gcol := ctx.Table.GCol(atom.Type)
		for gi := range atom.Angles {
			g := &atom.Angles[gi]
			var err error
			if uf {
				g.Gval, g.Dg, err = gcol.ValueGradAt(g.G.Slot, g.G.Shift)
			} else {
				g.Gval, err = gcol.ValueAt(g.G.Slot, g.G.Shift)
				g.Dg = 0
			}
			if err != nil {
				return err
			}
			fj, fk := atom.Neighbors[g.J].Fval, atom.Neighbors[g.K].Fval
			res.AddEnergy(cfg.Index, fj*fk*g.Gval)
		}

		if !uf {
			continue
		}

		// Pass 3: angular force, distributed onto the central atom and
		// both neighbors of every cached angle.
		for gi := range atom.Angles {
			g := &atom.Angles[gi]
			nj := &atom.Neighbors[g.J]
			nk := &atom.Neighbors[g.K]
			fj, fpj := nj.Fval, nj.Dfval
			fk, fpk := nk.Fval, nk.Dfval

			dV3j := g.Gval * fpj * fk
			dV3k := g.Gval * fj * fpk
			v3 := fj * fk * g.Dg

			vlj := v3 / nj.R
			vlk := v3 / nk.R

			vv3j := dV3j - vlj*g.Cos
			vv3k := dV3k - vlk*g.Cos

			var dfj, dfk [3]float64
			for d := 0; d < 3; d++ {
				dfj[d] = vv3j*nj.DistR[d] + vlj*nk.DistR[d]
				dfk[d] = vv3k*nk.DistR[d] + vlk*nj.DistR[d]
			}

			res.AddForce(atom.Index, [3]float64{dfj[0] + dfk[0], dfj[1] + dfk[1], dfj[2] + dfk[2]})
			res.AddForce(nj.Nr, [3]float64{-dfj[0], -dfj[1], -dfj[2]})
			res.AddForce(nk.Nr, [3]float64{-dfk[0], -dfk[1], -dfk[2]})

			if us {
				addVoigtStress(res, cfg.Index, nj.Dist, dfj, -1.0)
				addVoigtStress(res, cfg.Index, nk.Dist, dfk, -1.0)
			}
		}
	}
	return nil
}
