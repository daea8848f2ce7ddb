// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/potfit-go/forcekernel/elstat"

// accumulateElectrostatic folds the monopole electrostatic tail into
// the residuals for one configuration (pair-angular family only). Every neighbor
// within DPCut of a charged pair contributes; self-interaction entries
// (nr == atom's own index) are halved, and a core-shell phi column
// (Weight == 0) cancels the bare 1/r Coulomb term it would otherwise
// double-count against its explicit short-range spring.
func accumulateElectrostatic(ctx *Context, res *Residuals, cfg *Config) error {
	uf := cfg.UseForces
	us := cfg.UseStress && ctx.Options.Stress
	for ai := cfg.Start; ai < cfg.Start+cfg.Count; ai++ {
		atom := &ctx.Atoms[ai]
		q1 := ctx.Charges[atom.Type]
		for ni := range atom.Neighbors {
			n := &atom.Neighbors[ni]
			q2 := ctx.Charges[n.Type]
			if n.R >= ctx.DPCut || (q1 == 0 && q2 == 0) {
				continue
			}

			var fnvalTail, gradTail, ggradTail float64
			if ctx.Options.DSF {
				fnvalTail, gradTail, ggradTail = elstat.DampedShiftedForce(n.R, ctx.DPCut, ctx.Kappa, ctx.Eps)
			} else {
				fnvalTail, gradTail, ggradTail = elstat.Shifted(n.R, ctx.DPCut, ctx.Kappa, ctx.Eps)
			}
			n.FnvalEl, n.GradEl, n.GgradEl = fnvalTail, gradTail, ggradTail

			fnval := q1 * q2 * n.FnvalEl
			grad := q1 * q2 * n.GradEl

			if col := ctx.Table.PhiCol(atom.Type, n.Type); col.Weight == 0 && n.R <= col.End {
				fnval -= ctx.Eps * q1 * q2 * n.InvR
				grad = 0
			}

			self := n.Nr == atom.Index
			if self {
				fnval *= 0.5
				grad *= 0.5
			}

			res.AddEnergy(cfg.Index, 0.5*fnval)
			if !uf {
				continue
			}
			var force [3]float64
			for d := 0; d < 3; d++ {
				force[d] = 0.5 * n.Dist[d] * grad
			}
			res.AddForce(atom.Index, force)
			res.AddForce(n.Nr, [3]float64{-force[0], -force[1], -force[2]})
			if us {
				addVoigtStress(res, cfg.Index, n.Dist, force, -1.0)
			}
		}
	}
	return nil
}
