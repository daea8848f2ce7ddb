// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/potfit-go/forcekernel/elstat"

// finalizeConfig converts one configuration's accumulated
// force/energy/stress residuals into deviations from the reference
// data, in place (forces scaled by the FWEIGHT factor when enabled),
// and returns the sum of their weighted squares. The per-atom
// force residual already holds F_computed - F_reference by the time
// this runs, because Evaluate seeds it with -RefForce (resetConfigResiduals)
// before any accumulator pass; finalizeConfig only applies FWEIGHT/
// CONTRIB and squares it. It must run after every accumulator pass for
// that configuration has completed.
func finalizeConfig(ctx *Context, res *Residuals, cfg *Config) float64 {
	var sum float64

	// Per-atom electrostatic self-energy correction (pair-angular
	// family only), folded in before the energy is normalized by atom
	// count below.
	if ctx.Options.Family == FamilyPairAngular && len(ctx.Charges) > 0 {
		for ai := cfg.Start; ai < cfg.Start+cfg.Count; ai++ {
			q := ctx.Charges[ctx.Atoms[ai].Type]
			if q == 0 {
				continue
			}
			if ctx.Options.DSF {
				res.AddEnergy(cfg.Index, elstat.SelfEnergyDSF(q, ctx.Kappa, ctx.Eps, ctx.DPCut))
			} else {
				res.AddEnergy(cfg.Index, elstat.SelfEnergyShifted(q, ctx.Kappa, ctx.Eps))
			}
		}
	}

	if cfg.UseForces {
		for ai := cfg.Start; ai < cfg.Start+cfg.Count; ai++ {
			atom := &ctx.Atoms[ai]
			f := res.Force(atom.Index)
			if ctx.Options.FWeight {
				weight := 1.0 / (atom.AbsForce + ForceEps)
				for d := 0; d < 3; d++ {
					f[d] *= weight
				}
				res.SetForce(atom.Index, f)
			}
			if ctx.Options.Contrib && !atom.Contrib {
				continue
			}
			sum += cfg.Weight * (f[0]*f[0] + f[1]*f[1] + f[2]*f[2])
		}
	}

	energy := res.Energy(cfg.Index)/float64(cfg.Count) - cfg.RefEnergy
	res.SetEnergy(cfg.Index, energy)
	sum += cfg.Weight * ctx.Options.EWeight * energy * energy

	if cfg.UseStress && ctx.Options.Stress {
		for v := 0; v < 6; v++ {
			dev := res.Stress(cfg.Index, v)/cfg.Volume - cfg.RefStress[v]
			res.SetStress(cfg.Index, v, dev)
			sum += cfg.Weight * ctx.Options.SWeight * dev * dev
		}
	}

	return sum
}
