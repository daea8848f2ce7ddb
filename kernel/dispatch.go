// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/cpmech/gosl/chk"

// allocators dispatches a Family to its per-configuration accumulator
// pipeline, following the same registry-of-constructors pattern the
// model packages this kernel is adapted from use to dispatch a solid
// model by name: one small indirection instead of a growing type
// switch at every call site.
var allocators = map[Family]func(ctx *Context, res *Residuals, cfg *Config) error{
	FamilyPairAngular: runPairAngular,
	FamilyTersoff:     runTersoff,
}

func runPairAngular(ctx *Context, res *Residuals, cfg *Config) error {
	if err := accumulatePair(ctx, res, cfg); err != nil {
		return err
	}
	if len(ctx.Charges) > 0 {
		if err := accumulateElectrostatic(ctx, res, cfg); err != nil {
			return err
		}
	}
	return accumulateAngular(ctx, res, cfg)
}

func runTersoff(ctx *Context, res *Residuals, cfg *Config) error {
	return accumulatePairTersoff(ctx, res, cfg)
}

// Evaluate runs one full force-evaluation call: it decodes params into
// the live table buffers and per-call electrostatic state, dispatches
// every configuration this rank owns (LocalConfigs) through the
// Family's accumulator pipeline, then finalizes each configuration's
// residuals and returns their summed squared deviation. This is the pure, rank-local computation; the
// service package wraps it with the SPMD broadcast/reduce/gather
// protocol.
func Evaluate(ctx *Context, params []float64, res *Residuals) (float64, error) {
	if err := ctx.SyncParams(params); err != nil {
		return 0, err
	}

	run, ok := allocators[ctx.Options.Family]
	if !ok {
		return 0, chk.Err("kernel: no accumulator pipeline registered for family %v", ctx.Options.Family)
	}

	var sum float64
	local := ctx.LocalConfigs()
	for i := range local {
		cfg := &local[i]
		if err := checkConfigRange(len(ctx.Atoms), cfg); err != nil {
			return 0, err
		}
		resetConfigResiduals(ctx, res, cfg)
		if err := run(ctx, res, cfg); err != nil {
			return 0, err
		}
		sum += finalizeConfig(ctx, res, cfg)
	}
	return sum, nil
}

// resetConfigResiduals runs before any pair/electrostatic/angular
// accumulation: every atom's force residual is reset to -RefForce
// (zero when the configuration does not fit forces), so that by the
// time finalizeConfig sums squares the residual holds
// F_computed - F_reference rather than the raw accumulated force. The
// configuration's energy and stress slots are zeroed at the same
// point, so that repeated Evaluate calls into the same residual buffer
// are idempotent.
func resetConfigResiduals(ctx *Context, res *Residuals, cfg *Config) {
	for ai := cfg.Start; ai < cfg.Start+cfg.Count; ai++ {
		atom := &ctx.Atoms[ai]
		if !cfg.UseForces {
			res.SetForce(atom.Index, [3]float64{0, 0, 0})
			continue
		}
		ref := atom.RefForce
		res.SetForce(atom.Index, [3]float64{-ref[0], -ref[1], -ref[2]})
	}
	res.SetEnergy(cfg.Index, 0)
	for v := 0; v < 6; v++ {
		res.SetStress(cfg.Index, v, 0)
	}
}
