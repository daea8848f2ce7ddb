// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package charge resolves per-species point charges from the charge-
// neutrality constraint. Only the first ntypes-1 species charges are
// free optimization variables; the last species' charge is derived so
// that Σ ratio[t]*charge[t] == 0 always holds.
package charge

import "github.com/cpmech/gosl/chk"

// Resolve computes the per-species charge vector from free variables
// and population ratios, deriving the last species' charge from
// neutrality.
//
// vars must have length ntypes-1 and holds the optimization variables
// for species 0..ntypes-2. A variable that is exactly 0.0 is treated
// as "absent" and clamps that species' charge to zero -- the legacy
// switch-by-zero convention that conflates "not fit" with "fit to
// zero", preserved so existing fitting setups keep their meaning
// (see DESIGN.md, Open Question: legacy zero-charge convention).
//
// ratio must have length ntypes and gives the population fraction of
// each species; ratio[ntypes-1] must be nonzero.
func Resolve(vars, ratio []float64) ([]float64, error) {
	ntypes := len(ratio)
	if len(vars) != ntypes-1 {
		return nil, chk.Err("charge: expected %d free variables for %d species, got %d", ntypes-1, ntypes, len(vars))
	}
	if ratio[ntypes-1] == 0 {
		return nil, chk.Err("charge: ratio of the last species must be nonzero to derive its charge")
	}

	charges := make([]float64, ntypes)
	var sum float64
	for t := 0; t < ntypes-1; t++ {
		if vars[t] != 0 {
			charges[t] = vars[t]
			sum += ratio[t] * charges[t]
		}
	}
	charges[ntypes-1] = -sum / ratio[ntypes-1]
	return charges, nil
}

// Neutral reports whether the charge vector satisfies charge
// neutrality to within tol: Σ ratio[t]*charge[t] ≈ 0.
func Neutral(charges, ratio []float64, tol float64) bool {
	var sum float64
	for t := range charges {
		sum += ratio[t] * charges[t]
	}
	if sum < 0 {
		sum = -sum
	}
	return sum <= tol
}
