// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package elstat

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/diff/fd"
)

func Test_dsf_zero_at_cutoff(tst *testing.T) {

	chk.PrintTitle("DSF value and force vanish at the cutoff")

	rc, kappa, eps := 8.0, 0.3, 14.399645 // eps in eV*Angstrom convention

	val, gradOverR, _ := DampedShiftedForce(rc, rc, kappa, eps)
	chk.Float64(tst, "V(rc)", 1e-12, val, 0)
	chk.Float64(tst, "V'(rc)", 1e-10, gradOverR*rc, 0)
}

func Test_shifted_value_continuous_not_force(tst *testing.T) {

	chk.PrintTitle("shifted tail is value-continuous only")

	rc, kappa, eps := 8.0, 0.3, 1.0

	val, _, _ := Shifted(rc, rc, kappa, eps)
	chk.Float64(tst, "V(rc)", 1e-12, val, 0)

	_, gradAtCut, _ := Shifted(rc, rc, kappa, eps)
	_, rawGrad, _ := ValueAt(rc, kappa, eps)
	chk.Float64(tst, "shifted force at rc equals undamped force", 1e-12, gradAtCut, rawGrad)
}

func Test_dsf_gradient_matches_finite_difference(tst *testing.T) {

	chk.PrintTitle("DSF analytic gradient vs finite-difference oracle")

	rc, kappa, eps := 6.0, 0.25, 14.399645
	r := 3.5

	_, gradOverR, _ := DampedShiftedForce(r, rc, kappa, eps)

	f := func(x float64) float64 {
		v, _, _ := DampedShiftedForce(x, rc, kappa, eps)
		return v
	}
	dNum := fd.Derivative(f, r, &fd.Settings{Step: 1e-6})
	chk.AnaNum(tst, "dV/dr", 1e-6, gradOverR*r, dNum, chk.Verbose)
}

func Test_self_energy_dsf_uses_raw_tail(tst *testing.T) {

	chk.PrintTitle("DSF self energy correction")

	rc, kappa, eps, q := 8.0, 0.3, 14.399645, 1.0

	e := SelfEnergyDSF(q, kappa, eps, rc)
	vCut, gradCut, _ := ValueAt(rc, kappa, eps)
	expected := -q * q * (eps*kappa*invSqrtPi + 0.5*(vCut-gradCut*rc*rc))
	chk.Float64(tst, "self energy", 1e-15, e, expected)

	if math.IsNaN(e) {
		tst.Errorf("self energy must not be NaN for a well-posed kappa/rc")
	}
}
