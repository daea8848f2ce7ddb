// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spline

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"gonum.org/v1/gonum/diff/fd"
)

func Test_uniform_sine(tst *testing.T) {

	chk.PrintTitle("uniform sine spline")

	n := 21
	h := 0.1
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		y[i] = math.Sin(float64(i) * h)
	}
	y2 := PrepareUniform(h, y, NaturalSentinel, NaturalSentinel)

	// evaluate the combined variant at the midpoint of a central knot
	// interval and compare the derivative against an independent
	// finite-difference oracle built directly from the value-only
	// evaluator (not from the analytic formula above).
	slot := 10
	shift := 0.5
	val, deriv, err := ValueGradAt(y, y2, slot, shift, h)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}

	f := func(s float64) float64 {
		v, e := ValueAt(y, y2, slot, s, h)
		if e != nil {
			tst.Fatalf("ValueAt failed during fd probe: %v", e)
		}
		return v
	}
	dShift := fd.Derivative(f, shift, &fd.Settings{Step: 1e-6})
	dNum := dShift / h // dV/dr = dV/dshift * dshift/dr, shift = (r-r0)/h

	chk.AnaNum(tst, "dV/dr", 1e-6, deriv, dNum, chk.Verbose)

	expectedVal, e := ValueAt(y, y2, slot, shift, h)
	if e != nil {
		tst.Errorf("unexpected error: %v", e)
	}
	chk.Float64(tst, "value matches ValueAt", 1e-15, val, expectedVal)
}

func Test_out_of_range(tst *testing.T) {

	chk.PrintTitle("spline out of range")

	y := []float64{1, 2, 3, 4}
	y2 := PrepareUniform(1.0, y, NaturalSentinel, NaturalSentinel)

	if _, err := ValueAt(y, y2, -1, 0.5, 1.0); err == nil {
		tst.Errorf("expected OutOfRangeError for negative slot")
	}
	if _, err := ValueAt(y, y2, 3, 0.5, 1.0); err == nil {
		tst.Errorf("expected OutOfRangeError for slot beyond last interval")
	}
	if _, _, err := ValueGradAt(y, y2, 0, 1.0, 1.0); err == nil {
		tst.Errorf("expected OutOfRangeError for shift==1 (must be < 1)")
	}
}

func Test_nonuniform_matches_uniform(tst *testing.T) {

	chk.PrintTitle("non-uniform spline reduces to uniform case")

	n := 11
	h := 0.2
	x := make([]float64, n)
	y := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = float64(i) * h
		y[i] = x[i]*x[i] - 2*x[i]
	}
	y2u := PrepareUniform(h, y, NaturalSentinel, NaturalSentinel)
	y2n := PrepareNonUniform(x, y, NaturalSentinel, NaturalSentinel)

	for i := range y2u {
		chk.Float64(tst, "y2", 1e-10, y2u[i], y2n[i])
	}
}

func Test_clamped_boundary(tst *testing.T) {

	chk.PrintTitle("clamped boundary derivative is honoured")

	n := 6
	h := 0.5
	y := make([]float64, n)
	for i := range y {
		y[i] = float64(i * i)
	}
	yp0 := 0.0 // clamp left derivative to zero, away from the true slope
	y2 := PrepareUniform(h, y, yp0, NaturalSentinel)

	_, deriv, err := ValueGradAt(y, y2, 0, 0.0, h)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Float64(tst, "clamped dV/dr at left endpoint", 1e-10, deriv, yp0)
}
