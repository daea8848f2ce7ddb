// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package spline

import "github.com/cpmech/gosl/io"

// OutOfRangeError signals that a (slot, shift) pair does not satisfy
// the spline-lookup invariant: slot must index a valid knot interval
// and shift must lie in [0,1). Callers are required to gate every
// lookup by the column's cutoff radius, so this indicates an upstream
// invariant violation rather than a normal run-time condition.
type OutOfRangeError struct {
	Slot  int
	Shift float64
	NKnot int
}

func (e *OutOfRangeError) Error() string {
	return io.Sf("spline: slot %d shift %g out of range for %d knots", e.Slot, e.Shift, e.NKnot)
}

func checkRange(y []float64, slot int, shift float64) error {
	if slot < 0 || slot > len(y)-2 || shift < 0 || shift >= 1 {
		return &OutOfRangeError{Slot: slot, Shift: shift, NKnot: len(y)}
	}
	return nil
}

// ValueAt returns the spline value at the knot interval [slot,slot+1]
// given the fractional offset shift and knot spacing step, without
// computing the derivative (splint_dir).
func ValueAt(y, y2 []float64, slot int, shift, step float64) (float64, error) {
	if err := checkRange(y, slot, shift); err != nil {
		return 0, err
	}
	a := 1 - shift
	b := shift
	h2over6 := step * step / 6.0
	val := a*y[slot] + b*y[slot+1] + ((a*a*a-a)*y2[slot]+(b*b*b-b)*y2[slot+1])*h2over6
	return val, nil
}

// ValueGradAt returns the spline value and its first derivative with
// respect to the knot coordinate at the knot interval [slot,slot+1]
// (splint_comb_dir). Both outputs are produced from a single pass over
// the knot data.
func ValueGradAt(y, y2 []float64, slot int, shift, step float64) (val, deriv float64, err error) {
	if err = checkRange(y, slot, shift); err != nil {
		return 0, 0, err
	}
	a := 1 - shift
	b := shift
	h2over6 := step * step / 6.0
	val = a*y[slot] + b*y[slot+1] + ((a*a*a-a)*y2[slot]+(b*b*b-b)*y2[slot+1])*h2over6
	deriv = (y[slot+1]-y[slot])/step + ((3*b*b-1)*y2[slot+1]-(3*a*a-1)*y2[slot])*step/6.0
	return val, deriv, nil
}
