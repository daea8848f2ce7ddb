// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bounds provides a minimal, out-of-scope-by-design
// implementation of the rank-0 parameter-bounds penalty the service
// loop adds to the objective sum. The full punishment-function
// machinery (per-parameter soft/hard bounds, annealing schedules) is
// an external collaborator this kernel does not own; Range is just
// enough to satisfy service.BoundsPenalty for a standalone binary.
package bounds

// Range is a simple box constraint: Penalty grows quadratically once a
// parameter leaves [Min[i], Max[i]], and is zero everywhere inside.
type Range struct {
	Min, Max []float64
	Scale    float64 // penalty weight; zero defaults to 1
}

// Penalty implements service.BoundsPenalty.
func (r Range) Penalty(params []float64) float64 {
	scale := r.Scale
	if scale == 0 {
		scale = 1
	}
	var sum float64
	n := len(r.Min)
	if len(r.Max) < n {
		n = len(r.Max)
	}
	if len(params) < n {
		n = len(params)
	}
	for i := 0; i < n; i++ {
		switch {
		case params[i] < r.Min[i]:
			d := r.Min[i] - params[i]
			sum += scale * d * d
		case params[i] > r.Max[i]:
			d := params[i] - r.Max[i]
			sum += scale * d * d
		}
	}
	return sum
}
