// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package spline prepares and evaluates cubic splines on the uniform-
// and non-uniform-knot tables used by the potential columns. Second
// derivatives are computed once per call (they are a mutable cache,
// not a persistent one) and queried through precomputed slot/shift
// pairs so that a lookup is O(1).
package spline

import "github.com/cpmech/gosl/chk"

// NaturalSentinel is the legacy boundary-gradient value that selects a
// natural (zero second derivative) boundary condition on that side of
// the spline, instead of a clamped first derivative.
const NaturalSentinel = 1e30

// sentinelThreshold is the `>= 0.99e30` natural-boundary test, kept
// compatible with existing potential-table files.
const sentinelThreshold = 0.99e30

// IsNatural reports whether a boundary-gradient sentinel selects the
// natural boundary condition.
func IsNatural(yp float64) bool { return yp >= sentinelThreshold }

// PrepareUniform computes second derivatives for a cubic spline over n
// uniformly spaced knots with step h. yp0/ypn are boundary first-
// derivative sentinels; IsNatural(yp) selects the natural boundary on
// that side, otherwise the boundary is clamped to the given slope.
func PrepareUniform(h float64, y []float64, yp0, ypn float64) []float64 {
	n := len(y)
	if n < 2 {
		chk.Panic("spline: need at least 2 points to prepare a spline, got %d", n)
	}
	if h <= 0 {
		chk.Panic("spline: step must be positive, got %g", h)
	}
	y2 := make([]float64, n)
	u := make([]float64, n)

	if IsNatural(yp0) {
		y2[0], u[0] = 0, 0
	} else {
		y2[0] = -0.5
		u[0] = (3.0 / h) * ((y[1]-y[0])/h - yp0)
	}

	for i := 1; i < n-1; i++ {
		p := 0.5*y2[i-1] + 2.0
		y2[i] = (0.5 - 1.0) / p
		ui := (y[i+1] - 2*y[i] + y[i-1]) / h
		u[i] = (3.0*ui/h - 0.5*u[i-1]) / p
	}

	var qn, un float64
	if IsNatural(ypn) {
		qn, un = 0, 0
	} else {
		qn = 0.5
		un = (3.0 / h) * (ypn - (y[n-1]-y[n-2])/h)
	}
	y2[n-1] = (un - qn*u[n-2]) / (qn*y2[n-2] + 1.0)

	for k := n - 2; k >= 0; k-- {
		y2[k] = y2[k]*y2[k+1] + u[k]
	}
	return y2
}

// PrepareNonUniform computes second derivatives for a cubic spline
// over n knots at explicit, strictly increasing abscissae x. Used for
// table formats that store abscissae explicitly (format >= 4); the
// abscissae themselves are built by an external collaborator.
func PrepareNonUniform(x, y []float64, yp0, ypn float64) []float64 {
	n := len(y)
	if n < 2 || len(x) != n {
		chk.Panic("spline: x and y must have equal length >= 2, got %d and %d", len(x), n)
	}
	y2 := make([]float64, n)
	u := make([]float64, n)

	if IsNatural(yp0) {
		y2[0], u[0] = 0, 0
	} else {
		y2[0] = -0.5
		u[0] = (3.0 / (x[1] - x[0])) * ((y[1]-y[0])/(x[1]-x[0]) - yp0)
	}

	for i := 1; i < n-1; i++ {
		sig := (x[i] - x[i-1]) / (x[i+1] - x[i-1])
		p := sig*y2[i-1] + 2.0
		y2[i] = (sig - 1.0) / p
		ui := (y[i+1]-y[i])/(x[i+1]-x[i]) - (y[i]-y[i-1])/(x[i]-x[i-1])
		u[i] = (6.0*ui/(x[i+1]-x[i-1]) - sig*u[i-1]) / p
	}

	var qn, un float64
	if IsNatural(ypn) {
		qn, un = 0, 0
	} else {
		qn = 0.5
		un = (3.0 / (x[n-1] - x[n-2])) * (ypn - (y[n-1]-y[n-2])/(x[n-1]-x[n-2]))
	}
	y2[n-1] = (un - qn*u[n-2]) / (qn*y2[n-2] + 1.0)

	for k := n - 2; k >= 0; k-- {
		y2[k] = y2[k]*y2[k+1] + u[k]
	}
	return y2
}
