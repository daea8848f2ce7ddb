// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package table models the potential table: an ordered sequence of
// uniformly (or, for some formats, non-uniformly) sampled 1-D spline
// columns, grouped into pair (phi), transfer (f), angular (g) and
// auxiliary columns. Boundary gradients, cutoffs and index ranges live
// as named fields on Column rather than in sentinel slots of a shared
// flat array, so callers never index past a column's own storage.
package table

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/potfit-go/forcekernel/spline"
)

// Kind identifies which logical group a column belongs to.
type Kind int

const (
	KindPhi Kind = iota // pair potential, one per unordered species pair
	KindF                // transfer function, one per unordered species pair
	KindG                // angular function, one per central species
	KindAux              // auxiliary column reserved for charges/kappa
)

func (k Kind) String() string {
	switch k {
	case KindPhi:
		return "phi"
	case KindF:
		return "f"
	case KindG:
		return "g"
	case KindAux:
		return "aux"
	default:
		return "unknown"
	}
}

// Column is one spline-sampled 1-D function of the potential table.
type Column struct {
	Kind Kind

	// First/Last are the inclusive index range of this column's knots
	// in the shared flat potential vector (SyncFromFlat copies
	// xi[First:Last+1]); Values/Deriv2 themselves are indexed from 0
	// and have length Last-First+1. The constructors in this package
	// set First to 0.
	First, Last int
	Step        float64 // h: uniform knot spacing
	End         float64 // cutoff radius for this column
	RMin        float64 // radial coordinate of the first knot

	// LeftBC/RightBC are the boundary-gradient sentinels; a value
	// satisfying spline.IsNatural selects the natural boundary on
	// that side. Table files store these in the two slots preceding
	// the column's first knot; the loader lifts them into named
	// fields here.
	LeftBC, RightBC float64

	// Weight marks a core-shell column when zero: the electrostatic
	// accumulator must then cancel the bare 1/r Coulomb term for any
	// pair routed through this phi column (see kernel package).
	Weight float64

	// Xcoord holds explicit, strictly increasing abscissae for this
	// column when the table format uses non-uniform knots (format>=4
	// for Tersoff pair columns); nil otherwise. Built by an external
	// collaborator (spline-abscissae construction is out of scope).
	Xcoord []float64

	Values []float64 // live spline samples, length Last-First+1
	Deriv2 []float64 // second derivatives, recomputed every Prepare call
}

// NumKnots returns the number of sampled knots in this column.
func (c *Column) NumKnots() int { return c.Last - c.First + 1 }

// Prepare recomputes Deriv2 for the current Values, using non-uniform
// knots when Xcoord is set and uniform knots otherwise.
func (c *Column) Prepare() error {
	if len(c.Values) != c.NumKnots() {
		return chk.Err("table: column %s has %d values, expected %d", c.Kind, len(c.Values), c.NumKnots())
	}
	if c.Xcoord != nil {
		if len(c.Xcoord) != len(c.Values) {
			return chk.Err("table: column %s has mismatched xcoord length %d vs %d values", c.Kind, len(c.Xcoord), len(c.Values))
		}
		c.Deriv2 = spline.PrepareNonUniform(c.Xcoord, c.Values, c.LeftBC, c.RightBC)
		return nil
	}
	c.Deriv2 = spline.PrepareUniform(c.Step, c.Values, c.LeftBC, c.RightBC)
	return nil
}

// SyncFromFlat overwrites this column's live Values from a shared flat
// potential vector xi, using First/Last as indices into xi. Used when
// the table's Format selects the optimization vector as the live
// buffer (FormatOptTable3/FormatOptTable4) instead of the column's own
// persistent storage.
func (c *Column) SyncFromFlat(xi []float64) error {
	if c.First < 0 || c.Last < c.First || c.Last >= len(xi) {
		return chk.Err("table: column %s range [%d,%d] invalid for flat vector of length %d", c.Kind, c.First, c.Last, len(xi))
	}
	if len(c.Values) != c.Last-c.First+1 {
		c.Values = make([]float64, c.Last-c.First+1)
	}
	copy(c.Values, xi[c.First:c.Last+1])
	return nil
}

// Locate returns the (slot, shift) pair for radius r, for use by test
// harnesses and synthetic data builders; production neighbor/angle
// records carry slot/shift precomputed by the (out-of-scope) neighbor-
// list collaborator.
func (c *Column) Locate(r float64) (slot int, shift float64, err error) {
	if r < c.RMin || r >= c.End {
		return 0, 0, chk.Err("table: r=%g outside column range [%g,%g)", r, c.RMin, c.End)
	}
	pos := (r - c.RMin) / c.Step
	slot = int(pos)
	shift = pos - float64(slot)
	if slot > c.NumKnots()-2 {
		// r just below End can round pos up to the last knot; pin the
		// lookup to the final interval keeping shift strictly below 1.
		slot = c.NumKnots() - 2
		shift = math.Nextafter(1, 0)
	}
	return slot, shift, nil
}

// localStep returns the knot spacing to use at the given slot: the
// per-interval spacing for non-uniform (explicit-abscissae) columns,
// or the constant Step otherwise.
func (c *Column) localStep(slot int) float64 {
	if c.Xcoord != nil && slot >= 0 && slot+1 < len(c.Xcoord) {
		return c.Xcoord[slot+1] - c.Xcoord[slot]
	}
	return c.Step
}

// ValueAt evaluates this column's spline (value only) at (slot,shift).
func (c *Column) ValueAt(slot int, shift float64) (float64, error) {
	return spline.ValueAt(c.Values, c.Deriv2, slot, shift, c.localStep(slot))
}

// ValueGradAt evaluates this column's spline (value and derivative) at
// (slot,shift).
func (c *Column) ValueGradAt(slot int, shift float64) (val, grad float64, err error) {
	return spline.ValueGradAt(c.Values, c.Deriv2, slot, shift, c.localStep(slot))
}
