// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "math"

// ColumnRef precomputes a spline lookup triple (column index plus the
// slot/shift needed for an O(1) evaluation; the step is taken from
// the column itself) so the accumulators
// never recompute Locate during a call. Building these triples is the
// responsibility of the (out-of-scope) neighbor-list collaborator.
type ColumnRef struct {
	Col   int     `json:"col"`
	Slot  int     `json:"slot"`
	Shift float64 `json:"shift"`
}

// Neighbor is one entry in an atom's neighbor list: the geometry and
// precomputed spline lookups are immutable for the lifetime of a call,
// while the trailing fields are mutable scratch space overwritten by
// the accumulators on every visit. The electrostatic tail and the
// transfer function f/df are cached on the record because the angular
// accumulator's force pass re-reads what its caching pass stored.
type Neighbor struct {
	Nr   int `json:"nr"` // global index of the neighboring atom
	Type int `json:"type"`

	R, InvR float64    `json:"-"`
	Dist    [3]float64 `json:"dist"`  // raw displacement vector j-i
	DistR   [3]float64 `json:"-"`    // unit displacement vector, Dist/R

	Phi ColumnRef `json:"phi"` // pair potential column lookup
	F   ColumnRef `json:"f"`   // transfer function column lookup (pair-angular family only)

	// Mutable caches, overwritten every accumulator pass that visits
	// this neighbor. Never serialized: scratch space, not scenario input.
	FnvalEl, GradEl, GgradEl float64 `json:"-"` // electrostatic tail cache
	Fval, Dfval              float64 `json:"-"` // transfer function cache (pair-angular family)
}

// Prepare derives R, InvR and DistR from Dist; callers that decode a
// Neighbor from JSON must call this once before use (the scenario wire
// format only carries the raw displacement, the cheapest unambiguous
// representation of the geometry).
func (n *Neighbor) Prepare() {
	r2 := n.Dist[0]*n.Dist[0] + n.Dist[1]*n.Dist[1] + n.Dist[2]*n.Dist[2]
	n.R = math.Sqrt(r2)
	n.InvR = 1 / n.R
	for d := 0; d < 3; d++ {
		n.DistR[d] = n.Dist[d] * n.InvR
	}
}

// Angle is one (j,k) neighbor pair of a central atom contributing a
// three-body angular term. J and K index into the central atom's own
// Neighbors slice.
type Angle struct {
	J   int     `json:"j"`
	K   int     `json:"k"`
	Cos float64 `json:"cos"`

	G ColumnRef `json:"g"` // angular column lookup, keyed by the central atom's species

	// Mutable caches, written by the angular-energy pass and read by
	// the angular-force pass.
	Gval, Dg float64 `json:"-"`
}

// Atom is one atom of one configuration.
type Atom struct {
	Index int `json:"index"` // global index into the flat residual/force layout
	Type  int `json:"type"`

	Neighbors []Neighbor `json:"neighbors"`
	Angles    []Angle    `json:"angles"`

	// RefForce is the reference (DFT/target) force 3-vector this atom
	// is fitted against. Evaluate seeds the residual buffer with
	// -RefForce before any accumulator runs, so that by the time
	// finalizeConfig sums squares the per-atom entry holds
	// F_computed - F_reference, not the raw accumulated force.
	RefForce [3]float64 `json:"ref_force"`

	// AbsForce is the reference force magnitude used by the FWEIGHT
	// force-weighting scheme in the finalizer.
	AbsForce float64 `json:"abs_force"`

	// Contrib gates whether this atom's force residual counts at all
	// when Options.Contrib is set.
	Contrib bool `json:"contrib"`
}

// Config is one configuration (one fitting structure): a contiguous
// range of atoms plus the per-configuration reference data and fit
// switches.
type Config struct {
	Index int `json:"index"` // global index into the shared Residuals energy/stress layout
	Start int `json:"start"`
	Count int `json:"count"`

	Volume    float64 `json:"volume"`
	Weight    float64 `json:"weight"` // conf_weight
	UseForces bool    `json:"use_forces"`
	UseStress bool    `json:"use_stress"`

	RefEnergy float64    `json:"ref_energy"`
	RefStress [6]float64 `json:"ref_stress"` // Voigt order: xx, yy, zz, xy, yz, zx
}
