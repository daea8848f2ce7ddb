// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import "github.com/cpmech/gosl/chk"

// NewUniformColumn builds a column sampled on uniform knots. weight
// zero marks a core-shell column (see Column.Weight). Potential-table
// file I/O and the construction of spline abscissae are external
// collaborators out of scope for this package; NewUniformColumn is the
// minimal constructor needed by tests and by callers that already have
// sampled values in hand.
func NewUniformColumn(kind Kind, values []float64, step, rmin, leftBC, rightBC, weight float64) *Column {
	if len(values) < 2 {
		chk.Panic("table: column needs at least 2 knots, got %d", len(values))
	}
	return &Column{
		Kind:     kind,
		First:    0,
		Last:     len(values) - 1,
		Step:     step,
		End:      rmin + step*float64(len(values)-1),
		RMin:     rmin,
		LeftBC:   leftBC,
		RightBC:  rightBC,
		Weight:   weight,
		Values:   append([]float64(nil), values...),
	}
}

// NewNonUniformColumn builds a column sampled on explicit, strictly
// increasing abscissae (used by Tersoff tables when Format selects
// non-uniform preparation).
func NewNonUniformColumn(kind Kind, xcoord, values []float64, leftBC, rightBC, weight float64) *Column {
	if len(values) < 2 || len(xcoord) != len(values) {
		chk.Panic("table: non-uniform column needs matching x/y of length >= 2, got %d/%d", len(xcoord), len(values))
	}
	return &Column{
		Kind:    kind,
		First:   0,
		Last:    len(values) - 1,
		Step:    xcoord[1] - xcoord[0],
		End:     xcoord[len(xcoord)-1],
		RMin:    xcoord[0],
		LeftBC:  leftBC,
		RightBC: rightBC,
		Weight:  weight,
		Xcoord:  append([]float64(nil), xcoord...),
		Values:  append([]float64(nil), values...),
	}
}

// NewPairAngularTable assembles an empty pair-angular table shell (phi, f,
// g and aux column slices sized for ntypes species) ready to have its
// columns populated by NewUniformColumn.
func NewPairAngularTable(ntypes int) *Table {
	paircol := ntypes * (ntypes + 1) / 2
	return &Table{
		Format:    FormatInternal,
		NTypes:    ntypes,
		PairCol:   paircol,
		Phi:       make([]*Column, paircol),
		F:         make([]*Column, paircol),
		G:         make([]*Column, ntypes),
		Aux:       make([]*Column, ntypes),
		AuxParams: NewAuxParams(ntypes),
	}
}

// NewTersoffTable assembles an empty Tersoff table shell (phi columns
// only).
func NewTersoffTable(ntypes int) *Table {
	paircol := ntypes * (ntypes + 1) / 2
	return &Table{
		Format:  FormatInternal,
		NTypes:  ntypes,
		PairCol: paircol,
		Phi:     make([]*Column, paircol),
	}
}
