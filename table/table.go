// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"strconv"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/fun"
)

// Format selects which buffer holds the live spline samples during a
// call. It does not choose between uniform and non-uniform knot
// preparation: each column uses non-uniform preparation exactly when
// its Xcoord is set (see Column.Prepare).
type Format int

const (
	// FormatInternal reads samples from the table's own persistent
	// Values buffers (the "calc table").
	FormatInternal Format = 0
	// FormatOptTable3 and FormatOptTable4 read samples directly from
	// the optimization vector for every call; the kernel handles the
	// two identically.
	FormatOptTable3 Format = 3
	FormatOptTable4 Format = 4
	// FormatRefreshCalcTable reads from the calc table; which
	// collaborator refreshes the calc table from the optimization
	// vector beforehand is still unsettled (see DESIGN.md Open
	// Question), so for now the calc table is read as-is.
	FormatRefreshCalcTable Format = 5
)

// Table groups the potential columns: phi (pair) and f (transfer) come
// in PairCol copies each, g (angular) comes in NTypes copies, plus
// NTypes auxiliary columns reserved for charge/kappa bookkeeping. Only
// Phi is populated for a Tersoff-pair table.
type Table struct {
	Format  Format
	NTypes  int
	PairCol int

	Phi []*Column
	F   []*Column
	G   []*Column
	Aux []*Column

	// AuxParams names the APOT-flow optimization variables (species
	// charges and kappa) as a fun.Prms parameter list, following the
	// fun.Prms/fun.Prm convention used throughout the model packages
	// this kernel is modeled on; see NewAuxParams/SyncAuxParams.
	AuxParams fun.Prms
}

// NewAuxParams builds the named parameter list describing this
// table's APOT auxiliary variables: one entry per species charge plus
// a trailing "kappa" entry, so every free variable is addressable by
// name instead of by a bare slice offset.
func NewAuxParams(ntypes int) fun.Prms {
	prms := make(fun.Prms, 0, ntypes+1)
	for t := 0; t < ntypes; t++ {
		prms = append(prms, &fun.Prm{N: chargeName(t), V: 0})
	}
	prms = append(prms, &fun.Prm{N: "kappa", V: 0})
	return prms
}

func chargeName(t int) string {
	return "charge" + strconv.Itoa(t)
}

// SyncAuxParams overwrites the named charge/kappa entries in place
// from the per-call resolved values, so a caller (e.g. the CLI's
// diagnostic printing) can read them back by name with Find/GetValues
// instead of by raw index.
func (t *Table) SyncAuxParams(charges []float64, kappa float64) {
	for i, q := range charges {
		if p := t.AuxParams.Find(chargeName(i)); p != nil {
			p.V = q
		}
	}
	if p := t.AuxParams.Find("kappa"); p != nil {
		p.V = kappa
	}
}

// AllColumns returns every column across all groups, in canonical
// order: phi, f, g, aux.
func (t *Table) AllColumns() []*Column {
	cols := make([]*Column, 0, len(t.Phi)+len(t.F)+len(t.G)+len(t.Aux))
	cols = append(cols, t.Phi...)
	cols = append(cols, t.F...)
	cols = append(cols, t.G...)
	cols = append(cols, t.Aux...)
	return cols
}

// Prepare recomputes second derivatives for every column in the table.
// Must be called once per kernel invocation before any spline lookup,
// after the live Values buffers have been synced from the current
// parameter vector.
func (t *Table) Prepare() error {
	for _, col := range t.AllColumns() {
		if err := col.Prepare(); err != nil {
			return err
		}
	}
	return nil
}

// PairIndex returns the column index for the unordered species pair
// (typeA, typeB), using the standard upper-triangular packing shared by
// phi and f: index = typeB + typeA*ntypes - typeA*(typeA+1)/2 for
// typeA <= typeB.
func PairIndex(typeA, typeB, ntypes int) int {
	if typeA > typeB {
		typeA, typeB = typeB, typeA
	}
	return typeB + typeA*ntypes - typeA*(typeA+1)/2
}

// PhiCol returns the phi column for the unordered species pair (a,b).
func (t *Table) PhiCol(a, b int) *Column {
	idx := PairIndex(a, b, t.NTypes)
	if idx < 0 || idx >= len(t.Phi) {
		chk.Panic("table: phi column index %d out of range for %d pair columns", idx, len(t.Phi))
	}
	return t.Phi[idx]
}

// FCol returns the transfer column for the unordered species pair (a,b).
func (t *Table) FCol(a, b int) *Column {
	idx := PairIndex(a, b, t.NTypes)
	if idx < 0 || idx >= len(t.F) {
		chk.Panic("table: f column index %d out of range for %d pair columns", idx, len(t.F))
	}
	return t.F[idx]
}

// GCol returns the angular column for central species typ.
func (t *Table) GCol(typ int) *Column {
	if typ < 0 || typ >= len(t.G) {
		chk.Panic("table: g column index %d out of range for %d types", typ, len(t.G))
	}
	return t.G[typ]
}
