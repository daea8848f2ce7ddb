// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package table

import (
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/potfit-go/forcekernel/spline"
)

func Test_pair_index_symmetric(tst *testing.T) {

	chk.PrintTitle("pair index packing")

	ntypes := 3
	chk.IntAssert(PairIndex(0, 0, ntypes), 0)
	chk.IntAssert(PairIndex(0, 1, ntypes), PairIndex(1, 0, ntypes))
	chk.IntAssert(PairIndex(2, 2, ntypes), 5)
}

func Test_prepare_and_locate(tst *testing.T) {

	chk.PrintTitle("column prepare and locate round-trip")

	values := []float64{1.0, 0.5, 0.1, -0.05, -0.08, -0.02}
	col := NewUniformColumn(KindPhi, values, 0.5, 1.0, spline.NaturalSentinel, 0.0, 1.0)
	if err := col.Prepare(); err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}

	slot, shift, err := col.Locate(2.0)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.IntAssert(slot, 2)
	chk.Float64(tst, "shift", 1e-12, shift, 0.0)

	val, err := col.ValueAt(slot, shift)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
		return
	}
	chk.Float64(tst, "value at knot", 1e-12, val, values[2])
}

func Test_locate_out_of_range(tst *testing.T) {

	chk.PrintTitle("locate rejects radii outside the column")

	col := NewUniformColumn(KindPhi, []float64{1, 2, 3}, 1.0, 0.0, spline.NaturalSentinel, spline.NaturalSentinel, 1.0)
	if _, _, err := col.Locate(-1.0); err == nil {
		tst.Errorf("expected error for r below rmin")
	}
	if _, _, err := col.Locate(10.0); err == nil {
		tst.Errorf("expected error for r beyond end")
	}
}

func Test_table_assembly(tst *testing.T) {

	chk.PrintTitle("pair-angular table assembly")

	ntypes := 2
	tbl := NewPairAngularTable(ntypes)
	chk.IntAssert(len(tbl.Phi), 3)
	chk.IntAssert(len(tbl.F), 3)
	chk.IntAssert(len(tbl.G), 2)
	chk.IntAssert(len(tbl.Aux), 2)

	for i := range tbl.Phi {
		tbl.Phi[i] = NewUniformColumn(KindPhi, []float64{1, 0.5, 0.1, -0.1}, 0.5, 1.0, spline.NaturalSentinel, 0.0, 1.0)
		tbl.F[i] = NewUniformColumn(KindF, []float64{1, 1, 1, 1}, 0.5, 1.0, spline.NaturalSentinel, spline.NaturalSentinel, 1.0)
	}
	for i := range tbl.G {
		tbl.G[i] = NewUniformColumn(KindG, []float64{1, 2, 3, 2, 1}, 0.5, -1.0, spline.NaturalSentinel, spline.NaturalSentinel, 1.0)
		tbl.Aux[i] = NewUniformColumn(KindAux, []float64{0, 0}, 1.0, 0.0, spline.NaturalSentinel, spline.NaturalSentinel, 1.0)
	}
	if err := tbl.Prepare(); err != nil {
		tst.Errorf("unexpected error preparing table: %v", err)
	}
}

func Test_aux_params_named_and_synced(tst *testing.T) {

	chk.PrintTitle("aux params expose resolved charges/kappa by name")

	tbl := NewPairAngularTable(2)
	chk.IntAssert(len(tbl.AuxParams), 3) // charge0, charge1, kappa

	tbl.SyncAuxParams([]float64{1.5, -1.5}, 0.3)

	q0 := tbl.AuxParams.Find("charge0")
	q1 := tbl.AuxParams.Find("charge1")
	kappa := tbl.AuxParams.Find("kappa")
	if q0 == nil || q1 == nil || kappa == nil {
		tst.Fatalf("expected charge0, charge1 and kappa entries to be found")
	}
	chk.Float64(tst, "charge0", 1e-15, q0.V, 1.5)
	chk.Float64(tst, "charge1", 1e-15, q1.V, -1.5)
	chk.Float64(tst, "kappa", 1e-15, kappa.V, 0.3)
}
