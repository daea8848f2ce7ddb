// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package service

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
	"github.com/potfit-go/forcekernel/kernel"
	"github.com/potfit-go/forcekernel/spline"
	"github.com/potfit-go/forcekernel/table"
)

func newTrivialContext(tst *testing.T) *kernel.Context {
	tbl := table.NewPairAngularTable(1)
	tbl.Phi[0] = table.NewUniformColumn(table.KindPhi, []float64{1, 0.5, 0.1}, 0.5, 0.5, spline.NaturalSentinel, 0.0, 1.0)
	tbl.F[0] = table.NewUniformColumn(table.KindF, []float64{1, 1, 1}, 0.5, 0.5, spline.NaturalSentinel, spline.NaturalSentinel, 1.0)
	tbl.G[0] = table.NewUniformColumn(table.KindG, []float64{1, 1, 1}, 0.5, -1.0, spline.NaturalSentinel, spline.NaturalSentinel, 1.0)
	tbl.Aux[0] = table.NewUniformColumn(table.KindAux, []float64{0, 0}, 1.0, 0.0, spline.NaturalSentinel, spline.NaturalSentinel, 1.0)
	if err := tbl.Prepare(); err != nil {
		tst.Fatalf("unexpected error preparing table: %v", err)
	}
	return &kernel.Context{
		Table:   tbl,
		Options: kernel.Options{Family: kernel.FamilyPairAngular, EWeight: 1, SWeight: 1},
		Layout:  kernel.ParamLayout{NTypes: 1},
		Atoms:   []kernel.Atom{{Index: 0, Type: 0, Contrib: true}},
		Configs: []kernel.Config{{Index: 0, Start: 0, Count: 1, Volume: 1, Weight: 1}},
		Ratio:   []float64{1.0},
	}
}

func Test_loop_stops_on_shutdown_flag(tst *testing.T) {

	chk.PrintTitle("service loop honors the shutdown flag on the first iteration")

	l := &Loop{Ctx: newTrivialContext(tst), NParams: 1}
	calls := 0
	err := l.Run(
		func() (int, []float64) { return FlagShutdown, nil },
		func(res *kernel.Residuals, sum float64) { calls++ },
	)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
	}
	if calls != 0 {
		tst.Errorf("expected no compute callbacks, got %d", calls)
	}
}

func Test_loop_compute_then_shutdown(tst *testing.T) {

	chk.PrintTitle("service loop runs one compute iteration then stops")

	l := &Loop{Ctx: newTrivialContext(tst), NParams: 1}
	iter := 0
	var gotSum float64
	err := l.Run(
		func() (int, []float64) {
			iter++
			if iter == 1 {
				return FlagCompute, []float64{0.0}
			}
			return FlagShutdown, nil
		},
		func(res *kernel.Residuals, sum float64) { gotSum = sum },
	)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
	}
	if l.FCalls != 1 {
		tst.Errorf("expected 1 recorded compute call, got %d", l.FCalls)
	}
	if math.IsNaN(gotSum) {
		tst.Errorf("sum should have been substituted with NaNPenalty, not left NaN")
	}
}

func Test_loop_unknown_flag_computes(tst *testing.T) {

	chk.PrintTitle("service loop treats an unknown flag as a compute request")

	l := &Loop{Ctx: newTrivialContext(tst), NParams: 1}
	iter := 0
	calls := 0
	err := l.Run(
		func() (int, []float64) {
			iter++
			if iter == 1 {
				return 7, []float64{0.0}
			}
			return FlagShutdown, nil
		},
		func(res *kernel.Residuals, sum float64) { calls++ },
	)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
	}
	if calls != 1 || l.FCalls != 1 {
		tst.Errorf("expected one compute callback for flag 7, got %d (fcalls %d)", calls, l.FCalls)
	}
}

func Test_partition_configs_covers_all_ranks(tst *testing.T) {

	chk.PrintTitle("config partition is a disjoint cover")

	for _, tc := range []struct{ nconf, size int }{{10, 3}, {7, 7}, {3, 5}, {1, 2}} {
		next := 0
		for rank := 0; rank < tc.size; rank++ {
			first, count := partitionConfigs(tc.nconf, rank, tc.size)
			if first != next {
				tst.Errorf("nconf=%d size=%d rank=%d: slice starts at %d, expected %d", tc.nconf, tc.size, rank, first, next)
			}
			next = first + count
		}
		if next != tc.nconf {
			tst.Errorf("nconf=%d size=%d: slices cover %d configs", tc.nconf, tc.size, next)
		}
	}
}

func Test_loop_sync_then_compute_matches_compute(tst *testing.T) {

	chk.PrintTitle("sync followed by compute equals a plain compute")

	params := []float64{0.0}

	runOnce := func(flags []int) float64 {
		l := &Loop{Ctx: newTrivialContext(tst), NParams: 1}
		i := 0
		var gotSum float64
		err := l.Run(
			func() (int, []float64) {
				if i >= len(flags) {
					return FlagShutdown, nil
				}
				f := flags[i]
				i++
				return f, params
			},
			func(res *kernel.Residuals, sum float64) { gotSum = sum },
		)
		if err != nil {
			tst.Fatalf("unexpected error: %v", err)
		}
		return gotSum
	}

	plain := runOnce([]int{FlagCompute})
	synced := runOnce([]int{FlagSync, FlagCompute})
	if plain != synced {
		tst.Errorf("sync+compute diverged from plain compute: %v vs %v", synced, plain)
	}
}

type constantBounds struct{ v float64 }

func (c constantBounds) Penalty(params []float64) float64 { return c.v }

func Test_loop_adds_bounds_penalty_on_rank0(tst *testing.T) {

	chk.PrintTitle("service loop folds in the bounds penalty once per compute call")

	l := &Loop{Ctx: newTrivialContext(tst), Bounds: constantBounds{v: 3.5}, NParams: 1}
	iter := 0
	var gotSum float64
	err := l.Run(
		func() (int, []float64) {
			iter++
			if iter == 1 {
				return FlagCompute, []float64{0.0}
			}
			return FlagShutdown, nil
		},
		func(res *kernel.Residuals, sum float64) { gotSum = sum },
	)
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
	}
	chk.Float64(tst, "sum includes bounds penalty", 1e-12, gotSum, 3.5)
}
