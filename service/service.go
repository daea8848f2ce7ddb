// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package service runs the SPMD force-evaluation loop: one blocking
// rank-0-driven request/response cycle per optimizer iteration, built
// directly on gosl/mpi. Every rank runs the same loop; only rank 0
// talks to the optimizer and to the bounds-penalty collaborator.
package service

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/mpi"
	"github.com/potfit-go/forcekernel/kernel"
)

// Flag values exchanged on every loop iteration, broadcast from rank 0
// alongside the parameter vector. Any value other than FlagShutdown
// and FlagSync is treated as a compute request, for compatibility with
// older drivers.
const (
	FlagCompute  = 0
	FlagShutdown = 1
	FlagSync     = 2 // re-synchronize the live table buffers without a force evaluation
)

// NaNPenalty is substituted for the returned sum whenever a compute
// call produces a non-finite result, so a single bad trial parameter
// vector degrades the optimizer's objective instead of crashing it.
const NaNPenalty = 1e11

// BoundsPenalty is the external collaborator that adds a rank-0-only
// penalty term for parameters outside their admissible range (out of
// scope: the bounds themselves are configuration, not kernel state).
type BoundsPenalty interface {
	Penalty(params []float64) float64
}

// Loop runs the SPMD service loop until a shutdown flag is received.
// ctx must already have its Atoms/Configs/Table/Ratio fields populated
// identically on every rank (only the flat parameter vector and the
// flag travel over the wire on each iteration); Run then assigns each
// rank its own configuration slice, so every rank accumulates a
// disjoint part of the shared residual layout and the sum-reduce
// yields the global result. Bounds may be nil.
type Loop struct {
	Ctx    *kernel.Context
	Bounds BoundsPenalty

	// NParams is the length of the flat parameter vector exchanged on
	// every iteration.
	NParams int

	// FCalls counts completed compute iterations, for diagnostics.
	FCalls int
}

// Run blocks until a rank-0 caller supplies FlagShutdown through
// nextFlag/nextParams, calling back with the gathered residual buffer
// after every compute iteration. Rank 0 drives the loop by returning
// FlagCompute/FlagSync/FlagShutdown and the next parameter vector from
// nextFlag; other ranks never call nextFlag and receive the flag and
// parameters through the broadcast.
func (l *Loop) Run(nextFlag func() (flag int, params []float64), onResult func(res *kernel.Residuals, sum float64)) error {
	rank, size := 0, 1
	if mpi.IsOn() {
		rank, size = mpi.Rank(), mpi.Size()
	}
	if size > 1 && l.Ctx.FirstConf == 0 && l.Ctx.NumConf == 0 {
		l.Ctx.FirstConf, l.Ctx.NumConf = partitionConfigs(len(l.Ctx.Configs), rank, size)
	}

	params := make([]float64, l.NParams)
	flagBuf := make([]float64, 1)

	for {
		var flag int
		if rank == 0 {
			var next []float64
			flag, next = nextFlag()
			if flag != FlagShutdown && len(next) != l.NParams {
				return chk.Err("service: expected %d parameters, got %d", l.NParams, len(next))
			}
			copy(params, next)
			flagBuf[0] = float64(flag)
		}
		if mpi.IsOn() {
			mpi.BcastFromRoot(flagBuf)
			mpi.BcastFromRoot(params)
		}
		flag = int(flagBuf[0])

		switch flag {
		case FlagShutdown:
			return nil

		case FlagSync:
			if err := l.Ctx.SyncParams(params); err != nil {
				return err
			}
			continue
		}

		// every other flag value computes
		res := kernel.NewResiduals(len(l.Ctx.Atoms), len(l.Ctx.Configs))
		local, err := kernel.Evaluate(l.Ctx, params, res)
		if err != nil {
			return err
		}

		gathered := res
		sum := local
		if mpi.IsOn() {
			gathered = kernel.NewResiduals(len(l.Ctx.Atoms), len(l.Ctx.Configs))
			mpi.AllReduceSum(gathered.Data, res.Data)
			sumBuf := []float64{local}
			sumOut := []float64{0}
			mpi.AllReduceSum(sumOut, sumBuf)
			sum = sumOut[0]
		}

		if rank == 0 && l.Bounds != nil {
			sum += l.Bounds.Penalty(params)
		}
		if math.IsNaN(sum) || math.IsInf(sum, 0) {
			sum = NaNPenalty
		}

		l.FCalls++
		if onResult != nil {
			onResult(gathered, sum)
		}
	}
}

// partitionConfigs block-distributes nconf configurations over size
// ranks, spreading the remainder across the leading ranks, and returns
// the [first, first+count) slice owned by rank.
func partitionConfigs(nconf, rank, size int) (first, count int) {
	count = nconf / size
	rem := nconf % size
	first = rank*count + min(rank, rem)
	if rank < rem {
		count++
	}
	return
}
