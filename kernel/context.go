// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"github.com/cpmech/gosl/chk"
	"github.com/potfit-go/forcekernel/charge"
	"github.com/potfit-go/forcekernel/table"
)

// ParamLayout describes where, in the flat optimization vector handed
// to Evaluate, the charge and kappa variables live: charges start at
// 2*Number+TotalNePar and occupy NTypes-1 slots, with kappa
// immediately following. Number and TotalNePar are supplied by the
// potential-table/APOT bookkeeping collaborator; this kernel only
// needs the resulting offsets.
type ParamLayout struct {
	Number     int
	TotalNePar int
	NTypes     int
}

// ChargeOffset is the index of the first free charge variable.
func (l ParamLayout) ChargeOffset() int { return 2*l.Number + l.TotalNePar }

// KappaOffset is the index of the electrostatic screening parameter,
// immediately following the NTypes-1 free charge variables.
func (l ParamLayout) KappaOffset() int { return l.ChargeOffset() + l.NTypes - 1 }

// Context bundles everything one Evaluate call needs: the potential
// table, the flattened atom/configuration set built by the neighbor-
// list collaborator, and the resolved per-call electrostatic state.
// SyncParams refreshes it on every call; only the mutable scratch
// fields on individual Neighbor and Angle records change within a
// call.
type Context struct {
	Table   *table.Table
	Options Options
	Layout  ParamLayout

	Atoms   []Atom
	Configs []Config

	// FirstConf and NumConf bound the configuration slice this rank
	// owns, [FirstConf, FirstConf+NumConf). Every rank carries the full
	// global Atoms/Configs set (Atom.Index and Config.Index address the
	// shared residual layout), but Evaluate accumulates only the owned
	// slice, so the SPMD sum-reduce of the residual buffer merges
	// disjoint per-rank contributions instead of overcounting. Both
	// zero, the single-process default, means every configuration.
	FirstConf int
	NumConf   int

	Ratio []float64 // population fraction of each species, for charge.Resolve

	// DPCut is the electrostatic tail cutoff (dp_cut); Kappa and Eps
	// (the dielectric prefactor, e.g. 1/4*pi*eps0 in the caller's unit
	// system) are resolved once per call by SyncParams.
	DPCut   float64
	Kappa   float64
	Eps     float64
	Charges []float64
}

// LocalConfigs returns the configuration slice this rank owns.
func (c *Context) LocalConfigs() []Config {
	if c.FirstConf == 0 && c.NumConf == 0 {
		return c.Configs
	}
	return c.Configs[c.FirstConf : c.FirstConf+c.NumConf]
}

// SyncParams decodes the flat parameter vector params into the live
// table buffers (for APOT formats) and the per-call electrostatic
// state.
func (c *Context) SyncParams(params []float64) error {
	if c.Options.APOT && c.Table.Format == table.FormatInternal {
		return chk.Err("kernel: Options.APOT is set but table format %d reads from the internal calc table, not the optimization vector", c.Table.Format)
	}
	if !c.Options.APOT && c.Table.Format != table.FormatInternal {
		return chk.Err("kernel: table format %d requires Options.APOT to be set", c.Table.Format)
	}

	switch c.Table.Format {
	case table.FormatOptTable3, table.FormatOptTable4:
		for _, col := range c.Table.AllColumns() {
			if err := col.SyncFromFlat(params); err != nil {
				return err
			}
		}
	case table.FormatRefreshCalcTable:
		// TODO: format 5 should refresh the calc table from the
		// optimization vector before reading it, but which collaborator
		// performs that refresh is still unsettled (see DESIGN.md Open
		// Question); until then the calc table is read as-is.
	case table.FormatInternal:
		// live buffers are the table's own persistent Values; nothing
		// to sync.
	default:
		return chk.Err("kernel: unknown table format %d", c.Table.Format)
	}

	if err := c.Table.Prepare(); err != nil {
		return err
	}

	ntypes := c.Table.NTypes
	chargeOff := c.Layout.ChargeOffset()
	kappaOff := c.Layout.KappaOffset()
	if kappaOff >= len(params) {
		return chk.Err("kernel: parameter vector of length %d too short for charge/kappa layout (kappa at %d)", len(params), kappaOff)
	}

	vars := make([]float64, ntypes-1)
	copy(vars, params[chargeOff:chargeOff+ntypes-1])
	charges, err := charge.Resolve(vars, c.Ratio)
	if err != nil {
		return err
	}
	c.Charges = charges

	// Legacy zero-switch convention applies to kappa too: a variable of
	// exactly 0.0 means "kappa is not optimized for this call"; the
	// value is used as-is, so screening is switched off and the
	// electrostatic tail reduces to the unscreened 1/r form inside elstat.
	c.Kappa = params[kappaOff]

	if c.Table.AuxParams != nil {
		c.Table.SyncAuxParams(c.Charges, c.Kappa)
	}

	return nil
}
