// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/json"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
	"github.com/potfit-go/forcekernel/kernel"
	"github.com/potfit-go/forcekernel/table"
)

// Scenario is the JSON wire format for a standalone forcekernel run:
// everything a Context needs that would normally come from the
// potential-table-file and neighbor-list collaborators, bundled so the
// binary is runnable on its own -- a thin, JSON-tagged config surface
// decoded once at startup.
type Scenario struct {
	Options kernel.Options     `json:"options"`
	Layout  kernel.ParamLayout `json:"layout"`
	Ratio   []float64          `json:"ratio"`
	DPCut   float64            `json:"dp_cut"`
	Eps     float64            `json:"eps"`
	NParams int                `json:"n_params"`

	Table   *table.Table   `json:"table"`
	Atoms   []kernel.Atom  `json:"atoms"`
	Configs []kernel.Config `json:"configs"`
}

// LoadScenario reads and decodes a Scenario from fnamepath.
func LoadScenario(fnamepath string) (*Scenario, error) {
	buf, err := io.ReadFile(fnamepath)
	if err != nil {
		return nil, chk.Err("forcekernel: cannot read scenario file %q: %v", fnamepath, err)
	}
	var sc Scenario
	if err := json.Unmarshal(buf, &sc); err != nil {
		return nil, chk.Err("forcekernel: cannot parse scenario file %q: %v", fnamepath, err)
	}
	return &sc, nil
}

// Build assembles a *kernel.Context from the decoded scenario,
// deriving every neighbor's distance fields from its raw displacement.
// The table's splines are not prepared here; kernel.Evaluate prepares
// them on every call.
func (sc *Scenario) Build() (*kernel.Context, error) {
	for ai := range sc.Atoms {
		for ni := range sc.Atoms[ai].Neighbors {
			sc.Atoms[ai].Neighbors[ni].Prepare()
		}
	}
	ctx := &kernel.Context{
		Table:   sc.Table,
		Options: sc.Options,
		Layout:  sc.Layout,
		Atoms:   sc.Atoms,
		Configs: sc.Configs,
		Ratio:   sc.Ratio,
		DPCut:   sc.DPCut,
		Eps:     sc.Eps,
	}
	return ctx, nil
}
