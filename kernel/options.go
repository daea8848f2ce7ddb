// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package kernel implements the force-evaluation core: given a
// potential table, a neighbor-list-derived atom/configuration set and
// a flat parameter vector, it computes energies, forces and stresses
// and folds them into a weighted sum of squared residuals.
//
// Everything that selects a pipeline variant -- the potential family,
// stress accumulation, force weighting, contrib masking, the DSF
// Coulomb tail, the APOT parameter flow -- is a runtime field on
// Options, so one compiled kernel serves every configuration.
package kernel

// Family selects which of the two physical models a Context evaluates.
type Family int

const (
	// FamilyPairAngular is the pair+three-body angular potential with
	// an optional electrostatic tail and core-shell cancellation.
	FamilyPairAngular Family = iota
	// FamilyTersoff is the Tersoff-style pair-only potential: full-bond
	// (not half-bond) accumulation with explicit Newton's-third-law
	// reaction and self-interaction scaling.
	FamilyTersoff
)

func (f Family) String() string {
	switch f {
	case FamilyPairAngular:
		return "pair-angular"
	case FamilyTersoff:
		return "tersoff"
	default:
		return "unknown"
	}
}

// Options selects the active pipeline and its runtime switches.
type Options struct {
	Family Family `json:"family"`

	// Stress enables accumulation of the six-component Voigt stress
	// residual per configuration.
	Stress bool `json:"stress"`

	// FWeight enables per-atom force weighting by 1/(absforce+ForceEps)
	// in the finalizer.
	FWeight bool `json:"fweight"`

	// Contrib restricts force-residual contribution to atoms flagged
	// Contrib==true, typically to exclude a relaxed buffer region from
	// the fit while keeping its influence on neighboring atoms.
	Contrib bool `json:"contrib"`

	// DSF selects the damped-shifted-force electrostatic tail in place
	// of the plain value-shifted tail.
	DSF bool `json:"dsf"`

	// APOT marks that the live spline buffers are synced from the flat
	// parameter vector on every call, as opposed to being read from the
	// table's own persistent storage. Context.SyncParams enforces this
	// as an observable precondition: APOT must be set whenever
	// Table.Format != FormatInternal, and clear whenever it equals
	// FormatInternal; a mismatch is a configuration error, not a
	// silent fallback.
	APOT bool `json:"apot"`

	// EWeight and SWeight scale the energy and stress residual terms
	// in the finalizer's squared-residual accumulation.
	EWeight float64 `json:"eweight"`
	SWeight float64 `json:"sweight"`
}

// ForceEps is the floor added to a relaxed atom's absolute reference
// force before taking its reciprocal as a per-atom force weight,
// preventing a division blow-up for atoms at a force minimum.
const ForceEps = 1e-6
