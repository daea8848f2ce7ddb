// Copyright 2024 The forcekernel Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import "github.com/cpmech/gosl/chk"

// Residuals is the flat output buffer of one Evaluate call: per-atom
// 3-component force residuals, followed by one energy residual per
// configuration, followed by one 6-component Voigt stress residual per
// configuration. Kept as one flat array because the SPMD service layer
// gathers it across ranks as a single contiguous buffer.
type Residuals struct {
	Data []float64

	NAtoms, NConf int
	EnergyOffset  int
	StressOffset  int
}

// NewResiduals allocates a zeroed residual buffer sized for natoms
// atoms and nconf configurations.
func NewResiduals(natoms, nconf int) *Residuals {
	energyOffset := 3 * natoms
	stressOffset := energyOffset + nconf
	return &Residuals{
		Data:         make([]float64, stressOffset+6*nconf),
		NAtoms:       natoms,
		NConf:        nconf,
		EnergyOffset: energyOffset,
		StressOffset: stressOffset,
	}
}

// Reset zeroes the buffer in place for reuse across calls.
func (r *Residuals) Reset() {
	for i := range r.Data {
		r.Data[i] = 0
	}
}

// AddForce accumulates a 3-vector into atom atomIdx's force residual.
func (r *Residuals) AddForce(atomIdx int, f [3]float64) {
	base := 3 * atomIdx
	r.Data[base+0] += f[0]
	r.Data[base+1] += f[1]
	r.Data[base+2] += f[2]
}

// Force returns atom atomIdx's current force residual.
func (r *Residuals) Force(atomIdx int) [3]float64 {
	base := 3 * atomIdx
	return [3]float64{r.Data[base+0], r.Data[base+1], r.Data[base+2]}
}

// SetForce overwrites atom atomIdx's force residual, used by the
// finalizer to apply FWEIGHT's in-place force-magnitude weighting.
func (r *Residuals) SetForce(atomIdx int, f [3]float64) {
	base := 3 * atomIdx
	r.Data[base+0] = f[0]
	r.Data[base+1] = f[1]
	r.Data[base+2] = f[2]
}

// AddEnergy accumulates into configuration cfgIdx's energy residual.
func (r *Residuals) AddEnergy(cfgIdx int, e float64) {
	r.Data[r.EnergyOffset+cfgIdx] += e
}

// Energy returns configuration cfgIdx's current energy residual.
func (r *Residuals) Energy(cfgIdx int) float64 {
	return r.Data[r.EnergyOffset+cfgIdx]
}

// SetEnergy overwrites configuration cfgIdx's energy residual, used by
// the finalizer once it converts accumulated energy into a per-atom
// deviation from the reference.
func (r *Residuals) SetEnergy(cfgIdx int, e float64) {
	r.Data[r.EnergyOffset+cfgIdx] = e
}

// Stress returns the Voigt component v (0..5, order xx,yy,zz,xy,yz,zx)
// of configuration cfgIdx's stress residual.
func (r *Residuals) Stress(cfgIdx, v int) float64 {
	return r.Data[r.StressOffset+6*cfgIdx+v]
}

// SetStress overwrites Voigt component v of configuration cfgIdx's
// stress residual.
func (r *Residuals) SetStress(cfgIdx, v int, val float64) {
	r.Data[r.StressOffset+6*cfgIdx+v] = val
}

// addVoigtStress folds a pairwise force contribution into a
// configuration's six-component stress virial: xx=dist.x*f.x,
// yy=dist.y*f.y, zz=dist.z*f.z, xy=dist.x*f.y, yz=dist.y*f.z,
// zx=dist.z*f.x, each multiplied by scale (callers fold in the sign
// and any 1/2 half-bond factor).
func addVoigtStress(res *Residuals, cfgIdx int, dist, force [3]float64, scale float64) {
	base := res.StressOffset + 6*cfgIdx
	res.Data[base+0] += scale * dist[0] * force[0]
	res.Data[base+1] += scale * dist[1] * force[1]
	res.Data[base+2] += scale * dist[2] * force[2]
	res.Data[base+3] += scale * dist[0] * force[1]
	res.Data[base+4] += scale * dist[1] * force[2]
	res.Data[base+5] += scale * dist[2] * force[0]
}

func checkConfigRange(atomsLen int, cfg *Config) error {
	if cfg.Start < 0 || cfg.Count < 0 || cfg.Start+cfg.Count > atomsLen {
		return chk.Err("kernel: config range [%d,%d) out of bounds for %d atoms", cfg.Start, cfg.Start+cfg.Count, atomsLen)
	}
	return nil
}
