// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package kernel implements the per-tetrahedron energy/force/stiffness
// evaluation of spec.md §4.4: deformation gradients, beam-wise stretches,
// material evaluation and the resulting per-corner forces and per-corner-
// pair stiffness blocks. The per-tetrahedron loop is embarrassingly
// parallel (spec.md §5) and is split across goroutines with no
// synchronization, since each tetrahedron only ever writes its own slot.
package kernel

import (
	"math"
	"runtime"
	"sync"

	"github.com/cpmech/fibermesh/beam"
	"github.com/cpmech/fibermesh/ferr"
	"github.com/cpmech/fibermesh/material"
	"github.com/cpmech/fibermesh/mesh"
	"github.com/cpmech/fibermesh/shape"
)

// Result holds the per-tetrahedron outputs of one kernel evaluation.
type Result struct {
	E    []float64          // N_T, per-tetrahedron energy
	Eglo float64            // sum of E_t over tets with at least one free corner
	F    [][4][3]float64    // N_T x 4 x 3, per-corner local force f_tmi
	K    [][4][4][3][3]float64 // N_T x 4 x 4 x 3 x 3, per-corner-pair local stiffness
}

// sigmaFloor guards the sigma_tb==0 edge case of spec.md §4.4 step 10; F is
// near identity in practice so sigma stays bounded away from zero, but a
// pathological displacement must not divide by zero.
const sigmaFloor = 1e-12

// Compute evaluates the kernel for the current displacement field m.U.
// A non-finite per-tetrahedron energy is reported as a fatal NumericFailure
// naming the offending tetrahedron, and a non-finite E_glo as a
// NumericFailure with index -1 (spec.md §4.9). The per-corner forces and
// stiffness blocks are not checked here.
func Compute(m *mesh.Mesh, sh *shape.Tensors, beams *beam.Set, mdl material.Model) (*Result, error) {
	nt := m.NT
	nb := beams.N()

	res := &Result{
		E: make([]float64, nt),
		F: make([][4][3]float64, nt),
		K: make([][4][4][3][3]float64, nt),
	}

	countEnergy := make([]bool, nt)
	for t, tet := range m.T {
		for _, c := range tet {
			if m.Var[c] {
				countEnergy[t] = true
				break
			}
		}
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > nt {
		workers = nt
	}
	if workers < 1 {
		workers = 1
	}

	var wg sync.WaitGroup
	errs := make([]error, workers)
	chunk := (nt + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > nt {
			hi = nt
		}
		if lo >= hi {
			continue
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			errs[w] = computeRange(m, sh, beams.S, mdl, res, countEnergy, lo, hi, nb)
		}(w, lo, hi)
	}
	wg.Wait()
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	for t := range res.E {
		if countEnergy[t] {
			res.Eglo += res.E[t]
		}
	}
	if math.IsNaN(res.Eglo) || math.IsInf(res.Eglo, 0) {
		return nil, ferr.New(ferr.NumericFailure, -1, "non-finite global energy E_glo=%v", res.Eglo)
	}
	return res, nil
}

func computeRange(m *mesh.Mesh, sh *shape.Tensors, s [][3]float64, mdl material.Model, res *Result, countEnergy []bool, lo, hi, nb int) error {
	var F [3][3]float64
	sbar := make([][3]float64, nb)
	sstar := make([][4]float64, nb)
	sigma := make([]float64, nb)
	delta := make([]float64, nb)

	for t := lo; t < hi; t++ {
		tet := m.T[t]
		phi := sh.Phi[t]
		vt := sh.V[t]

		// F_ij = delta_ij + sum_m u_tim * Phi_tmj
		for i := 0; i < 3; i++ {
			for j := 0; j < 3; j++ {
				var sum float64
				for mm := 0; mm < 4; mm++ {
					sum += m.U[tet[mm]][i] * phi[mm][j]
				}
				if i == j {
					sum += 1
				}
				F[i][j] = sum
			}
		}

		// s_bar_tib = F_tij * s_jb ; s_star_tmb = Phi_tmj * s_jb
		for b := 0; b < nb; b++ {
			sv := s[b]
			for i := 0; i < 3; i++ {
				sbar[b][i] = F[i][0]*sv[0] + F[i][1]*sv[1] + F[i][2]*sv[2]
			}
			for mm := 0; mm < 4; mm++ {
				sstar[b][mm] = phi[mm][0]*sv[0] + phi[mm][1]*sv[1] + phi[mm][2]*sv[2]
			}
			n := math.Sqrt(sbar[b][0]*sbar[b][0] + sbar[b][1]*sbar[b][1] + sbar[b][2]*sbar[b][2])
			sigma[b] = n
			delta[b] = n - 1
		}

		w, wp, wpp := mdl.Evaluate(delta)

		var esum float64
		for b := 0; b < nb; b++ {
			esum += w[b]
		}
		res.E[t] = vt * esum / float64(nb)
		if !countEnergy[t] {
			// still a valid, finite number; excluded from E_glo by the caller
		}

		g := make([]float64, nb)
		h := make([]float64, nb)
		for b := 0; b < nb; b++ {
			sig := sigma[b]
			if sig < sigmaFloor {
				g[b] = -wp[b] / float64(nb) * vt
				h[b] = 0
				continue
			}
			g[b] = -(wp[b] / sig) * (vt / float64(nb))
			h[b] = (sig*wpp[b] - wp[b]) / (sig * sig * sig) * (vt / float64(nb))
		}

		var f [4][3]float64
		for mm := 0; mm < 4; mm++ {
			for i := 0; i < 3; i++ {
				var sum float64
				for b := 0; b < nb; b++ {
					sum += sstar[b][mm] * sbar[b][i] * g[b]
				}
				f[mm][i] = sum
			}
		}
		res.F[t] = f

		var kk [4][4][3][3]float64
		for mm := 0; mm < 4; mm++ {
			for r := 0; r < 4; r++ {
				for i := 0; i < 3; i++ {
					for l := 0; l < 3; l++ {
						var sum float64
						for b := 0; b < nb; b++ {
							delil := 0.0
							if i == l {
								delil = 1
							}
							sum += sstar[b][mm] * sstar[b][r] * (0.5*h[b]*sbar[b][i]*sbar[b][l] - 0.5*g[b]*delil)
						}
						kk[mm][r][i][l] = sum
					}
				}
			}
		}
		res.K[t] = kk

		if math.IsNaN(res.E[t]) || math.IsInf(res.E[t], 0) {
			return ferr.New(ferr.NumericFailure, t, "non-finite energy at tetrahedron %d", t)
		}
	}
	return nil
}
