// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package shape precomputes, once per tetrahedron, the volume |det B|/6 and
// the 4x3 shape tensor Phi that maps nodal displacements of a
// tetrahedron's corners into its local deformation gradient (spec.md §4.2).
package shape

import (
	"github.com/cpmech/fibermesh/ferr"
	"github.com/cpmech/fibermesh/mesh"
	"gonum.org/v1/gonum/mat"
)

// chi is the constant 4x3 matrix whose rows are (-1,-1,-1),(1,0,0),(0,1,0),
// (0,0,1); its rows sum to zero (property 2).
var chi = [4][3]float64{
	{-1, -1, -1},
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
}

// Tensors holds, per tetrahedron, the (unsigned) volume and shape tensor.
type Tensors struct {
	V   []float64     // N_T, volume (always > 0 for non-degenerate tets)
	Phi [][4][3]float64 // N_T x 4 x 3
}

// Compute builds V and Phi for every tetrahedron in m. A tetrahedron whose
// four corners are coplanar (V_t == 0) is reported as a fatal DegenerateMesh
// error naming its index (spec.md §4.9, scenario S5).
func Compute(m *mesh.Mesh) (*Tensors, error) {
	o := &Tensors{
		V:   make([]float64, m.NT),
		Phi: make([][4][3]float64, m.NT),
	}

	B := mat.NewDense(3, 3, nil)
	var Binv mat.Dense

	for t, tet := range m.T {
		c0, c1, c2, c3 := tet[0], tet[1], tet[2], tet[3]
		for i := 0; i < 3; i++ {
			B.Set(i, 0, m.R[c1][i]-m.R[c0][i])
			B.Set(i, 1, m.R[c2][i]-m.R[c0][i])
			B.Set(i, 2, m.R[c3][i]-m.R[c0][i])
		}

		det := mat.Det(B)
		vol := det
		if vol < 0 {
			vol = -vol
		}
		vol /= 6.0
		o.V[t] = vol

		if vol == 0 {
			return nil, ferr.New(ferr.DegenerateMesh, t, "tetrahedron %d is degenerate (coplanar corners, V=0)", t)
		}

		if err := Binv.Inverse(B); err != nil {
			return nil, ferr.New(ferr.DegenerateMesh, t, "tetrahedron %d has a singular shape matrix: %v", t, err)
		}

		// Phi_t = chi . B^-1
		for m4 := 0; m4 < 4; m4++ {
			for j := 0; j < 3; j++ {
				var sum float64
				for k := 0; k < 3; k++ {
					sum += chi[m4][k] * Binv.At(k, j)
				}
				o.Phi[t][m4][j] = sum
			}
		}
	}
	return o, nil
}
