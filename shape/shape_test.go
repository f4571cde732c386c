// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shape

import (
	"testing"

	"github.com/cpmech/fibermesh/mesh"
	"github.com/cpmech/gosl/chk"
)

func unitTetMesh() *mesh.Mesh {
	m := mesh.New()
	m.SetNodes([][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	m.SetTetrahedra([][4]int{{0, 1, 2, 3}})
	m.SetBoundaryCondition(
		[][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		[][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	)
	return m
}

func Test_shape01(tst *testing.T) {

	chk.PrintTitle("shape01: unit tetrahedron volume (property 1)")

	m := unitTetMesh()
	sh, err := Compute(m)
	if err != nil {
		tst.Errorf("Compute failed: %v", err)
		return
	}
	chk.Scalar(tst, "V", 1e-14, sh.V[0], 1.0/6.0)
}

func Test_shape02(tst *testing.T) {

	chk.PrintTitle("shape02: shape-tensor row sum is zero (property 2)")

	m := unitTetMesh()
	sh, err := Compute(m)
	if err != nil {
		tst.Errorf("Compute failed: %v", err)
		return
	}
	for j := 0; j < 3; j++ {
		var sum float64
		for mm := 0; mm < 4; mm++ {
			sum += sh.Phi[0][mm][j]
		}
		chk.Scalar(tst, "row sum", 1e-13, sum, 0)
	}
}

func Test_shape03(tst *testing.T) {

	chk.PrintTitle("shape03: degenerate (coplanar) tetrahedron is fatal")

	m := mesh.New()
	m.SetNodes([][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{2, 0, 0},
		{0, 0, 1},
	})
	m.SetTetrahedra([][4]int{{0, 1, 2, 3}})
	m.SetBoundaryCondition(
		[][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		[][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	)
	_, err := Compute(m)
	if err == nil {
		tst.Errorf("expected DegenerateMesh error for coplanar corners")
	}
}
