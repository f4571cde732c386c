// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mesh

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func singleTet() *Mesh {
	m := New()
	m.SetNodes([][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
	})
	m.SetTetrahedra([][4]int{{0, 1, 2, 3}})
	nan := math.NaN()
	m.SetBoundaryCondition(
		[][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {nan, nan, nan}},
		[][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {1, 2, 3}},
	)
	return m
}

func Test_mesh01(tst *testing.T) {

	chk.PrintTitle("mesh01: boundary conditions and free/fixed mask")

	m := singleTet()
	if m.Var[0] || m.Var[1] || m.Var[2] {
		tst.Errorf("nodes 0,1,2 must be fixed")
	}
	if !m.Var[3] {
		tst.Errorf("node 3 must be free")
	}
	chk.Vector(tst, "Fext[3]", 1e-15, m.Fext[3], []float64{1, 2, 3})
}

func Test_mesh02(tst *testing.T) {

	chk.PrintTitle("mesh02: invalid tetrahedron corner index")

	m := New()
	m.SetNodes([][]float64{{0, 0, 0}, {1, 0, 0}})
	err := m.SetTetrahedra([][4]int{{0, 1, 2, 3}})
	if err == nil {
		tst.Errorf("expected InvalidInput error for out-of-range corner")
	}
}

func Test_mesh03(tst *testing.T) {

	chk.PrintTitle("mesh03: connection idempotence (property 9)")

	m := singleTet()
	if err := m.ComputeConnections(); err != nil {
		tst.Errorf("ComputeConnections failed: %v", err)
	}
	first := append([]Conn(nil), m.Connections...)

	if err := m.ComputeConnections(); err != nil {
		tst.Errorf("ComputeConnections failed: %v", err)
	}
	second := m.Connections

	if len(first) != len(second) {
		tst.Errorf("connection count changed: %d != %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			tst.Errorf("connection %d changed across calls: %v != %v", i, first[i], second[i])
		}
	}

	// every row with Var[i]==false must never appear as a destination:
	// StiffDest marks it -1.
	for t := 0; t < m.NT; t++ {
		for mm := 0; mm < 4; mm++ {
			c1 := m.T[t][mm]
			if m.Var[c1] {
				continue
			}
			for r := 0; r < 4; r++ {
				if m.StiffDest[t][mm][r] != -1 {
					tst.Errorf("fixed corner %d must have StiffDest==-1, got %d", c1, m.StiffDest[t][mm][r])
				}
			}
		}
	}
}
