// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package assemble

import (
	"testing"

	"github.com/cpmech/fibermesh/beam"
	"github.com/cpmech/fibermesh/kernel"
	"github.com/cpmech/fibermesh/material"
	"github.com/cpmech/fibermesh/mesh"
	"github.com/cpmech/fibermesh/shape"
	"github.com/cpmech/gosl/chk"
)

func twoTetMesh(tst *testing.T) *mesh.Mesh {
	m := mesh.New()
	m.SetNodes([][]float64{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{0, 0, 1},
		{1, 1, 1},
	})
	m.SetTetrahedra([][4]int{
		{0, 1, 2, 3},
		{1, 2, 3, 4},
	})
	m.SetBoundaryCondition(
		[][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
		[][]float64{{0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}, {0, 0, 0}},
	)
	if err := m.ComputeConnections(); err != nil {
		tst.Fatalf("ComputeConnections: %v", err)
	}
	return m
}

func Test_assemble01(tst *testing.T) {

	chk.PrintTitle("assemble01: shared-corner forces add up")

	m := twoTetMesh(tst)
	sh, err := shape.Compute(m)
	if err != nil {
		tst.Fatalf("shape.Compute: %v", err)
	}
	bms, err := beam.Compute(64)
	if err != nil {
		tst.Fatalf("beam.Compute: %v", err)
	}
	mdl := material.NewTable(material.NewSemiAffineFiber(1645, 0.0008, 0.0075, 0.033), 0, 0)

	m.U[4][0] = 0.01
	kr, err := kernel.Compute(m, sh, bms, mdl)
	if err != nil {
		tst.Fatalf("kernel.Compute: %v", err)
	}
	g := Assemble(m, kr)

	// node 1,2,3 are each shared by both tetrahedra: the assembled force
	// must equal the sum of each tet's local contribution at that corner.
	var want [5][3]float64
	for t, tet := range m.T {
		for mm, c := range tet {
			for i := 0; i < 3; i++ {
				want[c][i] += kr.F[t][mm][i]
			}
		}
	}
	for c := 0; c < m.NC; c++ {
		chk.Vector(tst, "Fglo", 1e-10, g.Fglo[c][:], want[c][:])
	}
}
