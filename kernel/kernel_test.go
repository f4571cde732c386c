// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package kernel

import (
	"math"
	"testing"

	"github.com/cpmech/fibermesh/beam"
	"github.com/cpmech/fibermesh/material"
	"github.com/cpmech/fibermesh/mesh"
	"github.com/cpmech/fibermesh/shape"
	"github.com/cpmech/gosl/chk"
)

func unitTetSetup(tst *testing.T) (*mesh.Mesh, *shape.Tensors, *beam.Set, material.Model) {
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
	if err := m.ComputeConnections(); err != nil {
		tst.Fatalf("ComputeConnections: %v", err)
	}

	sh, err := shape.Compute(m)
	if err != nil {
		tst.Fatalf("shape.Compute: %v", err)
	}

	bms, err := beam.Compute(64)
	if err != nil {
		tst.Fatalf("beam.Compute: %v", err)
	}

	mdl := material.NewTable(material.NewSemiAffineFiber(1645, 0.0008, 0.0075, 0.033), 0, 0)
	return m, sh, bms, mdl
}

func Test_kernel01(tst *testing.T) {

	chk.PrintTitle("kernel01: zero displacement gives zero energy and zero force")

	m, sh, bms, mdl := unitTetSetup(tst)

	r, err := Compute(m, sh, bms, mdl)
	if err != nil {
		tst.Errorf("Compute failed: %v", err)
		return
	}
	chk.Scalar(tst, "E_0", 1e-12, r.E[0], 0)
	chk.Scalar(tst, "E_glo", 1e-12, r.Eglo, 0)
	for mm := 0; mm < 4; mm++ {
		chk.Vector(tst, "f", 1e-10, r.F[0][mm][:], []float64{0, 0, 0})
	}
}

func Test_kernel02(tst *testing.T) {

	chk.PrintTitle("kernel02: small stretch increases energy monotonically")

	m, sh, bms, mdl := unitTetSetup(tst)

	var prevE float64
	for i, s := range []float64{0.001, 0.005, 0.01, 0.02} {
		m.U[1][0] = s // stretch corner 1 outward
		r, err := Compute(m, sh, bms, mdl)
		if err != nil {
			tst.Errorf("Compute failed at s=%v: %v", s, err)
			return
		}
		if i > 0 && r.E[0] < prevE {
			tst.Errorf("energy not monotone: E(%v)=%v < E(prev)=%v", s, r.E[0], prevE)
		}
		prevE = r.E[0]
		if math.IsNaN(r.E[0]) || math.IsInf(r.E[0], 0) {
			tst.Errorf("non-finite energy at s=%v", s)
		}
	}
}
