// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package report

import (
	"github.com/cpmech/fibermesh/fsio"
	"github.com/cpmech/fibermesh/mesh"
)

// WriteRAndU persists nodal coordinates and displacements (spec.md §6).
func WriteRAndU(m *mesh.Mesh, rpath, upath string) error {
	r := toRows(m.R)
	u := toRows(m.U)
	if err := fsio.WriteVectors(rpath, r); err != nil {
		return err
	}
	return fsio.WriteVectors(upath, u)
}

// WriteF persists the nodal residual force (spec.md §6).
func WriteF(fglo [][3]float64, path string) error {
	return fsio.WriteVectors(path, fglo)
}

// WriteEandV persists per-tet centroids and (E, V) pairs (spec.md §6).
func WriteEandV(m *mesh.Mesh, E, V []float64, centroidPath, evPath string) error {
	centroids := make([][3]float64, m.NT)
	for t, tet := range m.T {
		var c [3]float64
		for _, n := range tet {
			r := m.R[n]
			c[0] += r[0]
			c[1] += r[1]
			c[2] += r[2]
		}
		c[0] /= 4
		c[1] /= 4
		c[2] /= 4
		centroids[t] = c
	}
	if err := fsio.WriteVectors(centroidPath, centroids); err != nil {
		return err
	}
	return fsio.WriteScalarPairs(evPath, E, V)
}

func toRows(v [][]float64) [][3]float64 {
	out := make([][3]float64, len(v))
	for i, row := range v {
		out[i] = [3]float64{row[0], row[1], row[2]}
	}
	return out
}
