// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package beam holds the quadrature set of unit direction vectors used to
// integrate the directional strain-energy density over the solid angle
// (spec.md §2 item 4, §6). This package is the local stand-in for the
// external "beams" collaborator named in spec.md's scope.
package beam

import (
	"math"

	"github.com/cpmech/fibermesh/ferr"
)

// Set is an immutable N_b x 3 array of unit vectors.
type Set struct {
	S [][3]float64
}

// tol is the slack allowed when checking ||s_b|| == 1.
const tol = 1e-9

// FromVectors validates and wraps a caller-supplied beam set (spec.md §6
// set_beams).
func FromVectors(s [][3]float64) (*Set, error) {
	for b, v := range s {
		n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		if math.Abs(n-1) > tol {
			return nil, ferr.New(ferr.InvalidInput, b, "beam %d is not a unit vector (|s|=%v)", b, n)
		}
	}
	return &Set{S: s}, nil
}

// Compute deterministically generates N direction vectors evenly spread
// over the sphere using a golden-angle spiral (Saff & Kuijlaars), the same
// default generator the original saenopy prototype used for
// "compute_beams(N)" (spec.md §6). Deterministic and reentrant: the same N
// always yields the same set.
func Compute(n int) (*Set, error) {
	if n <= 0 {
		return nil, ferr.New(ferr.InvalidInput, -1, "beam count must be positive, got %d", n)
	}
	s := make([][3]float64, n)
	golden := math.Pi * (3 - math.Sqrt(5))
	for b := 0; b < n; b++ {
		z := 1 - 2*(float64(b)+0.5)/float64(n)
		r := math.Sqrt(math.Max(0, 1-z*z))
		theta := golden * float64(b)
		s[b] = [3]float64{r * math.Cos(theta), r * math.Sin(theta), z}
	}
	return &Set{S: s}, nil
}

// N returns the beam count N_b.
func (o *Set) N() int {
	return len(o.S)
}
