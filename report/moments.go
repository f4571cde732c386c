// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package report computes the aggregate, out-of-core quantities named in
// spec.md §1/§2 item 10 (net force, center of contractility, principal
// force moments, polarity, stiffening ratio) and serializes solved state
// to the persisted output formats of spec.md §6.
//
// The original prototype's computeForceMoments (original_source/cpp/
// FiniteBodyForces.py) compares a vector to a scalar ("abs(self.R[c]) <
// rmax"), appends to undefined locals, and searches a 150-beam sample of
// directions for the extremal force moment instead of diagonalizing the
// moment tensor directly. spec.md's Design Notes call this out as a typo
// and direct re-deriving the documented meaning rather than transliterating
// it; ComputeMoments below diagonalizes the symmetric force-moment tensor
// with gonum/mat.EigenSym instead of a directional search.
package report

import (
	"math"

	"github.com/cpmech/fibermesh/mesh"
	"gonum.org/v1/gonum/mat"
)

// Moments is the aggregate force-moment report over nodes within Rmax of
// the coordinate origin.
type Moments struct {
	NetForce      [3]float64
	NetForceAbs   float64
	Center        [3]float64 // center of contractility
	Contractility float64
	Max, Mid, Min PrincipalMoment
	Polarity      float64
}

// PrincipalMoment is one eigenpair of the symmetrized force-moment tensor.
type PrincipalMoment struct {
	Value float64
	Axis  [3]float64
}

// ComputeMoments aggregates the residual forces fglo over the nodes of m
// within rmax of the origin.
func ComputeMoments(m *mesh.Mesh, fglo [][3]float64, rmax float64) *Moments {
	var selected []int
	for c := 0; c < m.NC; c++ {
		r := m.R[c]
		n := math.Sqrt(r[0]*r[0] + r[1]*r[1] + r[2]*r[2])
		if n < rmax {
			selected = append(selected, c)
		}
	}

	out := &Moments{}
	for _, c := range selected {
		out.NetForce[0] += fglo[c][0]
		out.NetForce[1] += fglo[c][1]
		out.NetForce[2] += fglo[c][2]
	}
	out.NetForceAbs = math.Sqrt(out.NetForce[0]*out.NetForce[0] + out.NetForce[1]*out.NetForce[1] + out.NetForce[2]*out.NetForce[2])

	// center of contractility: force-magnitude-weighted centroid.
	var wsum float64
	for _, c := range selected {
		f := fglo[c]
		w := math.Sqrt(f[0]*f[0] + f[1]*f[1] + f[2]*f[2])
		r := toArr(m.R[c])
		out.Center[0] += w * r[0]
		out.Center[1] += w * r[1]
		out.Center[2] += w * r[2]
		wsum += w
	}
	if wsum > 0 {
		out.Center[0] /= wsum
		out.Center[1] /= wsum
		out.Center[2] /= wsum
	}

	// contractility: sum of the radial component of force relative to the
	// center, i.e. how strongly nodes pull inward (positive) or push
	// outward (negative).
	for _, c := range selected {
		rr := sub(toArr(m.R[c]), out.Center)
		n := norm(rr)
		if n == 0 {
			continue
		}
		out.Contractility += dot(rr, fglo[c]) / n
	}

	// symmetric force-moment tensor M = sum (R_c - center) (x) f_glo[c]
	M := mat.NewSymDense(3, nil)
	for _, c := range selected {
		rr := sub(toArr(m.R[c]), out.Center)
		f := fglo[c]
		for i := 0; i < 3; i++ {
			for j := i; j < 3; j++ {
				M.SetSym(i, j, M.At(i, j)+0.5*(rr[i]*f[j]+rr[j]*f[i]))
			}
		}
	}

	var eig mat.EigenSym
	ok := eig.Factorize(M, true)
	if !ok {
		return out
	}
	values := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	type pair struct {
		val float64
		vec [3]float64
	}
	pairs := make([]pair, 3)
	for i := 0; i < 3; i++ {
		pairs[i] = pair{val: values[i], vec: [3]float64{vecs.At(0, i), vecs.At(1, i), vecs.At(2, i)}}
	}
	// sort descending by value
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if pairs[j].val > pairs[i].val {
				pairs[i], pairs[j] = pairs[j], pairs[i]
			}
		}
	}
	out.Max = PrincipalMoment{Value: pairs[0].val, Axis: pairs[0].vec}
	out.Mid = PrincipalMoment{Value: pairs[1].val, Axis: pairs[1].vec}
	out.Min = PrincipalMoment{Value: pairs[2].val, Axis: pairs[2].vec}

	if out.Contractility != 0 {
		out.Polarity = out.Max.Value / out.Contractility
	}
	return out
}

func toArr(v []float64) [3]float64 {
	return [3]float64{v[0], v[1], v[2]}
}

func sub(a, b [3]float64) [3]float64 {
	return [3]float64{a[0] - b[0], a[1] - b[1], a[2] - b[2]}
}

func norm(a [3]float64) float64 {
	return math.Sqrt(a[0]*a[0] + a[1]*a[1] + a[2]*a[2])
}

func dot(a [3]float64, b [3]float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}
