// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package linsolve

import (
	"github.com/cpmech/fibermesh/ferr"
)

// DefaultTol is the default relative residual tolerance (spec.md §4.7).
const DefaultTol = 1e-5

// Solve solves op.Apply(du) = b restricted to the rows where varr is true,
// to a relative residual tolerance, using conjugate gradient (spec.md
// §4.7). Fixed rows of b are assumed zero and remain zero in du throughout.
// When <b,b>==0 it returns du=0 immediately (degenerate case).
//
// Returns (du, warning); warning is non-nil when the iteration cap was
// reached before tol was met (advisory, per spec.md §4.9 — the best
// iterate is still returned).
func Solve(op Operator, b [][3]float64, varr []bool, tol float64) ([][3]float64, *ferr.Warning) {
	if tol <= 0 {
		tol = DefaultTol
	}
	n := op.Size()
	maxIter := 3 * n

	du := make([][3]float64, n)

	normb := dot(b, b)
	if normb == 0 {
		return du, nil
	}

	r := make([][3]float64, n)
	copy(r, b) // du starts at 0, so r = b - K.du = b

	p := make([][3]float64, n)
	copy(p, r)

	rho := dot(r, r)

	for it := 1; it <= maxIter; it++ {
		q := op.Apply(p)
		pq := dot(p, q)
		if pq == 0 {
			break
		}
		alpha := rho / pq

		for i := range du {
			du[i][0] += alpha * p[i][0]
			du[i][1] += alpha * p[i][1]
			du[i][2] += alpha * p[i][2]
			r[i][0] -= alpha * q[i][0]
			r[i][1] -= alpha * q[i][1]
			r[i][2] -= alpha * q[i][2]
		}

		rhoNew := dot(r, r)
		if rhoNew < tol*tol*normb {
			return mask(du, varr), nil
		}

		beta := rhoNew / rho
		for i := range p {
			p[i][0] = r[i][0] + beta*p[i][0]
			p[i][1] = r[i][1] + beta*p[i][1]
			p[i][2] = r[i][2] + beta*p[i][2]
		}
		rho = rhoNew
	}

	return mask(du, varr), &ferr.Warning{
		Kind:    "cg",
		Message: "conjugate gradient did not reach tolerance within the iteration cap",
		Iters:   maxIter,
	}
}

func dot(a, b [][3]float64) float64 {
	var sum float64
	for i := range a {
		sum += a[i][0]*b[i][0] + a[i][1]*b[i][1] + a[i][2]*b[i][2]
	}
	return sum
}

// mask zeroes fixed rows, guarding against any operator that (incorrectly)
// wrote to a fixed row.
func mask(v [][3]float64, varr []bool) [][3]float64 {
	for i, free := range varr {
		if !free {
			v[i] = [3]float64{}
		}
	}
	return v
}
