// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package linsolve implements the matrix-free global stiffness operator
// (spec.md §4.6) and the conjugate-gradient inner solve (spec.md §4.7).
// Matrix-free from the caller's perspective: K_glo is never materialized
// as a dense N_c x N_c block, only as the per-connection blocks computed
// by package assemble.
package linsolve

import (
	"runtime"
	"sync"

	"github.com/cpmech/fibermesh/mesh"
)

// Operator computes y = K.x for some linear operator K restricted to free
// rows (rows with Var[i]==false are never written).
type Operator interface {
	Apply(x [][3]float64) [][3]float64
	Size() int
}

// sparseOperator applies y[i] += KgloConn[k].x[j] for each connection
// k=(i,j), parallelized over connections with private per-worker
// accumulators reduced once, mirroring package assemble's scatter
// discipline (spec.md §5).
type sparseOperator struct {
	m        *mesh.Mesh
	kgloConn [][3][3]float64
}

// NewK wraps the assembled per-connection stiffness blocks as a matrix-free
// operator (spec.md §4.6).
func NewK(m *mesh.Mesh, kgloConn [][3][3]float64) Operator {
	return &sparseOperator{m: m, kgloConn: kgloConn}
}

func (o *sparseOperator) Size() int { return o.m.NC }

func (o *sparseOperator) Apply(x [][3]float64) [][3]float64 {
	nc := o.m.NC
	conns := o.m.Connections
	nconn := len(conns)

	workers := runtime.GOMAXPROCS(0)
	if workers > nconn {
		workers = nconn
	}
	if workers < 1 {
		workers = 1
	}

	partials := make([][][3]float64, workers)
	var wg sync.WaitGroup
	chunk := (nconn + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > nconn {
			hi = nconn
		}
		if lo >= hi {
			continue
		}
		partials[w] = make([][3]float64, nc)
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			p := partials[w]
			for k := lo; k < hi; k++ {
				c := conns[k]
				blk := o.kgloConn[k]
				xj := x[c.J]
				p[c.I][0] += blk[0][0]*xj[0] + blk[0][1]*xj[1] + blk[0][2]*xj[2]
				p[c.I][1] += blk[1][0]*xj[0] + blk[1][1]*xj[1] + blk[1][2]*xj[2]
				p[c.I][2] += blk[2][0]*xj[0] + blk[2][1]*xj[1] + blk[2][2]*xj[2]
			}
		}(w, lo, hi)
	}
	wg.Wait()

	y := make([][3]float64, nc)
	for w := range partials {
		if partials[w] == nil {
			continue
		}
		for i := 0; i < nc; i++ {
			y[i][0] += partials[w][i][0]
			y[i][1] += partials[w][i][1]
			y[i][2] += partials[w][i][2]
		}
	}
	return y
}

// regularized adds a Tikhonov term alpha*x to an inner operator, realizing
// the (K_glo + alpha*I) system of the regularize outer mode (spec.md §4.8).
type regularized struct {
	inner Operator
	alpha float64
}

// NewRegularized wraps inner with a Tikhonov diagonal term.
func NewRegularized(inner Operator, alpha float64) Operator {
	return &regularized{inner: inner, alpha: alpha}
}

func (o *regularized) Size() int { return o.inner.Size() }

func (o *regularized) Apply(x [][3]float64) [][3]float64 {
	y := o.inner.Apply(x)
	for i := range y {
		y[i][0] += o.alpha * x[i][0]
		y[i][1] += o.alpha * x[i][1]
		y[i][2] += o.alpha * x[i][2]
	}
	return y
}
