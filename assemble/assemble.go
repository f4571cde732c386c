// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package assemble scatters per-tetrahedron kernel outputs into the global
// residual and the per-connection stiffness blocks (spec.md §4.5). The
// scatter uses per-worker private accumulators reduced once at the end
// (spec.md §5 strategy (a)), so results are stable within this strategy but
// not required to match bit-for-bit against a different reduction order.
package assemble

import (
	"runtime"
	"sync"

	"github.com/cpmech/fibermesh/kernel"
	"github.com/cpmech/fibermesh/mesh"
)

// Global holds the assembled residual and per-connection stiffness blocks.
type Global struct {
	Fglo     [][3]float64 // N_c, global residual force
	KgloConn [][3][3]float64 // len(connections), per-connection stiffness block
}

// Assemble scatters r into a fresh Global sized to m.
func Assemble(m *mesh.Mesh, r *kernel.Result) *Global {
	g := &Global{
		Fglo:     make([][3]float64, m.NC),
		KgloConn: make([][3][3]float64, len(m.Connections)),
	}

	workers := runtime.GOMAXPROCS(0)
	nt := m.NT
	if workers > nt {
		workers = nt
	}
	if workers < 1 {
		workers = 1
	}

	type partial struct {
		f [][3]float64
		k [][3][3]float64
	}
	partials := make([]partial, workers)

	var wg sync.WaitGroup
	chunk := (nt + workers - 1) / workers
	for w := 0; w < workers; w++ {
		lo := w * chunk
		hi := lo + chunk
		if hi > nt {
			hi = nt
		}
		if lo >= hi {
			continue
		}
		partials[w] = partial{
			f: make([][3]float64, m.NC),
			k: make([][3][3]float64, len(m.Connections)),
		}
		wg.Add(1)
		go func(w, lo, hi int) {
			defer wg.Done()
			p := &partials[w]
			for t := lo; t < hi; t++ {
				dest := m.ForceDest[t]
				sdest := m.StiffDest[t]
				for mm := 0; mm < 4; mm++ {
					row := dest[mm]
					fc := r.F[t][mm]
					p.f[row][0] += fc[0]
					p.f[row][1] += fc[1]
					p.f[row][2] += fc[2]
					for rr := 0; rr < 4; rr++ {
						k := sdest[mm][rr]
						if k < 0 {
							continue
						}
						blk := r.K[t][mm][rr]
						for i := 0; i < 3; i++ {
							for j := 0; j < 3; j++ {
								p.k[k][i][j] += blk[i][j]
							}
						}
					}
				}
			}
		}(w, lo, hi)
	}
	wg.Wait()

	for w := range partials {
		p := &partials[w]
		if p.f == nil {
			continue
		}
		for i := 0; i < m.NC; i++ {
			g.Fglo[i][0] += p.f[i][0]
			g.Fglo[i][1] += p.f[i][1]
			g.Fglo[i][2] += p.f[i][2]
		}
		for k := range p.k {
			for i := 0; i < 3; i++ {
				for j := 0; j < 3; j++ {
					g.KgloConn[k][i][j] += p.k[k][i][j]
				}
			}
		}
	}
	return g
}
