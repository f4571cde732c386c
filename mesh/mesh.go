// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package mesh owns the nodal coordinates, tetrahedral connectivity, the
// free/fixed mask and prescribed boundary data, and precomputes the
// directed connection table and assembly index tables used by the
// assemble and kernel packages (spec.md §4.1).
package mesh

import (
	"math"

	"github.com/cpmech/fibermesh/ferr"
)

// Conn is a directed connection (i,j) with Var[i]==true: some tetrahedron
// contains both i and j.
type Conn struct {
	I, J int
}

// Mesh holds the topology and boundary data of a tetrahedral mesh. Every
// derived array (Connections, the force/stiffness index tables) is built in
// a named phase by ComputeConnections; there is no lazy initialization.
type Mesh struct {
	// input
	R    [][]float64 // N_c x 3, nodal coordinates
	T    [][4]int    // N_T x 4, 0-based corner indices
	Var  []bool      // N_c, true when node is free
	U    [][]float64 // N_c x 3, displacements (mutated by the outer driver)
	Fext [][]float64 // N_c x 3, external force, defined on free rows

	// regularize mode
	UTarget [][]float64 // N_c x 3, prescribed target displacement

	// derived
	NC, NT int

	Connections []Conn    // directed (i,j) pairs, Var[i]==true
	connIndex   map[Conn]int // (i,j) -> index into Connections

	// ForceDest[t][m] = T[t][m], kept explicit so the kernel and assembler
	// share one name for "destination row of a per-tet corner quantity".
	ForceDest [][4]int

	// StiffDest[t][m][r] = index into Connections for the block contributed
	// by corner pair (m,r) of tetrahedron t, or -1 when Var[T[t][m]] is
	// false (that row is never assembled, spec.md §4.6).
	StiffDest [][4][4]int
}

// New returns an empty Mesh.
func New() *Mesh {
	return &Mesh{}
}

// SetNodes stores coordinates; initializes U, Fext to zero and Var to
// all-true, matching spec.md §4.1's set_nodes.
func (o *Mesh) SetNodes(R [][]float64) error {
	for i, row := range R {
		if len(row) != 3 {
			return ferr.New(ferr.InvalidInput, i, "node %d must have 3 coordinates, got %d", i, len(row))
		}
	}
	o.R = R
	o.NC = len(R)
	o.U = zeros(o.NC)
	o.Fext = zeros(o.NC)
	o.Var = make([]bool, o.NC)
	for i := range o.Var {
		o.Var[i] = true
	}
	return nil
}

// SetTetrahedra stores the element table; validates every corner index
// references a valid node (spec.md Invariants).
func (o *Mesh) SetTetrahedra(T [][4]int) error {
	for t, tet := range T {
		for m, c := range tet {
			if c < 0 || c >= o.NC {
				return ferr.New(ferr.InvalidInput, t, "tetrahedron %d corner %d references invalid node %d (N_c=%d)", t, m, c, o.NC)
			}
		}
	}
	o.T = T
	o.NT = len(T)
	return nil
}

// SetBoundaryCondition sets, per node, whether it is fixed (a finite entry
// in Uprescribed) or free (a NaN entry, with the corresponding Fext entry
// taken as the applied external force), per spec.md §4.1/§6.
func (o *Mesh) SetBoundaryCondition(Uprescribed, Fext [][]float64) error {
	if len(Uprescribed) != o.NC || len(Fext) != o.NC {
		return ferr.New(ferr.InvalidInput, -1, "boundary arrays must have N_c=%d rows, got U=%d F=%d", o.NC, len(Uprescribed), len(Fext))
	}
	for i := 0; i < o.NC; i++ {
		fixed := !math.IsNaN(Uprescribed[i][0])
		o.Var[i] = !fixed
		if fixed {
			copy(o.U[i], Uprescribed[i])
		} else {
			copy(o.Fext[i], Fext[i])
		}
	}
	return nil
}

// SetTargetDisplacements stores U_target for regularize mode (spec.md §4.8).
func (o *Mesh) SetTargetDisplacements(Utarget [][]float64) error {
	if len(Utarget) != o.NC {
		return ferr.New(ferr.InvalidInput, -1, "target displacement array must have N_c=%d rows, got %d", o.NC, len(Utarget))
	}
	o.UTarget = Utarget
	return nil
}

// ComputeConnections scans every (i,j) corner pair of every tetrahedron,
// keeps only those with Var[i]==true, deduplicates, and builds the
// ForceDest/StiffDest index tables used by the assembler (spec.md §4.1,
// §4.5). Idempotent: calling it twice yields identical tables (property 9).
func (o *Mesh) ComputeConnections() error {
	o.connIndex = make(map[Conn]int, o.NT*8)
	o.Connections = o.Connections[:0]

	for _, tet := range o.T {
		for m := 0; m < 4; m++ {
			c1 := tet[m]
			if !o.Var[c1] {
				continue
			}
			for r := 0; r < 4; r++ {
				c2 := tet[r]
				key := Conn{c1, c2}
				if _, ok := o.connIndex[key]; !ok {
					o.connIndex[key] = len(o.Connections)
					o.Connections = append(o.Connections, key)
				}
			}
		}
	}

	o.ForceDest = make([][4]int, o.NT)
	o.StiffDest = make([][4][4]int, o.NT)
	for t, tet := range o.T {
		o.ForceDest[t] = tet
		for m := 0; m < 4; m++ {
			c1 := tet[m]
			for r := 0; r < 4; r++ {
				if !o.Var[c1] {
					o.StiffDest[t][m][r] = -1
					continue
				}
				o.StiffDest[t][m][r] = o.connIndex[Conn{c1, tet[r]}]
			}
		}
	}
	return nil
}

// ConnIndex returns the index of connection (i,j), and false if absent.
func (o *Mesh) ConnIndex(i, j int) (int, bool) {
	k, ok := o.connIndex[Conn{i, j}]
	return k, ok
}

func zeros(n int) [][]float64 {
	a := make([][]float64, n)
	buf := make([]float64, n*3)
	for i := range a {
		a[i] = buf[i*3 : i*3+3 : i*3+3]
	}
	return a
}
