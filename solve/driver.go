// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package solve implements the outer Newton-type driver of spec.md §4.8:
// relax (prescribed external force, unknown displacement) and regularize
// (prescribed target displacement, unknown external force), both stepping
// through repeated kernel-evaluate / assemble / CG-solve rounds until a
// sliding-window energy-stability test is met or an iteration cap is hit.
package solve

import (
	"math"

	"github.com/cpmech/fibermesh/assemble"
	"github.com/cpmech/fibermesh/beam"
	"github.com/cpmech/fibermesh/ferr"
	"github.com/cpmech/fibermesh/kernel"
	"github.com/cpmech/fibermesh/linsolve"
	"github.com/cpmech/fibermesh/material"
	"github.com/cpmech/fibermesh/mesh"
	"github.com/cpmech/fibermesh/shape"

	"github.com/cpmech/gosl/io"
)

// windowSize is the number of trailing E_glo samples used by the
// sliding-window stability test (spec.md §4.8: "the last five E_glo").
const windowSize = 5

// minOuterIters is the outer-iteration count that must be reached before
// the stability test is evaluated (spec.md §4.8: "after >= 7 outer
// iterations").
const minOuterIters = 7

// Options holds the outer-loop parameters, defaulted the way
// fem.DynCoefs.Init defaults and validates dynamics coefficients in the
// teacher codebase.
type Options struct {
	Stepper     float64 // relaxation step size, default 0.066
	IMax        int     // hard iteration cap, default 300
	RelConvCrit float64 // energy-stability threshold, default 0.01
	CGTol       float64 // CG relative residual tolerance, default 1e-5
	Alpha       float64 // Tikhonov strength, regularize mode only
	Verbose     bool
}

// NewRelaxOptions returns the relax-mode defaults of spec.md §4.8.
func NewRelaxOptions() Options {
	return Options{Stepper: 0.066, IMax: 300, RelConvCrit: 0.01, CGTol: linsolve.DefaultTol}
}

// NewRegularizeOptions returns the regularize-mode defaults of spec.md
// §4.8, with the Tikhonov strength alpha supplied by the caller.
func NewRegularizeOptions(alpha float64) Options {
	o := NewRelaxOptions()
	o.Stepper = 0.1
	o.Alpha = alpha
	return o
}

// Result is the outcome of one outer-loop run.
type Result struct {
	Iterations int
	Eglo       float64
	Fglo       [][3]float64
	Converged  bool
	CGWarning  *ferr.Warning
	Warning    *ferr.Warning // outer non-convergence, spec.md §4.9
}

// Engine bundles the static per-solve inputs (mesh, precomputed shape
// tensors, beams, material model) used by both outer modes.
type Engine struct {
	Mesh  *mesh.Mesh
	Shape *shape.Tensors
	Beams *beam.Set
	Model material.Model
}

func (e *Engine) evaluate() (*kernel.Result, *assemble.Global, error) {
	kr, err := kernel.Compute(e.Mesh, e.Shape, e.Beams, e.Model)
	if err != nil {
		return nil, nil, err
	}
	g := assemble.Assemble(e.Mesh, kr)
	for i, f := range g.Fglo {
		for _, v := range f {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, nil, ferr.New(ferr.NumericFailure, i, "non-finite residual force at node %d", i)
			}
		}
	}
	return kr, g, nil
}

// Relax runs spec.md §4.8's relax mode: steps U <- U + stepper*du toward
// the prescribed external forces and repeats until the energy stability
// test fires or opts.IMax is reached.
func (e *Engine) Relax(opts Options) (*Result, error) {
	m := e.Mesh
	kr, g, err := e.evaluate()
	if err != nil {
		return nil, err
	}

	history := make([]float64, 0, opts.IMax+1)
	history = append(history, kr.Eglo)

	var lastWarn *ferr.Warning
	res := &Result{}

	for i := 0; i < opts.IMax; i++ {
		b := make([][3]float64, m.NC)
		for n := 0; n < m.NC; n++ {
			if !m.Var[n] {
				continue
			}
			b[n][0] = m.Fext[n][0] - g.Fglo[n][0]
			b[n][1] = m.Fext[n][1] - g.Fglo[n][1]
			b[n][2] = m.Fext[n][2] - g.Fglo[n][2]
		}

		op := linsolve.NewK(m, g.KgloConn)
		du, warn := linsolve.Solve(op, b, m.Var, opts.CGTol)
		lastWarn = warn

		for n := 0; n < m.NC; n++ {
			if !m.Var[n] {
				continue
			}
			m.U[n][0] += opts.Stepper * du[n][0]
			m.U[n][1] += opts.Stepper * du[n][1]
			m.U[n][2] += opts.Stepper * du[n][2]
		}

		kr, g, err = e.evaluate()
		if err != nil {
			return nil, err
		}
		history = append(history, kr.Eglo)
		res.Iterations = i + 1

		if opts.Verbose {
			io.Pf("relax it=%d E_glo=%v\n", i, kr.Eglo)
		}

		if res.Iterations >= minOuterIters && stable(history, opts.RelConvCrit) {
			res.Converged = true
			break
		}
	}

	res.Eglo = kr.Eglo
	res.Fglo = g.Fglo
	res.CGWarning = lastWarn
	if !res.Converged {
		res.Warning = &ferr.Warning{Kind: "outer", Message: "relax reached i_max before energy stability", Iters: res.Iterations}
	}
	return res, nil
}

// Regularize runs spec.md §4.8's regularize mode: solves
// (K_glo + alpha*I).du = K_glo.(U_target - U) on free rows, steps U by
// stepper*du, and applies the same evaluate/record/test loop as Relax.
func (e *Engine) Regularize(opts Options) (*Result, error) {
	m := e.Mesh
	kr, g, err := e.evaluate()
	if err != nil {
		return nil, err
	}

	history := make([]float64, 0, opts.IMax+1)
	history = append(history, kr.Eglo)

	var lastWarn *ferr.Warning
	res := &Result{}

	for i := 0; i < opts.IMax; i++ {
		diff := make([][3]float64, m.NC)
		for n := 0; n < m.NC; n++ {
			if !m.Var[n] {
				continue
			}
			diff[n][0] = m.UTarget[n][0] - m.U[n][0]
			diff[n][1] = m.UTarget[n][1] - m.U[n][1]
			diff[n][2] = m.UTarget[n][2] - m.U[n][2]
		}

		kOp := linsolve.NewK(m, g.KgloConn)
		rhs := kOp.Apply(diff)

		regOp := linsolve.NewRegularized(kOp, opts.Alpha)
		du, warn := linsolve.Solve(regOp, rhs, m.Var, opts.CGTol)
		lastWarn = warn

		for n := 0; n < m.NC; n++ {
			if !m.Var[n] {
				continue
			}
			m.U[n][0] += opts.Stepper * du[n][0]
			m.U[n][1] += opts.Stepper * du[n][1]
			m.U[n][2] += opts.Stepper * du[n][2]
		}

		kr, g, err = e.evaluate()
		if err != nil {
			return nil, err
		}
		history = append(history, kr.Eglo)
		res.Iterations = i + 1

		if opts.Verbose {
			io.Pf("regularize it=%d E_glo=%v\n", i, kr.Eglo)
		}

		if res.Iterations >= minOuterIters && stable(history, opts.RelConvCrit) {
			res.Converged = true
			break
		}
	}

	res.Eglo = kr.Eglo
	res.Fglo = g.Fglo
	res.CGWarning = lastWarn
	if !res.Converged {
		res.Warning = &ferr.Warning{Kind: "outer", Message: "regularize reached i_max before energy stability", Iters: res.Iterations}
	}
	return res, nil
}

// stable implements spec.md §4.8's sliding-window test: std(E)/sqrt(5) /
// mean(E) < relConvCrit over the trailing windowSize samples.
func stable(history []float64, relConvCrit float64) bool {
	if len(history) < windowSize {
		return false
	}
	last := history[len(history)-windowSize:]
	var mean float64
	for _, e := range last {
		mean += e
	}
	mean /= windowSize

	var varsum float64
	for _, e := range last {
		d := e - mean
		varsum += d * d
	}
	std := math.Sqrt(varsum / windowSize)

	if mean == 0 {
		return std == 0
	}
	return std/math.Sqrt(windowSize)/mean < relConvCrit
}
