// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"github.com/cpmech/gosl/fun"
	"github.com/cpmech/gosl/utl"
)

// DefaultDeltaMax and DefaultDeltaStep are the table bounds used when a
// caller does not override them, matching spec.md §4.3's default contract.
const (
	DefaultDeltaMax  = 4.0
	DefaultDeltaStep = 1e-3
)

// Table is the default material evaluator of spec.md §4.3: a precomputed
// lookup over delta in [-1, DeltaMax] with linear spacing DeltaStep;
// out-of-range inputs clamp to the nearest endpoint. No state once built;
// reentrant.
type Table struct {
	prms       fun.Prms
	deltaMin   float64
	deltaMax   float64
	deltaStep  float64
	w, wp, wpp []float64
}

// Params returns the table bounds as a fun.Prms list, the shape the
// teacher's constitutive models use to describe themselves (e.g.
// mdl/solid/linelast.go's GetPrms).
func (o *Table) Params() fun.Prms {
	return o.prms
}

// NewTable samples src on a uniform grid spanning [-1, deltaMax] with
// spacing deltaStep (spec.md §4.3). deltaMax<=0 or deltaStep<=0 fall back
// to the package defaults.
func NewTable(src Continuous, deltaMax, deltaStep float64) *Table {
	if deltaMax <= 0 {
		deltaMax = DefaultDeltaMax
	}
	if deltaStep <= 0 {
		deltaStep = DefaultDeltaStep
	}
	n := int((deltaMax+1)/deltaStep) + 1
	grid := utl.LinSpace(-1, deltaMax, n)

	o := &Table{
		prms: fun.Prms{
			&fun.Prm{N: "DeltaMax", V: deltaMax},
			&fun.Prm{N: "DeltaStep", V: deltaStep},
		},
		deltaMin:  -1,
		deltaMax:  deltaMax,
		deltaStep: (deltaMax + 1) / float64(n-1),
		w:         make([]float64, n),
		wp:        make([]float64, n),
		wpp:       make([]float64, n),
	}
	for i, d := range grid {
		o.w[i], o.wp[i], o.wpp[i] = src.EvaluateScalar(d)
	}
	return o
}

// Evaluate implements Model by linearly interpolating the table, clamping
// out-of-range strains to the nearest endpoint (spec.md §4.3).
func (o *Table) Evaluate(delta []float64) (w, wprime, wdbl []float64) {
	n := len(delta)
	w = make([]float64, n)
	wprime = make([]float64, n)
	wdbl = make([]float64, n)
	last := len(o.w) - 1
	for i, d := range delta {
		if d <= o.deltaMin {
			w[i], wprime[i], wdbl[i] = o.w[0], o.wp[0], o.wpp[0]
			continue
		}
		if d >= o.deltaMax {
			w[i], wprime[i], wdbl[i] = o.w[last], o.wp[last], o.wpp[last]
			continue
		}
		pos := (d - o.deltaMin) / o.deltaStep
		lo := int(pos)
		if lo >= last {
			lo = last - 1
		}
		frac := pos - float64(lo)
		w[i] = o.w[lo] + frac*(o.w[lo+1]-o.w[lo])
		wprime[i] = o.wp[lo] + frac*(o.wp[lo+1]-o.wp[lo])
		wdbl[i] = o.wpp[lo] + frac*(o.wpp[lo+1]-o.wpp[lo])
	}
	return
}
