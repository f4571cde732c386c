// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_semiaffine01(tst *testing.T) {

	chk.PrintTitle("semiaffine01: C1 continuity at branch points")

	m := NewSemiAffineFiber(1645, 0.0008, 0.0075, 0.033)

	h := 1e-9
	for _, d0 := range []float64{0, m.Ds0} {
		wMinus, wpMinus, _ := m.EvaluateScalar(d0 - h)
		wPlus, wpPlus, _ := m.EvaluateScalar(d0 + h)
		chk.Scalar(tst, "w continuous", 1e-6, wMinus, wPlus)
		chk.Scalar(tst, "w' continuous", 1e-4, wpMinus, wpPlus)
	}
}

func Test_semiaffine02(tst *testing.T) {

	chk.PrintTitle("semiaffine02: w is non-increasing below zero strain, non-decreasing above it, and finite over a wide strain range")

	m := NewSemiAffineFiber(1645, 0.0008, 0.0075, 0.033)
	var prevW, prevD float64
	first := true
	for d := -0.05; d <= 0.2; d += 1e-3 {
		w, wp, wpp := m.EvaluateScalar(d)
		if math.IsNaN(w) || math.IsInf(w, 0) || math.IsNaN(wp) || math.IsNaN(wpp) {
			tst.Errorf("non-finite output at delta=%v", d)
		}
		if !first && d <= 0 && w > prevW+1e-9 {
			tst.Errorf("w increased under compression at delta=%v: %v > %v", d, w, prevW)
		}
		if !first && prevD >= 0 && w < prevW-1e-9 {
			tst.Errorf("w decreased at delta=%v: %v < %v", d, w, prevW)
		}
		prevW, prevD, first = w, d, false
	}
}

func Test_table01(tst *testing.T) {

	chk.PrintTitle("table01: lookup table matches the continuous source closely")

	src := NewSemiAffineFiber(1645, 0.0008, 0.0075, 0.033)
	tab := NewTable(src, 0, 0)

	delta := []float64{-0.01, -0.001, 0, 0.003, 0.0075, 0.02}
	w, wp, _ := tab.Evaluate(delta)
	for i, d := range delta {
		wRef, wpRef, _ := src.EvaluateScalar(d)
		chk.Scalar(tst, "w", 1e-2, w[i], wRef)
		chk.Scalar(tst, "wp", 1e-1, wp[i], wpRef)
	}
}

func Test_table02(tst *testing.T) {

	chk.PrintTitle("table02: out-of-range strains clamp to the table endpoints")

	src := NewSemiAffineFiber(1645, 0.0008, 0.0075, 0.033)
	tab := NewTable(src, 1.0, 1e-2)

	w, _, _ := tab.Evaluate([]float64{-5, 5})
	wLo, _, _ := tab.Evaluate([]float64{-1})
	wHi, _, _ := tab.Evaluate([]float64{1.0})
	chk.Scalar(tst, "clamp low", 1e-15, w[0], wLo[0])
	chk.Scalar(tst, "clamp high", 1e-15, w[1], wHi[0])
}
