// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package beam

import (
	"math"
	"testing"

	"github.com/cpmech/gosl/chk"
)

func Test_beam01(tst *testing.T) {

	chk.PrintTitle("beam01: generated vectors are unit length")

	s, err := Compute(300)
	if err != nil {
		tst.Errorf("Compute failed: %v", err)
		return
	}
	for b, v := range s.S {
		n := math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
		chk.Scalar(tst, "|s|", 1e-12, n, 1)
		_ = b
	}
	if s.N() != 300 {
		tst.Errorf("N()=%d, want 300", s.N())
	}
}

func Test_beam02(tst *testing.T) {

	chk.PrintTitle("beam02: deterministic across calls")

	a, _ := Compute(50)
	b, _ := Compute(50)
	for i := range a.S {
		chk.Vector(tst, "s", 1e-15, a.S[i][:], b.S[i][:])
	}
}

func Test_beam03(tst *testing.T) {

	chk.PrintTitle("beam03: FromVectors rejects non-unit vectors")

	_, err := FromVectors([][3]float64{{1, 1, 1}})
	if err == nil {
		tst.Errorf("expected InvalidInput error for non-unit vector")
	}
	ok, err := FromVectors([][3]float64{{1, 0, 0}, {0, 1, 0}})
	if err != nil {
		tst.Errorf("unexpected error: %v", err)
	}
	if ok.N() != 2 {
		tst.Errorf("N()=%d, want 2", ok.N())
	}
}

func Test_beam04(tst *testing.T) {

	chk.PrintTitle("beam04: non-positive beam count is invalid")

	_, err := Compute(0)
	if err == nil {
		tst.Errorf("expected InvalidInput error for n<=0")
	}
}
