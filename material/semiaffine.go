// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package material

import "math"

// SemiAffineFiber is a closed-form, C1-continuous strain-stiffening fiber
// energy density: soft exponential buckling under compression (delta<0),
// linear response near zero strain, and exponential stiffening beyond a
// strain threshold. Named and parameter-ordered after the prototype's
// SemiAffineFiberMaterial(k1, d0, ds, df) (original_source/docs/
// relaxation.py); the exact closed form there was not retrievable, so the
// energy below is re-derived to satisfy the same qualitative contract
// (buckle soft, stretch linear, stiffen hard) and to be C1 at delta=0 and
// delta=Ds0.
type SemiAffineFiber struct {
	K1  float64 // linear stiffness (w'' in the linear regime)
	D0  float64 // buckling length scale for delta < 0
	Ds0 float64 // onset strain of the stiffening regime
	Df  float64 // stiffening length scale for delta > Ds0
}

// NewSemiAffineFiber returns a model with the given parameters; the
// parameters are stored as given and are not validated.
func NewSemiAffineFiber(k1, d0, ds0, df float64) *SemiAffineFiber {
	return &SemiAffineFiber{K1: k1, D0: d0, Ds0: ds0, Df: df}
}

// EvaluateScalar implements Continuous.
func (o *SemiAffineFiber) EvaluateScalar(delta float64) (w, wp, wpp float64) {
	switch {
	case delta < 0:
		e := math.Exp(delta / o.D0)
		wp = o.K1 * o.D0 * (e - 1)
		wpp = o.K1 * e
		w = o.K1*o.D0*o.D0*(e-1) - o.K1*o.D0*delta
	case delta < o.Ds0:
		wp = o.K1 * delta
		wpp = o.K1
		w = 0.5 * o.K1 * delta * delta
	default:
		d := delta - o.Ds0
		e := math.Exp(d / o.Df)
		wp = o.K1*o.Ds0 + o.K1*o.Df*(e-1)
		wpp = o.K1 * e
		w = 0.5*o.K1*o.Ds0*o.Ds0 + o.K1*o.Ds0*d + o.K1*o.Df*o.Df*(e-1) - o.K1*o.Df*d
	}
	return
}
