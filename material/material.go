// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package material implements the scalar material function evaluator
// contract of spec.md §4.3: given an array of strains delta, return the
// energy density w and its first two derivatives w', w''. spec.md treats
// this as an external collaborator; this package supplies the default
// lookup-table evaluator plus a concrete semi-affine fiber model to drive
// it, named after the teacher prototype's SemiAffineFiberMaterial
// (original_source/docs/relaxation.py).
package material

// Model is the material evaluator contract. Implementations must be pure
// (no hidden state) and safe to call concurrently from multiple kernel
// workers (spec.md §4.3, §5).
type Model interface {
	Evaluate(delta []float64) (w, wprime, wdbl []float64)
}

// Continuous is a closed-form scalar strain-energy density, the input a
// Table samples to build its lookup grid.
type Continuous interface {
	EvaluateScalar(delta float64) (w, wprime, wdbl float64)
}
