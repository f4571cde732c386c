// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package ferr defines the typed fatal and warning conditions raised by the
// mesh, kernel and solver packages, following spec.md §7.
package ferr

import (
	"github.com/cpmech/gosl/chk"
)

// Kind classifies a fatal condition. NonConvergence is deliberately not a
// Kind here: the CG and outer solvers report non-convergence as a Warning
// value returned alongside a valid result, never as an error.
type Kind int

const (
	InvalidInput Kind = iota
	DegenerateMesh
	NumericFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "InvalidInput"
	case DegenerateMesh:
		return "DegenerateMesh"
	case NumericFailure:
		return "NumericFailure"
	}
	return "Unknown"
}

// Error is a fatal condition identifying, where applicable, the offending
// node or tetrahedron index. Index is -1 when not applicable.
type Error struct {
	Kind  Kind
	Index int
	err   error
}

func (e *Error) Error() string {
	return e.err.Error()
}

// Unwrap exposes the underlying chk.Err-formatted message for errors.Is/As.
func (e *Error) Unwrap() error {
	return e.err
}

// New builds a fatal Error of the given kind, formatting msg/args the way
// gosl/chk.Err does throughout the teacher codebase.
func New(kind Kind, index int, msg string, args ...interface{}) *Error {
	return &Error{
		Kind:  kind,
		Index: index,
		err:   chk.Err(msg, args...),
	}
}

// Warning is an advisory condition (spec.md §7/§4.9): the caller receives a
// valid result together with a Warning, never an error.
type Warning struct {
	Kind    string // "cg" or "outer"
	Message string
	Iters   int
}

func (w *Warning) String() string {
	if w == nil {
		return ""
	}
	return w.Message
}
