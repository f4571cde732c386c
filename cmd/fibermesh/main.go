// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// fibermesh relaxes a tetrahedral fiber-network mesh to mechanical
// equilibrium given boundary conditions read from whitespace-separated
// text files (spec.md §6).
package main

import (
	"flag"

	"github.com/cpmech/fibermesh/beam"
	"github.com/cpmech/fibermesh/fsio"
	"github.com/cpmech/fibermesh/material"
	"github.com/cpmech/fibermesh/mesh"
	"github.com/cpmech/fibermesh/report"
	"github.com/cpmech/fibermesh/shape"
	"github.com/cpmech/fibermesh/solve"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

func main() {
	coordsFn := flag.String("coords", "coords.dat", "node coordinates file")
	tetsFn := flag.String("tets", "tets.dat", "tetrahedra file")
	bcondFn := flag.String("bcond", "bcond.dat", "boundary conditions file")
	beamsFn := flag.String("beams", "", "beams file (omit to generate a default set)")
	nBeams := flag.Int("nbeams", 300, "beam count when -beams is omitted")
	regularize := flag.Bool("regularize", false, "run regularize mode instead of relax")
	targetFn := flag.String("target", "", "target displacement file, required for -regularize")
	stepper := flag.Float64("stepper", 0.066, "outer-loop step size")
	alpha := flag.Float64("alpha", 1e-3, "Tikhonov strength (regularize mode)")
	iMax := flag.Int("imax", 300, "outer-loop iteration cap")
	relConv := flag.Float64("relconv", 0.01, "energy stability threshold")
	k1 := flag.Float64("k1", 1645, "material: linear stiffness")
	d0 := flag.Float64("d0", 0.0008, "material: buckling length scale")
	ds0 := flag.Float64("ds0", 0.0075, "material: stiffening onset strain")
	df := flag.Float64("df", 0.033, "material: stiffening length scale")
	outDir := flag.String("out", ".", "output directory")
	verbose := flag.Bool("verbose", true, "print per-iteration progress")
	flag.Parse()

	defer func() {
		if err := recover(); err != nil {
			io.PfRed("ERROR: %v\n", err)
		}
	}()

	io.PfWhite("\nfibermesh -- quasi-static tetrahedral fiber-network solver\n\n")

	R, err := fsio.ReadCoords(*coordsFn)
	if err != nil {
		chk.Panic("%v", err)
	}
	T, err := fsio.ReadTets(*tetsFn)
	if err != nil {
		chk.Panic("%v", err)
	}
	Uprescribed, Fext, err := fsio.ReadBcond(*bcondFn)
	if err != nil {
		chk.Panic("%v", err)
	}

	m := mesh.New()
	if err := m.SetNodes(R); err != nil {
		chk.Panic("%v", err)
	}
	if err := m.SetTetrahedra(T); err != nil {
		chk.Panic("%v", err)
	}
	if err := m.SetBoundaryCondition(Uprescribed, Fext); err != nil {
		chk.Panic("%v", err)
	}
	if err := m.ComputeConnections(); err != nil {
		chk.Panic("%v", err)
	}

	sh, err := shape.Compute(m)
	if err != nil {
		chk.Panic("%v", err)
	}

	var beams *beam.Set
	if *beamsFn != "" {
		vecs, err := fsio.ReadBeams(*beamsFn)
		if err != nil {
			chk.Panic("%v", err)
		}
		beams, err = beam.FromVectors(vecs)
		if err != nil {
			chk.Panic("%v", err)
		}
	} else {
		beams, err = beam.Compute(*nBeams)
		if err != nil {
			chk.Panic("%v", err)
		}
	}

	mdl := material.NewTable(material.NewSemiAffineFiber(*k1, *d0, *ds0, *df), material.DefaultDeltaMax, material.DefaultDeltaStep)

	eng := &solve.Engine{Mesh: m, Shape: sh, Beams: beams, Model: mdl}

	var res *solve.Result
	if *regularize {
		if *targetFn == "" {
			chk.Panic("-regularize requires -target")
		}
		Utarget, err := fsio.ReadCoords(*targetFn)
		if err != nil {
			chk.Panic("%v", err)
		}
		if err := m.SetTargetDisplacements(Utarget); err != nil {
			chk.Panic("%v", err)
		}
		opts := solve.NewRegularizeOptions(*alpha)
		opts.Stepper, opts.IMax, opts.RelConvCrit, opts.Verbose = *stepper, *iMax, *relConv, *verbose
		res, err = eng.Regularize(opts)
	} else {
		opts := solve.NewRelaxOptions()
		opts.Stepper, opts.IMax, opts.RelConvCrit, opts.Verbose = *stepper, *iMax, *relConv, *verbose
		res, err = eng.Relax(opts)
	}
	if err != nil {
		chk.Panic("%v", err)
	}
	if res.Warning != nil {
		io.PfYel("warning: %s\n", res.Warning.Message)
	}
	if res.CGWarning != nil {
		io.PfYel("warning: %s\n", res.CGWarning.Message)
	}

	io.Pf("converged=%v iterations=%d E_glo=%v\n", res.Converged, res.Iterations, res.Eglo)

	if err := report.WriteRAndU(m, *outDir+"/R.dat", *outDir+"/U.dat"); err != nil {
		chk.Panic("%v", err)
	}
	if err := report.WriteF(res.Fglo, *outDir+"/F.dat"); err != nil {
		chk.Panic("%v", err)
	}
}
