// Copyright 2016 The Gofem Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// package fsio reads and writes the whitespace-separated, one-record-per-
// line text files of spec.md §6: node coordinates, tetrahedra, boundary
// conditions and beams, plus the persisted solver outputs. These formats
// are headerless fixed-column tables, unlike gosl/io.ReadTable's headered
// format (see DESIGN.md); the parsing below is therefore plain
// bufio/strconv, matching the spec's own description of a minimal text
// format rather than forcing an ill-fitting table reader onto it. Writing
// uses gosl/io for formatted output, as the teacher's tools/GenVtu.go does.
package fsio

import (
	"bufio"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/cpmech/fibermesh/ferr"
	"github.com/cpmech/gosl/io"
)

// ReadCoords reads a coords file: one "x y z" triple per line.
func ReadCoords(path string) ([][]float64, error) {
	rows, err := readRows(path, 3)
	if err != nil {
		return nil, err
	}
	out := make([][]float64, len(rows))
	for i, r := range rows {
		out[i] = []float64{r[0], r[1], r[2]}
	}
	return out, nil
}

// ReadTets reads a tets file: one "a b c d" quadruple of 1-based indices
// per line, converting to 0-based.
func ReadTets(path string) ([][4]int, error) {
	rows, err := readRows(path, 4)
	if err != nil {
		return nil, err
	}
	out := make([][4]int, len(rows))
	for t, r := range rows {
		for m := 0; m < 4; m++ {
			idx := int(r[m]) - 1
			if idx < 0 {
				return nil, ferr.New(ferr.InvalidInput, t, "tetrahedron %d has a non-positive 1-based index", t)
			}
			out[t][m] = idx
		}
	}
	return out, nil
}

// ReadBcond reads a bcond file: 4 floats per line; last column 1 => free
// (first three are the external force), last column 0 => fixed (first
// three are the prescribed displacement). Returns Uprescribed/Fext arrays
// ready for mesh.SetBoundaryCondition, with NaN marking the free rows of
// Uprescribed per spec.md §6.
func ReadBcond(path string) (Uprescribed, Fext [][]float64, err error) {
	rows, err := readRows(path, 4)
	if err != nil {
		return nil, nil, err
	}
	Uprescribed = make([][]float64, len(rows))
	Fext = make([][]float64, len(rows))
	nan := math.NaN()
	for i, r := range rows {
		free := r[3] > 0.5
		if free {
			Uprescribed[i] = []float64{nan, nan, nan}
			Fext[i] = []float64{r[0], r[1], r[2]}
		} else {
			Uprescribed[i] = []float64{r[0], r[1], r[2]}
			Fext[i] = []float64{0, 0, 0}
		}
	}
	return
}

// ReadBeams reads a beams file: one unit vector "x y z" per line.
func ReadBeams(path string) ([][3]float64, error) {
	rows, err := readRows(path, 3)
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, len(rows))
	for b, r := range rows {
		out[b] = [3]float64{r[0], r[1], r[2]}
	}
	return out, nil
}

// WriteVectors writes one "x y z" triple per line.
func WriteVectors(path string, v [][3]float64) error {
	var sb strings.Builder
	for _, row := range v {
		sb.WriteString(io.Sf("%.15g %.15g %.15g\n", row[0], row[1], row[2]))
	}
	io.WriteFileSD(dirOf(path), baseOf(path), sb.String())
	return nil
}

// WriteScalarPairs writes one "a b" pair per line (e.g. per-tet E and V).
func WriteScalarPairs(path string, a, b []float64) error {
	var sb strings.Builder
	for i := range a {
		sb.WriteString(io.Sf("%.15g %.15g\n", a[i], b[i]))
	}
	io.WriteFileSD(dirOf(path), baseOf(path), sb.String())
	return nil
}

func readRows(path string, cols int) ([][]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ferr.New(ferr.InvalidInput, -1, "cannot open %s: %v", path, err)
	}
	defer f.Close()

	var rows [][]float64
	sc := bufio.NewScanner(f)
	line := 0
	for sc.Scan() {
		txt := strings.TrimSpace(sc.Text())
		if txt == "" {
			continue
		}
		fields := strings.Fields(txt)
		if len(fields) != cols {
			return nil, ferr.New(ferr.InvalidInput, line, "%s line %d: expected %d columns, got %d", path, line, cols, len(fields))
		}
		row := make([]float64, cols)
		for i, fld := range fields {
			v, perr := strconv.ParseFloat(fld, 64)
			if perr != nil {
				return nil, ferr.New(ferr.InvalidInput, line, "%s line %d: %v", path, line, perr)
			}
			row[i] = v
		}
		rows = append(rows, row)
		line++
	}
	if err := sc.Err(); err != nil {
		return nil, ferr.New(ferr.InvalidInput, -1, "error reading %s: %v", path, err)
	}
	return rows, nil
}

func dirOf(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return "."
	}
	return path[:i]
}

func baseOf(path string) string {
	i := strings.LastIndexByte(path, '/')
	if i < 0 {
		return path
	}
	return path[i+1:]
}
