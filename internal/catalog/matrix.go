// Marquee - Content-Similarity Movie Recommender
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

package catalog

import (
	"fmt"
	"math"
)

// Matrix is an immutable N×N similarity matrix stored row-major.
// Symmetry and a maximal diagonal are properties of the precomputed input
// and are not re-verified here.
type Matrix struct {
	n    int
	data []float64
}

// NewMatrix copies rows into a Matrix. Rows must form a non-empty square
// of finite values.
func NewMatrix(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, fmt.Errorf("%w: similarity matrix is empty", ErrSchema)
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: similarity matrix row %d has %d columns, want %d", ErrSchema, i, len(row), n)
		}
		data = append(data, row...)
	}
	return newDenseMatrix(n, data)
}

// newDenseMatrix takes ownership of data, which must hold n*n values.
func newDenseMatrix(n int, data []float64) (*Matrix, error) {
	if n <= 0 || len(data) != n*n {
		return nil, fmt.Errorf("%w: similarity matrix needs %d values, got %d", ErrSchema, n*n, len(data))
	}
	for k, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: similarity matrix has non-finite value at (%d,%d)", ErrSchema, k/n, k%n)
		}
	}
	return &Matrix{n: n, data: data}, nil
}

// Size returns N.
func (m *Matrix) Size() int {
	return m.n
}

// At returns the score between catalog positions i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns the scores of position i against every position.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n : (i+1)*m.n]
}
