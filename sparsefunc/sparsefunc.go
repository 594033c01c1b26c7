// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sparsefunc implements the sparse-function container used by a
// compiled problem's Jacobian evaluators: a fixed sparsity
// pattern, a preallocated CSC scratch matrix, and the
// constant-entry index set, together with COO conversion for the external
// solver's wire format.
//
// The scratch matrix is a real github.com/james-bowman/sparse CSC value
// sharing backing storage with this package's own ColPtr/RowIdx/Data
// slices (NewCSC accepts caller-owned slices directly), so a
// SparseFunction's current values can be handed to any
// gonum.org/v1/gonum/mat-compatible consumer without a copy.
package sparsefunc

import (
	"github.com/james-bowman/sparse"

	"github.com/nlsolve/pmcp/chk"
	"github.com/nlsolve/pmcp/fun"
)

// SparseFunction wraps an in-place evaluator of a matrix-valued function
// together with its fixed (rows, cols, shape) pattern, a preallocated CSC
// scratch matrix, and the subset of non-zero entries that are structurally
// constant with respect to the differentiation variable.
type SparseFunction struct {
	Rows, Cols int
	// RowIdx and ColPtr describe the CSC pattern: RowIdx has length nnz,
	// ColPtr has length Cols+1. Data is mutated in place by Eval.
	RowIdx  []int
	ColPtr  []int
	Data    []float64
	eval    fun.SparseJac
	scratch *sparse.CSC

	// ConstantEntries holds the nnz-ordered linear indices (matching the
	// CSC iteration order of RowIdx/Data) whose symbolic expression does
	// not depend on the differentiation variable.
	ConstantEntries []int
}

// New builds a SparseFunction from its fixed pattern and evaluator. rowIdx
// and colPtr are taken as the CSC pattern (colPtr has length cols+1);
// constantEntries are nnz-ordered linear indices into that pattern.
func New(rows, cols int, rowIdx, colPtr []int, constantEntries []int, eval fun.SparseJac) *SparseFunction {
	nnz := len(rowIdx)
	chk.EnsureEqualInt("colPtr length", len(colPtr), cols+1)
	for _, idx := range constantEntries {
		if idx < 0 || idx >= nnz {
			chk.Panic("constant entry index %d out of range [0,%d)", idx, nnz)
		}
	}
	data := make([]float64, nnz)
	return &SparseFunction{
		Rows: rows, Cols: cols,
		RowIdx: rowIdx, ColPtr: colPtr, Data: data,
		eval:            eval,
		scratch:         sparse.NewCSC(rows, cols, colPtr, rowIdx, data),
		ConstantEntries: constantEntries,
	}
}

// NNZ reports the number of structural non-zeros.
func (s *SparseFunction) NNZ() int { return len(s.RowIdx) }

// Eval evaluates the matrix at (z, theta), writing the non-zero values into
// Data (and therefore into the shared CSC scratch matrix) in place.
func (s *SparseFunction) Eval(z, theta []float64) {
	s.eval(s.Data, z, theta)
}

// CSC returns the scratch matrix, valid until the next call to Eval.
func (s *SparseFunction) CSC() *sparse.CSC { return s.scratch }

// ToCOO populates the four output arrays the external solver expects:
// col receives 1-indexed column start positions, length receives
// per-column non-zero counts, row receives row indices and data receives
// non-zero values, all in CSC iteration order. Pure copy, no mutation of
// the receiver.
func (s *SparseFunction) ToCOO(col, length, row []int, data []float64) {
	chk.EnsureEqualInt("col length", len(col), s.Cols)
	chk.EnsureEqualInt("length length", len(length), s.Cols)
	nnz := s.NNZ()
	chk.EnsureEqualInt("row length", len(row), nnz)
	chk.EnsureEqualInt("data length", len(data), nnz)
	for j := 0; j < s.Cols; j++ {
		col[j] = s.ColPtr[j] + 1 // 1-indexed for the PATH ABI
		length[j] = s.ColPtr[j+1] - s.ColPtr[j]
	}
	copy(row, s.RowIdx)
	copy(data, s.Data)
}
