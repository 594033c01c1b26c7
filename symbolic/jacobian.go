// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

import (
	"sort"

	"github.com/nlsolve/pmcp/chk"
	"github.com/nlsolve/pmcp/fun"
)

// JacobianResult is the symbolic sparse derivative of outputs with respect
// to wrt: a fixed (rows, cols) pattern in CSC order, the constant-entry
// index set, and an in-place numerical evaluator over the concatenated
// [z; theta] input vector.
type JacobianResult struct {
	Rows, Cols      int
	RowIdx          []int // length nnz, CSC order
	ColPtr          []int // length cols+1
	ConstantEntries []int // nnz-ordered indices, w.r.t. the same `wrt` set
	Eval            fun.SparseJac
}

// SparseJacobian derives ∂(outputs)/∂(wrt) symbolically: wrt must be a
// contiguous block of leaf variables (as produced by a single
// MakeVariables call), which both z_sym and theta_sym are by construction.
func SparseJacobian(g *Graph, outputs []Expr, wrt []Expr) *JacobianResult {
	rows := len(outputs)
	cols := len(wrt)
	if cols == 0 {
		return &JacobianResult{
			Rows: rows, Cols: 0,
			RowIdx: nil, ColPtr: make([]int, 1),
			Eval: func(data, z, theta []float64) {},
		}
	}
	lo := wrt[0].node().varSlot
	hi := wrt[cols-1].node().varSlot + 1
	chk.EnsureEqualInt("wrt slot span", hi-lo, cols)

	diffs := make([]*diffResult, rows)
	for i, out := range outputs {
		diffs[i] = g.diff(out)
	}

	// Column-major (CSC) construction: for each column j, collect the rows
	// i whose output structurally depends on wrt[j]'s slot.
	var rowIdx []int
	colPtr := make([]int, cols+1)
	var constantEntries []int
	var partialNodeIdx []int // parallel to rowIdx/data, the node to evaluate for each nnz entry

	for j, v := range wrt {
		slot := v.node().varSlot
		var rowsInCol []int
		for i, out := range outputs {
			if out.node().deps.has(slot) {
				rowsInCol = append(rowsInCol, i)
			}
		}
		sort.Ints(rowsInCol)
		for _, i := range rowsInCol {
			partial := diffs[i].partial(v)
			// Constant w.r.t. the whole wrt block if the partial doesn't
			// depend on any slot in it (it may still depend on the other
			// symbol set, e.g. ∂F/∂z constant but depends on theta —
			// that's fine, still a linear element for presolve).
			if !partial.node().deps.intersectsRange(lo, hi) {
				constantEntries = append(constantEntries, len(rowIdx))
			}
			rowIdx = append(rowIdx, i)
			partialNodeIdx = append(partialNodeIdx, partial.idx)
		}
		colPtr[j+1] = len(rowIdx)
	}

	evalFn := func(data, z, theta []float64) {
		input := make([]float64, g.nInputs)
		copy(input, z)
		copy(input[len(z):], theta)
		vals := make([]float64, len(g.nodes))
		done := make([]bool, len(g.nodes))
		for k, nodeIdx := range partialNodeIdx {
			data[k] = g.eval(nodeIdx, input, vals, done)
		}
	}

	return &JacobianResult{
		Rows: rows, Cols: cols,
		RowIdx: rowIdx, ColPtr: colPtr,
		ConstantEntries: constantEntries,
		Eval:            evalFn,
	}
}

// Gradient returns ∂output/∂x_i for each x in wrt, as numerical values at
// the given concatenated input — the dense counterpart of
// SparseJacobian, useful for small diagnostic problems.
func Gradient(g *Graph, output Expr, wrt []Expr, input []float64) []float64 {
	d := g.diff(output)
	// partial may append Const(0) nodes, so collect every partial before
	// sizing the memo buffers over g.nodes.
	partials := make([]Expr, len(wrt))
	for i, v := range wrt {
		partials[i] = d.partial(v)
	}
	out := make([]float64, len(wrt))
	vals := make([]float64, len(g.nodes))
	done := make([]bool, len(g.nodes))
	for i, p := range partials {
		out[i] = g.eval(p.idx, input, vals, done)
	}
	return out
}

// Jacobian returns the dense ∂(outputs)/∂(wrt) matrix, row-major, at the
// given concatenated input.
func Jacobian(g *Graph, outputs []Expr, wrt []Expr, input []float64) [][]float64 {
	out := make([][]float64, len(outputs))
	for i, o := range outputs {
		out[i] = Gradient(g, o, wrt, input)
	}
	return out
}
