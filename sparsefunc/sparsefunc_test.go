// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sparsefunc

import (
	"testing"

	"github.com/nlsolve/pmcp/chk"
)

func TestSparseFunctionEvalAndCOO(tst *testing.T) {

	chk.PrintTitle("SparseFunctionEvalAndCOO. COO conversion preserves CSC order")

	// M = [[2,0,1],[0,3,0]] in CSC.
	rowIdx := []int{0, 1, 0}
	colPtr := []int{0, 1, 2, 3}

	sf := New(2, 3, rowIdx, colPtr, []int{0, 2}, func(data, z, theta []float64) {
		data[0] = z[0]
		data[1] = z[1]
		data[2] = theta[0]
	})

	if sf.NNZ() != 3 {
		tst.Fatalf("expected nnz=3, got %d", sf.NNZ())
	}

	sf.Eval([]float64{2, 3}, []float64{1})
	chk.Array(tst, "data", 1e-12, sf.Data, []float64{2, 3, 1})

	col := make([]int, 3)
	length := make([]int, 3)
	row := make([]int, 3)
	data := make([]float64, 3)
	sf.ToCOO(col, length, row, data)

	chk.Ints(tst, "col", col, []int{1, 2, 3}) // 1-indexed column starts
	chk.Ints(tst, "length", length, []int{1, 1, 1})
	chk.Ints(tst, "row", row, []int{0, 1, 0})
	chk.Array(tst, "data", 1e-12, data, []float64{2, 3, 1})
}

func TestSparseFunctionRejectsBadColPtr(tst *testing.T) {

	chk.PrintTitle("SparseFunctionRejectsBadColPtr. colPtr length invariant")

	defer func() {
		if r := recover(); r == nil {
			tst.Fatal("expected panic on malformed colPtr")
		}
	}()
	New(2, 3, []int{0}, []int{0, 1}, nil, func(data, z, theta []float64) {})
}
