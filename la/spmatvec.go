// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import "github.com/nlsolve/pmcp/chk"

// SpMatVec computes y = M*x for M given in CSC form (rowIdx, colPtr, data),
// writing into the caller-owned y. Named after gosl's la.SpTriMatTrVecMul;
// this is the plain (non-transposed) product over a fixed CSC pattern,
// used by the linearized solve fast path to evaluate M*z without
// densifying M.
func SpMatVec(y Vector, rowIdx, colPtr []int, data []float64, x Vector) {
	cols := len(colPtr) - 1
	chk.EnsureEqualInt("SpMatVec: len(x)", len(x), cols)
	for i := range y {
		y[i] = 0
	}
	for j := 0; j < cols; j++ {
		xj := x[j]
		if xj == 0 {
			continue
		}
		for k := colPtr[j]; k < colPtr[j+1]; k++ {
			y[rowIdx[k]] += data[k] * xj
		}
	}
}
