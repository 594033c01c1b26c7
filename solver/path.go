// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solver wraps the external PATH complementarity solver through
// its callback-based C interface (spec §4.4, §6 "Solver callback wire
// contract"). PATH itself is out of scope (spec §1): this package only
// marshals data across the cgo boundary the way gosl's la.Umfpack/MUMPS
// wrapper marshals a Triplet into a linked C solver's expected layout.
package solver

/*
#cgo LDFLAGS: -lpath -lm

#include <stdlib.h>

typedef int (*pmcp_F_cb)(int n, double* z, double* f, void* userdata);
typedef int (*pmcp_J_cb)(int n, int nnz, double* z, int* col, int* len, int* row, double* data, void* userdata);

// path_main_solve is PATH's entry point, declared here per its published C
// ABI: two evaluation callbacks, box bounds, an initial guess overwritten
// in place with the solution, a silence flag, the fixed nnz of the
// Jacobian pattern, a hint that the pattern is structurally constant
// across calls, an optional list of presolve linear-element indices, and
// an opaque status/info out-parameter pair.
extern int path_main_solve(
    int n, double* lb, double* ub, double* z, int verbose,
    int nnz, int constant_jac_structure,
    pmcp_F_cb Ffn, pmcp_J_cb Jfn, void* userdata,
    int n_linear, int* linear_idx,
    double* info_out, int info_out_len, int* status_out);

extern int pmcp_F_trampoline(int n, double* z, double* f, void* userdata);
extern int pmcp_J_trampoline(int n, int nnz, double* z, int* col, int* len, int* row, double* data, void* userdata);
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"

	"github.com/nlsolve/pmcp/sparsefunc"
)

// callbackContext threads the residual/Jacobian evaluators through the cgo
// boundary via a runtime/cgo.Handle, since C function pointers cannot
// close over Go state directly. The normal path wires these straight to
// ParametricMCP.FEval/JacZ; the approximate_linear fast path (linearized.go)
// substitutes its own closures over a frozen M, q instead, so this context
// only depends on the evaluator shapes, never on *pmcp.ParametricMCP
// itself. F and J "must observe the same theta they were constructed with"
// (spec §5 "Ordering") — theta is captured by reference here, never copied
// mid-solve.
type callbackContext struct {
	residual func(out, z, theta []float64)
	jacZ     *sparsefunc.SparseFunction
	theta    []float64
	// scratch COO arrays reused across every J callback invocation for
	// this solve, avoiding per-call allocation (spec §9 "Sparse matrix
	// representation").
	col, length, row []int
	data             []float64
}

//export pmcp_F_trampoline
func pmcp_F_trampoline(n C.int, z *C.double, f *C.double, userdata unsafe.Pointer) C.int {
	h := *(*cgo.Handle)(userdata)
	ctx := h.Value().(*callbackContext)
	zs := unsafe.Slice((*float64)(unsafe.Pointer(z)), int(n))
	fs := unsafe.Slice((*float64)(unsafe.Pointer(f)), int(n))
	ctx.residual(fs, zs, ctx.theta)
	return 0
}

//export pmcp_J_trampoline
func pmcp_J_trampoline(n, nnz C.int, z *C.double, col, length, row *C.int, data *C.double, userdata unsafe.Pointer) C.int {
	h := *(*cgo.Handle)(userdata)
	ctx := h.Value().(*callbackContext)
	zs := unsafe.Slice((*float64)(unsafe.Pointer(z)), int(n))

	ctx.jacZ.Eval(zs, ctx.theta)
	ctx.jacZ.ToCOO(ctx.col, ctx.length, ctx.row, ctx.data)

	colOut := unsafe.Slice((*C.int)(unsafe.Pointer(col)), int(n))
	lenOut := unsafe.Slice((*C.int)(unsafe.Pointer(length)), int(n))
	rowOut := unsafe.Slice((*C.int)(unsafe.Pointer(row)), int(nnz))
	dataOut := unsafe.Slice((*C.double)(unsafe.Pointer(data)), int(nnz))
	for i := range ctx.col {
		colOut[i] = C.int(ctx.col[i])
		lenOut[i] = C.int(ctx.length[i])
	}
	for i := range ctx.row {
		rowOut[i] = C.int(ctx.row[i])
		dataOut[i] = C.double(ctx.data[i])
	}
	return 0
}

// invokePath is the single call into the C solver; the trampolines above
// only marshal data between the solver's C arrays and Go slices.
func invokePath(n int, lbIn, ubIn, initialGuess, theta []float64, residual func(out, z, theta []float64), jacZ *sparsefunc.SparseFunction, verbose bool, linearIdx []int) (z []float64, statusCode int, info map[string]float64) {
	nnz := jacZ.NNZ()

	ctx := &callbackContext{
		residual: residual,
		jacZ:     jacZ,
		theta:    theta,
		col:      make([]int, n),
		length:   make([]int, n),
		row:      make([]int, nnz),
		data:     make([]float64, nnz),
	}
	handle := cgo.NewHandle(ctx)
	defer handle.Delete()

	z = make([]float64, n)
	copy(z, initialGuess)

	lb := make([]float64, n)
	ub := make([]float64, n)
	copy(lb, lbIn)
	copy(ub, ubIn)

	var cLinear []C.int
	if len(linearIdx) > 0 {
		cLinear = make([]C.int, len(linearIdx))
		for i, idx := range linearIdx {
			cLinear[i] = C.int(idx)
		}
	}

	verboseFlag := 0
	if verbose {
		verboseFlag = 1
	}

	const infoLen = 8
	infoOut := make([]C.double, infoLen)
	var statusOut C.int

	var linearIdxPtr *C.int
	if len(cLinear) > 0 {
		linearIdxPtr = &cLinear[0]
	}

	hv := handle
	C.path_main_solve(
		C.int(n),
		(*C.double)(unsafe.Pointer(&lb[0])),
		(*C.double)(unsafe.Pointer(&ub[0])),
		(*C.double)(unsafe.Pointer(&z[0])),
		C.int(verboseFlag),
		C.int(nnz),
		1, // the Jacobian's structure is constant across calls
		C.pmcp_F_cb(C.pmcp_F_trampoline),
		C.pmcp_J_cb(C.pmcp_J_trampoline),
		unsafe.Pointer(&hv),
		C.int(len(cLinear)),
		linearIdxPtr,
		(*C.double)(unsafe.Pointer(&infoOut[0])),
		C.int(infoLen),
		&statusOut,
	)

	info = make(map[string]float64, infoLen)
	labels := []string{"residual_norm", "iterations", "major_iterations", "minor_iterations", "func_evals", "jac_evals", "time", "reserved"}
	for i := 0; i < infoLen && i < len(labels); i++ {
		info[labels[i]] = float64(infoOut[i])
	}
	return z, int(statusOut), info
}
