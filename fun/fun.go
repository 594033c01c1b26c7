// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package fun names the evaluator-callback contracts shared across the
// compiler, solver driver and sensitivity core, the same way gosl's fun
// package names Vv/Tv/Mv for num.NlSolver's callbacks.
package fun

// Residual writes F(z, θ) into out. Contract: len(out) == len(z) == n.
type Residual func(out, z, theta []float64)

// SparseJac writes the non-zero values of a Jacobian into data, in the
// fixed CSC order established at compile time. Contract: len(data) == nnz.
type SparseJac func(data, z, theta []float64)
