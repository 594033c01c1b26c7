// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmcp

import (
	"fmt"

	"github.com/nlsolve/pmcp/chk"
	"github.com/nlsolve/pmcp/fun"
	"github.com/nlsolve/pmcp/la"
	"github.com/nlsolve/pmcp/sparsefunc"
	"github.com/nlsolve/pmcp/symbolic"
)

// Residual is the user-supplied pure map f(z_sym, theta_sym) -> F_sym,
// accepting symbolic vectors of lengths n and m and returning a symbolic
// vector the compiler requires to have length n (spec §4.3 step 2).
type Residual func(z, theta []symbolic.Expr) []symbolic.Expr

// Compile implements spec §4.3's seven-step compilation pipeline: trace f
// symbolically, derive ∂F/∂z (and, if requested, ∂F/∂θ), record sparsity
// and constant-entry metadata, code-generate in-place evaluators, and
// assemble a ParametricMCP. lb and ub must have equal length n, which
// becomes the problem size; m is the parameter dimension and may be zero.
func Compile(f Residual, lb, ub la.Vector, m int, opts CompileOptions) (*ParametricMCP, error) {
	n := len(lb)
	if len(ub) != n {
		return nil, fmt.Errorf("%w: len(lb)=%d len(ub)=%d", ErrDimensionMismatch, n, len(ub))
	}
	for i := 0; i < n; i++ {
		if lb[i] > ub[i] {
			return nil, fmt.Errorf("%w: lower_bounds[%d]=%v > upper_bounds[%d]=%v", ErrDimensionMismatch, i, lb[i], i, ub[i])
		}
	}
	if m < 0 {
		return nil, fmt.Errorf("%w: m=%d must be >= 0", ErrDimensionMismatch, m)
	}

	backend := opts.Backend
	if backend == nil {
		backend = symbolic.NewGraphBackend()
	}

	// Step 1: fresh symbolic vectors z_sym (length n) and theta_sym
	// (length m). A zero-dimension MakeVariables call must still succeed
	// — this is how m == 0 problems trace (spec §4.2).
	g := backend.NewGraph(n + m)
	zSym := backend.MakeVariables(g, n)
	thetaSym := backend.MakeVariables(g, m)

	// Step 2: apply f; any panic raised by the user's f propagates
	// unchanged (spec §7 "User residual exceptions").
	outputs := f(zSym, thetaSym)
	if len(outputs) != n {
		return nil, fmt.Errorf("%w: residual produced %d outputs, expected n=%d", ErrDimensionMismatch, len(outputs), n)
	}

	// Steps 3-5: sparse Jacobians, their (rows, cols, shape) patterns, and
	// constant-entry sets.
	jacZResult := backend.SparseJacobian(g, outputs, zSym)
	var jacThetaResult *symbolic.JacobianResult
	if opts.Sensitivities {
		jacThetaResult = backend.SparseJacobian(g, outputs, thetaSym)
	}

	// Step 6: code-generate in-place evaluators over the concatenated
	// [z; theta] vector, then adapt to the (out, z, theta) contract.
	fCompiled := backend.BuildFunction(g, outputs, true)
	fEval := adaptResidual(fCompiled, n, m)

	jacZ := sparsefunc.New(n, n, jacZResult.RowIdx, jacZResult.ColPtr, jacZResult.ConstantEntries, jacZResult.Eval)
	var jacTheta *sparsefunc.SparseFunction
	if jacThetaResult != nil {
		jacTheta = sparsefunc.New(n, m, jacThetaResult.RowIdx, jacThetaResult.ColPtr, jacThetaResult.ConstantEntries, jacThetaResult.Eval)
	}

	problem := &ParametricMCP{
		FEval:       fEval,
		JacZ:        jacZ,
		JacTheta:    jacTheta,
		LowerBounds: lb.Clone(),
		UpperBounds: ub.Clone(),
		N:           n,
		M:           m,
	}

	// Step 7: optional one-shot warm-up at zero to amortize any
	// first-call cost before the caller's first real solve.
	if opts.WarmUpCallbacks {
		warmUp(problem)
	}

	return problem, nil
}

func adaptResidual(compiled func(out, input []float64), n, m int) fun.Residual {
	return func(out, z, theta []float64) {
		if len(z) != n {
			chk.Panic("residual evaluator: len(z)=%d, expected n=%d", len(z), n)
		}
		if len(theta) != m {
			chk.Panic("residual evaluator: len(theta)=%d, expected m=%d", len(theta), m)
		}
		input := make([]float64, n+m)
		copy(input, z)
		copy(input[n:], theta)
		compiled(out, input)
	}
}

func warmUp(p *ParametricMCP) {
	z := make([]float64, p.N)
	theta := make([]float64, p.M)
	out := make([]float64, p.N)
	p.FEval(out, z, theta)
	p.JacZ.Eval(z, theta)
	if p.JacTheta != nil {
		p.JacTheta.Eval(z, theta)
	}
}
