// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"go.uber.org/zap"

	"github.com/nlsolve/pmcp"
	"github.com/nlsolve/pmcp/la"
	"github.com/nlsolve/pmcp/sparsefunc"
)

// solveApproximateLinear implements the approximate_linear fast path of
// spec §4.4: freeze M = ∂F/∂z and q = F(·) at initial_guess, then solve the
// affine problem F_lin(w) = q + M*w over the shifted variable w = z -
// initial_guess, so every non-zero of M becomes a presolve linear element.
// The returned solution is shifted back into z before being handed to the
// caller.
func solveApproximateLinear(p *pmcp.ParametricMCP, theta, initialGuess []float64, opts Options, logger *zap.SugaredLogger) *pmcp.Solution {
	n := p.N

	p.JacZ.Eval(initialGuess, theta)
	m := make([]float64, p.JacZ.NNZ())
	copy(m, p.JacZ.Data)

	q := make([]float64, n)
	p.FEval(q, initialGuess, theta)

	// A frozen sparse function: same pattern as JacZ, but Eval always
	// rewrites the values captured at initial_guess regardless of (z,
	// theta), since M is held fixed for the whole linearized solve.
	frozenJacZ := sparsefunc.New(n, n, p.JacZ.RowIdx, p.JacZ.ColPtr, allEntries(len(m)), func(data, z, theta []float64) {
		copy(data, m)
	})
	frozenJacZ.Eval(nil, nil)

	residual := func(out, w, theta []float64) {
		la.SpMatVec(out, p.JacZ.RowIdx, p.JacZ.ColPtr, m, w)
		for i := range out {
			out[i] += q[i]
		}
	}

	lb := make([]float64, n)
	ub := make([]float64, n)
	for i := 0; i < n; i++ {
		lb[i] = p.LowerBounds[i] - initialGuess[i]
		ub[i] = p.UpperBounds[i] - initialGuess[i]
	}
	w0 := make([]float64, n) // z = initial_guess <=> w = 0

	linearIdx := allEntries(len(m))

	w, statusCode, info := invokePath(n, lb, ub, w0, theta, residual, frozenJacZ, opts.Verbose, linearIdx)
	status := decodeStatus(statusCode)

	z := make([]float64, n)
	for i := 0; i < n; i++ {
		z[i] = w[i] + initialGuess[i]
	}

	if status != pmcp.StatusSolved && opts.WarnOnConvergenceFailure {
		logger.Warnw("pmcp: linearized solver did not converge", "status", status.String(), "theta", theta)
	}

	return &pmcp.Solution{Z: z, Status: status, Info: info}
}

func allEntries(nnz int) []int {
	idx := make([]int, nnz)
	for i := range idx {
		idx[i] = i
	}
	return idx
}
