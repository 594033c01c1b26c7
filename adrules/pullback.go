// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package adrules packages the implicit differentiation core (package
// sensitivity) into the three AD-rule shapes of spec §4.6: a lazy
// reverse-mode pullback, a forward-mode dual-number rule, and a
// forward/reverse pair annotated for an alternate AD engine.
package adrules

import (
	"github.com/nlsolve/pmcp"
	"github.com/nlsolve/pmcp/sensitivity"
)

// Pullback is the reverse-mode rule of spec §4.6: given a primal solve
// already performed, it produces ∂̄θ = (∂z*/∂θ)ᵀ·∂̄z on demand. The
// sensitivity Jacobian is computed at most once, on the first call to
// ThetaCotangent, never eagerly at construction — "the pullback is lazy."
type Pullback struct {
	problem *pmcp.ParametricMCP
	sol     *pmcp.Solution
	theta   []float64
	opts    sensitivity.Options

	jac      jacobianLike
	computed bool
}

// jacobianLike is the narrow read access this package needs out of a
// *mat.Dense without importing gonum/mat into this file's signature.
type jacobianLike interface {
	At(i, j int) float64
}

// NewPullback captures the forward pass (problem, solution, theta) that a
// reverse-mode rule needs to later differentiate; it performs no work
// itself.
func NewPullback(problem *pmcp.ParametricMCP, sol *pmcp.Solution, theta []float64, opts sensitivity.Options) *Pullback {
	return &Pullback{problem: problem, sol: sol, theta: theta, opts: opts}
}

// ThetaCotangent forces the sensitivity computation on first call (caching
// the result for any subsequent call) and returns ∂̄θ = (∂z*/∂θ)ᵀ·zBar.
func (pb *Pullback) ThetaCotangent(zBar []float64) ([]float64, error) {
	if !pb.computed {
		jac, err := sensitivity.JacobianWrtTheta(pb.problem, pb.sol, pb.theta, pb.opts)
		if err != nil {
			return nil, err
		}
		pb.jac = jac
		pb.computed = true
	}
	m := pb.problem.M
	thetaBar := make([]float64, m)
	for j := 0; j < m; j++ {
		var s float64
		for i := 0; i < pb.problem.N; i++ {
			s += pb.jac.At(i, j) * zBar[i]
		}
		thetaBar[j] = s
	}
	return thetaBar, nil
}

// ProblemCotangent is structurally zero: ParametricMCP is not
// differentiable (spec §4.6).
func (pb *Pullback) ProblemCotangent() *pmcp.ParametricMCP { return nil }
