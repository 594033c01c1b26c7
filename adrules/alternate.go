// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adrules

import (
	"fmt"

	"github.com/nlsolve/pmcp"
	"github.com/nlsolve/pmcp/sensitivity"
	"github.com/nlsolve/pmcp/solver"
)

// Annotation mirrors the alternate AD engine's constant/non-constant tape
// annotations (spec §4.6).
type Annotation int

const (
	Const Annotation = iota
	NonConst
)

func checkAnnotations(problemAnnotation, thetaAnnotation Annotation) error {
	if problemAnnotation != Const {
		return fmt.Errorf("%w: problem must be annotated constant", pmcp.ErrInvalidADAnnotation)
	}
	if thetaAnnotation != NonConst {
		return fmt.Errorf("%w: theta must be annotated non-constant", pmcp.ErrInvalidADAnnotation)
	}
	return nil
}

// AlternateForward implements the alternate engine's forward rule: it
// accepts either a single perturbation or a batch of them (each row of
// thetaDot is one θ̇), producing one ż per row. problemAnnotation must be
// Const and thetaAnnotation must be NonConst, or ErrInvalidADAnnotation is
// returned (a constant θ would make differentiation vacuous; a
// non-constant problem is not supported).
func AlternateForward(problem *pmcp.ParametricMCP, problemAnnotation, thetaAnnotation Annotation, theta []float64, thetaDot [][]float64, solveOpts solver.Options, sensOpts sensitivity.Options) ([][]float64, *pmcp.Solution, error) {
	if err := checkAnnotations(problemAnnotation, thetaAnnotation); err != nil {
		return nil, nil, err
	}

	sol, err := solver.Solve(problem, theta, solveOpts)
	if err != nil {
		return nil, nil, err
	}
	jac, err := sensitivity.JacobianWrtTheta(problem, sol, theta, sensOpts)
	if err != nil {
		return nil, nil, err
	}

	n := problem.N
	zDots := make([][]float64, len(thetaDot))
	for b, td := range thetaDot {
		zd := make([]float64, n)
		for i := 0; i < n; i++ {
			var s float64
			for j := range td {
				s += jac.At(i, j) * td[j]
			}
			zd[i] = s
		}
		zDots[b] = zd
	}
	return zDots, sol, nil
}

// Tape is the alternate engine's augmented-primal/reverse pair (spec
// §4.6): AlternateAugmentedPrimal runs the primal solve and allocates a
// zero-initialized shadow for the caller to accumulate into; Reverse then
// consumes that shadow to produce ∂̄θ.
type Tape struct {
	problem  *pmcp.ParametricMCP
	sol      *pmcp.Solution
	theta    []float64
	shadow   []float64
	sensOpts sensitivity.Options
}

// AlternateAugmentedPrimal runs the forward (primal) phase of the
// alternate engine's reverse-mode pair.
func AlternateAugmentedPrimal(problem *pmcp.ParametricMCP, problemAnnotation, thetaAnnotation Annotation, theta []float64, solveOpts solver.Options, sensOpts sensitivity.Options) (*Tape, error) {
	if err := checkAnnotations(problemAnnotation, thetaAnnotation); err != nil {
		return nil, err
	}
	sol, err := solver.Solve(problem, theta, solveOpts)
	if err != nil {
		return nil, err
	}
	return &Tape{
		problem:  problem,
		sol:      sol,
		theta:    theta,
		shadow:   make([]float64, problem.N),
		sensOpts: sensOpts,
	}, nil
}

// Solution returns the primal solution cached by the augmented-primal phase.
func (t *Tape) Solution() *pmcp.Solution { return t.sol }

// Shadow returns the zero-initialized shadow vector of z for the caller to
// accumulate downstream cotangents into before calling Reverse.
func (t *Tape) Shadow() []float64 { return t.shadow }

// Reverse is the second (reverse) phase: it consumes the shadow
// accumulated since AlternateAugmentedPrimal and returns ∂̄θ.
func (t *Tape) Reverse() ([]float64, error) {
	jac, err := sensitivity.JacobianWrtTheta(t.problem, t.sol, t.theta, t.sensOpts)
	if err != nil {
		return nil, err
	}
	m := t.problem.M
	thetaBar := make([]float64, m)
	for j := 0; j < m; j++ {
		var s float64
		for i := 0; i < t.problem.N; i++ {
			s += jac.At(i, j) * t.shadow[i]
		}
		thetaBar[j] = s
	}
	return thetaBar, nil
}
