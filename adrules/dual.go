// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adrules

import (
	"github.com/nlsolve/pmcp"
	"github.com/nlsolve/pmcp/la"
	"github.com/nlsolve/pmcp/sensitivity"
	"github.com/nlsolve/pmcp/solver"
)

// Dual is a first-order dual number: a value paired with a perturbation.
type Dual struct {
	Value float64
	Deriv float64
}

// NewDual builds a Dual from a value and perturbation.
func NewDual(value, deriv float64) Dual { return Dual{Value: value, Deriv: deriv} }

// DualSolution mirrors pmcp.Solution but with each z component re-wrapped
// as a Dual, per spec §4.6's forward-mode rule.
type DualSolution struct {
	Z      []Dual
	Status pmcp.Status
	Info   pmcp.Info
}

// Forward implements the forward-mode dual-number rule: solve at the
// underlying real values of theta, then ż = (∂z*/∂θ)·θ̇, returning the
// solution with each z re-wrapped as a dual carrying that perturbation.
// Status and info are forwarded unchanged.
func Forward(problem *pmcp.ParametricMCP, theta []Dual, solveOpts solver.Options, sensOpts sensitivity.Options) (*DualSolution, error) {
	m := len(theta)
	thetaVal := make([]float64, m)
	thetaDot := make([]float64, m)
	for i, t := range theta {
		thetaVal[i] = t.Value
		thetaDot[i] = t.Deriv
	}

	sol, err := solver.Solve(problem, thetaVal, solveOpts)
	if err != nil {
		return nil, err
	}

	jac, err := sensitivity.JacobianWrtTheta(problem, sol, thetaVal, sensOpts)
	if err != nil {
		return nil, err
	}

	n := problem.N
	zDot := la.NewVector(n)
	for i := 0; i < n; i++ {
		var s float64
		for j := 0; j < m; j++ {
			s += jac.At(i, j) * thetaDot[j]
		}
		zDot[i] = s
	}

	z := make([]Dual, n)
	for i := 0; i < n; i++ {
		z[i] = Dual{Value: sol.Z[i], Deriv: zDot[i]}
	}

	return &DualSolution{Z: z, Status: sol.Status, Info: sol.Info}, nil
}
