// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adrules

import (
	"testing"

	"github.com/nlsolve/pmcp"
	"github.com/nlsolve/pmcp/chk"
	"github.com/nlsolve/pmcp/la"
	"github.com/nlsolve/pmcp/sensitivity"
	"github.com/nlsolve/pmcp/symbolic"
)

func projectionResidual(z, theta []symbolic.Expr) []symbolic.Expr {
	return []symbolic.Expr{
		symbolic.Sub(symbolic.Scale(2, z[0]), symbolic.Add(z[2], symbolic.Scale(2, theta[0]))),
		symbolic.Sub(symbolic.Scale(2, z[1]), symbolic.Add(z[3], symbolic.Scale(2, theta[1]))),
		z[0],
		z[1],
	}
}

func compileProjection(tst *testing.T) *pmcp.ParametricMCP {
	inf := 1e308
	lb := la.Vector{-inf, -inf, 0, 0}
	ub := la.Vector{inf, inf, inf, inf}
	p, err := pmcp.Compile(projectionResidual, lb, ub, 2, pmcp.DefaultCompileOptions())
	if err != nil {
		tst.Fatalf("Compile: %v", err)
	}
	return p
}

func TestPullbackIsLazyAndCorrect(tst *testing.T) {

	chk.PrintTitle("PullbackIsLazyAndCorrect. ∂̄θ = (∂z*/∂θ)ᵀ·∂̄z")

	p := compileProjection(tst)
	theta := []float64{1, 0}
	sol := &pmcp.Solution{Z: la.Vector{1, 0, 0, 0}, Status: pmcp.StatusSolved}

	pb := NewPullback(p, sol, theta, sensitivity.DefaultOptions())
	if pb.computed {
		tst.Fatal("expected sensitivity not yet computed before first ThetaCotangent call")
	}

	thetaBar, err := pb.ThetaCotangent([]float64{1, 1, 0, 0})
	if err != nil {
		tst.Fatalf("ThetaCotangent: %v", err)
	}
	if !pb.computed {
		tst.Fatal("expected sensitivity computed after first ThetaCotangent call")
	}
	chk.Array(tst, "thetaBar", 1e-9, thetaBar, []float64{1, 1})

	if pb.ProblemCotangent() != nil {
		tst.Fatal("expected structurally-zero problem cotangent")
	}
}
