// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmcp

import (
	"errors"
	"testing"

	"github.com/nlsolve/pmcp/chk"
	"github.com/nlsolve/pmcp/la"
	"github.com/nlsolve/pmcp/symbolic"
)

// projectionResidual is the canonical projection MCP of spec §8.
func projectionResidual(z, theta []symbolic.Expr) []symbolic.Expr {
	return []symbolic.Expr{
		symbolic.Sub(symbolic.Scale(2, z[0]), symbolic.Add(z[2], symbolic.Scale(2, theta[0]))),
		symbolic.Sub(symbolic.Scale(2, z[1]), symbolic.Add(z[3], symbolic.Scale(2, theta[1]))),
		z[0],
		z[1],
	}
}

func projectionBounds() (la.Vector, la.Vector) {
	inf := 1e308 // stand-in for +∞/-∞ in tests
	return la.Vector{-inf, -inf, 0, 0}, la.Vector{inf, inf, inf, inf}
}

func TestCompileProjectionMCP(tst *testing.T) {

	chk.PrintTitle("CompileProjectionMCP. compiles and evaluates F, ∂F/∂z, ∂F/∂θ")

	lb, ub := projectionBounds()
	p, err := Compile(projectionResidual, lb, ub, 2, DefaultCompileOptions())
	if err != nil {
		tst.Fatalf("Compile: %v", err)
	}
	if p.ProblemSize() != 4 || p.ParameterDimension() != 2 {
		tst.Fatalf("unexpected sizes n=%d m=%d", p.ProblemSize(), p.ParameterDimension())
	}
	if !p.HasSensitivities() {
		tst.Fatal("expected sensitivities enabled by default")
	}

	z := []float64{1, 2, 3, 4}
	theta := []float64{5, 6}
	out := make([]float64, 4)
	p.FEval(out, z, theta)
	chk.Array(tst, "F", 1e-12, out, []float64{2*1 - 3 - 2*5, 2*2 - 4 - 2*6, 1, 2})
}

func TestCompileRejectsDimensionMismatch(tst *testing.T) {

	chk.PrintTitle("CompileRejectsDimensionMismatch. |lb| != |ub|")

	_, err := Compile(projectionResidual, la.Vector{0, 0}, la.Vector{1, 1, 1}, 2, DefaultCompileOptions())
	if !errors.Is(err, ErrDimensionMismatch) {
		tst.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCompileRejectsBadResidualLength(tst *testing.T) {

	chk.PrintTitle("CompileRejectsBadResidualLength. residual output length != n")

	badResidual := func(z, theta []symbolic.Expr) []symbolic.Expr {
		return []symbolic.Expr{z[0]}
	}
	lb, ub := projectionBounds()
	_, err := Compile(badResidual, lb, ub, 2, DefaultCompileOptions())
	if !errors.Is(err, ErrDimensionMismatch) {
		tst.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCompileZeroParameterDimension(tst *testing.T) {

	chk.PrintTitle("CompileZeroParameterDimension. m==0 must still compile")

	residual := func(z, theta []symbolic.Expr) []symbolic.Expr {
		return []symbolic.Expr{z[0], z[1]}
	}
	p, err := Compile(residual, la.Vector{0, 0}, la.Vector{1, 1}, 0, DefaultCompileOptions())
	if err != nil {
		tst.Fatalf("Compile: %v", err)
	}
	out := make([]float64, 2)
	p.FEval(out, []float64{7, 8}, nil)
	chk.Array(tst, "F", 1e-12, out, []float64{7, 8})
}
