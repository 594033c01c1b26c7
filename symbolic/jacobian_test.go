// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

import (
	"testing"

	"github.com/nlsolve/pmcp/chk"
)

// projectionResidual builds the canonical projection MCP's symbolic
// residual: F(z,θ) = [2z1-z3-2θ1, 2z2-z4-2θ2, z1, z2].
func projectionResidual(g *Graph, z, theta []Expr) []Expr {
	return []Expr{
		Sub(Scale(2, z[0]), Add(z[2], Scale(2, theta[0]))),
		Sub(Scale(2, z[1]), Add(z[3], Scale(2, theta[1]))),
		z[0],
		z[1],
	}
}

func TestSparseJacobianPatternAndConstants(tst *testing.T) {

	chk.PrintTitle("SparseJacobianPatternAndConstants. projection MCP ∂F/∂z")

	g := NewGraph(6)
	z := g.MakeVariables(4)
	theta := g.MakeVariables(2)
	f := projectionResidual(g, z, theta)

	jac := SparseJacobian(g, f, z)

	if jac.Rows != 4 || jac.Cols != 4 {
		tst.Fatalf("expected 4x4, got %dx%d", jac.Rows, jac.Cols)
	}

	// Every non-zero of ∂F/∂z is a constant (no z-dependence on the
	// coefficients themselves), so every entry should land in
	// ConstantEntries.
	if len(jac.ConstantEntries) != len(jac.RowIdx) {
		tst.Fatalf("expected all %d entries constant, got %d", len(jac.RowIdx), len(jac.ConstantEntries))
	}

	// Pattern stability: re-deriving from the same graph/outputs yields an
	// identical CSC pattern.
	jac2 := SparseJacobian(g, f, z)
	chk.Ints(tst, "RowIdx", jac.RowIdx, jac2.RowIdx)
	chk.Ints(tst, "ColPtr", jac.ColPtr, jac2.ColPtr)
}

func TestSparseJacobianWrtTheta(tst *testing.T) {

	chk.PrintTitle("SparseJacobianWrtTheta. projection MCP ∂F/∂θ")

	g := NewGraph(6)
	z := g.MakeVariables(4)
	theta := g.MakeVariables(2)
	f := projectionResidual(g, z, theta)

	jacTheta := SparseJacobian(g, f, theta)
	if jacTheta.Rows != 4 || jacTheta.Cols != 2 {
		tst.Fatalf("expected 4x2, got %dx%d", jacTheta.Rows, jacTheta.Cols)
	}
	// Rows 2,3 (z1, z2 rows) do not depend on theta at all.
	nnz := len(jacTheta.RowIdx)
	if nnz != 2 {
		tst.Fatalf("expected 2 non-zeros (rows 0,1 only), got %d", nnz)
	}
}

func TestGradientMatchesSparseJacobian(tst *testing.T) {

	chk.PrintTitle("GradientMatchesSparseJacobian. dense vs sparse agreement")

	g := NewGraph(6)
	z := g.MakeVariables(4)
	theta := g.MakeVariables(2)
	f := projectionResidual(g, z, theta)

	input := []float64{1, 2, 3, 4, 5, 6}
	dense := Jacobian(g, f, z, input)

	jac := SparseJacobian(g, f, z)
	data := make([]float64, len(jac.RowIdx))
	jac.Eval(data, input[:4], input[4:])

	// Reconstruct the dense matrix from CSC and compare.
	got := make([][]float64, 4)
	for i := range got {
		got[i] = make([]float64, 4)
	}
	for col := 0; col < jac.Cols; col++ {
		for k := jac.ColPtr[col]; k < jac.ColPtr[col+1]; k++ {
			row := jac.RowIdx[k]
			got[row][col] = data[k]
		}
	}
	for i := range dense {
		chk.Array(tst, "row", 1e-12, dense[i], got[i])
	}
}
