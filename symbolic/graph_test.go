// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

import (
	"testing"

	"github.com/nlsolve/pmcp/chk"
)

func TestGraphEvalArith(tst *testing.T) {

	chk.PrintTitle("GraphEvalArith. basic expression evaluation")

	g := NewGraph(2)
	vars := g.MakeVariables(2)
	x, y := vars[0], vars[1]

	// f = 2*x - y/2 + 3
	expr := Add(Sub(Scale(2, x), Div(y, g.Const(2))), g.Const(3))

	got := g.EvalAll([]Expr{expr}, []float64{4, 6})
	want := 2*4.0 - 6.0/2 + 3
	chk.Array(tst, "f(4,6)", 1e-12, got, []float64{want})
}

func TestGraphEvalPow(tst *testing.T) {

	chk.PrintTitle("GraphEvalPow. integer powers")

	g := NewGraph(1)
	vars := g.MakeVariables(1)
	x := vars[0]
	expr := Pow(x, 3)

	got := g.EvalAll([]Expr{expr}, []float64{2})
	if got[0] != 8 {
		tst.Fatalf("x^3 at x=2: got %v, want 8", got[0])
	}
}

func TestGraphZeroDim(tst *testing.T) {

	chk.PrintTitle("GraphZeroDim. dim==0 MakeVariables must still succeed")

	g := NewGraph(0)
	vars := g.MakeVariables(0)
	if len(vars) != 0 {
		tst.Fatalf("expected zero-length variable vector, got %d", len(vars))
	}
}
