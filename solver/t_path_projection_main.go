// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// +build ignore

package main

import (
	"math"

	"github.com/nlsolve/pmcp"
	"github.com/nlsolve/pmcp/chk"
	"github.com/nlsolve/pmcp/io"
	"github.com/nlsolve/pmcp/la"
	"github.com/nlsolve/pmcp/solver"
	"github.com/nlsolve/pmcp/symbolic"
)

// Requires the external PATH solver to be linked (see path.go's LDFLAGS);
// run with `go run -tags ignore` against a build that can resolve -lpath.
func main() {

	inf := math.Inf(1)
	lb := la.Vector{math.Inf(-1), math.Inf(-1), 0, 0}
	ub := la.Vector{inf, inf, inf, inf}

	residual := func(z, theta []symbolic.Expr) []symbolic.Expr {
		return []symbolic.Expr{
			symbolic.Sub(symbolic.Scale(2, z[0]), symbolic.Add(z[2], symbolic.Scale(2, theta[0]))),
			symbolic.Sub(symbolic.Scale(2, z[1]), symbolic.Add(z[3], symbolic.Scale(2, theta[1]))),
			z[0],
			z[1],
		}
	}

	problem, err := pmcp.Compile(residual, lb, ub, 2, pmcp.DefaultCompileOptions())
	if err != nil {
		chk.Panic("compile failed: %v", err)
	}

	io.Pf("--- direct solve ---\n")
	theta := []float64{1, 0}
	sol, err := solver.Solve(problem, theta, solver.DefaultOptions())
	if err != nil {
		chk.Panic("solve failed: %v", err)
	}
	io.Pf("status=%s z=%v\n", sol.Status, sol.Z)

	io.Pf("--- approximate_linear fast path ---\n")
	linOpts := solver.DefaultOptions()
	linOpts.ApproximateLinear = true
	linOpts.InitialGuess = []float64{0, 0, 0, 0}
	linSol, err := solver.Solve(problem, theta, linOpts)
	if err != nil {
		chk.Panic("linearized solve failed: %v", err)
	}
	io.Pf("status=%s z=%v\n", linSol.Status, linSol.Z)

	io.Pf("--- warm-started solve (scenario E) ---\n")
	thetaPrime := []float64{1.01, 0.01}
	warm, err := solver.WarmSolve(problem, sol, thetaPrime, solver.DefaultOptions())
	if err != nil {
		chk.Panic("warm solve failed: %v", err)
	}
	io.Pf("status=%s z=%v\n", warm.Status, warm.Z)
}
