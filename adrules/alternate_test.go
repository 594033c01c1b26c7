// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package adrules

import (
	"errors"
	"testing"

	"github.com/nlsolve/pmcp"
	"github.com/nlsolve/pmcp/chk"
	"github.com/nlsolve/pmcp/sensitivity"
	"github.com/nlsolve/pmcp/solver"
)

// These annotation checks short-circuit before any solver.Solve call, so
// they never invoke the external PATH solver at run time (the test binary
// still links package solver and therefore the PATH library).

func TestAlternateForwardRejectsConstantTheta(tst *testing.T) {

	chk.PrintTitle("AlternateForwardRejectsConstantTheta. vacuous differentiation")

	p := compileProjection(tst)
	_, _, err := AlternateForward(p, Const, Const, []float64{1, 0}, nil, solver.DefaultOptions(), sensitivity.DefaultOptions())
	if !errors.Is(err, pmcp.ErrInvalidADAnnotation) {
		tst.Fatalf("expected ErrInvalidADAnnotation, got %v", err)
	}
}

func TestAlternateForwardRejectsNonConstantProblem(tst *testing.T) {

	chk.PrintTitle("AlternateForwardRejectsNonConstantProblem. unsupported annotation")

	p := compileProjection(tst)
	_, _, err := AlternateForward(p, NonConst, NonConst, []float64{1, 0}, nil, solver.DefaultOptions(), sensitivity.DefaultOptions())
	if !errors.Is(err, pmcp.ErrInvalidADAnnotation) {
		tst.Fatalf("expected ErrInvalidADAnnotation, got %v", err)
	}
}

func TestAlternateAugmentedPrimalRejectsBadAnnotations(tst *testing.T) {

	chk.PrintTitle("AlternateAugmentedPrimalRejectsBadAnnotations. tape construction guard")

	p := compileProjection(tst)
	_, err := AlternateAugmentedPrimal(p, Const, Const, []float64{1, 0}, solver.DefaultOptions(), sensitivity.DefaultOptions())
	if !errors.Is(err, pmcp.ErrInvalidADAnnotation) {
		tst.Fatalf("expected ErrInvalidADAnnotation, got %v", err)
	}
}
