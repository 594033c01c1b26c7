// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pmcp compiles a user-supplied residual map F(z, θ) with box
// bounds lb ≤ z ≤ ub into a reusable ParametricMCP that can be solved for a
// concrete θ by delegating to an external complementarity solver (package
// solver, wrapping PATH), and differentiated via the implicit function
// theorem (package sensitivity) and the AD rule glue (package adrules).
//
// A compiled ParametricMCP owns mutable scratch buffers (its Jacobian
// evaluators' CSC matrices) and is therefore not safe to call Solve or
// JacobianWrtTheta on concurrently from multiple goroutines; callers
// needing parallelism should compile one instance per worker.
package pmcp

import (
	"github.com/nlsolve/pmcp/fun"
	"github.com/nlsolve/pmcp/la"
	"github.com/nlsolve/pmcp/sparsefunc"
)

// ParametricMCP is the compiled, reusable problem handle of spec §3.
// Created once by Compile and immutable thereafter (its exported fields
// should be treated as read-only); safe to share read-only across many
// solver.Solve calls, but see the package doc for the scratch-buffer
// concurrency caveat.
type ParametricMCP struct {
	// FEval writes F(z, theta) into out. len(out) == N.
	FEval fun.Residual

	// JacZ is ∂F/∂z: an N×N sparse evaluator with a fixed pattern.
	JacZ *sparsefunc.SparseFunction

	// JacTheta is ∂F/∂theta, an N×M sparse evaluator, or nil when the
	// problem was compiled with Sensitivities: false.
	JacTheta *sparsefunc.SparseFunction

	LowerBounds la.Vector
	UpperBounds la.Vector

	N int // problem size (decision vector length)
	M int // parameter dimension
}

// ProblemSize returns n, the length of the decision vector z.
func (p *ParametricMCP) ProblemSize() int { return p.N }

// ParameterDimension returns m, the length of the parameter vector theta.
func (p *ParametricMCP) ParameterDimension() int { return p.M }

// HasSensitivities reports whether the problem was compiled with the
// ∂F/∂theta evaluator needed by JacobianWrtTheta.
func (p *ParametricMCP) HasSensitivities() bool { return p.JacTheta != nil }

// Status is the tagged outcome of a solve, passed through from the
// external solver (spec §6 "Status taxonomy").
type Status int

const (
	// StatusSolved denotes convergence.
	StatusSolved Status = iota
	StatusNoProgress
	StatusMajorIterationLimit
	StatusMinorIterationLimit
	StatusTimeLimit
	StatusUserInterrupt
	StatusBoundError
	StatusDomainError
	StatusInternalError
	StatusOther
)

func (s Status) String() string {
	switch s {
	case StatusSolved:
		return "Solved"
	case StatusNoProgress:
		return "NoProgress"
	case StatusMajorIterationLimit:
		return "MajorIterationLimit"
	case StatusMinorIterationLimit:
		return "MinorIterationLimit"
	case StatusTimeLimit:
		return "TimeLimit"
	case StatusUserInterrupt:
		return "UserInterrupt"
	case StatusBoundError:
		return "BoundError"
	case StatusDomainError:
		return "DomainError"
	case StatusInternalError:
		return "InternalError"
	default:
		return "Other"
	}
}

// Info is an opaque diagnostics bag copied from the solver (iteration
// counts, residual norms, etc.); never mutated after a solve returns.
type Info map[string]float64

// Solution is produced by each solver.Solve call and owned by the caller.
type Solution struct {
	Z      la.Vector
	Status Status
	Info   Info
}
