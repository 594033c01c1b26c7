// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solver

import (
	"fmt"

	"github.com/nlsolve/pmcp"
	"github.com/nlsolve/pmcp/log"
)

// Options are the recognized solve options.
type Options struct {
	InitialGuess             []float64
	Verbose                  bool
	WarnOnConvergenceFailure bool
	EnablePresolve           bool
	JacobianDataContiguous   bool
	ApproximateLinear        bool
}

// DefaultOptions returns the recognized defaults.
func DefaultOptions() Options {
	return Options{
		WarnOnConvergenceFailure: true,
		JacobianDataContiguous:   true,
	}
}

// Solve delegates to the external PATH solver. It never panics or returns
// an error for non-convergence: status communicates that, with an optional
// warning when WarnOnConvergenceFailure is set. Dimension mismatches between
// theta/initial_guess and the compiled problem are argument errors, returned
// as pmcp.ErrDimensionMismatch rather than panicked.
func Solve(p *pmcp.ParametricMCP, theta []float64, opts Options) (*pmcp.Solution, error) {
	if len(theta) != p.M {
		return nil, fmt.Errorf("solver.Solve: len(theta)=%d, expected m=%d: %w", len(theta), p.M, pmcp.ErrDimensionMismatch)
	}
	initialGuess := opts.InitialGuess
	if initialGuess == nil {
		initialGuess = make([]float64, p.N)
	} else if len(initialGuess) != p.N {
		return nil, fmt.Errorf("solver.Solve: len(initial_guess)=%d, expected n=%d: %w", len(initialGuess), p.N, pmcp.ErrDimensionMismatch)
	}

	logger := log.New(opts.Verbose)

	if opts.ApproximateLinear {
		return solveApproximateLinear(p, theta, initialGuess, opts, logger), nil
	}

	var linearIdx []int
	if opts.EnablePresolve {
		linearIdx = p.JacZ.ConstantEntries
	}

	z, statusCode, info := invokePath(p.N, p.LowerBounds, p.UpperBounds, initialGuess, theta, p.FEval, p.JacZ, opts.Verbose, linearIdx)
	status := decodeStatus(statusCode)

	if status != pmcp.StatusSolved && opts.WarnOnConvergenceFailure {
		logger.Warnw("pmcp: solver did not converge", "status", status.String(), "theta", theta)
	}

	return &pmcp.Solution{Z: z, Status: status, Info: info}, nil
}

// WarmSolve re-solves at theta using the prior solution's z as the initial
// guess, so a warm-started solve at a perturbed theta can land close to the
// new solution in one shot from the old one.
func WarmSolve(p *pmcp.ParametricMCP, prior *pmcp.Solution, theta []float64, opts Options) (*pmcp.Solution, error) {
	o := opts
	o.InitialGuess = prior.Z
	return Solve(p, theta, o)
}

func decodeStatus(code int) pmcp.Status {
	switch code {
	case 1:
		return pmcp.StatusSolved
	case 2:
		return pmcp.StatusNoProgress
	case 3:
		return pmcp.StatusMajorIterationLimit
	case 4:
		return pmcp.StatusMinorIterationLimit
	case 5:
		return pmcp.StatusTimeLimit
	case 6:
		return pmcp.StatusUserInterrupt
	case 7:
		return pmcp.StatusBoundError
	case 8:
		return pmcp.StatusDomainError
	case 9:
		return pmcp.StatusInternalError
	default:
		return pmcp.StatusOther
	}
}
