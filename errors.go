// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmcp

import "errors"

// Sentinel errors for the recognized argument-error kinds. Dimension
// mismatches and missing-sensitivities requests are pre-condition checks
// returned to the caller, never panicked; user-residual exceptions (panics
// raised by the caller's own f) propagate unchanged and are not wrapped
// here.
var (
	// ErrDimensionMismatch covers |lb| != |ub|, lb[i] > ub[i], m < 0,
	// residual output length != n, |theta| != m, and |initial_guess| != n.
	ErrDimensionMismatch = errors.New("pmcp: dimension mismatch")

	// ErrSensitivitiesDisabled is returned by JacobianWrtTheta when the
	// problem was compiled with Sensitivities: false.
	ErrSensitivitiesDisabled = errors.New("pmcp: sensitivities were disabled at compile time")

	// ErrInvalidADAnnotation is returned by the alternate-engine AD
	// integration (package adrules) when theta is annotated constant or
	// problem is annotated non-constant.
	ErrInvalidADAnnotation = errors.New("pmcp: invalid AD annotation")
)
