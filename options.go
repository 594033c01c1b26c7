// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package pmcp

import "github.com/nlsolve/pmcp/symbolic"

// CompileOptions are the recognized options for Compile (spec §6).
type CompileOptions struct {
	// Sensitivities controls whether ∂F/∂theta is derived and the
	// resulting ParametricMCP can answer JacobianWrtTheta. Default true.
	Sensitivities bool

	// Backend selects the symbolic engine. Default symbolic.NewGraphBackend().
	Backend symbolic.Backend

	// WarmUpCallbacks runs a one-shot warm-up call of every evaluator with
	// zero inputs before Compile returns, amortizing any first-call cost.
	// Default true.
	WarmUpCallbacks bool

	// BackendOptions is an opaque map for backend-specific tuning. Compile
	// does not pass it to the backend, and neither backend in this repo
	// reads it.
	BackendOptions map[string]any
}

// DefaultCompileOptions returns the recognized defaults of spec §6.
func DefaultCompileOptions() CompileOptions {
	return CompileOptions{
		Sensitivities:    true,
		Backend:          symbolic.NewGraphBackend(),
		WarmUpCallbacks:  true,
	}
}
