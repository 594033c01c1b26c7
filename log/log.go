// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log wires structured, leveled logging into the solver driver and
// sensitivity core. Verbosity is controlled the same way the
// PATH-facing options surface it: a single verbose bool, not a configured
// level, since this layer has no long-running process to tune in place.
package log

import "go.uber.org/zap"

// New builds a SugaredLogger at Debug level (zap's development default) when
// verbose is true, Warn level otherwise (so non-convergence warnings still surface by default).
func New(verbose bool) *zap.SugaredLogger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		// Falls back to a no-op logger; logging must never be load-bearing
		// for correctness of the solve/compile path.
		return zap.NewNop().Sugar()
	}
	return logger.Sugar()
}

// Nop returns a logger that discards everything, for call sites that did
// not request verbosity and have no other logger to hand in.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}
