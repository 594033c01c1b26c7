// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chk provides small panic-based precondition checks and
// test-assertion helpers, used throughout pmcp for invariants that should
// never fail given the package's own internal guarantees (as opposed to
// user-facing argument errors, which are returned, never panicked).
package chk

import (
	"fmt"
	"math"
	"testing"
)

// Panic formats msg with args and panics. Reserved for internal invariant
// violations, never for user input validation (see pmcp/errors.go for
// that).
func Panic(msg string, args ...interface{}) {
	panic(fmt.Sprintf(msg, args...))
}

// EnsureEqualInt panics if a != b. Used for internal shape invariants, e.g.
// that a sparsity pattern's row/col slices have matching lengths.
func EnsureEqualInt(label string, a, b int) {
	if a != b {
		Panic("%s: expected %d == %d", label, a, b)
	}
}

// PrintTitle prints a banner line to delimit one section of test output
// from the next.
func PrintTitle(title string) {
	fmt.Printf("\n=============== %s ===============\n", title)
}

// Array fails tst if the two slices differ by more than tol in any entry.
func Array(tst *testing.T, label string, tol float64, a, b []float64) {
	if len(b) == 0 {
		return
	}
	if len(a) != len(b) {
		tst.Fatalf("%s: length mismatch %d != %d", label, len(a), len(b))
		return
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			tst.Fatalf("%s: a[%d]=%v b[%d]=%v diff=%v > tol=%v", label, i, a[i], i, b[i], math.Abs(a[i]-b[i]), tol)
		}
	}
}

// Ints fails tst if the two int slices are not identical.
func Ints(tst *testing.T, label string, a, b []int) {
	if len(a) != len(b) {
		tst.Fatalf("%s: length mismatch %d != %d", label, len(a), len(b))
		return
	}
	for i := range a {
		if a[i] != b[i] {
			tst.Fatalf("%s: a[%d]=%d b[%d]=%d", label, i, a[i], i, b[i])
		}
	}
}
