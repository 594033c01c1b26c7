// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package la collects the linear-algebra helpers pmcp needs: plain vectors,
// a CSC matrix-vector product, and a rank-revealing QR solve on
// gonum.org/v1/gonum/mat dense matrices used by the sensitivity core.
package la

import "math"

// Vector is a plain real vector, kept as a named type (rather than a bare
// []float64) so call sites read uniformly across this package.
type Vector []float64

// NewVector allocates a zeroed vector of length n.
func NewVector(n int) Vector {
	return make(Vector, n)
}

// Norm returns the Euclidean norm of v.
func (v Vector) Norm() float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return math.Sqrt(s)
}

// Clone returns a fresh copy of v.
func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}
