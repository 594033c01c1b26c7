// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/nlsolve/pmcp/chk"
)

func TestSolveQRCPFullRank(tst *testing.T) {

	chk.PrintTitle("SolveQRCPFullRank. well-conditioned square solve")

	A := mat.NewDense(2, 2, []float64{2, 0, 0, 3})
	B := mat.NewDense(2, 1, []float64{4, 9})

	X, rank := SolveQRCP(A, B)
	chk.Array(tst, "x", 1e-9, []float64{X.At(0, 0), X.At(1, 0)}, []float64{2, 3})
	if rank != 2 {
		tst.Fatalf("expected full rank 2, got %d", rank)
	}
}

func TestSolveQRCPRankDeficient(tst *testing.T) {

	chk.PrintTitle("SolveQRCPRankDeficient. singular A degrades gracefully")

	// A is rank-1 (second row is a multiple of the first): an unpivoted
	// solve would blow up, this one must still return a finite result.
	A := mat.NewDense(2, 2, []float64{1, 1, 2, 2})
	B := mat.NewDense(2, 1, []float64{1, 2})

	X, rank := SolveQRCP(A, B)
	if rank != 1 {
		tst.Fatalf("expected rank-deficient rank 1, got %d", rank)
	}
	for i := 0; i < 2; i++ {
		v := X.At(i, 0)
		if v != v { // NaN check
			tst.Fatalf("expected finite result, got NaN at row %d", i)
		}
	}
}
