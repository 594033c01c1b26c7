// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package la

import (
	"math"

	"gonum.org/v1/gonum/blas"
	lapackgo "gonum.org/v1/gonum/lapack/gonum"
	"gonum.org/v1/gonum/mat"
)

// lapack is the pure-Go LAPACK implementation: lapack64 doesn't expose a
// column-pivoted QR (Geqp3), only plain Geqrf, so this package calls the
// lower-level Implementation directly.
var lapack = lapackgo.Implementation{}

// SolveQRCP solves A*X = B in the least-squares sense using a QR
// factorization with column pivoting, degrading gracefully (minimum-norm
// style least squares) when A is rank-deficient instead of producing NaNs.
// Plain unpivoted QR (gonum's mat.QR) silently blows up on a singular
// A[I,I], which degenerate active sets produce in practice. It also
// returns the numerical rank estimate used to make that call.
func SolveQRCP(A *mat.Dense, B *mat.Dense) (*mat.Dense, int) {
	r, c := A.Dims()
	_, nrhs := B.Dims()

	// Dgeqp3 operates on the raw backing array in-place; work on a copy so
	// the caller's A is left untouched.
	work := mat.DenseCopyOf(A)
	raw := work.RawMatrix()

	// jpvt[j] == -1 marks column j as free to pivot; any value >= 0 would
	// pin it as a leading column and disable pivoting for it.
	jpvt := make([]int, c)
	for j := range jpvt {
		jpvt[j] = -1
	}
	tau := make([]float64, min(r, c))

	// Workspace-size query: lwork=-1 asks Dgeqp3 to report the optimal
	// work length in work[0] instead of factorizing; work must still be
	// non-empty for the query itself.
	wk := make([]float64, 1)
	lapack.Dgeqp3(r, c, raw.Data, raw.Stride, jpvt, tau, wk, -1)
	wk = make([]float64, int(wk[0]))
	lapack.Dgeqp3(r, c, raw.Data, raw.Stride, jpvt, tau, wk, len(wk))

	// Determine numerical rank from the diagonal of R against the largest
	// diagonal entry's magnitude; this is the "rank-revealing" part.
	rank := 0
	if r > 0 && c > 0 {
		maxAbs := math.Abs(work.At(0, 0))
		const relTol = 1e-10
		for i := 0; i < min(r, c); i++ {
			d := math.Abs(work.At(i, i))
			if d > relTol*maxAbs {
				rank = i + 1
			}
		}
	}

	// Apply Q^T to B: B := Q^T * B.
	qb := mat.DenseCopyOf(B)
	qbRaw := qb.RawMatrix()
	nref := min(r, c)

	wk2 := make([]float64, 1)
	lapack.Dormqr(blas.Left, blas.Trans, qbRaw.Rows, qbRaw.Cols, nref, raw.Data, raw.Stride, tau, qbRaw.Data, qbRaw.Stride, wk2, -1)
	wk2 = make([]float64, int(wk2[0]))
	lapack.Dormqr(blas.Left, blas.Trans, qbRaw.Rows, qbRaw.Cols, nref, raw.Data, raw.Stride, tau, qbRaw.Data, qbRaw.Stride, wk2, len(wk2))

	// Back-substitute R[:rank,:rank] * Y = (Q^T B)[:rank,:] for the
	// pivoted unknowns; unused (rank-deficient) pivot columns get zero,
	// which is exactly the minimum-norm-style degradation called for above.
	y := mat.NewDense(c, nrhs, nil)
	for k := 0; k < nrhs; k++ {
		for i := rank - 1; i >= 0; i-- {
			sum := qb.At(i, k)
			for j := i + 1; j < rank; j++ {
				sum -= work.At(i, j) * y.At(j, k)
			}
			if work.At(i, i) == 0 {
				continue
			}
			y.Set(i, k, sum/work.At(i, i))
		}
	}

	// Undo the column permutation: X[jpvt[j], :] = Y[j, :].
	x := mat.NewDense(c, nrhs, nil)
	for j := 0; j < c; j++ {
		pj := jpvt[j]
		for k := 0; k < nrhs; k++ {
			x.Set(pj, k, y.At(j, k))
		}
	}
	return x, rank
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
