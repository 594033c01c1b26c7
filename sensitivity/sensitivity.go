// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sensitivity implements the implicit differentiation core: from a
// primal solution, it computes ∂z*/∂θ restricted to the strictly inactive
// index set via a rank-revealing QR solve (la.SolveQRCP).
package sensitivity

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/nlsolve/pmcp"
	"github.com/nlsolve/pmcp/la"
	"github.com/nlsolve/pmcp/log"
)

// DefaultActiveTolerance is τ in the strictly-inactive predicate: z[i] is
// strictly inactive when it sits at least τ away from both bounds.
const DefaultActiveTolerance = 1e-3

// Options recognizes active_tolerance and a verbose trace flag.
type Options struct {
	ActiveTolerance float64
	Verbose         bool
}

// DefaultOptions returns τ = DefaultActiveTolerance and Verbose = false.
func DefaultOptions() Options {
	return Options{ActiveTolerance: DefaultActiveTolerance}
}

// JacobianWrtTheta computes ∂z*/∂θ, an n×m dense matrix whose rows outside
// the strictly inactive index set are zero. Fails with
// pmcp.ErrSensitivitiesDisabled when the problem was compiled with
// Sensitivities: false.
func JacobianWrtTheta(p *pmcp.ParametricMCP, sol *pmcp.Solution, theta []float64, opts Options) (*mat.Dense, error) {
	if !p.HasSensitivities() {
		return nil, fmt.Errorf("sensitivity.JacobianWrtTheta: %w", pmcp.ErrSensitivitiesDisabled)
	}
	logger := log.New(opts.Verbose)
	n, m := p.N, p.M
	tau := opts.ActiveTolerance
	if tau == 0 {
		tau = DefaultActiveTolerance
	}

	z := sol.Z
	inactive := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if z[i] >= p.LowerBounds[i]+tau && z[i] <= p.UpperBounds[i]-tau {
			inactive = append(inactive, i)
		}
	}
	logger.Infow("pmcp: sensitivity strictly-inactive set", "n", n, "inactive", len(inactive))

	result := mat.NewDense(n, m, nil)
	if len(inactive) == 0 || m == 0 {
		return result, nil
	}

	p.JacZ.Eval(z, theta)
	p.JacTheta.Eval(z, theta)

	k := len(inactive)
	A := mat.NewDense(k, k, nil)
	scatterRowsCols(A, p.JacZ.RowIdx, p.JacZ.ColPtr, p.JacZ.Data, inactive, inactive, n)

	B := mat.NewDense(k, m, nil)
	scatterRowsCols(B, p.JacTheta.RowIdx, p.JacTheta.ColPtr, p.JacTheta.Data, inactive, nil, m)

	negA := mat.NewDense(k, k, nil)
	negA.Scale(-1, A)

	sub, rank := la.SolveQRCP(negA, B)
	logger.Infow("pmcp: sensitivity QR solve", "k", k, "rank", rank)

	for r, i := range inactive {
		for c := 0; c < m; c++ {
			result.Set(i, c, sub.At(r, c))
		}
	}
	return result, nil
}

// scatterRowsCols densifies the submatrix of a CSC pattern (rowIdx, colPtr,
// data) restricted to rows and (if non-nil) cols; when cols is nil, every
// column of the source (0..width-1) is kept, matching B's full m-column
// width. The (row, col) -> index maps keep this simple since the active
// sets are typically small relative to n.
func scatterRowsCols(dst *mat.Dense, rowIdx, colPtr []int, data []float64, rows, cols []int, width int) {
	rowIndex := make(map[int]int, len(rows))
	for r, i := range rows {
		rowIndex[i] = r
	}
	var colIndex map[int]int
	if cols != nil {
		colIndex = make(map[int]int, len(cols))
		for c, j := range cols {
			colIndex[j] = c
		}
	}

	for j := 0; j < width; j++ {
		dstCol := j
		if colIndex != nil {
			cj, ok := colIndex[j]
			if !ok {
				continue
			}
			dstCol = cj
		}
		for k := colPtr[j]; k < colPtr[j+1]; k++ {
			i := rowIdx[k]
			ri, ok := rowIndex[i]
			if !ok {
				continue
			}
			dst.Set(ri, dstCol, data[k])
		}
	}
}
