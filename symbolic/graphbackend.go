// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// GraphBackend ("engine A") evaluates a traced expression by walking the
// DAG recursively, memoizing per-node values for the duration of a single
// call. This is the default backend.
type GraphBackend struct{ common }

// NewGraphBackend constructs the default symbolic backend.
func NewGraphBackend() *GraphBackend { return &GraphBackend{} }

func (GraphBackend) Name() string { return "graph" }

// BuildFunction code-generates an in-place evaluator `f!(out, input)`. The
// pmcp compiler only ever calls this with inPlace=true (the residual and
// Jacobian evaluators it wires into ParametricMCP are always in-place);
// inPlace=false is honored via BuildOutOfPlace instead, which has the
// right signature for an allocating call rather than overloading this
// one's.
func (GraphBackend) BuildFunction(g *Graph, outputs []Expr, inPlace bool) func(out, input []float64) {
	idxs := make([]int, len(outputs))
	for i, o := range outputs {
		idxs[i] = o.idx
	}
	nNodes := len(g.nodes)
	return func(out, input []float64) {
		vals := make([]float64, nNodes)
		done := make([]bool, nNodes)
		for i, idx := range idxs {
			out[i] = g.eval(idx, input, vals, done)
		}
	}
}

// BuildOutOfPlace is the allocating counterpart of BuildFunction: it
// returns a plain result = f(args) closure instead of shoehorning the
// result into an (out, input) pair.
func (b GraphBackend) BuildOutOfPlace(g *Graph, outputs []Expr) func(input []float64) []float64 {
	f := b.BuildFunction(g, outputs, true)
	n := len(outputs)
	return func(input []float64) []float64 {
		out := make([]float64, n)
		f(out, input)
		return out
	}
}
