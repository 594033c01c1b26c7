// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// TapeBackend ("engine B") flattens the same expression DAG into a linear
// instruction tape — node order is already a valid topological order by
// construction — and evaluates it with a single forward loop instead of
// GraphBackend's recursive walk. It exists to demonstrate the backend
// abstraction is load-bearing: the problem compiler is identical either
// way, only the generated callable's execution strategy differs.
type TapeBackend struct{ common }

// NewTapeBackend constructs the alternate symbolic backend.
func NewTapeBackend() *TapeBackend { return &TapeBackend{} }

func (TapeBackend) Name() string { return "tape" }

// BuildFunction compiles outputs into a flat instruction tape and returns
// an interpreter closure over it. Unlike GraphBackend.BuildFunction, no
// recursion is used at evaluation time: the tape is walked once,
// front-to-back.
func (TapeBackend) BuildFunction(g *Graph, outputs []Expr, inPlace bool) func(out, input []float64) {
	// The tape only needs to cover nodes reachable from the requested
	// outputs, but since node indices already form a prefix-closed
	// topological order (every operand has a strictly smaller index than
	// its user), the cheapest correct tape is simply "every node up to
	// the highest-indexed output."
	maxIdx := 0
	for _, o := range outputs {
		if o.idx > maxIdx {
			maxIdx = o.idx
		}
	}
	tape := g.nodes[:maxIdx+1]
	idxs := make([]int, len(outputs))
	for i, o := range outputs {
		idxs[i] = o.idx
	}

	return func(out, input []float64) {
		vals := make([]float64, len(tape))
		for i, n := range tape {
			switch n.op {
			case opConst:
				vals[i] = n.value
			case opVar:
				vals[i] = input[n.varSlot]
			case opAdd:
				vals[i] = vals[n.a] + vals[n.b]
			case opSub:
				vals[i] = vals[n.a] - vals[n.b]
			case opMul:
				vals[i] = vals[n.a] * vals[n.b]
			case opDiv:
				vals[i] = vals[n.a] / vals[n.b]
			case opNeg:
				vals[i] = -vals[n.a]
			case opPow:
				vals[i] = ipow(vals[n.a], n.power)
			}
		}
		for k, idx := range idxs {
			out[k] = vals[idx]
		}
	}
}
