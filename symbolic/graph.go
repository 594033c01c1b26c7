// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package symbolic is a minimal expression DAG with symbolic reverse-mode
// differentiation: residual functions are traced once, at compile time,
// into a Graph of Expr nodes, from which gradients, dense Jacobians, and
// sparse Jacobian patterns are derived. Nothing in this package is touched
// again once a problem is compiled — solve and sensitivity evaluation only
// ever call the generated evaluators.
package symbolic

import "github.com/nlsolve/pmcp/chk"

type op int

const (
	opConst op = iota
	opVar
	opAdd
	opSub
	opMul
	opDiv
	opNeg
	opPow
)

type node struct {
	op       op
	a, b     int // operand node indices; -1 when unused
	value    float64
	varSlot  int // valid when op == opVar
	power    int // valid when op == opPow
	deps     bitset
}

// Graph is a hash-cons-free expression DAG: nodes are appended in
// construction order, so a node's operands always have a smaller index
// than the node itself (topological order comes for free).
type Graph struct {
	nodes    []node
	nInputs  int // total width of the concatenated [z; theta] input vector
	nextSlot int
}

// NewGraph creates an empty graph sized for nInputs leaf variable slots
// (the concatenated [z; theta] vector).
func NewGraph(nInputs int) *Graph {
	return &Graph{nInputs: nInputs}
}

// Expr is a reference to a node in a Graph.
type Expr struct {
	g   *Graph
	idx int
}

func (g *Graph) push(n node) Expr {
	g.nodes = append(g.nodes, n)
	return Expr{g: g, idx: len(g.nodes) - 1}
}

// Const creates a constant leaf node.
func (g *Graph) Const(v float64) Expr {
	return g.push(node{op: opConst, a: -1, b: -1, value: v, deps: newBitset(g.nInputs)})
}

// variable creates a leaf node bound to input slot `slot`.
func (g *Graph) variable(slot int) Expr {
	d := newBitset(g.nInputs)
	d.set(slot)
	return g.push(node{op: opVar, a: -1, b: -1, varSlot: slot, deps: d})
}

// MakeVariables allocates dim fresh leaf variables starting at the next
// free input slot, returning an empty slice when dim == 0: a zero-parameter
// problem must still trace and compile.
func (g *Graph) MakeVariables(dim int) []Expr {
	vars := make([]Expr, dim)
	for i := 0; i < dim; i++ {
		if g.nextSlot >= g.nInputs {
			chk.Panic("MakeVariables: requested more variables than the graph was sized for (%d)", g.nInputs)
		}
		vars[i] = g.variable(g.nextSlot)
		g.nextSlot++
	}
	return vars
}

func (g *Graph) binOp(o op, a, b Expr) Expr {
	d := a.node().deps.union(b.node().deps)
	return g.push(node{op: o, a: a.idx, b: b.idx, deps: d})
}

func (e Expr) node() *node { return &e.g.nodes[e.idx] }

// Add returns a+b.
func Add(a, b Expr) Expr { return a.g.binOp(opAdd, a, b) }

// Sub returns a-b.
func Sub(a, b Expr) Expr { return a.g.binOp(opSub, a, b) }

// Mul returns a*b.
func Mul(a, b Expr) Expr { return a.g.binOp(opMul, a, b) }

// Div returns a/b.
func Div(a, b Expr) Expr { return a.g.binOp(opDiv, a, b) }

// Neg returns -a.
func Neg(a Expr) Expr {
	return a.g.push(node{op: opNeg, a: a.idx, b: -1, deps: a.node().deps})
}

// Pow returns a^p for a fixed non-negative integer exponent p.
func Pow(a Expr, p int) Expr {
	return a.g.push(node{op: opPow, a: a.idx, b: -1, power: p, deps: a.node().deps})
}

// Scale returns c*a for a plain float64 constant c; a convenience wrapper
// used heavily by linear residuals (the canonical projection MCP of spec
// §8 is entirely built from Scale/Add/Sub/Neg).
func Scale(c float64, a Expr) Expr {
	return Mul(a.g.Const(c), a)
}

// eval forward-evaluates the node at idx given the concatenated input
// vector, memoizing into vals (which must have length len(g.nodes)).
func (g *Graph) eval(idx int, input []float64, vals []float64, done []bool) float64 {
	if done[idx] {
		return vals[idx]
	}
	n := &g.nodes[idx]
	var v float64
	switch n.op {
	case opConst:
		v = n.value
	case opVar:
		v = input[n.varSlot]
	case opAdd:
		v = g.eval(n.a, input, vals, done) + g.eval(n.b, input, vals, done)
	case opSub:
		v = g.eval(n.a, input, vals, done) - g.eval(n.b, input, vals, done)
	case opMul:
		v = g.eval(n.a, input, vals, done) * g.eval(n.b, input, vals, done)
	case opDiv:
		v = g.eval(n.a, input, vals, done) / g.eval(n.b, input, vals, done)
	case opNeg:
		v = -g.eval(n.a, input, vals, done)
	case opPow:
		base := g.eval(n.a, input, vals, done)
		v = ipow(base, n.power)
	default:
		chk.Panic("unknown op %d", n.op)
	}
	vals[idx] = v
	done[idx] = true
	return v
}

func ipow(base float64, p int) float64 {
	if p == 0 {
		return 1
	}
	neg := p < 0
	if neg {
		p = -p
	}
	r := 1.0
	for i := 0; i < p; i++ {
		r *= base
	}
	if neg {
		return 1 / r
	}
	return r
}

// EvalAll forward-evaluates every expr in outputs at the given input,
// returning the results in order.
func (g *Graph) EvalAll(outputs []Expr, input []float64) []float64 {
	vals := make([]float64, len(g.nodes))
	done := make([]bool, len(g.nodes))
	out := make([]float64, len(outputs))
	for i, e := range outputs {
		out[i] = g.eval(e.idx, input, vals, done)
	}
	return out
}
