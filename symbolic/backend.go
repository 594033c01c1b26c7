// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// Backend presents the four capabilities a symbolic engine must offer:
// variable allocation, function building, dense gradients/Jacobians, and
// sparse Jacobians. The problem compiler is written against this interface
// only; nothing downstream of compilation touches a concrete backend type,
// so the indirection is paid only at compile time.
type Backend interface {
	Name() string
	NewGraph(nInputs int) *Graph
	MakeVariables(g *Graph, dim int) []Expr
	BuildFunction(g *Graph, outputs []Expr, inPlace bool) func(out, input []float64)
	Gradient(g *Graph, output Expr, wrt []Expr, input []float64) []float64
	Jacobian(g *Graph, outputs []Expr, wrt []Expr, input []float64) [][]float64
	SparseJacobian(g *Graph, outputs []Expr, wrt []Expr) *JacobianResult
}

// common implements the parts of Backend that are genuinely
// backend-agnostic: variable creation and symbolic differentiation operate
// directly on the shared Graph representation regardless of how a backend
// chooses to execute the resulting callables. Embedded by both concrete
// backends; only BuildFunction differs between them.
type common struct{}

func (common) NewGraph(nInputs int) *Graph { return NewGraph(nInputs) }

func (common) MakeVariables(g *Graph, dim int) []Expr { return g.MakeVariables(dim) }

func (common) Gradient(g *Graph, output Expr, wrt []Expr, input []float64) []float64 {
	return Gradient(g, output, wrt, input)
}

func (common) Jacobian(g *Graph, outputs []Expr, wrt []Expr, input []float64) [][]float64 {
	return Jacobian(g, outputs, wrt, input)
}

func (common) SparseJacobian(g *Graph, outputs []Expr, wrt []Expr) *JacobianResult {
	return SparseJacobian(g, outputs, wrt)
}
