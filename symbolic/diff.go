// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// diffResult holds, for a single scalar output, the symbolic adjoint
// (∂output/∂node) for every node that was touched while propagating
// reverse-mode sensitivities from that output back to the leaves.
type diffResult struct {
	g    *Graph
	adj  []Expr
	set  []bool
}

// diff runs one reverse-mode (adjoint) pass seeded at output, producing a
// symbolic expression for ∂output/∂n for every node n on a path from a
// leaf to output. Because node indices are a topological order (operands
// always precede the node that uses them), processing indices in
// descending order from output.idx down to 0 is a valid reverse traversal.
func (g *Graph) diff(output Expr) *diffResult {
	d := &diffResult{g: g, adj: make([]Expr, output.idx+1), set: make([]bool, output.idx+1)}
	d.accumulate(output.idx, g.Const(1))
	for i := output.idx; i >= 0; i-- {
		if !d.set[i] {
			continue
		}
		n := &g.nodes[i]
		adj := d.adj[i]
		switch n.op {
		case opAdd:
			d.accumulate(n.a, adj)
			d.accumulate(n.b, adj)
		case opSub:
			d.accumulate(n.a, adj)
			d.accumulate(n.b, Neg(adj))
		case opMul:
			d.accumulate(n.a, Mul(adj, Expr{g: g, idx: n.b}))
			d.accumulate(n.b, Mul(adj, Expr{g: g, idx: n.a}))
		case opDiv:
			bExpr := Expr{g: g, idx: n.b}
			aExpr := Expr{g: g, idx: n.a}
			d.accumulate(n.a, Div(adj, bExpr))
			d.accumulate(n.b, Neg(Div(Mul(adj, aExpr), Mul(bExpr, bExpr))))
		case opNeg:
			d.accumulate(n.a, Neg(adj))
		case opPow:
			if n.power != 0 {
				aExpr := Expr{g: g, idx: n.a}
				deriv := Scale(float64(n.power), Pow(aExpr, n.power-1))
				d.accumulate(n.a, Mul(adj, deriv))
			}
		case opConst, opVar:
			// leaves: nothing further to propagate.
		}
	}
	return d
}

func (d *diffResult) accumulate(idx int, contribution Expr) {
	if !d.set[idx] {
		d.adj[idx] = contribution
		d.set[idx] = true
		return
	}
	d.adj[idx] = Add(d.adj[idx], contribution)
}

// partial returns ∂output/∂v as a symbolic expression, or the constant
// zero node when v provably does not appear on any path to output.
func (d *diffResult) partial(v Expr) Expr {
	if v.idx < len(d.set) && d.set[v.idx] {
		return d.adj[v.idx]
	}
	return d.g.Const(0)
}
