// Copyright 2024 The pmcp Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package symbolic

// bitset tracks, for a node, which of the nInputs leaf variable slots its
// value structurally depends on. Used to derive sparsity patterns and
// constant-entry classification without any numeric evaluation.
type bitset struct {
	words []uint64
}

func newBitset(n int) bitset {
	return bitset{words: make([]uint64, (n+63)/64)}
}

func (b bitset) set(i int) {
	b.words[i/64] |= 1 << uint(i%64)
}

func (b bitset) has(i int) bool {
	return b.words[i/64]&(1<<uint(i%64)) != 0
}

func (b bitset) union(o bitset) bitset {
	r := bitset{words: make([]uint64, len(b.words))}
	for i := range b.words {
		r.words[i] = b.words[i] | o.words[i]
	}
	return r
}

func (b bitset) empty() bool {
	for _, w := range b.words {
		if w != 0 {
			return false
		}
	}
	return true
}

// intersectsRange reports whether any bit in [lo, hi) is set.
func (b bitset) intersectsRange(lo, hi int) bool {
	for i := lo; i < hi; i++ {
		if b.has(i) {
			return true
		}
	}
	return false
}
