package varset

import (
	"github.com/willf/bitset"
)

// Universe is a fixed, pre-indexed variable domain used by the dense
// BitSet representation. Build one up front (e.g. from all variables
// appearing in a function) when the variable space is dense and known
// ahead of time — the register-allocation case the spec's design notes
// call out as the natural fit for bitsets.
type Universe[V Variable[V]] struct {
	vars  []V
	index map[V]uint
}

// NewUniverse builds a Universe assigning each distinct variable in vars
// a stable index, ordered by Less for deterministic iteration.
func NewUniverse[V Variable[V]](vars []V) *Universe[V] {
	sorted := FromSlice(vars).Slice()
	u := &Universe[V]{vars: sorted, index: make(map[V]uint, len(sorted))}
	for i, v := range sorted {
		u.index[v] = uint(i)
	}
	return u
}

// Index returns the position of v in the universe, or ok=false if v was
// never registered.
func (u *Universe[V]) Index(v V) (idx uint, ok bool) {
	idx, ok = u.index[v]
	return idx, ok
}

// Var returns the variable at position idx.
func (u *Universe[V]) Var(idx uint) V { return u.vars[idx] }

// Len returns the number of variables in the universe.
func (u *Universe[V]) Len() int { return len(u.vars) }

// denseSet is the bitset-backed VarSet representation, keyed on a shared
// Universe. All sets produced from the same Universe (via FromSlice) can
// be unioned/differenced against each other in O(n/64) time regardless
// of the number of set variables.
type denseSet[V Variable[V]] struct {
	universe *Universe[V]
	bits     *bitset.BitSet
}

// NewBitSet returns the empty dense VarSet bound to universe u.
func NewBitSet[V Variable[V]](u *Universe[V]) Set[V] {
	return denseSet[V]{universe: u, bits: bitset.New(uint(u.Len()))}
}

func (s denseSet[V]) FromSlice(vars []V) Set[V] {
	bits := bitset.New(uint(s.universe.Len()))
	for _, v := range vars {
		if idx, ok := s.universe.Index(v); ok {
			bits.Set(idx)
		}
	}
	return denseSet[V]{universe: s.universe, bits: bits}
}

func (s denseSet[V]) Union(other Set[V]) Set[V] {
	o := s.sameUniverse(other)
	return denseSet[V]{universe: s.universe, bits: s.bits.Union(o.bits)}
}

func (s denseSet[V]) Difference(other Set[V]) Set[V] {
	o := s.sameUniverse(other)
	return denseSet[V]{universe: s.universe, bits: s.bits.Difference(o.bits)}
}

func (s denseSet[V]) Equal(other Set[V]) bool {
	o := s.sameUniverse(other)
	return s.bits.Equal(o.bits)
}

func (s denseSet[V]) IsEmpty() bool { return s.bits.None() }

func (s denseSet[V]) Slice() []V {
	out := make([]V, 0, s.bits.Count())
	for i, ok := s.bits.NextSet(0); ok; i, ok = s.bits.NextSet(i + 1) {
		out = append(out, s.universe.Var(i))
	}
	return out
}

// sameUniverse coerces other into a denseSet sharing s's universe,
// converting by variable lookup when other is a differently-backed set
// (e.g. a sortedSet passed in by a caller mixing representations).
func (s denseSet[V]) sameUniverse(other Set[V]) denseSet[V] {
	if o, ok := other.(denseSet[V]); ok && o.universe == s.universe {
		return o
	}
	return s.FromSlice(other.Slice()).(denseSet[V])
}
