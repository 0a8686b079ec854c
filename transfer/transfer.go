// Package transfer computes the per-block (gen, kill) transfer function
// a liveness fixpoint iterates over, and the per-instruction variant
// used to derive live ranges within a block.
package transfer

import (
	"github.com/pkg/errors"

	"github.com/nk-go/liveness/cfg"
	"github.com/nk-go/liveness/varset"
)

// Transfer is a block's (gen, kill) pair: gen is the set of variables
// used before being redefined in the block (upward-exposed uses), kill
// is the set of variables definitely defined in the block whose prior
// value does not escape upward.
type Transfer[V varset.Variable[V]] struct {
	Gen  varset.Set[V]
	Kill varset.Set[V]
}

// Build folds instrs from last to first to compute the block's (gen,
// kill) pair, per the recurrence:
//
//	gen  = (gen' \ def) ∪ use
//	kill = (kill' ∪ def) \ use
//
// empty is a VarSet of the representation (sorted-slice or
// bitset-universe) the caller wants the result expressed in; Build uses
// it only as a factory via FromSlice, so its members are ignored and it
// is never mutated.
func Build[V varset.Variable[V]](instrs []cfg.Instruction[V], empty varset.Set[V]) (t Transfer[V], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(cfg.ErrInterfaceContract, "panic building transfer: %v", r)
		}
	}()
	gen := empty.FromSlice(nil)
	kill := empty.FromSlice(nil)
	for i := len(instrs) - 1; i >= 0; i-- {
		def := empty.FromSlice(instrs[i].Defines())
		use := empty.FromSlice(instrs[i].Uses())
		gen = gen.Difference(def).Union(use)
		kill = kill.Union(def).Difference(use)
	}
	return Transfer[V]{Gen: gen, Kill: kill}, nil
}

// LiveInFromLiveOut computes the live-in set at the first instruction of
// instrs given the live-out set at the end of instrs, applying the same
// recurrence as Build one instruction at a time. Callers needing
// instruction-granularity live ranges within a block derive them by
// calling this on successive suffixes of the block's instruction list.
func LiveInFromLiveOut[V varset.Variable[V]](instrs []cfg.Instruction[V], liveOut varset.Set[V]) (result varset.Set[V], err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errors.Wrapf(cfg.ErrInterfaceContract, "panic computing live-in from live-out: %v", r)
		}
	}()
	live := liveOut
	for i := len(instrs) - 1; i >= 0; i-- {
		def := live.FromSlice(instrs[i].Defines())
		use := live.FromSlice(instrs[i].Uses())
		live = live.Difference(def).Union(use)
	}
	return live, nil
}
