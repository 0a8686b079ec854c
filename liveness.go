// Package liveness implements the backward liveness fixpoint engine and
// its query API: Analyze derives, for every reachable block in a host
// CFG, the set of variables live at block entry and exit.
//
// Analyze is pure: it reads the Graph through the cfg.Graph contract and
// returns a frozen Result. Nothing is mutated in the host CFG, and the
// returned Result is never mutated again by this package.
package liveness

import (
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nk-go/liveness/cfg"
	"github.com/nk-go/liveness/store"
	"github.com/nk-go/liveness/transfer"
	"github.com/nk-go/liveness/varset"
)

// Result is the frozen outcome of Analyze: immutable, queried through
// LiveIn and LiveOut.
type Result[L comparable, V varset.Variable[V]] struct {
	store      *store.Store[L, V]
	exitLive   varset.Set[V]
	maxLiveSet int
	trackedMax bool
}

// Analyze runs the backward liveness fixpoint over g and returns the
// frozen result. Analyze over a Graph whose Postorder is empty returns
// an empty, valid Result; any subsequent query on it fails with
// store.ErrUnknownLabel.
func Analyze[L comparable, V varset.Variable[V]](g cfg.Graph[L, V], opts ...Option[V]) (*Result[L, V], error) {
	conf := defaultConfig[V]()
	for _, opt := range opts {
		opt(conf)
	}
	logger := conf.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}

	postorder := g.Postorder()
	entries := make([]store.Entry[L, V], 0, len(postorder))
	for _, label := range postorder {
		instrs := g.BlockCode(label)
		tr, err := transfer.Build(instrs, conf.ExitLive)
		if err != nil {
			return nil, errors.Wrapf(err, "building transfer for block %v", label)
		}
		entries = append(entries, store.Entry[L, V]{
			Label: label,
			Entry: store.BlockEntry[L, V]{
				Transfer:   tr,
				LiveIn:     conf.ExitLive.FromSlice(nil),
				Successors: g.Successors(label),
			},
		})
	}

	st, err := store.Init(logger, entries)
	if err != nil {
		return nil, err
	}

	result := &Result[L, V]{store: st, exitLive: conf.ExitLive, trackedMax: conf.CollectMaxLiveSet}

	for changed := 1; changed > 0; {
		changed = 0
		for _, label := range postorder {
			entry, err := st.Lookup(label)
			if err != nil {
				return nil, errors.Wrapf(err, "sweep: looking up %v", label)
			}

			liveOut, err := liveOutFor(st, entry, conf.ExitLive)
			if err != nil {
				return nil, errors.Wrapf(err, "sweep: computing live-out for %v", label)
			}

			newLiveIn := entry.Transfer.Gen.Union(liveOut.Difference(entry.Transfer.Kill))
			if conf.CollectMaxLiveSet {
				if n := len(newLiveIn.Slice()); n > result.maxLiveSet {
					result.maxLiveSet = n
				}
			}
			if !newLiveIn.Equal(entry.LiveIn) {
				entry.LiveIn = newLiveIn
				if err := st.Update(label, entry); err != nil {
					return nil, errors.Wrapf(err, "sweep: updating %v", label)
				}
				changed++
			}
		}
		logger.Debugw("sweep complete", "changed", changed)
	}

	return result, nil
}

// liveOutFor computes live-out for entry: the union of its successors'
// current live-in, or exitLive if it has no successors.
func liveOutFor[L comparable, V varset.Variable[V]](st *store.Store[L, V], entry store.BlockEntry[L, V], exitLive varset.Set[V]) (varset.Set[V], error) {
	if len(entry.Successors) == 0 {
		return exitLive, nil
	}
	out := exitLive.FromSlice(nil)
	for _, succ := range entry.Successors {
		succEntry, err := st.Lookup(succ)
		if err != nil {
			return nil, errors.Wrapf(store.ErrInvariantViolation, "successor %v has no entry", succ)
		}
		out = out.Union(succEntry.LiveIn)
	}
	return out, nil
}

// LiveIn returns the stored live-in set for label.
func (r *Result[L, V]) LiveIn(label L) (varset.Set[V], error) {
	entry, err := r.store.Lookup(label)
	if err != nil {
		return nil, err
	}
	return entry.LiveIn, nil
}

// LiveOut computes the live-out set for label from its successors'
// live-in. It is not cached; callers needing repeated access should
// memoize externally.
func (r *Result[L, V]) LiveOut(label L) (varset.Set[V], error) {
	entry, err := r.store.Lookup(label)
	if err != nil {
		return nil, err
	}
	return liveOutFor(r.store, entry, r.exitLive)
}

// Labels returns the labels present in the result, in postorder.
func (r *Result[L, V]) Labels() []L {
	return r.store.Labels()
}

// Successors returns the successor labels recorded for label at
// analysis time.
func (r *Result[L, V]) Successors(label L) ([]L, error) {
	entry, err := r.store.Lookup(label)
	if err != nil {
		return nil, err
	}
	return entry.Successors, nil
}

// Transfer returns the (gen, kill) pair computed for label.
func (r *Result[L, V]) Transfer(label L) (transfer.Transfer[V], error) {
	entry, err := r.store.Lookup(label)
	if err != nil {
		return transfer.Transfer[V]{}, err
	}
	return entry.Transfer, nil
}

// MaxLiveSetSize returns the largest live-in set size observed across
// all blocks and sweeps, if WithMaxLiveSetTracking was set. The second
// return value is false otherwise.
func (r *Result[L, V]) MaxLiveSetSize() (int, bool) {
	return r.maxLiveSet, r.trackedMax
}
