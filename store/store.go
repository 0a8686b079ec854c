// Package store provides the liveness engine's label → BlockEntry
// mapping: the Liveness Store component. It is deliberately minimal —
// init, lookup, update — so the fixpoint engine can stay agnostic to
// whether the backing is a map or a balanced tree.
package store

import (
	"fmt"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/nk-go/liveness/transfer"
	"github.com/nk-go/liveness/varset"
)

// BlockEntry is the tuple a Store holds per label: the block's transfer
// function, the analysis's running live-in approximation, and the
// successor labels reported by the CFG adapter at analysis time.
type BlockEntry[L comparable, V varset.Variable[V]] struct {
	Transfer   transfer.Transfer[V]
	LiveIn     varset.Set[V]
	Successors []L
}

// Entry pairs a label with the BlockEntry to install for it, the input
// shape Init consumes.
type Entry[L comparable, V varset.Variable[V]] struct {
	Label L
	Entry BlockEntry[L, V]
}

// Store is a mapping from Label to BlockEntry, owned exclusively by one
// Analyze call until the frozen result is returned to the caller.
type Store[L comparable, V varset.Variable[V]] struct {
	mu      sync.Mutex
	logger  *zap.SugaredLogger
	entries map[L]BlockEntry[L, V]
	order   []L // insertion order, preserved for deterministic iteration
}

// New returns an empty Store. A nil logger defaults to a no-op sink, the
// same discarding-by-default convention this codebase's other stores
// use.
func New[L comparable, V varset.Variable[V]](logger *zap.SugaredLogger) *Store[L, V] {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Store[L, V]{
		logger:  logger,
		entries: make(map[L]BlockEntry[L, V]),
	}
}

// Init builds a Store from an iterable of (label, entry) pairs.
// Duplicate labels are a programming error and fail with
// ErrInvariantViolation.
func Init[L comparable, V varset.Variable[V]](logger *zap.SugaredLogger, entries []Entry[L, V]) (*Store[L, V], error) {
	s := New[L, V](logger)
	for _, e := range entries {
		if _, exists := s.entries[e.Label]; exists {
			return nil, errors.Wrapf(ErrInvariantViolation, "duplicate label %v at init", e.Label)
		}
		s.entries[e.Label] = e.Entry
		s.order = append(s.order, e.Label)
	}
	s.logger.Debugw("store initialised", "blocks", len(s.order))
	return s, nil
}

// Lookup returns the entry for label, or ErrUnknownLabel if absent.
func (s *Store[L, V]) Lookup(label L) (BlockEntry[L, V], error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[label]
	if !ok {
		return BlockEntry[L, V]{}, errors.Wrapf(ErrUnknownLabel, "%v", label)
	}
	return e, nil
}

// Update replaces the entry for an existing label; it fails with
// ErrUnknownLabel if the label is not already present.
func (s *Store[L, V]) Update(label L, entry BlockEntry[L, V]) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.entries[label]; !ok {
		return errors.Wrapf(ErrUnknownLabel, "update: %v", label)
	}
	s.entries[label] = entry
	s.logger.Debugw("live-in updated", "label", fmt.Sprint(label), "size", len(entry.LiveIn.Slice()))
	return nil
}

// Labels returns the labels present in the store, in the order they
// were passed to Init (the CFG adapter's postorder).
func (s *Store[L, V]) Labels() []L {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]L(nil), s.order...)
}

// SetLog redirects the store's debug logging to a different logger.
func (s *Store[L, V]) SetLog(logger *zap.SugaredLogger) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if logger != nil {
		s.logger = logger
	}
}
