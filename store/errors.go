package store

import "github.com/pkg/errors"

// ErrUnknownLabel is returned by Lookup/Update when a label has no
// entry. It always indicates a CFG/analysis mismatch and is surfaced to
// the caller rather than handled internally.
var ErrUnknownLabel = errors.New("store: unknown label")

// ErrInvariantViolation is returned by Init when entries contain a
// duplicate label, or internally when a successor label has no
// corresponding entry. It is a fatal programming error.
var ErrInvariantViolation = errors.New("store: invariant violation")
