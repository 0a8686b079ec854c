package store_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nk-go/liveness/store"
	"github.com/nk-go/liveness/transfer"
	"github.com/nk-go/liveness/varset"
)

type strVar string

func (v strVar) Less(o strVar) bool { return v < o }

func entry(vars ...strVar) store.BlockEntry[string, strVar] {
	return store.BlockEntry[string, strVar]{
		Transfer: transfer.Transfer[strVar]{
			Gen:  varset.FromSlice(vars),
			Kill: varset.Empty[strVar](),
		},
		LiveIn: varset.Empty[strVar](),
	}
}

func TestInitRejectsDuplicateLabels(t *testing.T) {
	_, err := store.Init[string, strVar](nil, []store.Entry[string, strVar]{
		{Label: "L0", Entry: entry("x")},
		{Label: "L0", Entry: entry("y")},
	})
	require.ErrorIs(t, err, store.ErrInvariantViolation)
}

func TestLookupUnknownLabel(t *testing.T) {
	s, err := store.Init[string, strVar](nil, []store.Entry[string, strVar]{
		{Label: "L0", Entry: entry("x")},
	})
	require.NoError(t, err)

	_, err = s.Lookup("L1")
	assert.ErrorIs(t, err, store.ErrUnknownLabel)
}

func TestUpdateUnknownLabelFails(t *testing.T) {
	s, err := store.Init[string, strVar](nil, []store.Entry[string, strVar]{
		{Label: "L0", Entry: entry("x")},
	})
	require.NoError(t, err)

	err = s.Update("L1", entry("z"))
	assert.ErrorIs(t, err, store.ErrUnknownLabel)
}

func TestUpdateReplacesEntry(t *testing.T) {
	s, err := store.Init[string, strVar](nil, []store.Entry[string, strVar]{
		{Label: "L0", Entry: entry("x")},
	})
	require.NoError(t, err)

	updated := entry("x")
	updated.LiveIn = varset.FromSlice([]strVar{"a", "b"})
	require.NoError(t, s.Update("L0", updated))

	got, err := s.Lookup("L0")
	require.NoError(t, err)
	assert.ElementsMatch(t, []strVar{"a", "b"}, got.LiveIn.Slice())
}

func TestLabelsPreservesInsertionOrder(t *testing.T) {
	s, err := store.Init[string, strVar](nil, []store.Entry[string, strVar]{
		{Label: "L2", Entry: entry()},
		{Label: "L0", Entry: entry()},
		{Label: "L1", Entry: entry()},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"L2", "L0", "L1"}, s.Labels())
}
