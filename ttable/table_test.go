package ttable

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetMissOnEmpty(t *testing.T) {
	tb := New(4)
	_, ok := tb.Get(0x1234)
	require.False(t, ok)
}

func TestSetInsertsIntoEmptySlot(t *testing.T) {
	tb := New(4)
	tb.Set(7, Entry{Kind: Exact, Value: 10, Depth: 3})
	require.Equal(t, 1, tb.Len())

	got, ok := tb.Get(7)
	require.True(t, ok)
	require.EqualValues(t, 10, got.Value)
}

func TestHashCollisionIsSilentlyIgnoredOnGet(t *testing.T) {
	tb := New(4) // mask = 3
	tb.Set(1, Entry{Depth: 5})
	// 5 collides with 1 on a 4-slot table (both map to slot 1) but has
	// a different hash, so it must not be returned for hash=5.
	_, ok := tb.Get(5)
	require.False(t, ok)
}

func TestReplacementPrefersMatchingHash(t *testing.T) {
	tb := New(4)
	tb.Set(1, Entry{Depth: 10, Value: 100})
	// Same hash, lower depth: still overwrites (fresher info about the
	// same position wins regardless of depth).
	tb.Set(1, Entry{Depth: 1, Value: 1})

	got, ok := tb.Get(1)
	require.True(t, ok)
	require.EqualValues(t, 1, got.Value)
	require.EqualValues(t, 1, got.Depth)
}

func TestReplacementPrefersDeeperOnCollision(t *testing.T) {
	tb := New(4)
	tb.Set(1, Entry{Depth: 5, Value: 5})
	tb.Set(5, Entry{Depth: 2, Value: 2}) // collides into the same slot, different hash

	got, ok := tb.Get(1)
	require.True(t, ok)
	require.EqualValues(t, 5, got.Value, "shallower colliding write must not replace the deeper entry")

	tb.Set(5, Entry{Depth: 9, Value: 9})
	got, ok = tb.Get(5)
	require.True(t, ok)
	require.EqualValues(t, 9, got.Value, "strictly deeper write must replace regardless of hash")
}

func TestCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	require.Equal(t, 8, New(5).Capacity())
	require.Equal(t, 16, New(16).Capacity())
	require.Equal(t, 1, New(0).Capacity())
}
