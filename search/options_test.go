package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClampRestoresSaneNodeBudget(t *testing.T) {
	o := Options{MaxNodes: 0}
	require.Equal(t, ^uint32(0), o.Clamp().MaxNodes)
}

func TestClampBoundsMaxDepth(t *testing.T) {
	o := Options{MaxDepth: 0}
	require.Equal(t, uint8(minMaxDepth), o.Clamp().MaxDepth)

	o = Options{MaxDepth: 250}
	require.Equal(t, uint8(maxMaxDepth), o.Clamp().MaxDepth)
}

func TestClampBoundsTranspositionBytes(t *testing.T) {
	o := Options{TranspositionBytes: 0}
	require.Equal(t, minTTBytes, o.Clamp().TranspositionBytes)
}

func TestDefaultOptionsMatchSpec(t *testing.T) {
	d := DefaultOptions()
	require.Equal(t, uint8(1), d.LateMoveReduction)
	require.Equal(t, uint8(3), d.LateMoveLeeway)
	require.True(t, d.NullMovePruning)
	require.Equal(t, uint8(2), d.NullMoveReduction)
	require.Equal(t, uint8(64), d.MaxDepth)
}
