package oracle

import (
	"testing"

	dt "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

func TestBareKingsIsDraw(t *testing.T) {
	b := dt.ParseFen("8/8/8/4k3/8/8/4K3/8 w - - 0 1")
	v, ok := Probe(&b)
	require.True(t, ok)
	require.Zero(t, v)
}

func TestKBvKIsDraw(t *testing.T) {
	b := dt.ParseFen("8/8/8/4k3/8/3B4/4K3/8 w - - 0 1")
	_, ok := Probe(&b)
	require.True(t, ok)
}

func TestKNvKNNonEdgeKingsIsDraw(t *testing.T) {
	b := dt.ParseFen("8/8/3nk3/8/3NK3/8/8/8 w - - 0 1")
	_, ok := Probe(&b)
	require.True(t, ok)
}

func TestKPvKIsNotOracleDraw(t *testing.T) {
	b := dt.ParseFen("8/8/8/4k3/4P3/8/4K3/8 w - - 0 1")
	_, ok := Probe(&b)
	require.False(t, ok)
}

func TestFiveManPositionIsNotOracleDraw(t *testing.T) {
	b := dt.ParseFen("8/8/3nk3/8/3NK3/8/8/B7 w - - 0 1")
	_, ok := Probe(&b)
	require.False(t, ok)
}
