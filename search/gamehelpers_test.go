package search

import (
	"testing"

	dt "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

func TestMoveResetsHalfmoveClockOnPawnMove(t *testing.T) {
	b := dt.ParseFen(dt.Startpos)
	mv := findSearchMove(t, &b, "e2e4")
	require.True(t, moveResetsHalfmoveClock(&b, mv))
}

func TestMoveResetsHalfmoveClockOnCapture(t *testing.T) {
	b := dt.ParseFen("7k/8/8/4p3/3P4/8/8/7K w - - 0 1")
	mv := findSearchMove(t, &b, "d4e5")
	require.True(t, moveResetsHalfmoveClock(&b, mv))
}

func TestMoveDoesNotResetOnQuietPieceMove(t *testing.T) {
	b := dt.ParseFen(dt.Startpos)
	mv := findSearchMove(t, &b, "g1f3")
	require.False(t, moveResetsHalfmoveClock(&b, mv))
}

func TestMoveIsQuietExcludesCapturesAndPromotions(t *testing.T) {
	b := dt.ParseFen("7k/8/8/4p3/3P4/8/8/7K w - - 0 1")
	capture := findSearchMove(t, &b, "d4e5")
	require.False(t, moveIsQuiet(&b, capture))

	quiet := dt.ParseFen(dt.Startpos)
	quietMv := findSearchMove(t, &quiet, "g1f3")
	require.True(t, moveIsQuiet(&quiet, quietMv))
}

func TestDrawByRuleFiftyMoveThreshold(t *testing.T) {
	require.True(t, drawByRule([]uint64{1}, 100))
	require.False(t, drawByRule([]uint64{1}, 99))
}

func TestDrawByRuleSingleRepetitionOnOwnTurn(t *testing.T) {
	// history: root, ..., same hash reappearing 4 plies back (own turn).
	history := []uint64{0xA, 0xB, 0xC, 0xD, 0xA}
	require.True(t, drawByRule(history, 4))
}

func TestDrawByRuleNoMatchIsNotADraw(t *testing.T) {
	history := []uint64{0xA, 0xB, 0xC, 0xD, 0xE}
	require.False(t, drawByRule(history, 4))
}

func TestDrawByRuleBelowReachIsNotADraw(t *testing.T) {
	history := []uint64{0xA, 0xB, 0xC}
	require.False(t, drawByRule(history, 2))
}
