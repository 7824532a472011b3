package moveorder

import (
	"testing"

	dt "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

func findMove(t *testing.T, b *dt.Board, uci string) dt.Move {
	t.Helper()
	for _, mv := range b.GenerateLegalMoves() {
		if mv.String() == uci {
			return mv
		}
	}
	t.Fatalf("move %s not found among legal moves", uci)
	return 0
}

// A knight takes a pawn defended by a pawn: the knight wins the pawn
// but is recaptured, so the exchange nets the pawn minus the knight.
func TestSeeLosingCaptureIsNegative(t *testing.T) {
	b := dt.ParseFen("4k3/8/2p5/3p4/8/4N3/8/4K3 w - - 0 1")
	mv := findMove(t, &b, "e3d5")
	require.Less(t, See(&b, mv), int32(0))
}

// A pawn takes an undefended knight: straightforwardly winning.
func TestSeeWinningUndefendedCapture(t *testing.T) {
	b := dt.ParseFen("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	mv := findMove(t, &b, "e4d5")
	require.Greater(t, See(&b, mv), int32(0))
}

func TestSeeNonCaptureIsZero(t *testing.T) {
	b := dt.ParseFen(dt.Startpos)
	mv := findMove(t, &b, "e2e4")
	require.Zero(t, See(&b, mv))
}
