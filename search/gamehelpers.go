package search

import (
	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/moveorder"
)

// moveResetsHalfmoveClock reports whether mv is a pawn move or a
// capture, either of which resets the fifty-move counter and clears
// repetition history behind it (spec.md §3 "Game history").
func moveResetsHalfmoveClock(b *dt.Board, mv dt.Move) bool {
	if moveorder.IsCapture(b, mv) {
		return true
	}
	piece, _ := moveorder.PieceAt(b, mv.From())
	return piece == dt.Pawn
}

// moveIsQuiet reports whether mv is neither a capture nor a
// promotion.
func moveIsQuiet(b *dt.Board, mv dt.Move) bool {
	if moveorder.IsCapture(b, mv) {
		return false
	}
	return mv.Promote() == dt.Nothing
}

// drawByRule reports the fifty-move rule, or a single repetition of
// the current position on an earlier own-turn ply within reach of the
// halfmove clock. Any repetition means a loop where the best line
// involves repeating moves, so the first repetition is immediately a
// draw; there is no point playing out a true threefold.
func drawByRule(history []uint64, halfmoveClock uint8) bool {
	if halfmoveClock >= 100 {
		return true
	}
	if halfmoveClock < 4 || len(history) == 0 {
		return false
	}
	current := history[len(history)-1]
	for back := 2; back <= int(halfmoveClock); back += 2 {
		i := len(history) - 1 - back
		if i < 0 {
			break
		}
		if history[i] == current {
			return true
		}
	}
	return false
}
