package moveorder

import (
	"sort"

	dt "github.com/dylhunn/dragontoothmg"
)

// QGenerator emits only captures (en passant included), highest SEE
// first, for use by quiescence search (spec.md §4.5.3).
type QGenerator struct {
	moves []scoredMove
	i     int
}

// NewQGenerator builds the capture list for board. Losing captures are
// included, not withheld; Next reports each move's SEE score alongside
// it.
func NewQGenerator(board *dt.Board) *QGenerator {
	legal := board.GenerateLegalMoves()
	g := &QGenerator{}
	for _, mv := range legal {
		if !IsCapture(board, mv) {
			continue
		}
		g.moves = append(g.moves, scoredMove{mv, See(board, mv)})
	}
	sort.SliceStable(g.moves, func(i, j int) bool { return g.moves[i].see > g.moves[j].see })
	return g
}

// Next returns the next capture in descending SEE order and its SEE
// score, or ok=false once exhausted.
func (g *QGenerator) Next() (mv dt.Move, see int32, ok bool) {
	if g.i >= len(g.moves) {
		return 0, 0, false
	}
	sm := g.moves[g.i]
	g.i++
	return sm.mv, sm.see, true
}
