package search

import (
	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/eval"
	"github.com/corvidchess/corvid/moveorder"
	"github.com/corvidchess/corvid/oracle"
	"github.com/corvidchess/corvid/ttable"
)

// maxPly bounds the killer table and selective-depth tracking; check
// extensions can push the actual search past options.MaxDepth, so
// this is deliberately generous rather than tied to MaxDepth.
const maxPly = 256

// state is the search thread's private, single-owner state for one
// search invocation: board, game history, halfmove clock, and the
// heuristic tables (spec.md §5 "the search thread owns its entire
// state"). None of it is shared across concurrent searches.
type state struct {
	handler   Handler
	options   Options
	evaluator eval.Evaluator

	board         dt.Board
	history       []uint64
	halfmoveClock uint8

	cache   *ttable.Table
	killers *moveorder.KillerTable
	hist    *moveorder.History

	nodes    uint32
	selDepth uint8

	cacheHits   uint32
	cacheMisses uint32
}

// New builds a search state by replaying moves from initial, clearing
// history on every clock-resetting move, per spec.md §6 "Search
// construction" and the Open Question decision in DESIGN.md: history
// ends at the current board, and halfmove_clock = len(history)-1 after
// replay.
func New(handler Handler, initial dt.Board, moves []dt.Move, options Options) *state {
	options = options.Clamp()
	b := initial
	history := []uint64{b.Hash()}
	for _, mv := range moves {
		resets := moveResetsHalfmoveClock(&b, mv)
		_ = b.Apply(mv)
		if resets {
			history = history[:0]
		}
		history = append(history, b.Hash())
	}
	return &state{
		handler:       handler,
		options:       options,
		evaluator:     eval.StandardEvaluator{},
		board:         b,
		history:       history,
		halfmoveClock: uint8(len(history) - 1),
		cache:         ttable.NewFromByteSize(options.TranspositionBytes),
		killers:       moveorder.NewKillerTable(maxPly),
		hist:          &moveorder.History{},
	}
}

// probeOracle consults the oracle for a known theoretical draw at the
// given node's board, not the search's root position.
func (s *state) probeOracle(board *dt.Board) (eval.Eval, bool) {
	return oracle.Probe(board)
}
