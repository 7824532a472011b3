package search

import (
	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/eval"
)

// Run drives iterative deepening from depth 1 to options.MaxDepth,
// reporting one SearchResult per completed iteration to the handler
// (spec.md §4.5.1). It returns ErrNoMoves if the root has no legal
// moves, or ErrTerminated if the handler asked to stop mid-iteration;
// otherwise it returns nil after MaxDepth completes normally.
func Run(handler Handler, initial dt.Board, moves []dt.Move, options Options) error {
	s := New(handler, initial, moves, options)

	if len(s.board.GenerateLegalMoves()) == 0 {
		return ErrNoMoves
	}

	historyLen := len(s.history)
	for depth := uint8(1); depth <= s.options.MaxDepth; depth++ {
		s.nodes = 0
		s.selDepth = 0
		s.cacheHits = 0
		s.cacheMisses = 0
		root := s.board
		value, mv, hasMove, err := s.negamax(&root, depth, 0, s.halfmoveClock, eval.MIN, eval.MAX, true)

		// Early termination or pruning re-searches may leave history
		// dirty; restore it before deciding what to report.
		s.history = s.history[:historyLen]

		if err != nil {
			return err
		}
		if !hasMove {
			continue
		}

		pv := s.reconstructPV(mv)
		handler.SearchResult(SearchResult{
			Move:               mv,
			Value:              value,
			Nodes:              s.nodes,
			Depth:              depth,
			SelDepth:           s.selDepth,
			PrincipalVariation: pv,
			TTCapacity:         s.cache.Capacity(),
			TTEntries:          s.cache.Len(),
			CacheHit:           s.cacheHits,
			CacheMiss:          s.cacheMisses,
		})
	}

	return nil
}

// reconstructPV replays best_move chains from cache entries starting
// with the root's chosen move, stopping at a draw-by-rule position or
// once no cache entry is found (spec.md §4.5.1).
func (s *state) reconstructPV(first dt.Move) []dt.Move {
	historyLen := len(s.history)
	defer func() { s.history = s.history[:historyLen] }()

	pv := []dt.Move{first}
	board := s.board
	halfmoveClock := s.halfmoveClock

	next := first
	for {
		resets := moveResetsHalfmoveClock(&board, next)
		_ = board.Apply(next)
		if resets {
			halfmoveClock = 1
		} else {
			halfmoveClock++
		}
		s.history = append(s.history, board.Hash())

		if drawByRule(s.history, halfmoveClock) {
			break
		}
		entry, ok := s.cache.Get(board.Hash())
		if !ok {
			break
		}
		next = entry.BestMove
		pv = append(pv, next)
	}

	return pv
}
