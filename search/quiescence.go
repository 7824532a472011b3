package search

import (
	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/eval"
	"github.com/corvidchess/corvid/moveorder"
	"github.com/corvidchess/corvid/ttable"
)

// quiescence extends search with capture-only lines until the
// position is quiet, avoiding horizon-effect misjudgments at the
// depth-0 frontier (spec.md §4.5.3).
func (s *state) quiescence(board *dt.Board, ply, halfmoveClock uint8, alpha, beta eval.Eval) (eval.Eval, error) {
	s.nodes++

	if drawByRule(s.history, halfmoveClock) {
		return eval.DRAW, nil
	}

	hash := board.Hash()
	entry, probed := s.cache.Get(hash)
	if probed {
		s.cacheHits++
	} else {
		s.cacheMisses++
	}
	if probed {
		switch entry.Kind {
		case ttable.Exact:
			return entry.Value, nil
		case ttable.LowerBound:
			alpha = eval.Max(alpha, entry.Value)
		case ttable.UpperBound:
			beta = eval.Min(beta, entry.Value)
		}
		if alpha >= beta {
			return entry.Value, nil
		}
	}

	if len(board.GenerateLegalMoves()) == 0 {
		if board.OurKingInCheck() {
			return eval.MatedIn(ply), nil
		}
		return eval.DRAW, nil
	}

	value := s.evaluator.Evaluate(board, ply)
	if value >= beta {
		return value, nil
	}
	if value > alpha {
		alpha = value
	}

	qgen := moveorder.NewQGenerator(board)
	for {
		mv, _, ok := qgen.Next()
		if !ok {
			break
		}

		resets := moveResetsHalfmoveClock(board, mv)
		child := *board
		_ = child.Apply(mv)
		childHalfmove := halfmoveClock + 1
		if resets {
			childHalfmove = 1
		}

		s.history = append(s.history, child.Hash())
		childValue, err := s.quiescence(&child, ply+1, childHalfmove, -beta, -alpha)
		s.history = s.history[:len(s.history)-1]
		if err != nil {
			return 0, err
		}
		childValue = -childValue

		if childValue > value {
			value = childValue
		}
		if value > alpha {
			alpha = value
		}
		if alpha >= beta {
			break
		}
	}

	return value, nil
}
