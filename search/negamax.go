package search

import (
	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/eval"
	"github.com/corvidchess/corvid/moveorder"
	"github.com/corvidchess/corvid/ttable"
)

// pollInterval is how often (in nodes) non-root recursion polls the
// host's TimeUp callback (spec.md §4.5.2 step 2, §5).
const pollInterval = 4096

// nullMove returns a copy of b with the side to move flipped, used by
// null-move pruning. dragontoothmg has no dedicated null-move
// primitive with a built-in in-check refusal, so the caller must skip
// this when the side to move is in check; the one remaining known gap
// is that a stale en-passant flag could remain visible to the child's
// legal-move generator for exactly one ply, which is immaterial to
// search quality.
func nullMove(b *dt.Board) dt.Board {
	child := *b
	child.Wtomove = !child.Wtomove
	return child
}

func hasSlider(b *dt.Board) bool {
	bb := &b.Black
	if b.Wtomove {
		bb = &b.White
	}
	return bb.Rooks|bb.Bishops|bb.Queens != 0
}

func maxU8(a, b uint8) uint8 {
	if a > b {
		return a
	}
	return b
}

func satSubU8(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}

// negamax searches one node and returns its value from the side to
// move's perspective, the move that produced it (valid only if
// hasMove is true), and whether a move was found. hasMove is false at
// a terminal node (checkmate/stalemate), on a draw-by-rule or oracle
// cutoff, at the quiescence handover, and when null-move pruning
// short-circuits the node without completing the move loop with a
// concrete best move to report; a sufficiently deep cache hit returns
// the cached best move with hasMove true. The root driver treats a
// missing move as "no result this iteration", not an error.
//
// This collapses the source's root/non-root return-type dispatch
// (spec.md §9 "Generic search return type dispatch") into a single
// signature that always carries both value and move; callers that
// don't need the move (every recursive call) simply ignore it.
func (s *state) negamax(board *dt.Board, depth, ply, halfmoveClock uint8, alpha, beta eval.Eval, isRoot bool) (value eval.Eval, mv dt.Move, hasMove bool, err error) {
	s.selDepth = maxU8(s.selDepth, ply)
	originalAlpha := alpha

	if !isRoot {
		if s.nodes%pollInterval == 0 && s.handler.TimeUp() {
			return 0, 0, false, ErrTerminated
		}
	}
	s.nodes++

	if !isRoot && drawByRule(s.history, halfmoveClock) {
		return eval.DRAW, 0, false, nil
	}

	legal := board.GenerateLegalMoves()
	if len(legal) == 0 {
		if board.OurKingInCheck() {
			return eval.MatedIn(ply), 0, false, nil
		}
		return eval.DRAW, 0, false, nil
	}

	if !isRoot {
		if v, ok := s.probeOracle(board); ok {
			return v, 0, false, nil
		}
	}

	inCheck := board.OurKingInCheck()
	if inCheck {
		depth++
	}

	hash := board.Hash()
	entry, probed := s.cache.Get(hash)
	if probed {
		s.cacheHits++
	} else {
		s.cacheMisses++
	}
	if probed && entry.Depth >= depth {
		switch entry.Kind {
		case ttable.Exact:
			return entry.Value, entry.BestMove, true, nil
		case ttable.LowerBound:
			alpha = eval.Max(alpha, entry.Value)
		case ttable.UpperBound:
			beta = eval.Min(beta, entry.Value)
		}
		if alpha >= beta {
			return entry.Value, entry.BestMove, true, nil
		}
	}

	if depth == 0 {
		s.nodes--
		v, err := s.quiescence(board, ply, halfmoveClock, alpha, beta)
		return v, 0, false, err
	}

	if s.options.NullMovePruning && !inCheck && hasSlider(board) {
		child := nullMove(board)
		narrowedAlpha := beta - 1
		s.history = append(s.history, child.Hash())
		childValue, _, _, err := s.negamax(&child, satSubU8(depth, s.options.NullMoveReduction+1), ply+1, halfmoveClock+1, -beta, -narrowedAlpha, false)
		s.history = s.history[:len(s.history)-1]
		if err != nil {
			return 0, 0, false, err
		}
		childValue = -childValue
		if childValue >= beta {
			return childValue, 0, false, nil
		}
	}

	var cachedPV dt.Move
	hasPV := false
	if entry, ok := s.cache.Get(hash); ok {
		cachedPV = entry.BestMove
		hasPV = true
	}

	gen := moveorder.NewGenerator(board, cachedPV, hasPV, s.killers.At(ply).Moves(), s.hist)

	value = eval.MIN
	hasMove = false
	index := 0
	for {
		candidate, ok := gen.Next()
		if !ok {
			break
		}

		quiet := moveIsQuiet(board, candidate)
		resets := moveResetsHalfmoveClock(board, candidate)
		child := *board
		_ = child.Apply(candidate)
		givesCheck := child.OurKingInCheck()
		childHalfmove := halfmoveClock + 1
		if resets {
			childHalfmove = 1
		}

		reduced := depth
		narrowedBeta := beta
		if uint8(index) >= s.options.LateMoveLeeway && depth > 3 && quiet && !inCheck && !givesCheck {
			if s.options.LateMoveReduction < depth {
				reduced = depth - s.options.LateMoveReduction
			} else {
				reduced = 1
			}
			narrowedBeta = alpha + 1
		}

		s.history = append(s.history, child.Hash())
		var childValue eval.Eval
		for {
			var cerr error
			childValue, _, _, cerr = s.negamax(&child, reduced-1, ply+1, childHalfmove, -narrowedBeta, -alpha, false)
			if cerr != nil {
				s.history = s.history[:len(s.history)-1]
				return 0, 0, false, cerr
			}
			childValue = -childValue
			if (reduced < depth || narrowedBeta < beta) && childValue > alpha {
				reduced = depth
				narrowedBeta = beta
				continue
			}
			break
		}
		s.history = s.history[:len(s.history)-1]

		if childValue > value || !hasMove {
			value = childValue
			mv = candidate
			hasMove = true
		}
		alpha = eval.Max(alpha, value)
		if alpha >= beta {
			if quiet {
				s.killers.At(ply).Push(candidate)
				piece, _ := moveorder.PieceAt(board, candidate.From())
				s.hist.Add(board.Wtomove, piece, candidate.To(), depth)
			}
			break
		}
		index++
	}

	// legal has at least one move (checked above), so the loop always
	// set mv/hasMove at least once.
	kind := ttable.Exact
	switch {
	case value <= originalAlpha:
		kind = ttable.UpperBound
	case value >= beta:
		kind = ttable.LowerBound
	}
	s.cache.Set(hash, ttable.Entry{Kind: kind, Value: value, Depth: depth, BestMove: mv})

	return value, mv, true, nil
}
