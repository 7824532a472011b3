package eval

import (
	"math/bits"

	dt "github.com/dylhunn/dragontoothmg"
)

// Evaluator scores a position from the side-to-move's perspective.
type Evaluator interface {
	Evaluate(b *dt.Board, ply uint8) Eval
}

// StandardEvaluator combines material, piece-square tables and a
// midgame/endgame phase interpolation. The zero value is ready to use.
type StandardEvaluator struct{}

// Evaluate implements Evaluator. When the position has no legal move
// it returns MatedIn(ply) if the side to move is in check, else DRAW;
// otherwise it returns white_score - black_score (or its negation
// when black is to move).
func (StandardEvaluator) Evaluate(b *dt.Board, ply uint8) Eval {
	if len(b.GenerateLegalMoves()) == 0 {
		if b.OurKingInCheck() {
			return MatedIn(ply)
		}
		return DRAW
	}

	phase := gamePhase(b)
	white := sideScore(&b.White, phase, true)
	black := sideScore(&b.Black, phase, false)
	score := white - black
	if !b.Wtomove {
		score = -score
	}
	return score
}

// gamePhase returns a value in [0, 256]: 0 at the starting material,
// 256 once all non-pawn material is off the board.
func gamePhase(b *dt.Board) int32 {
	remaining := startingPhase
	remaining -= countBits(b.White.Knights|b.Black.Knights) * phaseWeight[dt.Knight]
	remaining -= countBits(b.White.Bishops|b.Black.Bishops) * phaseWeight[dt.Bishop]
	remaining -= countBits(b.White.Rooks|b.Black.Rooks) * phaseWeight[dt.Rook]
	remaining -= countBits(b.White.Queens|b.Black.Queens) * phaseWeight[dt.Queen]
	if remaining < 0 {
		remaining = 0
	}
	phase := (remaining*256 + startingPhase/2) / startingPhase
	if phase > 256 {
		phase = 256
	}
	return phase
}

func countBits(bb uint64) int32 {
	return int32(bits.OnesCount64(bb))
}

// sideScore sums material and the phase-interpolated piece-square
// bonus for one color's pieces. PST tables are written from black's
// perspective (pst.go), so white's squares are flipped before lookup.
func sideScore(bb *dt.Bitboards, phase int32, white bool) Eval {
	var mg, eg int32
	add := func(piece dt.Piece, pieces uint64) {
		for pieces != 0 {
			sq := bits.TrailingZeros64(pieces)
			pieces &= pieces - 1
			mg += int32(pieceValue[piece])
			eg += int32(pieceValue[piece])
			idx := sq
			if white {
				idx = flipSquare(sq)
			}
			mg += int32(mgPST[piece][idx])
			eg += int32(egPST[piece][idx])
		}
	}
	add(dt.Pawn, bb.Pawns)
	add(dt.Knight, bb.Knights)
	add(dt.Bishop, bb.Bishops)
	add(dt.Rook, bb.Rooks)
	add(dt.Queen, bb.Queens)
	add(dt.King, bb.Kings)

	return Eval((mg*(256-phase) + eg*phase) / 256)
}
