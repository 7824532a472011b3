package moveorder

import (
	"math/bits"

	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/attacks"
	"github.com/corvidchess/corvid/eval"
)

// pieceOrder is the order SEE tries attackers in: least valuable first.
var pieceOrder = [...]dt.Piece{dt.Pawn, dt.Knight, dt.Bishop, dt.Rook, dt.Queen, dt.King}

// captureSquare returns the square whose occupant is removed by mv,
// which for en passant is not mv's destination square.
func captureSquare(b *dt.Board, mv dt.Move) (uint8, bool) {
	to := mv.To()
	if b.Wtomove {
		if bit(to)&b.Black.All != 0 {
			return to, true
		}
	} else {
		if bit(to)&b.White.All != 0 {
			return to, true
		}
	}
	// En passant: the captured pawn sits behind the destination square.
	from := mv.From()
	if bit(from)&(b.White.Pawns|b.Black.Pawns) != 0 && from%8 != to%8 {
		if b.Wtomove {
			return to - 8, true
		}
		return to + 8, true
	}
	return 0, false
}

func bit(sq uint8) uint64 { return uint64(1) << sq }

// PieceAt returns the piece occupying sq, if any.
func PieceAt(b *dt.Board, sq uint8) (dt.Piece, bool) {
	m := bit(sq)
	for _, set := range []*dt.Bitboards{&b.White, &b.Black} {
		switch {
		case set.Pawns&m != 0:
			return dt.Pawn, true
		case set.Knights&m != 0:
			return dt.Knight, true
		case set.Bishops&m != 0:
			return dt.Bishop, true
		case set.Rooks&m != 0:
			return dt.Rook, true
		case set.Queens&m != 0:
			return dt.Queen, true
		case set.Kings&m != 0:
			return dt.King, true
		}
	}
	return dt.Nothing, false
}

// See runs the static exchange evaluation for a capture on the
// destination square of mv, which must be a legal capture (including
// en passant) in b. It returns the net material gained by the side to
// move if the exchange sequence on that square is played out with
// both sides always recapturing with their least valuable attacker.
func See(b *dt.Board, mv dt.Move) int32 {
	sq, ok := captureSquare(b, mv)
	if !ok {
		return 0
	}

	var whitePieces, blackPieces dt.Bitboards = b.White, b.Black
	occ := b.White.All | b.Black.All

	victim, _ := PieceAt(b, sq)
	attacker, _ := PieceAt(b, mv.From())

	gains := make([]int32, 0, 32)
	gains = append(gains, eval.PieceValue(victim))

	// Remove the initial attacker from its square and place it on sq;
	// occupancy-wise this is equivalent to just removing the attacker's
	// origin square, since sq remains occupied either way.
	removeFrom := func(white bool, piece dt.Piece, sq uint8) {
		set := &whitePieces
		if !white {
			set = &blackPieces
		}
		m := ^bit(sq)
		switch piece {
		case dt.Pawn:
			set.Pawns &= m
		case dt.Knight:
			set.Knights &= m
		case dt.Bishop:
			set.Bishops &= m
		case dt.Rook:
			set.Rooks &= m
		case dt.Queen:
			set.Queens &= m
		case dt.King:
			set.Kings &= m
		}
		set.All &= m
	}

	white := b.Wtomove
	removeFrom(white, attacker, mv.From())
	occ &^= bit(mv.From())
	// The square is now occupied by the piece that just captured on it;
	// that is the "victim" for whichever side recaptures next.
	square := attacker
	white = !white

	for {
		side := &whitePieces
		if !white {
			side = &blackPieces
		}
		atk := attacks.Of(sq, occ, side, white)

		var chosen dt.Piece
		var from uint8
		found := false
		for _, p := range pieceOrder {
			var set uint64
			switch p {
			case dt.Pawn:
				set = atk.Pawns
			case dt.Knight:
				set = atk.Knights
			case dt.Bishop:
				set = atk.Bishops
			case dt.Rook:
				set = atk.Rooks
			case dt.Queen:
				set = atk.Queens
			case dt.King:
				set = atk.Kings
			}
			if set != 0 {
				chosen = p
				from = uint8(bits.TrailingZeros64(set))
				found = true
				break
			}
		}
		if !found {
			break
		}

		prevGain := gains[len(gains)-1]
		gains = append(gains, eval.PieceValue(square)-prevGain)

		removeFrom(white, chosen, from)
		occ &^= bit(from)
		square = chosen
		white = !white
	}

	for i := len(gains) - 2; i >= 0; i-- {
		if -gains[i+1] < gains[i] {
			gains[i] = -gains[i+1]
		}
	}
	return gains[0]
}
