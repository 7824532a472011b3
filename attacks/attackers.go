package attacks

import dt "github.com/dylhunn/dragontoothmg"

// ByPiece is the set of attackers of one color on one square, split
// by piece type so SEE can pick the least valuable one first.
type ByPiece struct {
	Pawns, Knights, Bishops, Rooks, Queens, Kings uint64
}

// Any is the union of every piece type's attackers.
func (a ByPiece) Any() uint64 {
	return a.Pawns | a.Knights | a.Bishops | a.Rooks | a.Queens | a.Kings
}

// Of returns the attackers of color `white` on sq, given the combined
// occupancy of the whole board (both colors) and that color's piece
// bitboards. occ must reflect the position being queried -- SEE
// recomputes this every time a blocker is removed so newly uncovered
// sliders are picked up.
func Of(sq uint8, occ uint64, bb *dt.Bitboards, white bool) ByPiece {
	bishopRay := Bishop(sq, occ)
	rookRay := Rook(sq, occ)
	return ByPiece{
		Pawns:   PawnAttackers(sq, white) & bb.Pawns,
		Knights: Knight(sq) & bb.Knights,
		Bishops: bishopRay & bb.Bishops,
		Rooks:   rookRay & bb.Rooks,
		Queens:  (bishopRay | rookRay) & bb.Queens,
		Kings:   King(sq) & bb.Kings,
	}
}
