// Package oracle recognizes a handful of trivially-drawn material
// configurations so the search can prune them immediately instead of
// recursing to find what is already known (spec.md §4.4).
package oracle

import (
	"math/bits"

	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/eval"
)

const edges = 0xFF818181818181FF // rank 1, rank 8, a-file, h-file

// Probe returns (eval.DRAW, true) when b's material is one of the
// recognized drawn endgames, else (_, false).
func Probe(b *dt.Board) (eval.Eval, bool) {
	all := b.White.All | b.Black.All
	n := bits.OnesCount64(all)

	switch n {
	case 0, 1:
		// Two kings are always on the board; unreachable in practice.
		return eval.DRAW, true
	case 2:
		return eval.DRAW, true
	case 3:
		bishops := b.White.Bishops | b.Black.Bishops
		knights := b.White.Knights | b.Black.Knights
		if bishops|knights != 0 {
			// KBvK or KNvK.
			return eval.DRAW, true
		}
		return 0, false
	case 4:
		bishops := b.White.Bishops | b.Black.Bishops
		knights := b.White.Knights | b.Black.Knights
		kings := b.White.Kings | b.Black.Kings
		oneEach := bits.OnesCount64(b.White.All) == 2

		if bits.OnesCount64(knights) == 2 && kings&edges == 0 {
			// KNvKN, skipping the rare edge-king mate-in-one positions.
			return eval.DRAW, true
		}
		if bits.OnesCount64(bishops) == 2 {
			if bits.OnesCount64(bishops&darkSquares) != 1 {
				// Both bishops on the same color square.
				return eval.DRAW, true
			}
			if oneEach && kings&corners == 0 {
				return eval.DRAW, true
			}
		}
		if bits.OnesCount64(knights) == 1 && bits.OnesCount64(bishops) == 1 {
			if oneEach && kings&corners == 0 {
				return eval.DRAW, true
			}
		}
		return 0, false
	default:
		return 0, false
	}
}

const darkSquares = 0xAA55AA55AA55AA55
const corners = (uint64(1) << 0) | (uint64(1) << 7) | (uint64(1) << 56) | (uint64(1) << 63)
