package moveorder

import dt "github.com/dylhunn/dragontoothmg"

const (
	numColors  = 2
	numPieces  = 7 // dt.Piece ranges 0 (Nothing) .. 6 (King)
	numSquares = 64
)

// History counts, per (color, piece, destination square), how often
// a quiet move to that square has caused a beta cutoff, weighted by
// the remaining depth squared.
type History [numColors][numPieces][numSquares]uint32

// Add records a beta cutoff caused by a quiet move of piece to dest at
// remaining depth.
func (h *History) Add(white bool, piece dt.Piece, dest uint8, depth uint8) {
	h[colorIndex(white)][piece][dest] += uint32(depth) * uint32(depth)
}

// Score returns the current counter for a (color, piece, dest) triple.
func (h *History) Score(white bool, piece dt.Piece, dest uint8) uint32 {
	return h[colorIndex(white)][piece][dest]
}

func colorIndex(white bool) int {
	if white {
		return 0
	}
	return 1
}
