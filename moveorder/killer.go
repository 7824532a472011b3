package moveorder

import dt "github.com/dylhunn/dragontoothmg"

// Killers is a bounded FIFO of the two most recent quiet moves that
// caused a beta cutoff at one ply. A 2-slot circular buffer needs no
// heap allocation per ply.
type Killers struct {
	moves [2]dt.Move
	n     int
}

// Push records mv as a killer, removing any existing equal entry
// first and dropping the oldest entry on overflow.
func (k *Killers) Push(mv dt.Move) {
	k.remove(mv)
	if k.n < 2 {
		k.moves[k.n] = mv
		k.n++
		return
	}
	k.moves[0] = k.moves[1]
	k.moves[1] = mv
}

func (k *Killers) remove(mv dt.Move) {
	switch k.n {
	case 2:
		if k.moves[0] == mv {
			k.moves[0] = k.moves[1]
			k.n--
			return
		}
		if k.moves[1] == mv {
			k.n--
			return
		}
	case 1:
		if k.moves[0] == mv {
			k.n = 0
		}
	}
}

// Moves returns the currently stored killers, oldest first.
func (k *Killers) Moves() []dt.Move {
	return k.moves[:k.n]
}

// KillerTable holds one Killers FIFO per ply.
type KillerTable struct {
	plies []Killers
}

// NewKillerTable allocates a table with one slot per ply up to maxPly.
func NewKillerTable(maxPly int) *KillerTable {
	return &KillerTable{plies: make([]Killers, maxPly)}
}

// At returns the Killers for a given ply.
func (t *KillerTable) At(ply uint8) *Killers {
	return &t.plies[ply]
}
