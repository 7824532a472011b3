// Package moveorder implements the staged principal move generator,
// the quiescence (captures-only) generator, static exchange
// evaluation, and the killer/history tables search uses to order
// moves at each node (spec.md §4.3).
package moveorder

import (
	"sort"

	dt "github.com/dylhunn/dragontoothmg"
)

// IsCapture reports whether mv is a capture (including en passant) in b.
func IsCapture(b *dt.Board, mv dt.Move) bool {
	_, ok := captureSquare(b, mv)
	return ok
}

type scoredMove struct {
	mv  dt.Move
	see int32
}

// stage is the staged generator's state machine position, mirroring
// the {EmitPv, GenCaptures, EmitWinningCaptures, EmitKillers,
// EmitQuiets, EmitLosingCaptures, Done} shape spec.md's design notes
// describe.
type stage int

const (
	stagePV stage = iota
	stageWinning
	stageKillers
	stageQuiets
	stageLosing
	stageDone
)

// Generator emits a position's legal moves in the order described by
// spec.md §4.3: PV move, winning/equal captures by SEE, killers,
// history-ordered quiets, losing captures.
type Generator struct {
	pv      dt.Move
	hasPV   bool
	winning []scoredMove
	killers []dt.Move
	quiets  []dt.Move
	losing  []scoredMove

	stage                                stage
	iWinning, iKillers, iQuiets, iLosing int
}

// NewGenerator builds a staged generator for board, seeding the PV
// move from a cache hit (if any), the legal (and not-already-emitted)
// killers for this ply, and quiets ordered by history.
func NewGenerator(board *dt.Board, pv dt.Move, hasPV bool, killers []dt.Move, history *History) *Generator {
	legal := board.GenerateLegalMoves()
	g := &Generator{pv: pv, hasPV: hasPV, stage: stagePV}

	legalSet := make(map[dt.Move]bool, len(legal))
	for _, mv := range legal {
		legalSet[mv] = true
	}

	for _, k := range killers {
		if hasPV && k == pv {
			continue
		}
		if legalSet[k] {
			g.killers = append(g.killers, k)
		}
	}
	killerSet := make(map[dt.Move]bool, len(g.killers))
	for _, k := range g.killers {
		killerSet[k] = true
	}

	var quiets []dt.Move
	for _, mv := range legal {
		if hasPV && mv == pv {
			continue
		}
		if killerSet[mv] {
			continue
		}
		if IsCapture(board, mv) {
			s := See(board, mv)
			if s >= 0 {
				g.winning = append(g.winning, scoredMove{mv, s})
			} else {
				g.losing = append(g.losing, scoredMove{mv, s})
			}
		} else {
			quiets = append(quiets, mv)
		}
	}
	sort.SliceStable(g.winning, func(i, j int) bool { return g.winning[i].see > g.winning[j].see })
	sort.SliceStable(g.losing, func(i, j int) bool { return g.losing[i].see > g.losing[j].see })

	white := board.Wtomove
	sort.SliceStable(quiets, func(i, j int) bool {
		pi, _ := PieceAt(board, quiets[i].From())
		pj, _ := PieceAt(board, quiets[j].From())
		return history.Score(white, pi, quiets[i].To()) > history.Score(white, pj, quiets[j].To())
	})
	g.quiets = quiets

	return g
}

// Next returns the next move in staged order, or ok=false once
// exhausted.
func (g *Generator) Next() (mv dt.Move, ok bool) {
	for {
		switch g.stage {
		case stagePV:
			g.stage = stageWinning
			if g.hasPV {
				return g.pv, true
			}
		case stageWinning:
			if g.iWinning < len(g.winning) {
				mv := g.winning[g.iWinning].mv
				g.iWinning++
				return mv, true
			}
			g.stage = stageKillers
		case stageKillers:
			if g.iKillers < len(g.killers) {
				mv := g.killers[g.iKillers]
				g.iKillers++
				return mv, true
			}
			g.stage = stageQuiets
		case stageQuiets:
			if g.iQuiets < len(g.quiets) {
				mv := g.quiets[g.iQuiets]
				g.iQuiets++
				return mv, true
			}
			g.stage = stageLosing
		case stageLosing:
			if g.iLosing < len(g.losing) {
				mv := g.losing[g.iLosing].mv
				g.iLosing++
				return mv, true
			}
			g.stage = stageDone
		case stageDone:
			return 0, false
		}
	}
}
