package moveorder

import (
	"testing"

	dt "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

func TestGeneratorEmitsPVMoveFirst(t *testing.T) {
	b := dt.ParseFen(dt.Startpos)
	pv := findMove(t, &b, "e2e4")
	g := NewGenerator(&b, pv, true, nil, &History{})
	mv, ok := g.Next()
	require.True(t, ok)
	require.Equal(t, pv, mv)
}

func TestGeneratorCoversEveryLegalMoveExactlyOnce(t *testing.T) {
	b := dt.ParseFen("r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3")
	legal := b.GenerateLegalMoves()
	want := make(map[dt.Move]int, len(legal))
	for _, mv := range legal {
		want[mv]++
	}

	g := NewGenerator(&b, 0, false, nil, &History{})
	got := make(map[dt.Move]int, len(legal))
	for {
		mv, ok := g.Next()
		if !ok {
			break
		}
		got[mv]++
	}
	require.Equal(t, want, got)
}

func TestGeneratorOrdersWinningCapturesBeforeQuiets(t *testing.T) {
	// White to move can take an undefended knight with a pawn, or play a
	// quiet developing move; the capture must come first.
	b := dt.ParseFen("4k3/8/8/3n4/4P3/8/3N4/4K3 w - - 0 1")
	g := NewGenerator(&b, 0, false, nil, &History{})
	capture := findMove(t, &b, "e4d5")

	var order []dt.Move
	for {
		mv, ok := g.Next()
		if !ok {
			break
		}
		order = append(order, mv)
	}
	idx := -1
	for i, mv := range order {
		if mv == capture {
			idx = i
			break
		}
	}
	require.Zero(t, idx, "winning capture should be the first move emitted")
}

func TestGeneratorSkipsKillerNotLegalHere(t *testing.T) {
	b := dt.ParseFen(dt.Startpos)
	bogus := findMove(t, &b, "e2e4")
	// Use a position where e2e4 is not legal (pawn already moved away).
	other := dt.ParseFen("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq - 0 1")
	g := NewGenerator(&other, 0, false, []dt.Move{bogus}, &History{})
	seen := false
	for {
		mv, ok := g.Next()
		if !ok {
			break
		}
		if mv == bogus {
			seen = true
		}
	}
	require.False(t, seen)
}

func TestQGeneratorOnlyEmitsCaptures(t *testing.T) {
	b := dt.ParseFen("4k3/8/8/3n4/4P3/8/8/4K3 w - - 0 1")
	qg := NewQGenerator(&b)
	mv, _, ok := qg.Next()
	require.True(t, ok)
	require.True(t, IsCapture(&b, mv))
	_, _, ok = qg.Next()
	require.False(t, ok)
}
