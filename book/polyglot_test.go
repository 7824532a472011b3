package book

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"

	dt "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

func findBookMove(t *testing.T, b *dt.Board, uci string) dt.Move {
	t.Helper()
	for _, mv := range b.GenerateLegalMoves() {
		if mv.String() == uci {
			return mv
		}
	}
	t.Fatalf("move %s not found", uci)
	return 0
}

func writeTestBook(t *testing.T, entries []Entry) string {
	t.Helper()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Hash < entries[j].Hash })

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, entries))

	path := filepath.Join(t.TempDir(), "test.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func TestLoadAndProbeStartpos(t *testing.T) {
	b := dt.ParseFen(dt.Startpos)
	e2e4 := findBookMove(t, &b, "e2e4")
	d2d4 := findBookMove(t, &b, "d2d4")

	encode := func(mv dt.Move) uint16 {
		return uint16(mv.To()) | uint16(mv.From())<<6
	}

	path := writeTestBook(t, []Entry{
		{Hash: b.Hash(), Move: encode(e2e4), Weight: 10},
		{Hash: b.Hash(), Move: encode(d2d4), Weight: 5},
	})

	book, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, book.Len())

	moves, weights, ok := book.Moves(&b)
	require.True(t, ok)
	require.Len(t, moves, 2)
	require.ElementsMatch(t, []uint16{10, 5}, weights)
	require.Contains(t, []string{moves[0].String(), moves[1].String()}, "e2e4")
}

func TestMovesMissingPositionReportsNotFound(t *testing.T) {
	b := dt.ParseFen(dt.Startpos)
	path := writeTestBook(t, []Entry{{Hash: b.Hash() ^ 1, Move: 0, Weight: 1}})

	book, err := Load(path)
	require.NoError(t, err)

	_, _, ok := book.Moves(&b)
	require.False(t, ok)
}

func TestLoadRejectsUnsortedFile(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, []Entry{{Hash: 2}, {Hash: 1}}))
	path := filepath.Join(t.TempDir(), "unsorted.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	_, err := Load(path)
	require.ErrorIs(t, err, ErrNotSorted)
}

func TestLoadRejectsTruncatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "short.bin")
	require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestCastlingMoveDecodesToKingTwoSquareMove(t *testing.T) {
	b := dt.ParseFen("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	kingside := findBookMove(t, &b, "e1g1")

	// Polyglot encodes white kingside castling as e1h1 (king "captures"
	// its own rook).
	const e1, h1 = 4, 7
	entry := uint16(h1) | uint16(e1)<<6

	path := writeTestBook(t, []Entry{{Hash: b.Hash(), Move: entry, Weight: 1}})
	loaded, err := Load(path)
	require.NoError(t, err)

	moves, _, ok := loaded.Moves(&b)
	require.True(t, ok)
	require.Len(t, moves, 1)
	require.Equal(t, kingside, moves[0])
}
