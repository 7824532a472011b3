package uci

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dt "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/book"
)

func TestUCIHandshake(t *testing.T) {
	var out bytes.Buffer
	u := New(&out)

	require.NoError(t, u.Execute("uci"))
	require.Contains(t, out.String(), "id name corvid")
	require.Contains(t, out.String(), "uciok")

	out.Reset()
	require.NoError(t, u.Execute("isready"))
	require.Equal(t, "readyok\n", out.String())
}

func TestPositionStartposWithMoves(t *testing.T) {
	var out bytes.Buffer
	u := New(&out)

	require.NoError(t, u.Execute("position startpos moves e2e4 e7e5"))
	require.Len(t, u.moves, 2)
	require.Equal(t, "e2e4", u.moves[0].String())
	require.Equal(t, "e7e5", u.moves[1].String())
}

func TestPositionFEN(t *testing.T) {
	var out bytes.Buffer
	u := New(&out)

	err := u.Execute("position fen 7k/8/8/4p3/3P4/8/8/7K w - - 0 1")
	require.NoError(t, err)
	require.Empty(t, u.moves)
}

func TestPositionRejectsIllegalMove(t *testing.T) {
	var out bytes.Buffer
	u := New(&out)

	err := u.Execute("position startpos moves e2e5")
	require.Error(t, err)
}

func TestGoThenStopProducesBestmove(t *testing.T) {
	var out bytes.Buffer
	u := New(&out)
	require.NoError(t, u.Execute("position startpos"))

	require.NoError(t, u.Execute("go infinite"))
	time.Sleep(5 * time.Millisecond)
	require.NoError(t, u.Execute("stop"))

	require.True(t, strings.HasPrefix(out.String(), "bestmove "))
}

func TestSetOptionHash(t *testing.T) {
	var out bytes.Buffer
	u := New(&out)

	require.NoError(t, u.Execute("setoption name Hash value 64"))
	require.Equal(t, 64, u.file.HashSizeMB)
}

func TestQuitReturnsSentinel(t *testing.T) {
	var out bytes.Buffer
	u := New(&out)
	require.ErrorIs(t, u.Execute("quit"), ErrQuit)
}

func TestGoPrefersBookMoveOverSearch(t *testing.T) {
	b := dt.ParseFen(dt.Startpos)
	var e2e4 dt.Move
	for _, mv := range b.GenerateLegalMoves() {
		if mv.String() == "e2e4" {
			e2e4 = mv
		}
	}

	var buf bytes.Buffer
	require.NoError(t, book.Write(&buf, []book.Entry{
		{Hash: b.Hash(), Move: uint16(e2e4.To()) | uint16(e2e4.From())<<6, Weight: 1},
	}))
	path := filepath.Join(t.TempDir(), "book.bin")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	loaded, err := book.Load(path)
	require.NoError(t, err)

	var out bytes.Buffer
	u := New(&out)
	u.SetBook(loaded)
	require.NoError(t, u.Execute("position startpos"))
	require.NoError(t, u.Execute("go"))

	require.Equal(t, "bestmove e2e4\n", out.String())
}
