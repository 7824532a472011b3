// Package book implements a Polyglot-format opening book reader: a
// sorted array of 16-byte (hash, move, weight, learn) records, probed
// by position hash via binary search - the same on-disk layout
// AdamGriffiths31-ChessEngine's openings package reads.
//
// Entries are keyed by this engine's own Board.Hash() rather than the
// official Polyglot Zobrist scheme (Board's en-passant and castling
// state are unexported, so this module cannot recompute that scheme
// independently of dragontoothmg itself). A book probed here must
// therefore have been produced by this same engine; see DESIGN.md.
package book

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"

	dt "github.com/dylhunn/dragontoothmg"
)

// EntrySize is the on-disk size of one Polyglot record in bytes.
const EntrySize = 16

// ErrNotSorted is returned by Load when the file's entries are not in
// ascending hash order, which the binary-search probe requires.
var ErrNotSorted = errors.New("book: entries not sorted by hash")

// Entry is one raw Polyglot record.
type Entry struct {
	Hash   uint64
	Move   uint16
	Weight uint16
	Learn  uint32
}

// Book is a loaded, sorted set of opening entries.
type Book struct {
	entries []Entry
}

// Load reads a Polyglot-format book file.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, err
	}
	if stat.Size()%EntrySize != 0 {
		return nil, fmt.Errorf("book: %s is not a multiple of %d bytes", path, EntrySize)
	}

	count := int(stat.Size() / EntrySize)
	entries := make([]Entry, count)
	for i := range entries {
		if err := binary.Read(f, binary.BigEndian, &entries[i].Hash); err != nil {
			return nil, fmt.Errorf("book: reading entry %d: %w", i, err)
		}
		if err := binary.Read(f, binary.BigEndian, &entries[i].Move); err != nil {
			return nil, fmt.Errorf("book: reading entry %d: %w", i, err)
		}
		if err := binary.Read(f, binary.BigEndian, &entries[i].Weight); err != nil {
			return nil, fmt.Errorf("book: reading entry %d: %w", i, err)
		}
		if err := binary.Read(f, binary.BigEndian, &entries[i].Learn); err != nil {
			return nil, fmt.Errorf("book: reading entry %d: %w", i, err)
		}
	}

	if !sort.SliceIsSorted(entries, func(i, j int) bool { return entries[i].Hash < entries[j].Hash }) {
		return nil, ErrNotSorted
	}
	return &Book{entries: entries}, nil
}

// Write serializes entries (assumed already sorted by Hash) in
// Polyglot's binary layout.
func Write(w io.Writer, entries []Entry) error {
	for _, e := range entries {
		if err := binary.Write(w, binary.BigEndian, e.Hash); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, e.Move); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, e.Weight); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, e.Learn); err != nil {
			return err
		}
	}
	return nil
}

// Moves returns the legal dt.Moves this book recommends from board, in
// the order their entries appear in the book file (not sorted by
// weight), or ok=false if the position isn't in the book.
func (b *Book) Moves(board *dt.Board) (moves []dt.Move, weights []uint16, ok bool) {
	hash := board.Hash()
	start := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Hash >= hash })

	legal := board.GenerateLegalMoves()
	for i := start; i < len(b.entries) && b.entries[i].Hash == hash; i++ {
		mv, found := decodeMove(b.entries[i].Move, legal)
		if !found {
			continue
		}
		moves = append(moves, mv)
		weights = append(weights, b.entries[i].Weight)
	}
	return moves, weights, len(moves) > 0
}

// Len reports the number of entries loaded.
func (b *Book) Len() int {
	return len(b.entries)
}

// polyglot move encoding: bits 0-5 to-square, 6-11 from-square, 12-14
// promotion piece (1=knight..4=queen), in a1=0..h8=63 ordering that
// matches dragontoothmg's own square numbering, so no file/rank flip
// is needed before comparing against a legal move's From()/To().
func decodeMove(encoded uint16, legal []dt.Move) (dt.Move, bool) {
	to := uint8(encoded & 0x3F)
	from := uint8((encoded >> 6) & 0x3F)
	promo := (encoded >> 12) & 0x7

	var want dt.Piece
	switch promo {
	case 1:
		want = dt.Knight
	case 2:
		want = dt.Bishop
	case 3:
		want = dt.Rook
	case 4:
		want = dt.Queen
	default:
		want = dt.Nothing
	}

	for _, mv := range legal {
		if mv.From() == from && mv.To() == to && mv.Promote() == want {
			return mv, true
		}
		// Polyglot encodes castling as the king capturing its own
		// rook (e1h1, e1a1, e8h8, e8a8); dragontoothmg's castling
		// moves instead land the king on g1/c1/g8/c8.
		if mv.Promote() == dt.Nothing && mv.From() == from && isCastlingRookSquare(from, to) && mv.To() == castledKingSquare(from, to) {
			return mv, true
		}
	}
	return 0, false
}

func isCastlingRookSquare(from, to uint8) bool {
	switch from {
	case 4: // e1
		return to == 7 || to == 0
	case 60: // e8
		return to == 63 || to == 56
	default:
		return false
	}
}

func castledKingSquare(from, to uint8) uint8 {
	switch {
	case from == 4 && to == 7:
		return 6 // g1
	case from == 4 && to == 0:
		return 2 // c1
	case from == 60 && to == 63:
		return 62 // g8
	case from == 60 && to == 56:
		return 58 // c8
	}
	return to
}
