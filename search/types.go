package search

import (
	"errors"

	dt "github.com/dylhunn/dragontoothmg"

	"github.com/corvidchess/corvid/eval"
)

// SearchError is the search domain's error taxonomy (spec.md §7).
type SearchError error

var (
	// ErrTerminated means the host asked to stop, or the time manager's
	// deadline was reached. Recoverable at the driver: report the last
	// completed iteration, if any.
	ErrTerminated SearchError = errors.New("search: terminated")
	// ErrNoMoves means the root position has no legal moves.
	ErrNoMoves SearchError = errors.New("search: no legal moves at root")
)

// Reaching options.MaxDepth is not an error: Run returns nil when
// iterative deepening completes every iteration up to it without being
// terminated.

// SearchResult is reported once per completed root iteration (spec.md
// §6 Handler contract).
type SearchResult struct {
	Move               dt.Move
	Value              eval.Eval
	Nodes              uint32
	Depth              uint8
	SelDepth           uint8
	PrincipalVariation []dt.Move
	TTCapacity         int
	TTEntries          int
	CacheHit           uint32
	CacheMiss          uint32
}

// Handler is the host callback contract (spec.md §6).
type Handler interface {
	// TimeUp is polled cooperatively; true must cause the current
	// search to unwind and stop.
	TimeUp() bool
	// SearchResult is called once per completed iteration.
	SearchResult(SearchResult)
}
