package uci

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/corvidchess/corvid/eval"
	"github.com/corvidchess/corvid/search"
)

// Logger receives search progress notifications, mirroring the
// teacher engine's Logger/NulLogger split so the core search package
// never has to know it is being driven over UCI.
type Logger interface {
	BeginSearch()
	EndSearch()
	PrintPV(result search.SearchResult)
}

// NulLogger discards everything.
type NulLogger struct{}

func (NulLogger) BeginSearch()                       {}
func (NulLogger) EndSearch()                         {}
func (NulLogger) PrintPV(result search.SearchResult) {}

// InfoLogger writes `info depth ... score ... pv ...` lines to an
// io.Writer, in the shape the UCI protocol expects.
type InfoLogger struct {
	w     *bufio.Writer
	start time.Time
}

// NewInfoLogger returns a Logger that writes to stdout.
func NewInfoLogger() *InfoLogger {
	return &InfoLogger{w: bufio.NewWriter(os.Stdout)}
}

func (l *InfoLogger) BeginSearch() {
	l.start = time.Now()
}

func (l *InfoLogger) EndSearch() {
	l.w.Flush()
}

func (l *InfoLogger) PrintPV(result search.SearchResult) {
	elapsed := time.Since(l.start)
	if elapsed <= 0 {
		elapsed = time.Microsecond
	}
	nps := uint64(float64(result.Nodes) / elapsed.Seconds())

	fmt.Fprintf(l.w, "info depth %d seldepth %d ", result.Depth, result.SelDepth)

	kind, plies := result.Value.Classify()
	switch kind {
	case eval.IsMateIn:
		fmt.Fprintf(l.w, "score mate %d ", (plies+1)/2)
	case eval.IsMatedIn:
		fmt.Fprintf(l.w, "score mate %d ", -(plies+1)/2)
	default:
		fmt.Fprintf(l.w, "score cp %d ", plies)
	}

	fmt.Fprintf(l.w, "nodes %d time %d nps %d hashfull %d ",
		result.Nodes, elapsed.Milliseconds(), nps, hashfull(result))

	fmt.Fprint(l.w, "pv")
	for _, mv := range result.PrincipalVariation {
		fmt.Fprintf(l.w, " %s", mv.String())
	}
	fmt.Fprint(l.w, "\n")
	l.w.Flush()
}

// hashfull reports cache fullness per mille, as UCI's `hashfull` expects.
func hashfull(result search.SearchResult) int {
	if result.TTCapacity == 0 {
		return 0
	}
	return result.TTEntries * 1000 / result.TTCapacity
}
