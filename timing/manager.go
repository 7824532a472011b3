// Package timing implements the time managers the search driver uses
// to decide how long to think on a move (spec.md §4.6).
package timing

import (
	"time"

	"github.com/corvidchess/corvid/eval"
	"github.com/corvidchess/corvid/search"
)

// Manager is the driver-facing time budget contract.
type Manager interface {
	// Update folds in a newly completed iteration's result and the
	// wall time elapsed since the last update, returning the duration
	// until the next check deadline.
	Update(result search.SearchResult, elapsed time.Duration) time.Duration
}

// Fixed imposes a hard per-move ceiling.
type Fixed struct {
	interval time.Duration
	elapsed  time.Duration
}

// NewFixed builds a Fixed manager with the given per-move ceiling.
func NewFixed(interval time.Duration) *Fixed {
	return &Fixed{interval: interval}
}

func (f *Fixed) Update(_ search.SearchResult, elapsed time.Duration) time.Duration {
	f.elapsed += elapsed
	if f.interval > f.elapsed {
		return f.interval - f.elapsed
	}
	return 0
}

// Percentage wraps Fixed with a budget computed once from the time
// left on the clock and a fraction of it, floored at a minimum.
type Percentage struct {
	Fixed
}

// NewPercentage allocates pct of timeLeft, never less than minimum.
func NewPercentage(timeLeft time.Duration, pct float64, minimum time.Duration) *Percentage {
	budget := time.Duration(float64(timeLeft) * pct)
	if budget < minimum {
		budget = minimum
	}
	return &Percentage{Fixed: Fixed{interval: budget}}
}

// Standard wraps Percentage, cutting thinking short the moment a
// completed iteration reports a forced mate rather than a centipawn
// score.
type Standard struct {
	Percentage
}

// NewStandard allocates pct of timeLeft, never less than minimum.
func NewStandard(timeLeft time.Duration, pct float64, minimum time.Duration) *Standard {
	return &Standard{Percentage: *NewPercentage(timeLeft, pct, minimum)}
}

func (s *Standard) Update(result search.SearchResult, elapsed time.Duration) time.Duration {
	if kind, _ := result.Value.Classify(); kind != eval.Centipawn {
		return 0
	}
	return s.Percentage.Update(result, elapsed)
}
