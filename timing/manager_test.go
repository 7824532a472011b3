package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/corvidchess/corvid/eval"
	"github.com/corvidchess/corvid/search"
)

func TestFixedReturnsRemainingBudget(t *testing.T) {
	f := NewFixed(1 * time.Second)
	remaining := f.Update(search.SearchResult{}, 400*time.Millisecond)
	require.Equal(t, 600*time.Millisecond, remaining)
}

func TestFixedFloorsAtZero(t *testing.T) {
	f := NewFixed(1 * time.Second)
	f.Update(search.SearchResult{}, 900*time.Millisecond)
	remaining := f.Update(search.SearchResult{}, 500*time.Millisecond)
	require.Zero(t, remaining)
}

func TestPercentageFloorsAtMinimum(t *testing.T) {
	p := NewPercentage(1*time.Second, 0.01, 200*time.Millisecond)
	remaining := p.Update(search.SearchResult{}, 0)
	require.Equal(t, 200*time.Millisecond, remaining)
}

func TestStandardCutsShortOnMateScore(t *testing.T) {
	s := NewStandard(10*time.Second, 0.5, 100*time.Millisecond)
	remaining := s.Update(search.SearchResult{Value: eval.MateIn(3)}, 0)
	require.Zero(t, remaining)
}

func TestStandardBehavesLikePercentageOnCentipawnScore(t *testing.T) {
	s := NewStandard(10*time.Second, 0.5, 100*time.Millisecond)
	remaining := s.Update(search.SearchResult{Value: eval.Cp(50)}, 1*time.Second)
	require.Equal(t, 4*time.Second, remaining)
}
