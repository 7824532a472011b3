package eval

import (
	"testing"

	dt "github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/require"
)

// TestEvalMirror checks the documented invariant directly: evaluating
// a color-mirrored board returns the additive inverse.
func TestEvalMirror(t *testing.T) {
	var e StandardEvaluator

	white := dt.ParseFen("r3k2r/ppp2ppp/2n1bn2/2bpp3/2BPP3/2N1BN2/PPP2PPP/R3K2R w KQkq - 0 1")
	black := dt.ParseFen("r3k2r/ppp2ppp/2n1bn2/2bpp3/2BPP3/2N1BN2/PPP2PPP/R3K2R b KQkq - 0 1")

	require.Equal(t, e.Evaluate(&white, 0), -e.Evaluate(&black, 0))
}

func TestMateClassification(t *testing.T) {
	m := MateIn(3)
	kind, p := m.Classify()
	require.Equal(t, IsMateIn, kind)
	require.EqualValues(t, 3, p)

	md := MatedIn(2)
	kind, p = md.Classify()
	require.Equal(t, IsMatedIn, kind)
	require.EqualValues(t, 2, p)

	cp := Cp(45)
	kind, p = cp.Classify()
	require.Equal(t, Centipawn, kind)
	require.EqualValues(t, 45, p)
}

func TestMateNegation(t *testing.T) {
	require.Equal(t, MatedIn(4), -MateIn(4))
	require.Equal(t, MateIn(4), -MatedIn(4))
}
