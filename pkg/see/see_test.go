package see_test

import (
	"testing"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/board/fen"
	"github.com/maumay/corrosion-go/pkg/see"
	"github.com/stretchr/testify/require"
)

func findMove(t *testing.T, p *board.Position, uci string) board.Move {
	t.Helper()
	for _, m := range p.GenerateMoves(board.All) {
		if m.String() == uci {
			return m
		}
	}
	t.Fatalf("move %v not found", uci)
	return board.Move{}
}

func TestEvaluateWinningCapture(t *testing.T) {
	// White rook takes an undefended black knight on d5.
	p, err := fen.Decode("4k3/8/8/3n4/8/8/3R4/4K3 w - - 0 1")
	require.NoError(t, err)

	m := findMove(t, p, "d2d5")
	require.True(t, m.IsCapture())

	score := see.Evaluate(p, m)
	require.Positive(t, int(score))
}

func TestEvaluateLosingCapture(t *testing.T) {
	// Queen takes a pawn on d5 defended by a pawn on c6: SEE must be negative (queen for pawn).
	p, err := fen.Decode("4k3/8/2p5/3p4/3Q4/8/8/4K3 w - - 0 1")
	require.NoError(t, err)

	m := findMove(t, p, "d4d5")
	require.True(t, m.IsCapture())

	score := see.Evaluate(p, m)
	require.Negative(t, int(score))
}

func TestEvaluateNonCaptureIsZero(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	m := findMove(t, p, "e2e4")
	require.False(t, m.IsCapture())
	require.Equal(t, 0, int(see.Evaluate(p, m)))
}
