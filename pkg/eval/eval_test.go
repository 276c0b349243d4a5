package eval_test

import (
	"testing"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/board/fen"
	"github.com/maumay/corrosion-go/pkg/eval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateInitialPositionIsBalanced(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Zero(t, int(eval.Evaluate(p)))
}

func TestEvaluateFavorsMaterialUp(t *testing.T) {
	// White is up a rook.
	p, err := fen.Decode("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)

	assert.Positive(t, int(eval.Evaluate(p)))
}

func TestEvaluateIsSideToMoveRelative(t *testing.T) {
	white, err := fen.Decode("4k3/8/8/8/8/8/8/R3K3 w - - 0 1")
	require.NoError(t, err)
	black, err := fen.Decode("4k3/8/8/8/8/8/8/R3K3 b - - 0 1")
	require.NoError(t, err)

	assert.Equal(t, int(eval.Evaluate(white)), -int(eval.Evaluate(black)))
}

func TestTerminateCheckmate(t *testing.T) {
	// Back-rank mate: white rook on a8, black king boxed in on h8.
	p, err := fen.Decode("r6k/6pp/8/8/8/8/8/R6K w - - 0 1")
	require.NoError(t, err)

	for _, m := range p.GenerateMoves(board.All) {
		if m.String() != "a1a8" {
			continue
		}
		d := p.Apply(m)
		defer p.Unapply(d)

		status := eval.Terminate(p)
		assert.Equal(t, eval.Checkmate, status)
		assert.True(t, status.IsTerminal())
		assert.False(t, status.IsDraw())
		assert.Equal(t, eval.MateScore, eval.TerminalScore(status))
		return
	}
	t.Fatal("a1a8 not found")
}

func TestTerminateStalemate(t *testing.T) {
	p, err := fen.Decode("7k/5Q2/6K1/8/8/8/8/8 b - - 0 1")
	require.NoError(t, err)

	status := eval.Terminate(p)
	assert.Equal(t, eval.Stalemate, status)
	assert.True(t, status.IsDraw())
}

func TestTerminateOngoing(t *testing.T) {
	p, err := fen.Decode(fen.Initial)
	require.NoError(t, err)

	assert.Equal(t, eval.Ongoing, eval.Terminate(p))
	assert.False(t, eval.Terminate(p).IsTerminal())
}

func TestScoreMateDistance(t *testing.T) {
	s := eval.MateScore
	md, ok := s.MateDistance()
	require.True(t, ok)
	assert.Equal(t, 0, md)

	assert.False(t, eval.IsMateScore(0))
	_, ok = eval.Score(0).MateDistance()
	assert.False(t, ok)
}

func TestScoreIncrementMateDistance(t *testing.T) {
	s := eval.IncrementMateDistance(eval.MateScore)
	md, ok := s.MateDistance()
	require.True(t, ok)
	assert.Equal(t, 1, md)
}

func TestScoreNegate(t *testing.T) {
	assert.Equal(t, eval.NegInf, eval.Inf.Negate())
	assert.Equal(t, eval.Inf, eval.NegInf.Negate())
	assert.Equal(t, eval.Score(-5), eval.Score(5).Negate())
}
