package board_test

import (
	"testing"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/board/fen"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestApplyUnapplyRoundTrip exercises spec.md §8 invariant 2: apply(P, m); unapply(P, m, d)
// restores P bit-identically.
func TestApplyUnapplyRoundTrip(t *testing.T) {
	positions := []string{
		fen.Initial,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1",
		"8/8/8/KPp4r/8/8/8/4k3 w - c6 0 1",
		"rnbq1bnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3",
	}

	for _, start := range positions {
		p, err := fen.Decode(start)
		require.NoError(t, err)

		for _, m := range p.GenerateMoves(board.All) {
			before := fen.Encode(p)
			beforeHash := p.Hash()

			d := p.Apply(m)
			p.Unapply(d)

			assert.Equal(t, before, fen.Encode(p), "fen mismatch after apply/unapply of %v", m)
			assert.Equal(t, beforeHash, p.Hash(), "hash mismatch after apply/unapply of %v", m)
		}
	}
}

// TestApplyLeavesMoverKingSafe exercises spec.md §8 invariant 3: for every generated move the
// passive king is not in check afterward (it is, after all, the mover's king in the resulting
// position since sides flip).
func TestApplyLeavesMoverKingSafe(t *testing.T) {
	p, err := fen.Decode("r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	mover := p.ActiveSide()
	for _, m := range p.GenerateMoves(board.All) {
		d := p.Apply(m)
		assert.False(t, p.InCheck(mover), "move %v leaves mover's own king in check", m)
		p.Unapply(d)
	}
}

func TestHasCastledTracksCastleMoveOnly(t *testing.T) {
	p, err := fen.Decode("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1")
	require.NoError(t, err)

	assert.False(t, p.HasCastled(board.White))

	// A rook move loses castling rights without setting HasCastled.
	var rookMove board.Move
	var foundRookMove bool
	for _, m := range p.GenerateMoves(board.All) {
		if m.String() == "a1b1" {
			rookMove, foundRookMove = m, true
		}
	}
	require.True(t, foundRookMove, "a1b1 not found")
	d := p.Apply(rookMove)
	assert.False(t, p.HasCastled(board.White))
	p.Unapply(d)

	var castle board.Move
	var foundCastle bool
	for _, m := range p.GenerateMoves(board.All) {
		if m.Kind == board.Castle && m.Zone == board.KingSideZone(board.White) {
			castle, foundCastle = m, true
		}
	}
	require.True(t, foundCastle, "O-O not found")

	d = p.Apply(castle)
	assert.True(t, p.HasCastled(board.White))
	p.Unapply(d)
	assert.False(t, p.HasCastled(board.White), "unapply must restore HasCastled")
}
