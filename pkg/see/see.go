// Package see implements static exchange evaluation (spec.md §4.6, L7): given a target square
// and a capturing move, it simulates the sequence of least-valuable-attacker captures
// alternating sides until one side has no attacker or stands pat, and returns the mini-maxed
// material result. Move ordering and quiescence pruning (pkg/search) use it to tell winning
// captures from losing ones without a full sub-search.
package see

import (
	"github.com/maumay/corrosion-go/pkg/attacks"
	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/eval"
)

// attackOrder lists roles from least to most valuable, the order the swap-off algorithm below
// always picks from (spec.md §4.6: "the sequence of least-valuable-attacker captures").
var attackOrder = [board.NumRoles]board.Role{
	board.Pawn, board.Knight, board.Bishop, board.Rook, board.Queen, board.King,
}

// Evaluate returns the static exchange evaluation of playing m, in centipawns, from the
// perspective of the side making m: positive means the exchange sequence nets material,
// negative means it loses material. Non-capturing moves (including castling) always evaluate
// to zero; SEE has nothing to simulate there.
func Evaluate(p *board.Position, m board.Move) eval.Score {
	if !m.IsCapture() {
		return 0
	}

	boards := p.BoardsCopy()
	occ := p.Occupied()
	target := m.To
	side := m.Side()

	var capturedRole board.Role
	if m.Kind == board.EnPassant {
		capSq := enPassantVictimSquare(target, side)
		capturedRole = board.Pawn
		occ = occ.Difference(board.BitMask(capSq))
		boards[board.MakePiece(side.Opponent(), board.Pawn)] = boards[board.MakePiece(side.Opponent(), board.Pawn)].Difference(board.BitMask(capSq))
	} else {
		capturedRole = m.Capture
	}

	// gain[d] holds the material swing after the d'th capture on target, from the mover-at-
	// depth-d's perspective. gain[0] is simply the value of the first piece taken.
	var gain [32]eval.Score
	depth := 0
	gain[0] = eval.NominalValue(capturedRole)

	attackerRole := m.Piece.Role()
	if m.Kind == board.Promotion {
		attackerRole = m.Promote
	}

	occ = occ.Difference(board.BitMask(m.From))
	boards[m.Piece] = boards[m.Piece].Difference(board.BitMask(m.From))

	side = side.Opponent()
	for {
		attackers := attacks.AttackersTo(target, side, &boards, occ)
		if attackers == 0 {
			break
		}
		role, sq, ok := leastValuableAttacker(&boards, side, attackers)
		if !ok {
			break
		}

		depth++
		gain[depth] = eval.NominalValue(attackerRole) - gain[depth-1]
		// A capturer that would only make things worse for both sides from here on stops the
		// sequence early: neither side benefits from continuing (standard SEE swap-off pruning).
		if maxScore(-gain[depth-1], gain[depth]) < 0 {
			break
		}

		occ = occ.Difference(board.BitMask(sq))
		boards[board.MakePiece(side, role)] = boards[board.MakePiece(side, role)].Difference(board.BitMask(sq))
		attackerRole = role
		side = side.Opponent()
	}

	for depth > 0 {
		gain[depth-1] = -maxScore(-gain[depth-1], gain[depth])
		depth--
	}
	return gain[0]
}

// leastValuableAttacker returns the cheapest role (and its square) among `attackers` belonging
// to side, scanning pawn through king (spec.md §4.6).
func leastValuableAttacker(boards *[board.NumPieces]board.Bitboard, side board.Side, attackers board.Bitboard) (board.Role, board.Square, bool) {
	for _, r := range attackOrder {
		candidates := boards[board.MakePiece(side, r)].Intersect(attackers)
		if candidates != 0 {
			return r, candidates.FirstSquare(), true
		}
	}
	return 0, board.NoSquare, false
}

// enPassantVictimSquare returns the square of the pawn actually removed by an en-passant
// capture landing on `to`, played by `side`.
func enPassantVictimSquare(to board.Square, side board.Side) board.Square {
	if side == board.White {
		return board.Square(int(to) - 8)
	}
	return board.Square(int(to) + 8)
}

func maxScore(a, b eval.Score) eval.Score {
	if a > b {
		return a
	}
	return b
}
