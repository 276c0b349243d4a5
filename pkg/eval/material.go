package eval

import "github.com/maumay/corrosion-go/pkg/board"

// NominalValue is the standard centipawn value of a role, used both for static evaluation and
// for move-ordering/SEE gain estimates. The king is given an arbitrary large value so it never
// looks like a profitable capture target in ordering heuristics.
func NominalValue(r board.Role) Score {
	switch r {
	case board.Pawn:
		return 100
	case board.Knight, board.Bishop:
		return 320
	case board.Rook:
		return 500
	case board.Queen:
		return 900
	case board.King:
		return 20000
	default:
		return 0
	}
}

// NominalValueGain is the nominal material gain of playing m, ignoring positional factors;
// used by move ordering and SEE pruning to cheaply rank captures.
func NominalValueGain(m board.Move) Score {
	gain := Score(0)
	if m.Capture != board.NoRole {
		gain += NominalValue(m.Capture)
	}
	if m.Kind == board.EnPassant && m.Capture == board.NoRole {
		gain += NominalValue(board.Pawn)
	}
	if m.Kind == board.Promotion {
		gain += NominalValue(m.Promote) - NominalValue(board.Pawn)
	}
	return gain
}

// Material returns side-to-move-relative material balance: positive when the side to move
// has more material.
func Material(p *board.Position) Score {
	turn := p.ActiveSide()
	return materialFor(p, turn) - materialFor(p, turn.Opponent())
}

func materialFor(p *board.Position, s board.Side) Score {
	var total Score
	for r := board.Role(0); r < board.NumRoles; r++ {
		total += Score(p.Board(board.MakePiece(s, r)).PopCount()) * NominalValue(r)
	}
	return total
}
