package eval

import "github.com/maumay/corrosion-go/pkg/board"

// mgValue, egValue are the midgame/endgame material values (centipawns) per role, used by the
// tapered evaluation (spec.md §4.5, "Material"). They differ slightly from NominalValue, which
// is the flat nominal value used for move-ordering and SEE where a single cheap estimate is
// wanted rather than a phase-dependent one.
var mgValue = [board.NumRoles]Score{
	board.Pawn: 82, board.Knight: 337, board.Bishop: 365,
	board.Rook: 477, board.Queen: 1025, board.King: 0,
}

var egValue = [board.NumRoles]Score{
	board.Pawn: 94, board.Knight: 281, board.Bishop: 297,
	board.Rook: 512, board.Queen: 936, board.King: 0,
}

// Evaluate returns the tapered midgame/endgame material-plus-PSQT evaluation of the position
// from the side-to-move's perspective (spec.md §4.5): positive favors the side to move. It does
// not itself detect terminal positions; callers must run Terminate first (spec.md: "Termination
// detection (called before leaf evaluation)").
func Evaluate(p *board.Position) Score {
	var mg, eg Score
	phase := 0

	for r := board.Role(0); r < board.NumRoles; r++ {
		for s := board.Side(0); s < board.NumSides; s++ {
			piece := board.MakePiece(s, r)
			for _, sq := range p.Board(piece).Squares() {
				sign := Unit(s)
				mg += sign * mgValue[r]
				eg += sign * egValue[r]
				pmg, peg := taperedPSQT(s, r, sq)
				mg += Score(pmg)
				eg += Score(peg)
				phase += phaseWeight[r]
			}
		}
	}

	if phase > totalPhase {
		phase = totalPhase
	}
	// Tapered mix: weight midgame by remaining phase, endgame by consumed phase, scaled by
	// totalPhase (spec.md §4.5, "Tapered score").
	score := (mg*Score(phase) + eg*Score(totalPhase-phase)) / totalPhase
	score += castlingBonus(p, board.White) - castlingBonus(p, board.Black)

	if p.ActiveSide() == board.Black {
		score = -score
	}
	return score
}

// castlingBonusValue rewards a king that has actually castled over one that merely still holds
// (or has lost) the right to, since the PSQT alone scores the king's square identically either
// way (SPEC_FULL.md §5, "HasCastled").
const castlingBonusValue Score = 20

func castlingBonus(p *board.Position, s board.Side) Score {
	if p.HasCastled(s) {
		return castlingBonusValue
	}
	return 0
}

// Status classifies a position as ongoing or one of the terminal outcomes spec.md §4.5
// enumerates: checkmate/stalemate (no legal move), the fifty-move rule, and threefold
// repetition. Insufficient material is a supplemental draw reason (SPEC_FULL.md §5, folded
// back from original_source/'s board draw adjudication).
type Status uint8

const (
	Ongoing Status = iota
	Checkmate
	Stalemate
	FiftyMoveDraw
	ThreefoldRepetition
	InsufficientMaterial
)

func (s Status) IsTerminal() bool {
	return s != Ongoing
}

func (s Status) IsDraw() bool {
	switch s {
	case Stalemate, FiftyMoveDraw, ThreefoldRepetition, InsufficientMaterial:
		return true
	default:
		return false
	}
}

// Terminate classifies the position's termination status, checked by search before leaf
// evaluation (spec.md §4.5). Checkmate/stalemate take priority over the draw rules since they
// require a "no legal move" scan that the caller has often already paid for; callers that
// already know HasLegalMove's result may skip straight to the draw checks.
func Terminate(p *board.Position) Status {
	if !p.HasLegalMove() {
		if p.InCheck(p.ActiveSide()) {
			return Checkmate
		}
		return Stalemate
	}
	if p.IsFiftyMoveDraw() {
		return FiftyMoveDraw
	}
	if p.IsRepetition() {
		return ThreefoldRepetition
	}
	if p.IsInsufficientMaterial() {
		return InsufficientMaterial
	}
	return Ongoing
}

// TerminalScore returns the Score a terminal Status carries, from the side-to-move's
// perspective: LOSS on checkmate (the side to move has just been mated), DRAW otherwise.
// Mate distance is layered on by the search via IncrementMateDistance as the stack unwinds.
func TerminalScore(s Status) Score {
	if s == Checkmate {
		return MateScore
	}
	return 0
}
