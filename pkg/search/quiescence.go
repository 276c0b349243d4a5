package search

import (
	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/eval"
	"github.com/maumay/corrosion-go/pkg/see"
)

// QDepthCap and QCheckCap bound the quiescence extension (spec.md §4.8): depth counts down
// into negatives from 0, QDepthCap is the hard floor, and below QCheckCap (but above
// QDepthCap) only captures/promotions are explored rather than captures-plus-checks.
const (
	QDepthCap = -6
	QCheckCap = -3
)

// quiesce runs the quiescence extension from pos at the given (non-positive) ply depth,
// returning the side-to-move-relative score. It assumes pos is not yet known to be terminal;
// that is checked on entry just as in the main search.
func quiesce(pos *board.Position, alpha, beta eval.Score, depth int, terminator Terminator, noise eval.Random, nodes *uint64) (eval.Score, error) {
	if terminator.Stop(*nodes, 0) {
		return 0, ErrTerminated
	}

	status := eval.Terminate(pos)
	if status.IsTerminal() {
		return eval.TerminalScore(status), nil
	}

	*nodes++

	inCheck := pos.InCheck(pos.ActiveSide())
	if depth <= QDepthCap {
		return eval.Evaluate(pos) + noise.Sample(), nil
	}

	if !inCheck {
		// Stand-pat: the side to move need not play on if simply stopping here is already
		// good enough (spec.md §4.8, "take the static eval as a stand-pat lower bound").
		standPat := eval.Evaluate(pos) + noise.Sample()
		if standPat >= beta {
			return beta, nil
		}
		if standPat > alpha {
			alpha = standPat
		}
	}

	var moves []board.Move
	switch {
	case inCheck:
		// In check, every legal response matters, not only captures: a quiet move out of
		// check can be the only legal move.
		moves = pos.GenerateMoves(board.All)
	case depth > QCheckCap:
		moves = pos.GenerateMoves(board.CapturesChecks)
	default:
		moves = pos.GenerateMoves(board.Captures)
	}
	orderMoves(pos, moves, board.Move{}, false)

	for _, m := range moves {
		if !inCheck && m.IsCapture() {
			gain := see.Evaluate(pos, m)
			// Bad exchanges are discarded unless the capture gives check: a losing capture
			// can still be a mating blow, so SEE alone must not prune it away (spec.md §9's
			// Open Question, resolved in SPEC_FULL.md §5/§6: never SEE-prune a checking move).
			if gain <= 0 && !givesCheck(pos, m) {
				continue
			}
		}

		d := pos.Apply(m)
		score, err := quiesce(pos, beta.Negate(), alpha.Negate(), depth-1, terminator, noise, nodes)
		pos.Unapply(d)
		if err != nil {
			return 0, err
		}

		score = negate(score)
		if score > alpha {
			alpha = score
		}
		if alpha >= beta {
			break
		}
	}
	return alpha, nil
}

// givesCheck reports whether playing m leaves the opponent in check. Used to exempt checking
// captures from the SEE <= 0 discard above.
func givesCheck(pos *board.Position, m board.Move) bool {
	d := pos.Apply(m)
	check := pos.InCheck(pos.ActiveSide())
	pos.Unapply(d)
	return check
}
