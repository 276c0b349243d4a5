package search

import (
	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/eval"
)

// Negamax runs the negamax alpha-beta search with principal-variation re-search described in
// spec.md §4.8, steps 1-5, for the position reached by pos under the window and remaining
// depth in c. It returns ErrTerminated, unchanged state in pos, the instant c.Terminator fires
// (every Apply is paired with an Unapply on every exit path, per spec.md §5's "scoped
// acquisition discipline").
func Negamax(pos *board.Position, c *Context, nodes *uint64) (Result, error) {
	if c.Terminator.Stop(*nodes, 0) {
		return Result{}, ErrTerminated
	}

	status := eval.Terminate(pos)
	if status.IsTerminal() {
		return Result{Score: eval.TerminalScore(status)}, nil
	}

	if c.DepthRemaining <= 0 {
		*nodes++
		score, err := quiesce(pos, c.Alpha, c.Beta, 0, c.Terminator, c.Noise, nodes)
		if err != nil {
			return Result{}, err
		}
		return Result{Score: score}, nil
	}
	*nodes++

	moves := pos.GenerateMoves(board.All)
	hint, hasHint := c.hintNext()
	orderMoves(pos, moves, hint, hasHint)

	alpha, beta := c.Alpha, c.Beta
	best := eval.NegInf
	var pv []board.Move

	for i, m := range moves {
		d := pos.Apply(m)
		res, score, err := searchMove(pos, c, m, i, alpha, beta, nodes)
		pos.Unapply(d)
		if err != nil {
			return Result{}, err
		}

		if score > best {
			best = score
			pv = append([]board.Move{m}, res.PV...)
		}
		if best > alpha {
			alpha = best
		}
		if alpha >= beta {
			// Beta cutoff (spec.md §4.8 step 4): the PV below a cutoff is meaningless since
			// the sibling that triggered it is never actually the move played.
			return Result{Score: beta}, nil
		}
	}
	return Result{Score: best, PV: pv}, nil
}

// searchMove searches the i'th move already applied to pos and returns its child Result plus
// the negamax score it contributes to this node (spec.md §4.8 step 4): a full window for the
// first move, otherwise a null-window PVS probe with a full re-search on fail-high.
func searchMove(pos *board.Position, c *Context, m board.Move, i int, alpha, beta eval.Score, nodes *uint64) (Result, eval.Score, error) {
	if i == 0 {
		res, err := Negamax(pos, c.child(m, beta.Negate(), alpha.Negate()), nodes)
		if err != nil {
			return Result{}, 0, err
		}
		return res, negate(res.Score), nil
	}

	res, err := Negamax(pos, c.child(m, (alpha+1).Negate(), alpha.Negate()), nodes)
	if err != nil {
		return Result{}, 0, err
	}
	score := negate(res.Score)

	if alpha < score && score < beta {
		res, err = Negamax(pos, c.child(m, beta.Negate(), score.Negate()), nodes)
		if err != nil {
			return Result{}, 0, err
		}
		score = negate(res.Score)
	}
	return res, score, nil
}
