package search

import (
	"time"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/eval"
)

// PV is the result of one completed iterative-deepening pass: the principal variation found at
// a given depth, its score, and bookkeeping used for UCI `info` output (spec.md §4.8,
// "Iterative deepening"; §6, UCI surface).
type PV struct {
	Depth int
	Score eval.Score
	Moves []board.Move
	Nodes uint64
	Time  time.Duration
}

// BestMove returns the first move of the principal variation, if any.
func (p PV) BestMove() (board.Move, bool) {
	if len(p.Moves) == 0 {
		return board.Move{}, false
	}
	return p.Moves[0], true
}

// IterativeDeepening runs Negamax at depths 1, 2, 3, ... until terminator fires, feeding each
// pass's principal variation back in as the next pass's PV hint (spec.md §4.8). onIteration,
// if non-nil, is called after every depth completes (used by the UCI driver to emit `info`
// lines as the search deepens).
//
// A terminator firing mid-iteration discards that iteration's partial result and returns the
// previous, fully-completed one (spec.md §7: "the outer iterative-deepening loop returns the
// best fully completed iteration instead").
func IterativeDeepening(pos *board.Position, terminator Terminator, noise eval.Random, onIteration func(PV)) PV {
	var best PV
	var hint []board.Move
	var totalNodes uint64

	for depth := 1; ; depth++ {
		if terminator.Stop(totalNodes, depth) {
			return best
		}

		start := time.Now()
		var nodes uint64
		c := &Context{
			Alpha:          eval.NegInf,
			Beta:           eval.Inf,
			DepthRemaining: depth,
			Start:          start,
			PVHint:         hint,
			Terminator:     terminator,
			Noise:          noise,
		}

		res, err := Negamax(pos, c, &nodes)
		totalNodes += nodes
		if err != nil {
			return best
		}

		pv := PV{Depth: depth, Score: res.Score, Moves: res.PV, Nodes: nodes, Time: time.Since(start)}
		best = pv
		hint = res.PV
		if onIteration != nil {
			onIteration(pv)
		}

		if md, ok := pv.Score.MateDistance(); ok && md <= depth {
			// Forced mate found within a fully searched width: no deeper iteration can
			// change the answer (SPEC_FULL.md §5, "Mate-distance scoring").
			return best
		}
	}
}
