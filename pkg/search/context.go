// Package search implements the negamax alpha-beta search with principal-variation re-search,
// quiescence extension, move ordering and iterative deepening described in spec.md §4.8 (L8).
// It depends only on pkg/board (position, move generation, apply/unapply), pkg/eval (static
// evaluation and termination detection) and pkg/see (static exchange evaluation for ordering
// and quiescence pruning).
package search

import (
	"errors"
	"time"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/eval"
)

// ErrTerminated is the internal control-flow error used to unwind the search stack once the
// Terminator fires (spec.md §7, "SearchTerminated"). It never reaches a caller outside this
// package: the iterative-deepening driver (iterative.go) catches it and falls back to the
// previous depth's completed result.
var ErrTerminated = errors.New("search terminated")

// Context carries the per-call search parameters spec.md §4.8 lists: the alpha-beta window,
// remaining depth, the path of moves from the search root (used to match the PV hint), the
// search start time, and the hint itself (the previous iterative-deepening pass's principal
// variation).
type Context struct {
	Alpha, Beta    eval.Score
	DepthRemaining int
	Path           []board.Move
	Start          time.Time
	PVHint         []board.Move
	Terminator     Terminator
	Noise          eval.Random
}

// Result is what a completed (non-terminated) search call returns: the negamax score from the
// side-to-move's perspective, and the principal variation below this node.
type Result struct {
	Score eval.Score
	PV    []board.Move
}

// hintNext returns the PV hint's next move, if ctx.Path is a prefix of ctx.PVHint and the hint
// extends beyond it (spec.md §4.8, step 3: "If the current path is a prefix of the PV hint and
// the hint extends it, place the hint's next move at index 0").
func (c *Context) hintNext() (board.Move, bool) {
	if len(c.PVHint) <= len(c.Path) {
		return board.Move{}, false
	}
	for i, m := range c.Path {
		if !m.Equals(c.PVHint[i]) {
			return board.Move{}, false
		}
	}
	return c.PVHint[len(c.Path)], true
}

// negate folds IncrementMateDistance into the negamax sign flip applied to every child score
// (spec.md §4.8 step 4, "score = -search(...)"), so a mate score grows one ply further from
// the mating move on every unwound frame (SPEC_FULL.md §5, "Mate-distance scoring").
func negate(s eval.Score) eval.Score {
	return eval.IncrementMateDistance(s).Negate()
}

// child returns the Context used to search the position reached by playing m: the window is
// negated (negamax), depth decremented, and the path extended.
func (c *Context) child(m board.Move, alpha, beta eval.Score) *Context {
	path := make([]board.Move, len(c.Path)+1)
	copy(path, c.Path)
	path[len(c.Path)] = m
	return &Context{
		Alpha:          alpha,
		Beta:           beta,
		DepthRemaining: c.DepthRemaining - 1,
		Path:           path,
		Start:          c.Start,
		PVHint:         c.PVHint,
		Terminator:     c.Terminator,
		Noise:          c.Noise,
	}
}
