package search

import (
	"sort"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/eval"
	"github.com/maumay/corrosion-go/pkg/see"
)

// promotionBonus places promotions ahead of every capture (spec.md §4.8, "Move ordering
// heuristic": "Promotions: high positive constant (above all captures)"). The queen is worth
// at most eval.NominalValue(board.Queen), so any value strictly greater outranks every SEE
// score a capture could carry.
// It is also kept below eval.Inf, the PV-hint key, so the hint still sorts ahead of promotions.
const promotionBonus = eval.Score(100_000)

// orderMoves sorts moves by the L8 ordering heuristic (spec.md §4.8): the PV-hint move first
// if present, then promotions, then captures by descending SEE value. Quiet moves score zero,
// so they sort after winning captures and ahead of losing (negative SEE) ones.
// Sorting (rather than a priority-queue pop, as the teacher's MoveList does) is adequate here
// since captures are the overwhelming minority of generated moves and SEE is the expensive
// part of the key, computed once per move up front.
func orderMoves(pos *board.Position, moves []board.Move, hint board.Move, hasHint bool) {
	type keyedMove struct {
		move board.Move
		key  eval.Score
	}
	keyed := make([]keyedMove, len(moves))
	for i, m := range moves {
		keyed[i] = keyedMove{move: m, key: moveOrderKey(pos, m, hint, hasHint)}
	}
	sort.Slice(keyed, func(i, j int) bool {
		return keyed[i].key > keyed[j].key
	})
	for i, k := range keyed {
		moves[i] = k.move
	}
}

func moveOrderKey(pos *board.Position, m board.Move, hint board.Move, hasHint bool) eval.Score {
	if hasHint && m.Equals(hint) {
		return eval.Inf
	}
	if m.IsPromotion() {
		return promotionBonus + eval.NominalValue(m.Promote)
	}
	if m.IsCapture() {
		return see.Evaluate(pos, m)
	}
	return 0
}
