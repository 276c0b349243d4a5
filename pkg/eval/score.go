// Package eval contains static position evaluation: material balance, piece-square tables,
// tapered midgame/endgame interpolation, and terminal-position scoring.
package eval

import (
	"fmt"

	"github.com/maumay/corrosion-go/pkg/board"
)

// Score is a signed evaluation in centipawns. Evaluate and the search report it relative to the
// side to move: positive favors the side to move. Mate scores are encoded as MaxScore minus the
// distance in plies to the mating move (MinScore plus that distance for the side being mated),
// so that shorter mates always compare as strictly better than longer ones.
type Score int32

const (
	MinScore Score = -1000000
	MaxScore Score = 1000000
	NegInf         = MinScore - 1
	Inf            = MaxScore + 1

	// MateScore is the evaluation assigned to a position where the side to move has just
	// been checkmated on the prior ply.
	MateScore = MinScore
)

func (s Score) String() string {
	return fmt.Sprintf("%d", s)
}

// Unit returns the signed unit for side s: +1 for White, -1 for Black. Multiplying a
// side-relative score by Unit converts it to White-relative terms.
func Unit(s board.Side) Score {
	if s == board.White {
		return 1
	}
	return -1
}

func Crop(s Score) Score {
	switch {
	case s > MaxScore:
		return MaxScore
	case s < MinScore:
		return MinScore
	default:
		return s
	}
}

func Max(a, b Score) Score {
	if a < b {
		return b
	}
	return a
}

func Min(a, b Score) Score {
	if a < b {
		return a
	}
	return b
}

// IsMateScore reports whether s represents a forced mate rather than a material evaluation.
func IsMateScore(s Score) bool {
	return s >= MaxScore-1000 || s <= MinScore+1000
}

// MateIn returns the number of full moves to mate implied by a mate score, positive if the
// side to move is delivering it, negative if receiving it. Only meaningful when IsMateScore
// reports true.
func MateIn(s Score) int {
	if s > 0 {
		return (int(MaxScore-s) + 1) / 2
	}
	return -(int(MaxScore+s) + 1) / 2
}

// MateDistance returns the number of plies to the mate implied by a mate score, and whether s
// is in fact a mate score. Used by the iterative-deepening driver to stop early once a forced
// mate has been found within the fully-searched width (SPEC_FULL.md §5, "Mate-distance
// scoring").
func (s Score) MateDistance() (int, bool) {
	if !IsMateScore(s) {
		return 0, false
	}
	if s > 0 {
		return int(MaxScore - s), true
	}
	return int(s - MinScore), true
}

// Negate returns -s, saturating at the Inf/NegInf bounds rather than overflowing.
func (s Score) Negate() Score {
	switch s {
	case Inf:
		return NegInf
	case NegInf:
		return Inf
	default:
		return -s
	}
}

// Less reports whether s < o.
func (s Score) Less(o Score) bool {
	return s < o
}

// IncrementMateDistance nudges a mate score one ply closer to neutral as a search frame
// unwinds, so that a shorter forced mate always compares as strictly better than a longer one
// (SPEC_FULL.md §5, "Mate-distance scoring"). Non-mate scores pass through unchanged.
func IncrementMateDistance(s Score) Score {
	switch {
	case s >= MaxScore-1000 && s <= MaxScore:
		return s - 1
	case s <= MinScore+1000 && s >= MinScore:
		return s + 1
	default:
		return s
	}
}
