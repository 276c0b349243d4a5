package searchctl

import (
	"context"
	"fmt"
	"time"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

// TimeControl mirrors the wtime/btime/movestogo fields of a UCI `go` command (spec.md §6).
type TimeControl struct {
	White, Black time.Duration
	Moves        int // 0 == rest of game
}

// Limits returns the soft and hard time budget for a move by side. Past the soft limit no new
// iterative-deepening pass is started; past the hard limit the in-flight search is halted
// outright. Absent better information we assume 40 moves remain in the game.
func (t TimeControl) Limits(side board.Side) (soft, hard time.Duration) {
	remainder := t.White
	if side == board.Black {
		remainder = t.Black
	}

	moves := time.Duration(40)
	if t.Moves > 0 {
		moves = time.Duration(t.Moves) + 1
	}

	soft = remainder / (2 * moves)
	hard = 3 * soft
	return soft, hard
}

func (t TimeControl) String() string {
	if t.Moves == 0 {
		return fmt.Sprintf("%.1f<>%.1f", t.White.Seconds(), t.Black.Seconds())
	}
	return fmt.Sprintf("%.1f<>%.1f[moves=%v]", t.White.Seconds(), t.Black.Seconds(), t.Moves)
}

// EnforceTimeControl schedules the hard-limit halt, if tc is set, and returns the soft limit the
// caller should itself compare against between iterations.
func EnforceTimeControl(ctx context.Context, h Handle, tc lang.Optional[TimeControl], side board.Side) (soft time.Duration, useSoft bool) {
	c, ok := tc.V()
	if !ok {
		return 0, false
	}

	soft, hard := c.Limits(side)
	time.AfterFunc(hard, func() {
		h.Halt()
	})

	logw.Debugf(ctx, "time control limits for %v: [%v; %v]", c, soft, hard)
	return soft, true
}
