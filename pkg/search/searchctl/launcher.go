// Package searchctl provides the engine-facing search harness above pkg/search: dynamic
// per-search options (depth/time limits), wall-clock time control, and an asynchronous
// launcher/handle pair the UCI and console drivers use to start, poll and halt a search
// without blocking their own input loop (spec.md §5, "The UCI collaborator ... runs the search
// on its own worker and a stdin reader on another; they communicate by message passing").
package searchctl

import (
	"context"
	"fmt"
	"strings"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/eval"
	"github.com/maumay/corrosion-go/pkg/search"
	"github.com/seekerror/stdlib/pkg/lang"
)

// Options hold the dynamic search options a `go` UCI command (or the console's `analyze`)
// supplies for one particular search (spec.md §6, "go [wtime N] [btime N] ... [depth N]
// [infinite]").
type Options struct {
	// DepthLimit, if set, limits the search to the given ply depth.
	DepthLimit lang.Optional[uint]
	// TimeControl, if set, limits the search to the given time parameters.
	TimeControl lang.Optional[TimeControl]
}

func (o Options) String() string {
	var parts []string
	if v, ok := o.DepthLimit.V(); ok {
		parts = append(parts, fmt.Sprintf("depth=%v", v))
	}
	if v, ok := o.TimeControl.V(); ok {
		parts = append(parts, fmt.Sprintf("time=%v", v))
	}
	return fmt.Sprintf("[%v]", strings.Join(parts, ", "))
}

// Launcher launches an iterative-deepening search against a position and streams the PV from
// every completed depth back to the caller.
type Launcher interface {
	// Launch starts a new search from pos, which the launcher owns exclusively until the
	// returned Handle is halted; callers that still need pos afterwards must pass a clone. The
	// PV channel closes when the search is exhausted (e.g. a forced mate found, or DepthLimit
	// reached). noise perturbs leaf evaluations by a small amount (engine "Noise" option).
	Launch(ctx context.Context, pos *board.Position, noise eval.Random, opt Options) (Handle, <-chan search.PV)
}

// Handle lets the owner stop an in-flight search and retrieve its best result so far. Halt is
// idempotent: calling it more than once, or after the search already finished on its own,
// always returns the same final PV.
type Handle interface {
	Halt() search.PV
}
