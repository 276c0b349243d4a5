package searchctl

import (
	"context"
	"sync"
	"time"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/eval"
	"github.com/maumay/corrosion-go/pkg/search"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

// Iterative is the default Launcher: every search runs search.IterativeDeepening on its own
// goroutine against the position handed to Launch.
type Iterative struct{}

func (i *Iterative) Launch(ctx context.Context, pos *board.Position, noise eval.Random, opt Options) (Handle, <-chan search.PV) {
	out := make(chan search.PV, 1)
	h := &handle{
		init: iox.NewAsyncCloser(),
		quit: iox.NewAsyncCloser(),
	}
	go h.process(ctx, pos, noise, opt, out)

	return h, out
}

type handle struct {
	init, quit iox.AsyncCloser

	pv search.PV
	mu sync.Mutex
}

// haltSignal is a search.Terminator that fires once h.quit is closed, wiring Handle.Halt and the
// hard time-control deadline into the Terminator checked at every search node (spec.md §4.8,
// "Terminator").
type haltSignal struct {
	quit iox.AsyncCloser
}

func (s haltSignal) Stop(uint64, int) bool {
	return s.quit.IsClosed()
}

func (h *handle) process(ctx context.Context, pos *board.Position, noise eval.Random, opt Options, out chan search.PV) {
	defer h.init.Close()
	defer close(out)

	terminator := search.Union{haltSignal{h.quit}}
	if v, ok := opt.DepthLimit.V(); ok {
		terminator = append(terminator, search.DepthTerminator{MaxDepth: int(v)})
	}
	soft, useSoft := EnforceTimeControl(ctx, h, opt.TimeControl, pos.ActiveSide())
	start := time.Now()

	search.IterativeDeepening(pos, terminator, noise, func(pv search.PV) {
		logw.Debugf(ctx, "searched depth=%v score=%v nodes=%v time=%v", pv.Depth, pv.Score, pv.Nodes, pv.Time)

		h.mu.Lock()
		h.pv = pv
		h.mu.Unlock()

		select {
		case <-out:
		default:
		}
		out <- pv

		h.init.Close()
		if useSoft && soft < time.Since(start) {
			h.quit.Close() // exceeded soft time limit: do not start another pass.
		}
	})
}

func (h *handle) Halt() search.PV {
	<-h.init.Closed()
	h.quit.Close()

	h.mu.Lock()
	defer h.mu.Unlock()

	return h.pv
}
