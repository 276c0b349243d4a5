package search

import "time"

// Terminator is a predicate over the search's progress, checked at the top of every search
// invocation and at every iterative-deepening boundary (spec.md §4.8, "Terminator"; §5,
// "voluntary terminator checks"). Implementations must be cheap: a single search call resolves
// in tens of microseconds typically, so Terminator.Stop is called very often.
type Terminator interface {
	// Stop reports whether the search should halt now, given the node count searched so far
	// and the depth of the current iterative-deepening pass.
	Stop(nodes uint64, depth int) bool
}

// DepthTerminator stops once the given ply depth has been reached. A MaxDepth of zero never
// stops on depth alone (spec.md §6, "go depth N").
type DepthTerminator struct {
	MaxDepth int
}

func (d DepthTerminator) Stop(nodes uint64, depth int) bool {
	return d.MaxDepth > 0 && depth > d.MaxDepth
}

// DeadlineTerminator stops once the wall clock passes Deadline (spec.md §6, "movetime"/
// "wtime"/"btime"). A zero Deadline never stops on time alone.
type DeadlineTerminator struct {
	Deadline time.Time
}

func (d DeadlineTerminator) Stop(nodes uint64, depth int) bool {
	return !d.Deadline.IsZero() && !time.Now().Before(d.Deadline)
}

// NodeTerminator stops once the given node count has been searched. Mostly useful for tests
// that want deterministic termination independent of wall-clock jitter.
type NodeTerminator struct {
	MaxNodes uint64
}

func (n NodeTerminator) Stop(nodes uint64, depth int) bool {
	return n.MaxNodes > 0 && nodes >= n.MaxNodes
}

// Union combines terminators: the search stops as soon as any one of them would (spec.md §4.8,
// "Implementations include: wall-clock deadline, maximum depth, or union of both").
type Union []Terminator

func (u Union) Stop(nodes uint64, depth int) bool {
	for _, t := range u {
		if t.Stop(nodes, depth) {
			return true
		}
	}
	return false
}

// Never never stops on its own account; used when a caller wants depth-only or time-only
// termination without constructing a Union of one.
type Never struct{}

func (Never) Stop(uint64, int) bool { return false }
