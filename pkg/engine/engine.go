// Package engine wires board, search and searchctl together behind the stateful,
// session-oriented API the UCI and console front-ends drive (spec.md §6).
package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/board/fen"
	"github.com/maumay/corrosion-go/pkg/eval"
	"github.com/maumay/corrosion-go/pkg/search"
	"github.com/maumay/corrosion-go/pkg/search/searchctl"
	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
)

var version = build.NewVersion(0, 1, 0)

// Options are search creation options.
type Options struct {
	// Depth is the default search depth limit. Zero means no limit. Overridden by
	// per-search options if provided.
	Depth uint
	// Noise adds up to this many centipawns of randomness to leaf evaluations.
	Noise uint
}

func (o Options) String() string {
	return fmt.Sprintf("{depth=%v, noise=%v}", o.Depth, o.Noise)
}

// undo is one entry of the engine's move history: the move applied and the discards needed to
// reverse it, since board.Position has no built-in undo stack of its own.
type undo struct {
	move     board.Move
	discards board.Discards
}

// Engine encapsulates game-playing state: the current position, its move history, and at most
// one active search.
type Engine struct {
	name, author string

	launcher searchctl.Launcher
	seed     int64
	opts     Options

	pos     *board.Position
	history []undo
	noise   eval.Random
	active  searchctl.Handle
	mu      sync.Mutex
}

// Option is an engine creation option.
type Option func(*Engine)

// WithOptions sets default runtime options.
func WithOptions(opts Options) Option {
	return func(e *Engine) {
		e.opts = opts
	}
}

// WithZobristSeed reseeds the global zobrist key tables before the engine's first position is
// built. The teacher threads a *board.ZobristTable instance through every Board; here the key
// tables are package-level (board.SeedZobrist), so this option simply reseeds them once.
func WithZobristSeed(seed int64) Option {
	return func(e *Engine) {
		e.seed = seed
	}
}

func New(ctx context.Context, name, author string, opts ...Option) *Engine {
	e := &Engine{
		name:     name,
		author:   author,
		launcher: &searchctl.Iterative{},
	}
	for _, fn := range opts {
		fn(e)
	}
	if e.seed != 0 {
		board.SeedZobrist(uint64(e.seed))
	}

	_ = e.Reset(ctx, fen.Initial)

	logw.Infof(ctx, "initialized engine: %v, options=%v", e.Name(), e.opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("%v %v", e.name, version)
}

// Author returns the author.
func (e *Engine) Author() string {
	return e.author
}

func (e *Engine) Options() Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
}

func (e *Engine) SetNoise(centipawns uint) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Noise = centipawns
	e.noise = newNoise(centipawns, e.seed)
}

// Position returns a clone of the current position.
func (e *Engine) Position() *board.Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.pos.Clone()
}

// FEN returns the current position in FEN format.
func (e *Engine) FEN() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	return fen.Encode(e.pos)
}

// Reset resets the engine to the position described by the given FEN string.
func (e *Engine) Reset(ctx context.Context, position string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "reset %v, depth=%v, noise=%vcp", position, e.opts.Depth, e.opts.Noise)

	_, _ = e.haltSearchIfActive(ctx)

	pos, err := fen.Decode(position)
	if err != nil {
		return err
	}
	e.pos = pos
	e.history = nil
	e.noise = newNoise(e.opts.Noise, e.seed)

	logw.Infof(ctx, "new position: %v", e.pos)
	return nil
}

func newNoise(centipawns uint, seed int64) eval.Random {
	if centipawns == 0 {
		return eval.Random{}
	}
	return eval.NewRandom(int(centipawns), seed)
}

// Move applies the given long-algebraic move (e.g. "e2e4", "e7e8q") to the current position.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "move %v", move)

	_, _ = e.haltSearchIfActive(ctx)

	for _, m := range e.pos.GenerateMoves(board.All) {
		if m.String() != move {
			continue
		}
		d := e.pos.Apply(m)
		e.history = append(e.history, undo{move: m, discards: d})

		logw.Infof(ctx, "move %v: %v", m, e.pos)
		return nil
	}
	return fmt.Errorf("illegal move: %v", move)
}

// TakeBack undoes the latest move.
func (e *Engine) TakeBack(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	_, _ = e.haltSearchIfActive(ctx)

	if len(e.history) == 0 {
		return fmt.Errorf("no move to take back")
	}
	last := e.history[len(e.history)-1]
	e.history = e.history[:len(e.history)-1]
	e.pos.Unapply(last.discards)

	logw.Infof(ctx, "takeback %v", last.move)
	return nil
}

// Analyze starts a search of the current position. The engine keeps the live position unmutated
// during search: Launch receives its own clone.
func (e *Engine) Analyze(ctx context.Context, opt searchctl.Options) (<-chan search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := opt.DepthLimit.V(); !ok && e.opts.Depth > 0 {
		opt.DepthLimit = lang.Some(e.opts.Depth)
	}

	logw.Infof(ctx, "analyze %v, opt=%v", e.pos, opt)

	if e.active != nil {
		return nil, fmt.Errorf("search already active")
	}

	handle, out := e.launcher.Launch(ctx, e.pos.Clone(), e.noise, opt)
	e.active = handle
	return out, nil
}

// Halt halts the active search and returns its principal variation, if any.
func (e *Engine) Halt(ctx context.Context) (search.PV, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	logw.Infof(ctx, "halt")

	pv, ok := e.haltSearchIfActive(ctx)
	if !ok {
		return search.PV{}, fmt.Errorf("no active search")
	}
	return pv, nil
}

func (e *Engine) haltSearchIfActive(ctx context.Context) (search.PV, bool) {
	if e.active != nil {
		pv := e.active.Halt()
		logw.Infof(ctx, "search halted: %v", pv)

		e.active = nil
		return pv, true
	}
	return search.PV{}, false
}
