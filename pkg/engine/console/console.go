// Package console implements a plain-text debugging driver: not part of the UCI protocol, but a
// convenient REPL for exercising the engine from a terminal (spec.md §6's surface is UCI-only;
// this mirrors the teacher's separate console driver for manual testing).
package console

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/maumay/corrosion-go/pkg/board"
	"github.com/maumay/corrosion-go/pkg/board/fen"
	"github.com/maumay/corrosion-go/pkg/engine"
	"github.com/maumay/corrosion-go/pkg/eval"
	"github.com/maumay/corrosion-go/pkg/search"
	"github.com/maumay/corrosion-go/pkg/search/searchctl"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"
	"github.com/seekerror/stdlib/pkg/util/iox"
)

const ProtocolName = "console"

// Driver implements a console driver for debugging.
type Driver struct {
	iox.AsyncCloser

	e *engine.Engine

	out    chan<- string
	active atomic.Bool // user is waiting for engine to move
}

func NewDriver(ctx context.Context, e *engine.Engine, in <-chan string) (*Driver, <-chan string) {
	out := make(chan string, 100)
	d := &Driver{
		AsyncCloser: iox.NewAsyncCloser(),
		e:           e,
		out:         out,
	}
	go d.process(ctx, in)

	return d, out
}

func (d *Driver) process(ctx context.Context, in <-chan string) {
	defer d.Close()
	defer close(d.out)

	logw.Infof(ctx, "console protocol initialized")

	d.out <- fmt.Sprintf("engine %v (%v)", d.e.Name(), d.e.Author())
	d.printBoard(ctx)

	for {
		select {
		case line, ok := <-in:
			if !ok {
				logw.Infof(ctx, "input stream broken, exiting")
				return
			}

			parts := strings.Split(strings.TrimSpace(line), " ")
			if len(parts) == 0 {
				break
			}

			cmd := parts[0]
			args := parts[1:]

			switch strings.ToLower(cmd) {
			case "reset", "r":
				// reset [<fenstring>] moves ...

				d.ensureInactive(ctx)

				pos := fen.Initial
				if len(args) > 0 && args[0] != "moves" {
					pos = strings.Join(args[0:6], " ")
				}
				if err := d.e.Reset(ctx, pos); err != nil {
					logw.Errorf(ctx, "invalid position: %v", line)
					return
				}
				move := false
				for _, arg := range args {
					if arg == "moves" {
						move = true
						continue
					}
					if !move {
						continue
					}
					if err := d.e.Move(ctx, arg); err != nil {
						logw.Errorf(ctx, "invalid position move '%v': %v: %v", arg, line, err)
						return
					}
				}
				d.printBoard(ctx)

			case "undo", "u":
				d.ensureInactive(ctx)

				_ = d.e.TakeBack(ctx)
				d.printBoard(ctx)

			case "print", "p":
				d.printBoard(ctx)

			case "analyze", "a":
				d.ensureInactive(ctx)

				var opt searchctl.Options
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					opt.DepthLimit = lang.Some(uint(depth))
				}

				out, err := d.e.Analyze(ctx, opt)
				if err != nil {
					logw.Errorf(ctx, "analyze failed: %v", err)
					return
				}
				d.active.Store(true)

				go func() {
					var last search.PV
					for pv := range out {
						last = pv
						d.out <- fmt.Sprintf("depth=%v score=%v nodes=%v time=%v pv=%v", pv.Depth, pv.Score, pv.Nodes, pv.Time, board.FormatMoves(pv.Moves))
					}
					d.searchCompleted(ctx, last)
				}()

			case "depth", "d":
				if len(args) > 0 {
					depth, _ := strconv.Atoi(args[0])
					d.e.SetDepth(uint(depth))
				}

			case "noise": // evaluation randomness in centipawns
				if len(args) > 0 {
					noise, _ := strconv.Atoi(args[0])
					d.e.SetNoise(uint(noise))
				}

			case "nonoise":
				d.e.SetNoise(0)

			case "halt", "stop":
				pv, err := d.e.Halt(ctx)
				if err == nil {
					d.searchCompleted(ctx, pv)
				}

			case "quit", "exit", "q":
				d.ensureInactive(ctx)
				return

			case "":
				// ignore empty command

			default:
				// Assume move if not a recognized command.

				d.ensureInactive(ctx)
				if err := d.e.Move(ctx, cmd); err != nil {
					d.out <- fmt.Sprintf("invalid move: '%v'", cmd)
				} else {
					d.printBoard(ctx)
				}
			}

		case <-d.Closed():
			d.ensureInactive(ctx)

			logw.Infof(ctx, "driver closed")
			return
		}
	}
}

func (d *Driver) ensureInactive(ctx context.Context) {
	d.active.Store(false)
	_, _ = d.e.Halt(ctx)
}

// searchCompleted prints the best move and a per-candidate-move score breakdown, each obtained
// by a fresh one-ply-shallower search from the resulting position (no transposition table, no
// evaluation noise, so the breakdown is reproducible move to move).
func (d *Driver) searchCompleted(ctx context.Context, pv search.PV) {
	if !d.active.CompareAndSwap(true, false) {
		return // stale or duplicate result
	}

	best, ok := pv.BestMove()
	if ok {
		d.out <- fmt.Sprintf("bestmove %v", best)
	}

	pos := d.e.Position()

	var sub []candidate
	for _, m := range pos.GenerateMoves(board.All) {
		d := pos.Apply(m)
		var nodes uint64
		depth := pv.Depth - 1
		if depth < 0 {
			depth = 0
		}
		res, err := search.Negamax(pos, &search.Context{Alpha: eval.NegInf, Beta: eval.Inf, DepthRemaining: depth, Terminator: search.Never{}}, &nodes)
		pos.Unapply(d)
		if err != nil {
			continue
		}
		sub = append(sub, candidate{m: m, s: res.Score.Negate(), n: nodes, pv: res.PV})
	}
	sort.Sort(byScore(sub))

	d.out <- fmt.Sprintf("search, depth=%v", pv.Depth)
	for i, c := range sub {
		d.out <- fmt.Sprintf(" %2d. %v\t%v\t\t(%v nodes\tpv %v)", i+1, c.m, c.s, c.n, board.FormatMoves(c.pv))
	}
}

const (
	files      = "    a   b   c   d   e   f   g   h"
	horizontal = "  ---------------------------------"
	vertical   = " | "
)

func (d *Driver) printBoard(ctx context.Context) {
	pos := d.e.Position()

	d.out <- ""
	d.out <- files
	d.out <- horizontal
	for rank := 7; rank >= 0; rank-- {
		var sb strings.Builder
		sb.WriteString(board.Rank(rank).String())
		sb.WriteString(vertical)
		for file := 0; file < 8; file++ {
			sq := board.NewSquare(board.File(file), board.Rank(rank))
			if p, ok := pos.PieceAt(sq); ok {
				sb.WriteString(p.String())
			} else {
				sb.WriteString(" ")
			}
			sb.WriteString(vertical)
		}
		d.out <- sb.String()
		d.out <- horizontal
	}
	d.out <- files
	d.out <- ""
	d.out <- fmt.Sprintf("fen:    %v", fen.Encode(pos))
	d.out <- fmt.Sprintf("active: %v, halfmove: %v, fullmove: %v, hash: 0x%x", pos.ActiveSide(), pos.HalfMoveClock(), pos.FullMoves(), pos.Hash())
	d.out <- ""
}

type candidate struct {
	m  board.Move
	s  eval.Score
	n  uint64
	pv []board.Move
}

// byScore orders candidates from best to worst for the side to move.
type byScore []candidate

func (b byScore) Len() int      { return len(b) }
func (b byScore) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
func (b byScore) Less(i, j int) bool {
	return b[j].s.Less(b[i].s)
}
