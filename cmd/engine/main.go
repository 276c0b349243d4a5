// corrosion is a simple UCI chess engine.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/maumay/corrosion-go/pkg/engine"
	"github.com/maumay/corrosion-go/pkg/engine/console"
	"github.com/maumay/corrosion-go/pkg/engine/uci"
	"github.com/seekerror/logw"
)

var (
	ply   = flag.Uint("ply", 0, "search depth limit (zero if no limit)")
	noise = flag.Uint("noise", 0, "evaluation noise in centipawns (zero if deterministic)")
	seed  = flag.Int64("seed", time.Now().UnixNano(), "zobrist key table seed")
)

func init() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, `usage: engine [options]

corrosion is a UCI chess engine: bitboard position representation, magic-bitboard
move generation, negamax search with quiescence and static exchange evaluation.
Options:
`)
		flag.PrintDefaults()
	}
}

func main() {
	flag.Parse()
	ctx := context.Background()

	e := engine.New(ctx, "corrosion", "maumay",
		engine.WithOptions(engine.Options{Depth: *ply, Noise: *noise}),
		engine.WithZobristSeed(*seed),
	)

	in := engine.ReadStdinLines(ctx)
	switch <-in {
	case uci.ProtocolName:
		driver, out := uci.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	case console.ProtocolName:
		driver, out := console.NewDriver(ctx, e, in)
		go engine.WriteStdoutLines(ctx, out)

		<-driver.Closed()

	default:
		flag.Usage()
		logw.Exitf(ctx, "protocol not supported")
	}
}
