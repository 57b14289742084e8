package game_test

import (
	"fmt"
	"time"

	"github.com/plus3/zonefall/game"
)

func ExampleEngine() {
	cfg := game.DefaultConfig()
	cfg.Players = 3

	var heard []game.Cue
	engine, err := game.New(cfg,
		game.WithSeed(1),
		game.WithCueSink(game.CueFunc(func(c game.Cue) { heard = append(heard, c) })),
	)
	if err != nil {
		panic(err)
	}

	engine.Submit(game.Start{})
	engine.Submit(game.Act(0, game.HardDrop))
	engine.Tick(16 * time.Millisecond)

	snap := engine.Snapshot()
	fmt.Println(snap.Status, snap.Board.Cols(), "cols")
	for _, s := range snap.Shared {
		fmt.Println("shared", s.Start, s.End)
	}
	fmt.Println(heard)
	// Output:
	// running 26 cols
	// shared 6 9
	// shared 16 19
	// [start lock drop]
}
