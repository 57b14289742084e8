// Command zonefall-soak plays many headless runs with random inputs and
// reports tick timings, per-system costs and how the runs ended.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/plus3/zonefall/game"
	"github.com/plus3/zonefall/zone"
)

const tick = time.Second / 60

var actions = []game.Action{game.MoveLeft, game.MoveRight, game.SoftDrop, game.Rotate, game.HardDrop}

func main() {
	os.Exit(soak())
}

// soak returns the process exit code so deferred cleanup runs first.
func soak() int {
	duration := flag.Duration("duration", 10*time.Second, "Wall-clock time to keep playing.")
	players := flag.Int("players", 4, "Number of players (2-16).")
	mode := flag.String("mode", "zoned", "Game mode: zoned or chaos.")
	shift := flag.Int("shift", 10, "Seconds between shared zone shifts (10-180).")
	seed := flag.Uint64("seed", 1, "Random seed for the game and the bots.")
	rate := flag.Float64("rate", 0.2, "Chance per tick that a bot presses a key.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	logger, err := zap.NewDevelopment(zap.IncreaseLevel(zap.InfoLevel))
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg := game.DefaultConfig()
	cfg.Players = *players
	cfg.ShiftInterval = time.Duration(*shift) * time.Second
	cfg.Sound = false
	if cfg.Mode, err = zone.ParseMode(*mode); err != nil {
		log.Printf("Invalid -mode: %v", err)
		return 1
	}

	engine, err := game.New(cfg, game.WithLogger(logger.Named("game")), game.WithSeed(*seed))
	if err != nil {
		log.Printf("Failed to create game: %v", err)
		return 1
	}
	bots := rand.New(rand.NewPCG(*seed, ^*seed))

	snap := engine.Snapshot()
	report := &Report{
		Duration:       *duration,
		Players:        len(snap.Players),
		Mode:           snap.Mode.String(),
		Cols:           snap.Board.Cols(),
		Seed:           *seed,
		GCPauseMetrics: *gcPauseMetrics,
		Endings:        make(map[string]int),
		Systems:        make(map[string]*SystemTotals),
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Printf("Soaking %d players in %s mode for %s...\n", report.Players, report.Mode, *duration)
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	engine.Submit(game.Start{})

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
		}

		for p := range report.Players {
			if bots.Float64() < *rate {
				engine.Submit(game.Act(p, actions[bots.IntN(len(actions))]))
			}
		}

		updateStart := time.Now()
		engine.Tick(tick)
		report.UpdateTime.Add(time.Since(updateStart))
		report.SimulatedTime += tick

		snap = engine.Snapshot()
		report.Observe(&snap)
		if snap.Status == game.StatusGameOver {
			report.EndRun(&snap, engine.Scheduler().GetStats())
			engine.Submit(game.Restart{})
		}
	}
	report.Finish(&snap, engine.Scheduler().GetStats())

	report.TotalTime = time.Since(startTime)
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Println("Soak finished.")

	fmt.Println("\n\n--- Soak Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Printf("Failed to generate report: %v", err)
		return 1
	}
	fmt.Println("--- End of Report ---")

	if report.Violations > 0 {
		return 1
	}
	return 0
}
