// Command zonefall runs the shared-board game in a desktop window with an
// optional Dear ImGui inspector (F1).
package main

import (
	"flag"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/plus3/zonefall/audio"
	"github.com/plus3/zonefall/ecs"
	"github.com/plus3/zonefall/ecs/debugui"
	debugui_ebiten "github.com/plus3/zonefall/ecs/debugui/ebiten"
	"github.com/plus3/zonefall/game"
	"github.com/plus3/zonefall/input"
	"github.com/plus3/zonefall/zone"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
)

func main() {
	players := flag.Int("players", 2, "Number of players (2-4, one per keyboard cluster).")
	mode := flag.String("mode", "zoned", "Game mode: zoned or chaos.")
	shift := flag.Int("shift", 30, "Seconds between shared zone shifts (10-180).")
	seed := flag.Uint64("seed", 0, "Random seed; 0 picks one.")
	sound := flag.Bool("sound", true, "Play sound cues.")
	volume := flag.Float64("volume", 1, "Cue volume; 0 mutes.")
	hold := flag.Duration("hold", input.DefaultHoldThreshold, "How long the rotate key is held before it hard drops.")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg := game.DefaultConfig()
	cfg.Players = min(*players, defaultKeymap.Players())
	cfg.ShiftInterval = time.Duration(*shift) * time.Second
	cfg.Sound = *sound
	if cfg.Mode, err = zone.ParseMode(*mode); err != nil {
		log.Fatalf("Invalid -mode: %v", err)
	}

	player := audio.NewPlayer(logger.Named("audio"))
	if err := player.Initialize(); err != nil {
		logger.Warn("sound disabled", zap.Error(err))
	}
	player.SetVolume(*volume)
	defer player.Close()

	opts := []game.Option{
		game.WithLogger(logger.Named("game")),
		game.WithCueSink(player),
	}
	if *seed != 0 {
		opts = append(opts, game.WithSeed(*seed))
	}
	engine, err := game.New(cfg, opts...)
	if err != nil {
		log.Fatalf("Failed to create game: %v", err)
	}

	backend := debugui_ebiten.NewImguiBackend("Zonefall", ScreenWidth, ScreenHeight)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	ui := ecs.NewStorage(registry)
	ecs.NewSingleton(ui, backend)
	recordFrame := debugui.Spawn(ui, engine)
	initDebugUI(ui, engine)

	uiScheduler := ecs.NewScheduler(ui)
	uiScheduler.Register(&debugui.ImguiSystem{})

	g := &Game{
		Engine:      engine,
		Controller:  input.NewController(defaultKeymap, engine, *hold),
		UI:          ui,
		UIScheduler: uiScheduler,
		Backend:     ecs.NewSingleton[debugui_ebiten.ImguiBackend](ui),
		recordFrame: recordFrame,
		log:         logger,
		snapshot:    engine.Snapshot(),
	}
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
