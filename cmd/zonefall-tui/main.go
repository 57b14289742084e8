// Command zonefall-tui runs the shared-board game in a terminal. Terminals
// report no key releases, so every key acts on press.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/plus3/zonefall/audio"
	"github.com/plus3/zonefall/game"
	"github.com/plus3/zonefall/input"
	"github.com/plus3/zonefall/zone"
)

const frame = 16 * time.Millisecond

func main() {
	players := flag.Int("players", 2, "Number of players (2-3, one per keyboard cluster).")
	mode := flag.String("mode", "zoned", "Game mode: zoned or chaos.")
	shift := flag.Int("shift", 30, "Seconds between shared zone shifts (10-180).")
	seed := flag.Uint64("seed", 0, "Random seed; 0 picks one.")
	sound := flag.Bool("sound", true, "Play sound cues.")
	volume := flag.Float64("volume", 1, "Cue volume; 0 mutes.")
	logFile := flag.String("log", "zonefall.log", "Log file; the terminal is busy drawing.")
	flag.Parse()

	logger, err := buildLogger(*logFile)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg := game.DefaultConfig()
	cfg.Players = min(*players, keymap.Players())
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

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("Failed to open terminal: %v", err)
	}

	err = run(screen, engine, logger)
	screen.Fini()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildLogger(path string) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{path}
	return cfg.Build()
}

// key identifies a terminal key; r is set only for tcell.KeyRune.
type key struct {
	code tcell.Key
	r    rune
}

func runeKey(r rune) key { return key{code: tcell.KeyRune, r: r} }

// keymap binds three players; the player count never grows past them.
var keymap = input.Keymap[key]{
	runeKey('a'): input.Press(0, game.MoveLeft),
	runeKey('d'): input.Press(0, game.MoveRight),
	runeKey('s'): input.Press(0, game.SoftDrop),
	runeKey('w'): input.Press(0, game.Rotate),
	runeKey(' '): input.Press(0, game.HardDrop),

	{code: tcell.KeyLeft}:  input.Press(1, game.MoveLeft),
	{code: tcell.KeyRight}: input.Press(1, game.MoveRight),
	{code: tcell.KeyDown}:  input.Press(1, game.SoftDrop),
	{code: tcell.KeyUp}:    input.Press(1, game.Rotate),
	{code: tcell.KeyEnter}: input.Press(1, game.HardDrop),

	runeKey('j'): input.Press(2, game.MoveLeft),
	runeKey('l'): input.Press(2, game.MoveRight),
	runeKey('k'): input.Press(2, game.SoftDrop),
	runeKey('i'): input.Press(2, game.Rotate),
	runeKey('u'): input.Press(2, game.HardDrop),
}

func run(screen tcell.Screen, engine *game.Engine, logger *zap.Logger) error {
	controller := input.NewController(keymap, engine, input.DefaultHoldThreshold)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	last := time.Now()
	snap := engine.Snapshot()
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
					logger.Info("quit")
					return nil
				}
				k := key{code: ev.Key()}
				if k.code == tcell.KeyRune {
					k.r = ev.Rune()
				}
				if !control(engine, &snap, k) {
					controller.Tap(k)
				}
			case *tcell.EventResize:
				screen.Sync()
			}
		case now := <-ticker.C:
			engine.Tick(now.Sub(last))
			last = now
			snap = engine.Snapshot()
			draw(screen, &snap)
		}
	}
}

// control handles the lifecycle keys and reports whether k was one.
func control(engine *game.Engine, snap *game.Snapshot, k key) bool {
	if k.code != tcell.KeyRune {
		return false
	}
	switch k.r {
	case 'n':
		if snap.Status == game.StatusReady {
			engine.Submit(game.Start{})
		} else {
			engine.Submit(game.Restart{})
		}
	case 'p':
		engine.Submit(game.TogglePause{})
	case 'm':
		engine.Submit(game.ToggleSound{On: !snap.Sound})
	case 'c':
		mode := zone.Chaos
		if snap.Mode == zone.Chaos {
			mode = zone.Lanes
		}
		engine.Submit(game.SetGameMode{Mode: mode})
	case '+', '=':
		engine.Submit(game.SetPlayerCount{Count: min(len(snap.Players)+1, keymap.Players())})
	case '-':
		engine.Submit(game.SetPlayerCount{Count: len(snap.Players) - 1})
	case '[':
		engine.Submit(game.SetShiftInterval{Seconds: int(snap.ShiftInterval/time.Second) - 5})
	case ']':
		engine.Submit(game.SetShiftInterval{Seconds: int(snap.ShiftInterval/time.Second) + 5})
	default:
		return false
	}
	return true
}
