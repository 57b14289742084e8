package game

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/plus3/zonefall/board"
	"github.com/plus3/zonefall/ecs"
	"github.com/plus3/zonefall/placement"
	"github.com/plus3/zonefall/randomizer"
	"github.com/plus3/zonefall/zone"
)

type Option func(*Engine)

func WithLogger(log *zap.Logger) Option {
	return func(e *Engine) { e.log = log }
}

// WithSeed makes shape draws and shift choices reproducible.
func WithSeed(seed uint64) Option {
	return func(e *Engine) { e.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) { e.rng = rng }
}

// WithCueSink routes cues to sink after every tick while sound is on.
func WithCueSink(sink CueSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// Engine owns one simulation world and advances it tick by tick.
//
// Submit may be called from any goroutine. Tick, Snapshot and the other
// accessors must be called from the goroutine that drives the game.
type Engine struct {
	mu    sync.Mutex
	inbox []Event

	cfg  Config
	log  *zap.Logger
	rng  *rand.Rand
	sink CueSink
	tick uint64

	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	input     *InputSystem
	roster    []*ecs.EntityRef
	pilots    *ecs.View[Pilot]
	bombs     *ecs.View[struct{ *BombEffect }]
}

// New builds a Ready run from cfg. The player count and shift interval are
// clamped; other out-of-range values yield ErrInvalidConfig.
func New(cfg Config, opts ...Option) (*Engine, error) {
	cfg, err := cfg.Normalize()
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	e := &Engine{cfg: cfg, log: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.rng == nil {
		WithSeed(rand.Uint64())(e)
	}
	e.build(StatusReady)
	return e, nil
}

// build replaces the world with a fresh run in status.
func (e *Engine) build(status Status) {
	cfg := e.cfg
	registry := ecs.NewComponentRegistry()
	registerComponents(registry)
	storage := ecs.NewStorage(registry)

	layout := zone.Build(cfg.Players, cfg.Mode, cfg.Geometry)
	runID := uuid.New()

	ecs.NewSingleton(storage, board.New(cfg.Rows, layout.Cols))
	ecs.NewSingleton(storage, layout)
	ecs.NewSingleton(storage, Session{
		RunID:         runID,
		Status:        status,
		Loser:         -1,
		Level:         1,
		ShiftInterval: cfg.ShiftInterval,
		Sound:         cfg.Sound,
	})
	ecs.NewSingleton(storage, ShiftAnimation{Duration: cfg.ShiftAnimation})
	ecs.NewSingleton(storage, CueBuffer{})
	ecs.NewSingleton(storage, Dice{e.rng})
	ecs.NewSingleton(storage, cfg)
	ecs.NewSingleton(storage, Logger{e.log})

	e.roster = e.roster[:0]
	for i := range cfg.Players {
		id := storage.Spawn(
			PlayerID{Index: i},
			Lane{Zone: layout.Zone(i), Spawn: layout.SpawnZone(i)},
			Tally{},
			Feed{Source: randomizer.ForMode(cfg.Mode, e.rng)},
			Fall{Interval: cfg.DropInterval(1)},
			Tint{Color: PlayerColor(i, cfg.Players), Explicit: cfg.Mode == zone.Chaos},
			Active{},
		)
		e.roster = append(e.roster, storage.CreateEntityRef(id))
	}

	e.storage = storage
	e.scheduler = ecs.NewScheduler(storage)
	e.input = &InputSystem{}
	e.scheduler.Register(e.input)
	e.scheduler.Register(&BombSystem{})
	e.scheduler.Register(&GravitySystem{})
	e.scheduler.Register(&ZoneShiftSystem{})
	e.scheduler.Register(&CueSystem{Sink: e.sink})
	e.pilots = ecs.NewView[Pilot](storage)
	e.bombs = ecs.NewView[struct{ *BombEffect }](storage)

	m := &e.input.Match
	m.Players.Execute()
	for p := range m.Players.Values() {
		m.spawn(p)
	}

	e.log.Info("layout built",
		zap.Stringer("run", runID),
		zap.Stringer("mode", cfg.Mode),
		zap.Int("players", cfg.Players),
		zap.Int("cols", layout.Cols),
		zap.Int("rows", cfg.Rows))
}

// Submit queues ev for the next Tick.
func (e *Engine) Submit(ev Event) {
	e.mu.Lock()
	e.inbox = append(e.inbox, ev)
	e.mu.Unlock()
}

// Tick applies queued events and advances the world by dt. While the run
// is not Running nothing moves and player inputs are discarded.
func (e *Engine) Tick(dt time.Duration) {
	e.mu.Lock()
	events := e.inbox
	e.inbox = nil
	e.mu.Unlock()

	for _, ev := range events {
		e.apply(ev)
	}
	e.tick++
	e.scheduler.Once(dt)
}

func (e *Engine) session() *Session {
	var s *Session
	e.storage.ReadSingleton(&s)
	return s
}

func (e *Engine) apply(ev Event) {
	s := e.session()
	switch ev := ev.(type) {
	case PlayerInput:
		if s.Running() {
			e.input.Pending = append(e.input.Pending, ev)
		}
	case Start:
		if s.Status == StatusReady {
			s.Status = StatusRunning
			e.input.cue(CueStart)
			e.log.Info("run started", zap.Stringer("run", s.RunID))
		}
	case Restart:
		e.build(StatusRunning)
		e.input.cue(CueStart)
		e.log.Info("run restarted", zap.Stringer("run", e.session().RunID))
	case TogglePause:
		switch s.Status {
		case StatusRunning:
			s.Status = StatusPaused
		case StatusPaused:
			s.Status = StatusRunning
		}
	case ToggleSound:
		e.cfg.Sound = ev.On
		s.Sound = ev.On
	case SetShiftInterval:
		e.cfg.ShiftInterval = ev.Duration()
		s.ShiftInterval = e.cfg.ShiftInterval
		s.ShiftCounter = 0
	case SetGameMode:
		if ev.Mode != zone.Lanes && ev.Mode != zone.Chaos {
			return
		}
		e.cfg.Mode = ev.Mode
		e.build(StatusReady)
	case SetPlayerCount:
		e.cfg.Players = ClampPlayers(ev.Count)
		e.build(StatusReady)
	}
}

// Config returns the configuration the current run was built from,
// including any changes made through events.
func (e *Engine) Config() Config {
	return e.cfg
}

func (e *Engine) Status() Status {
	return e.session().Status
}

// Storage exposes the world for debug tooling.
func (e *Engine) Storage() *ecs.Storage {
	return e.storage
}

// Scheduler exposes system timings for debug tooling.
func (e *Engine) Scheduler() *ecs.Scheduler {
	return e.scheduler
}

// Pilot returns live handles to player's components.
func (e *Engine) Pilot(player int) (Pilot, bool) {
	if player < 0 || player >= len(e.roster) {
		return Pilot{}, false
	}
	p := e.pilots.GetRef(e.roster[player])
	if p == nil {
		return Pilot{}, false
	}
	return *p, true
}

func (e *Engine) Snapshot() Snapshot {
	var (
		b      *board.Board
		layout *zone.Layout
		anim   *ShiftAnimation
	)
	e.storage.ReadSingleton(&b)
	e.storage.ReadSingleton(&layout)
	e.storage.ReadSingleton(&anim)
	s := e.session()

	snap := Snapshot{
		RunID:             s.RunID,
		Tick:              e.tick,
		Status:            s.Status,
		Reason:            s.Reason,
		Loser:             s.Loser,
		Mode:              layout.Mode,
		Sound:             s.Sound,
		Board:             b.Clone(),
		Shared:            slices.Clone(layout.Shared),
		Level:             s.Level,
		TotalScore:        s.TotalScore,
		TotalLines:        s.TotalLines,
		PointsToNextLevel: max(0, s.Level*e.cfg.LevelStep-s.TotalScore),
		ShiftInterval:     s.ShiftInterval,
		Shift: ShiftSnapshot{
			Active:   anim.Active,
			Zone:     anim.Zone,
			From:     anim.From,
			To:       anim.To,
			Progress: anim.Progress(),
			Position: anim.Position(),
		},
	}
	if len(layout.Shared) > 0 && !anim.Active {
		snap.ShiftCountdown = max(0, s.ShiftInterval-s.ShiftCounter)
	}

	for i := range e.roster {
		p, ok := e.Pilot(i)
		if !ok {
			continue
		}
		ps := PlayerSnapshot{
			ID:           p.Index,
			Zone:         p.Zone,
			SpawnZone:    p.Spawn,
			Score:        p.Score,
			Lines:        p.Lines,
			Next:         p.Next,
			Color:        p.Color,
			Explicit:     p.Explicit,
			DropInterval: p.Interval,
		}
		if p.Live {
			piece := p.Piece.Clone()
			ps.Piece = &piece
			ps.GhostY = piece.Y + placement.DropDistance(p.Zone, b, piece)
		}
		snap.Players = append(snap.Players, ps)
	}

	for _, item := range e.bombs.Iter() {
		indices := slices.Sorted(item.Cells.All())
		cells := make([]board.Pos, len(indices))
		for i, index := range indices {
			cells[i] = b.PosOf(index)
		}
		snap.Bombs = append(snap.Bombs, BombSnapshot{
			Owner:     item.Owner,
			Cells:     cells,
			Remaining: item.Fraction(),
		})
	}
	return snap
}
