package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/zonefall/ecs"
)

type Shared struct {
	Movers ecs.Query[struct {
		*Position
		*Velocity
	}]
	Clock ecs.Singleton[Clock]
}

type MoveSystem struct {
	Shared
	Runs int
}

func (s *MoveSystem) Execute(frame *ecs.UpdateFrame) {
	s.Runs++
	s.Clock.Get().Elapsed += frame.Seconds()
	for item := range s.Movers.Values() {
		item.Row += item.DRow
		item.Col += item.DCol
	}
}

type SpawnSystem struct {
	Labels ecs.Query[struct{ *Label }]
	Seen   []int
	Log    *[]string
}

func (s *SpawnSystem) Execute(frame *ecs.UpdateFrame) {
	s.Seen = append(s.Seen, s.Labels.Len())
	frame.Commands.Spawn(Label{Name: "tick"})
	frame.Commands.Defer(func() { *s.Log = append(*s.Log, "deferred") })
}

func TestScheduler(t *testing.T) {
	t.Run("wires embedded fields and runs in order", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		ecs.NewSingleton(storage, Clock{})
		scheduler := ecs.NewScheduler(storage)

		move := &MoveSystem{}
		scheduler.Register(move)

		id := storage.Spawn(Position{}, Velocity{DRow: 1, DCol: 2})
		scheduler.Once(500 * time.Millisecond)
		scheduler.Once(500 * time.Millisecond)

		assert.Equal(t, 2, move.Runs)
		assert.Equal(t, Position{Row: 2, Col: 4}, *ecs.ReadComponent[Position](storage, id))
		assert.InDelta(t, 1.0, move.Clock.Get().Elapsed, 1e-9)
	})

	t.Run("commands apply after the frame", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		scheduler := ecs.NewScheduler(storage)

		var log []string
		spawner := &SpawnSystem{Log: &log}
		scheduler.Register(spawner)

		scheduler.Once(time.Millisecond)
		scheduler.Once(time.Millisecond)
		scheduler.Once(time.Millisecond)

		assert.Equal(t, []int{0, 1, 2}, spawner.Seen)
		assert.Equal(t, []string{"deferred", "deferred", "deferred"}, log)
	})

	t.Run("stats", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		ecs.NewSingleton(storage, Clock{})
		scheduler := ecs.NewScheduler(storage)
		scheduler.Register(&MoveSystem{})

		stats := scheduler.GetStats()
		assert.Equal(t, time.Duration(0), stats.Systems[0].MinDuration)

		scheduler.Once(time.Millisecond)
		stats = scheduler.GetStats()
		assert.Equal(t, 1, stats.SystemCount)
		assert.Equal(t, uint64(1), stats.Ticks)
		assert.Equal(t, "MoveSystem", stats.Systems[0].Name)
		assert.Equal(t, int64(1), stats.Systems[0].ExecutionCount)
	})

	t.Run("run stops with its context", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		ecs.NewSingleton(storage, Clock{})
		scheduler := ecs.NewScheduler(storage)
		move := &MoveSystem{}
		scheduler.Register(move)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		scheduler.Run(ctx, 5*time.Millisecond)

		assert.Greater(t, move.Runs, 0)
	})
}
