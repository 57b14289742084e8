package ecs_test

import (
	"testing"

	"github.com/plus3/zonefall/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	storage := ecs.NewStorage(newRegistry())

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Spawn(Position{Row: 1, Col: 2}, Velocity{DRow: 1})
	}
}

func BenchmarkDelete(b *testing.B) {
	storage := ecs.NewStorage(newRegistry())

	ids := make([]ecs.EntityId, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = storage.Spawn(Position{Row: 1, Col: 2}, Velocity{DRow: 1})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		storage.Delete(ids[i])
	}
}

func BenchmarkGetComponent(b *testing.B) {
	storage := ecs.NewStorage(newRegistry())
	id := storage.Spawn(Position{Row: 1, Col: 2}, Velocity{DRow: 1})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = ecs.ReadComponent[Position](storage, id)
	}
}

func BenchmarkViewIter(b *testing.B) {
	storage := ecs.NewStorage(newRegistry())
	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{Row: i}, Velocity{DCol: 1})
	}
	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](storage)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for item := range view.Values() {
			item.Col += item.DCol
		}
	}
}

func BenchmarkSchedulerOnce(b *testing.B) {
	storage := ecs.NewStorage(newRegistry())
	ecs.NewSingleton(storage, Clock{})
	for i := 0; i < 1000; i++ {
		storage.Spawn(Position{Row: i}, Velocity{DCol: 1})
	}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&MoveSystem{})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(0)
	}
}
