package ecs_test

import (
	"fmt"
	"time"

	"github.com/plus3/zonefall/ecs"
)

type fallSystem struct {
	Falling ecs.Query[struct {
		*Position
		*Label
	}]
}

func (s *fallSystem) Execute(frame *ecs.UpdateFrame) {
	for id, item := range s.Falling.Iter() {
		item.Row++
		if item.Row >= 3 {
			frame.Commands.Delete(id)
			name := item.Name
			frame.Commands.Defer(func() { fmt.Println(name, "landed on tick", frame.Tick) })
		}
	}
}

func ExampleScheduler() {
	storage := ecs.NewStorage(newRegistry())
	storage.Spawn(Position{Row: 0}, Label{Name: "I"})
	storage.Spawn(Position{Row: 1}, Label{Name: "O"})

	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&fallSystem{})
	for range 4 {
		scheduler.Once(16 * time.Millisecond)
	}
	fmt.Println("left:", storage.CollectStats().TotalEntityCount)
	// Output:
	// O landed on tick 2
	// I landed on tick 3
	// left: 0
}

func ExampleNewSingleton() {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	clock := ecs.NewSingleton(storage, Clock{Elapsed: 2})

	var read *Clock
	storage.ReadSingleton(&read)
	read.Elapsed *= 2

	fmt.Println(clock.Get().Elapsed)
	// Output: 4
}
