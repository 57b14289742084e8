package ecs_test

import "github.com/plus3/zonefall/ecs"

type Position struct {
	Row, Col int
}

type Velocity struct {
	DRow, DCol int
}

type Label struct {
	Name string
}

type Clock struct {
	Elapsed float64
}

func newRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	return registry
}
