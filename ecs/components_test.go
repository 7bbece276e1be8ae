package ecs_test

import "github.com/plus3/leveled/ecs"

type Position struct {
	X, Y, Z float32
}

type Velocity struct {
	X, Y, Z float32
}

type Label string

type Selected struct{}

type Light struct {
	Intensity float32
	Range     float32
}

type Settings struct {
	SnapToGrid bool
	GridSize   float32
}

type Clock struct {
	Frames  int
	Elapsed float64
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Selected](registry)
	ecs.RegisterComponent[Light](registry)
	return registry
}

func newTestStorage() *ecs.Storage {
	return ecs.NewStorage(newTestRegistry())
}
