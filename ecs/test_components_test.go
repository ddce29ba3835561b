package ecs_test

import "github.com/plus3/drop/ecs"

type Position struct {
	X, Y float64
}

type Velocity struct {
	X, Y float64
}

type Label struct {
	Value string
}

type Weight int32
type Tag string

type Falling struct{}

type Counter struct {
	Ticks int
}

type Basket struct {
	Items []string
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Label](registry)
	ecs.RegisterComponent[Weight](registry)
	ecs.RegisterComponent[Tag](registry)
	ecs.RegisterComponent[Falling](registry)
	ecs.RegisterComponent[Basket](registry)
	ecs.RegisterComponent[float64](registry)
	return registry
}
