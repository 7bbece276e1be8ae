// Package prefab defines spawnable entity templates and the grouped
// registry the editor lists them from.
package prefab

import (
	"iter"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/plus3/leveled/ecs"
)

// Prefab spawns a fixed set of entities at a world-space position.
// Implementations must be immutable once registered: the registry and the
// editor's transient selection share the same value.
type Prefab interface {
	Name() string
	Spawn(storage *ecs.Storage, at mgl32.Vec3)
}

// Func adapts a function to the Prefab interface.
type Func struct {
	name  string
	spawn func(storage *ecs.Storage, at mgl32.Vec3)
}

// New returns a Prefab named name that calls spawn.
func New(name string, spawn func(storage *ecs.Storage, at mgl32.Vec3)) *Func {
	return &Func{name: name, spawn: spawn}
}

func (f *Func) Name() string {
	return f.name
}

func (f *Func) Spawn(storage *ecs.Storage, at mgl32.Vec3) {
	f.spawn(storage, at)
}

// Group is a named, ordered list of prefabs shown together.
type Group struct {
	name    string
	prefabs []Prefab
}

// NewGroup returns an empty group.
func NewGroup(name string) *Group {
	return &Group{name: name}
}

func (g *Group) Name() string {
	return g.name
}

// Add appends p and returns g for chaining. Names need not be unique.
func (g *Group) Add(p Prefab) *Group {
	g.prefabs = append(g.prefabs, p)
	return g
}

// Iter yields the prefabs in insertion order.
func (g *Group) Iter() iter.Seq[Prefab] {
	return func(yield func(Prefab) bool) {
		for _, p := range g.prefabs {
			if !yield(p) {
				return
			}
		}
	}
}

// Len returns the number of prefabs in g.
func (g *Group) Len() int {
	return len(g.prefabs)
}

// Groups is the append-only registry of every prefab group, stored as a
// singleton. It is filled during startup and read by the editor each frame.
type Groups struct {
	groups []*Group
}

// Add appends group and returns the registry for chaining.
func (r *Groups) Add(group *Group) *Groups {
	r.groups = append(r.groups, group)
	return r
}

// Iter yields the groups in insertion order.
func (r *Groups) Iter() iter.Seq[*Group] {
	return func(yield func(*Group) bool) {
		for _, g := range r.groups {
			if !yield(g) {
				return
			}
		}
	}
}

// Len returns the number of groups.
func (r *Groups) Len() int {
	return len(r.groups)
}

// Find returns the first prefab called name in the group called group.
func (r *Groups) Find(group, name string) (Prefab, bool) {
	for g := range r.Iter() {
		if g.Name() != group {
			continue
		}
		for p := range g.Iter() {
			if p.Name() == name {
				return p, true
			}
		}
	}
	return nil, false
}
