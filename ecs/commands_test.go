package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/leveled/ecs"
	"github.com/stretchr/testify/assert"
)

// recorder queues one of each command kind.
type recorder struct {
	t      *testing.T
	picked ecs.EntityId
	target ecs.EntityId
	doomed ecs.EntityId
	seen   *[]string
}

func (r *recorder) Execute(frame *ecs.UpdateFrame) {
	storage := frame.Storage
	frame.Commands.Defer(func() {
		*r.seen = append(*r.seen, "defer")
		assert.Equal(r.t, 3, ecs.NewView[struct{ *Label }](storage).Count())
	})
	frame.Commands.Spawn(Label("spawned"))
	frame.Commands.AddComponent(r.picked, Selected{})
	frame.Commands.RemoveComponent(r.target, reflect.TypeFor[Velocity]())
	frame.Commands.Delete(r.doomed)
	frame.Commands.AddComponent(r.doomed, Selected{})

	assert.True(r.t, storage.Exists(r.doomed), "nothing applies before the flush")
}

func TestCommandsFlush(t *testing.T) {
	storage := newTestStorage()
	target := storage.Spawn(Position{}, Velocity{}, Label("target"))
	picked := storage.Spawn(Position{}, Label("picked"))
	doomed := storage.Spawn(Position{})

	var seen []string
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&recorder{t: t, picked: picked, target: target, doomed: doomed, seen: &seen})
	scheduler.Once(0)

	assert.Equal(t, []string{"defer"}, seen)
	assert.False(t, storage.Exists(doomed))
	assert.Equal(t, 0, ecs.NewView[struct {
		*Position
		*Velocity
	}](storage).Count())

	_, item := ecs.NewView[struct {
		*Position
		*Label
		*Selected
	}](storage).Single()
	assert.Equal(t, Label("picked"), *item.Label)

	labelled := ecs.NewView[struct {
		*Label
		Velocity *Velocity `ecs:"optional"`
	}](storage)
	for item := range labelled.Values() {
		assert.Nil(t, item.Velocity, "%s still has a velocity", *item.Label)
	}
	assert.Equal(t, 1, ecs.NewView[struct{ *Selected }](storage).Count(), "adds to deleted entities are dropped")
}

func TestCommandsResetAfterFlush(t *testing.T) {
	storage := newTestStorage()
	calls := 0

	var commands ecs.Commands
	commands.Spawn(Position{})
	commands.Defer(func() { calls++ })
	commands.Flush(storage)
	commands.Flush(storage)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, storage.CollectStats().TotalEntityCount)
}

func TestCommandsFollowMovedEntities(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{X: 1}, Velocity{X: 2})
	other := storage.Spawn(Position{X: 9}, Velocity{})

	var commands ecs.Commands
	commands.RemoveComponent(id, reflect.TypeFor[Velocity]())
	commands.AddComponent(id, Label("moved twice"))
	commands.AddComponent(id, Selected{})
	commands.RemoveComponent(other, reflect.TypeFor[Velocity]())
	commands.RemoveComponent(other, reflect.TypeFor[Position]())
	commands.AddComponent(other, Label("emptied"))
	assert.Equal(t, 6, commands.Len())

	commands.Flush(storage)
	assert.Equal(t, 0, commands.Len())

	_, item := ecs.NewView[struct {
		*Position
		*Label
		*Selected
		Velocity *Velocity `ecs:"optional"`
	}](storage).Single()
	assert.Equal(t, float32(1), item.Position.X)
	assert.Equal(t, Label("moved twice"), *item.Label)
	assert.Nil(t, item.Velocity)

	assert.Equal(t, 1, storage.CollectStats().TotalEntityCount, "removing every component deletes the entity")
}
