package ecs

import "reflect"

// Commands buffers structural changes made while systems run. The
// Scheduler flushes the buffer once every system of the frame has run.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

type addComponentCommand struct {
	entity    EntityId
	component any
}

type removeComponentCommand struct {
	entity   EntityId
	compType reflect.Type
}

// Defer queues fn to run after every other queued command.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, addComponentCommand{entity: entity, component: component})
}

func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{entity: entity, compType: compType})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies the queue to storage and empties it. Deletes run first,
// then removals, additions, spawns and finally deferred functions.
// Commands naming a deleted entity are dropped. An entity moved by an
// earlier removal or addition is followed to its new id.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	// Commands name entities by the id systems saw this frame.
	current := make(map[EntityId]EntityId)
	resolve := func(id EntityId) (EntityId, bool) {
		if deleted[id] {
			return 0, false
		}
		if moved, ok := current[id]; ok {
			return moved, moved != 0
		}
		return id, true
	}

	for _, cmd := range c.removes {
		if id, ok := resolve(cmd.entity); ok {
			current[cmd.entity] = storage.RemoveComponent(id, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if id, ok := resolve(cmd.entity); ok {
			current[cmd.entity] = storage.AddComponent(id, cmd.component)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	for _, fn := range c.defers {
		fn()
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
	c.defers = c.defers[:0]
}
