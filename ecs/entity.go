package ecs

import "fmt"

// EntityId packs the archetype id in the upper 32 bits and the storage
// slot in the lower 32 bits. It changes whenever the entity's component
// set changes; hold an EntityRef to follow an entity across moves.
type EntityId uint64

func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

func (e EntityId) Index() uint32 {
	return uint32(e)
}

// String formats the id as "archetype:slot" with the archetype in hex.
func (e EntityId) String() string {
	return fmt.Sprintf("%08x:%d", e.ArchetypeId(), e.Index())
}

// EntityRef tracks an entity through AddComponent and RemoveComponent.
// Id is zero once the entity is deleted.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}
