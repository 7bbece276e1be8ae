package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"sort"
	"unsafe"
	"weak"
)

// Storage holds every entity, component and singleton resource of a world.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry

	singletons     map[reflect.Type]*singletonEntry
	singletonOrder []reflect.Type

	generation uint64
}

// singletonEntry owns the heap copy of a singleton value.
type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil {
		return nil
	}

	if weakPtr, ok := archetype.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{
		Id:        id,
		Archetype: archetype,
	}
	archetype.refs.Put(id, weak.Make(ref))

	return ref
}

func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if ref == nil || ref.Id == 0 {
		return 0, false
	}
	return ref.Id, true
}

func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if ref == nil || ref.Id == 0 {
		return false
	}

	archetype := s.archetypes[ref.Id.ArchetypeId()]
	if archetype != nil {
		archetype.refs.Del(ref.Id)
	}

	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.archetypes[hashTypesToUint32(types)]
}

// GetArchetypeById returns the archetype with the given id, or nil.
func (s *Storage) GetArchetypeById(id uint32) *Archetype {
	return s.archetypes[id]
}

// GetArchetypes returns every archetype ordered by id.
func (s *Storage) GetArchetypes() []*Archetype {
	archetypes := make([]*Archetype, 0, len(s.archetypes))
	for _, archetype := range s.archetypes {
		archetypes = append(archetypes, archetype)
	}
	sort.Slice(archetypes, func(i, j int) bool {
		return archetypes[i].id < archetypes[j].id
	})
	return archetypes
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetype := s.archetypeFor(types)

	entityIndex := archetype.Spawn(components)
	s.generation++
	return NewEntityId(archetype.id, entityIndex)
}

func (s *Storage) archetypeFor(sortedTypes []reflect.Type) *Archetype {
	archetypeId := hashTypesToUint32(sortedTypes)
	archetype, exists := s.archetypes[archetypeId]
	if !exists {
		archetype = NewArchetype(archetypeId, sortedTypes, s.registry)
		s.archetypes[archetypeId] = archetype
	}
	return archetype
}

// Delete removes all data related to the entity ID
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return
	}
	archetype.Delete(id.Index())
	s.generation++
}

// AddComponent moves the entity into the archetype that also holds component.
// The returned id replaces the old one; live EntityRefs follow the move.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]

	compType := componentType(component)

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)+1)
	newTypes = append(newTypes, oldArchetype.types...)
	newTypes = append(newTypes, compType)
	sortTypes(newTypes)

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(id.Index(), typ))
		}
	}

	return s.move(id, oldArchetype, s.archetypeFor(newTypes), components)
}

// RemoveComponent moves the entity into the archetype without compType.
// Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	oldArchetype := s.archetypes[id.ArchetypeId()]

	newTypes := make([]reflect.Type, 0, len(oldArchetype.types))
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	if len(newTypes) == 0 {
		oldArchetype.Delete(id.Index())
		s.generation++
		return 0
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(id.Index(), typ))
	}

	return s.move(id, oldArchetype, s.archetypeFor(newTypes), components)
}

func (s *Storage) move(id EntityId, from, to *Archetype, components []any) EntityId {
	weakPtr, hasRef := from.refs.Get(id)

	newId := NewEntityId(to.id, to.Spawn(components))

	if hasRef {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = to
		}
		from.refs.Del(id)
		to.refs.Put(newId, weakPtr)
	}

	from.Delete(id.Index())
	s.generation++
	return newId
}

// Generation changes whenever an entity is spawned, deleted or moved to
// another archetype. Equal generations mean the same set of entity ids.
func (s *Storage) Generation() uint64 {
	return s.generation
}

// Exists reports whether id refers to a live entity.
func (s *Storage) Exists(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || len(archetype.storages) == 0 {
		return false
	}
	return archetype.storages[0].Has(int(id.Index()))
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddSingleton stores value as the singleton of its type, replacing the
// contents of any previous one in place. Pointer values are dereferenced so
// the storage owns a copy.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if !v.IsValid() {
		panic("cannot add nil singleton")
	}
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	typ := v.Type()

	// Replacing writes through the existing holder so pointers handed out
	// by Singleton fields and MustSingleton keep seeing the current value.
	if entry, exists := s.singletons[typ]; exists {
		entry.value.Elem().Set(v)
		return
	}

	holder := reflect.New(typ)
	holder.Elem().Set(v)

	s.singletonOrder = append(s.singletonOrder, typ)
	s.singletons[typ] = &singletonEntry{
		typ:     typ,
		value:   holder,
		dataPtr: holder.UnsafePointer(),
	}
}

// ReadSingleton points *target at the stored singleton. target must be a
// pointer to a pointer, e.g. `var cfg *Config; storage.ReadSingleton(&cfg)`.
func (s *Storage) ReadSingleton(target any) bool {
	targetVal := reflect.ValueOf(target)
	if targetVal.Kind() != reflect.Ptr || targetVal.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}

	entry := s.getSingletonEntry(targetVal.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	targetVal.Elem().Set(entry.value)
	return true
}

// HasSingleton reports whether a singleton of the given type exists.
func (s *Storage) HasSingleton(typ reflect.Type) bool {
	return s.getSingletonEntry(typ) != nil
}

// GetSingleton returns a pointer to the singleton of the given type, or nil.
func (s *Storage) GetSingleton(typ reflect.Type) any {
	entry := s.getSingletonEntry(typ)
	if entry == nil {
		return nil
	}
	return entry.value.Interface()
}

// Singletons yields every singleton type with a pointer to its value, in
// the order they were first added.
func (s *Storage) Singletons() iter.Seq2[reflect.Type, any] {
	return func(yield func(reflect.Type, any) bool) {
		for _, typ := range s.singletonOrder {
			if !yield(typ, s.singletons[typ].value.Interface()) {
				return
			}
		}
	}
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

// CollectStats walks the storage and summarises its contents.
func (s *Storage) CollectStats() StorageStats {
	stats := StorageStats{
		ArchetypeCount: len(s.archetypes),
		SingletonCount: len(s.singletons),
	}

	for _, archetype := range s.GetArchetypes() {
		count := archetype.Len()
		names := make([]string, len(archetype.types))
		for i, typ := range archetype.types {
			names[i] = typ.String()
		}
		stats.TotalEntityCount += count
		stats.ArchetypeBreakdown = append(stats.ArchetypeBreakdown, ArchetypeStats{
			ID:             archetype.id,
			ComponentTypes: names,
			EntityCount:    count,
		})
	}

	for _, typ := range s.singletonOrder {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}

	return stats
}

// extractComponentTypes returns the sorted storage types of components.
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		compType := componentType(comp)

		switch compType.Kind() {
		case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
			panic(fmt.Sprintf("component %s cannot be a pointer, map, channel or function", compType))
		}

		types = append(types, compType)
	}
	sortTypes(types)
	return types
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		ptr := ifaceData(t)
		val := uint32(uintptr(ptr))

		if unsafe.Sizeof(uintptr(0)) == 8 {
			val ^= uint32(uintptr(ptr) >> 32)
		}

		h ^= val
		h *= prime
	}

	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the typed component of entityId, or nil when the
// entity does not have one.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
