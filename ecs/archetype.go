package ecs

import (
	"cmp"
	"iter"
	"reflect"
	"slices"
	"unsafe"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype stores every entity sharing one exact set of component types.
// Entity indices are storage slots and stay stable until the entity is deleted.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []componentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

// NewArchetype creates the archetype for types, which must already be
// sorted with sortTypes. Unregistered component types panic.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]componentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](256),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// sortTypes orders component types by name so that any permutation of the
// same set hashes to the same archetype.
func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return cmp.Compare(a.String(), b.String())
	})
}

// componentType is the storage type of a component value: one level of
// pointer is unwrapped.
func componentType(component any) reflect.Type {
	typ := reflect.TypeOf(component)
	if typ.Kind() == reflect.Ptr {
		return typ.Elem()
	}
	return typ
}

// ifaceData returns the data word of an interface value. For the pointers
// held by component storages this is the component's address.
func ifaceData(v any) unsafe.Pointer {
	return (*[2]unsafe.Pointer)(unsafe.Pointer(&v))[1]
}

// storageIndex returns the position of typ in the archetype, or -1.
func (a *Archetype) storageIndex(typ reflect.Type) int {
	return slices.Index(a.types, typ)
}

// Spawn appends one entity built from components and returns its slot.
// Every storage receives the entity at the same slot.
func (a *Archetype) Spawn(components []any) uint32 {
	var slot int
	for _, component := range components {
		if idx := a.storageIndex(componentType(component)); idx >= 0 {
			slot = a.storages[idx].Append(component)
		}
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the compType component in slot
// entityIndex, or nil.
func (a *Archetype) GetComponent(entityIndex uint32, compType reflect.Type) any {
	idx := a.storageIndex(compType)
	if idx < 0 {
		return nil
	}
	return a.storages[idx].Get(int(entityIndex))
}

// Delete frees the slot and detaches any EntityRef pointing at it.
func (a *Archetype) Delete(entityIndex uint32) {
	id := NewEntityId(a.id, entityIndex)

	if weakPtr, ok := a.refs.Get(id); ok {
		if ref := weakPtr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	for _, storage := range a.storages {
		storage.Delete(int(entityIndex))
	}
}

func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return a.storageIndex(compType) >= 0
}

func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types. The slice must not be modified.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in this archetype.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields the ids of live entities in slot order.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for slot := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}
