package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Each
// Storage has its own registry, so independent worlds can coexist.
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent makes T usable as a component. Registering twice is
// harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

// IsRegistered reports whether typ was passed to RegisterComponent.
func (r *ComponentRegistry) IsRegistered(typ reflect.Type) bool {
	_, ok := r.factories[typ]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

// componentStorage is one column of an archetype with the element type
// erased. Slots are ints shared by every column of the archetype.
type componentStorage interface {
	Append(item any) int
	Delete(slot int)
	Get(slot int) any
	Has(slot int) bool
	Len() int
	Iter() iter.Seq[int]
}

const blockSize = 64

// blockStorage keeps components in fixed-size blocks so that pointers
// returned by Get survive later appends. Freed slots are reused LIFO.
type blockStorage[T any] struct {
	blocks [][blockSize]T
	filled [][blockSize]bool
	free   []int
	next   int
}

func (s *blockStorage[T]) locate(slot int) (block, offset int, ok bool) {
	if slot < 0 || slot >= s.next {
		return 0, 0, false
	}
	return slot / blockSize, slot % blockSize, true
}

// Append stores item, which may be a T or a *T, and returns its slot. It
// returns -1 for any other type.
func (s *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var slot int
	if n := len(s.free); n > 0 {
		slot = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		slot = s.next
		s.next++
		if slot/blockSize >= len(s.blocks) {
			s.blocks = append(s.blocks, [blockSize]T{})
			s.filled = append(s.filled, [blockSize]bool{})
		}
	}

	block, offset := slot/blockSize, slot%blockSize
	s.blocks[block][offset] = value
	s.filled[block][offset] = true
	return slot
}

// Get returns a *T for a filled slot, or nil.
func (s *blockStorage[T]) Get(slot int) any {
	block, offset, ok := s.locate(slot)
	if !ok || !s.filled[block][offset] {
		return nil
	}
	return &s.blocks[block][offset]
}

// Delete zeroes a filled slot and queues it for reuse.
func (s *blockStorage[T]) Delete(slot int) {
	block, offset, ok := s.locate(slot)
	if !ok || !s.filled[block][offset] {
		return
	}
	var zero T
	s.blocks[block][offset] = zero
	s.filled[block][offset] = false
	s.free = append(s.free, slot)
}

func (s *blockStorage[T]) Has(slot int) bool {
	block, offset, ok := s.locate(slot)
	return ok && s.filled[block][offset]
}

func (s *blockStorage[T]) Len() int {
	return s.next - len(s.free)
}

// Iter yields filled slots in ascending order.
func (s *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for slot := range s.next {
			if s.filled[slot/blockSize][slot%blockSize] && !yield(slot) {
				return
			}
		}
	}
}
