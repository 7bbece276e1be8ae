package ecs

import (
	"fmt"
	"reflect"
	"unsafe"
)

// Singleton provides cached access to a resource that is not attached to
// any entity: configuration, registries, input state.
type Singleton[T any] struct {
	storage       *Storage
	componentPtr  unsafe.Pointer
	componentType reflect.Type
}

// NewSingleton returns an accessor for the T singleton, creating it from
// initializer (or the zero value) when storage does not hold one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	componentType := reflect.TypeFor[T]()

	entry := storage.getSingletonEntry(componentType)
	if entry == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
		entry = storage.getSingletonEntry(componentType)
	}

	return &Singleton[T]{
		storage:       storage,
		componentPtr:  entry.dataPtr,
		componentType: componentType,
	}
}

// MustSingleton returns the T singleton and panics when it is absent.
func MustSingleton[T any](storage *Storage) *T {
	entry := storage.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		panic(fmt.Sprintf("could not find resource %s", reflect.TypeFor[T]()))
	}
	return (*T)(entry.dataPtr)
}

// Init binds the accessor to storage. The Scheduler calls it for every
// Singleton field of a registered system.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.componentType = reflect.TypeFor[T]()
	s.updateCache()
}

// Get returns a pointer to the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.componentPtr == nil {
		s.updateCache()
	}
	if s.componentPtr == nil {
		return nil
	}
	return (*T)(s.componentPtr)
}

// MustGet is Get that panics when the singleton is missing.
func (s *Singleton[T]) MustGet() *T {
	value := s.Get()
	if value == nil {
		panic(fmt.Sprintf("could not find resource %s", s.componentType))
	}
	return value
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(s.componentType); entry != nil {
		s.componentPtr = entry.dataPtr
	} else {
		s.componentPtr = nil
	}
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	if s.componentPtr == nil {
		s.updateCache()
	}
	return s.componentPtr != nil
}
