package ecs

import (
	"reflect"
	"unsafe"
)

// Singleton is a typed handle to world-global state that belongs to no
// entity: the board, the session clock, configuration.
type Singleton[T any] struct {
	storage *Storage
	ptr     unsafe.Pointer
}

// NewSingleton returns a handle to T in storage, creating it from init (or
// the zero value) when absent.
func NewSingleton[T any](storage *Storage, init ...T) *Singleton[T] {
	s := &Singleton[T]{}
	t := reflect.TypeFor[T]()
	if storage.getSingletonEntry(t) == nil {
		var value T
		if len(init) > 0 {
			value = init[0]
		}
		storage.AddSingleton(value)
	}
	s.Init(storage)
	return s
}

// Init binds the handle to storage. The Scheduler calls it on registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.dataPtr
	}
}

// Get returns the singleton, or nil if it was never added.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return (*T)(s.ptr)
}

func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
