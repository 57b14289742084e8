package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry maps component types to storage factories. Each Storage
// owns one, so independent worlds never see each other's registrations.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent makes T usable as a component in r. Registering the
// same type twice is harmless.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

const chunkSize = 64

// chunk is a fixed block of slots; pointers into it stay valid while the
// storage grows because chunks are never reallocated.
type chunk[T any] struct {
	items [chunkSize]T
	live  [chunkSize]bool
}

// genericComponentStorage keeps components of one type in chunks and reuses
// freed slots, so an index handed out remains stable until deleted.
type genericComponentStorage[T any] struct {
	chunks    []*chunk[T]
	freeSlots []int
	nextIndex int
	count     int
}

func (cs *genericComponentStorage[T]) slot(index int) (*chunk[T], int, bool) {
	if index < 0 || index >= cs.nextIndex {
		return nil, 0, false
	}
	return cs.chunks[index/chunkSize], index % chunkSize, true
}

// Append stores item (a T or *T) and returns its index, or -1 for a
// mismatched type.
func (cs *genericComponentStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case T:
		value = v
	case *T:
		value = *v
	default:
		return -1
	}

	var index int
	if n := len(cs.freeSlots); n > 0 {
		index = cs.freeSlots[n-1]
		cs.freeSlots = cs.freeSlots[:n-1]
	} else {
		index = cs.nextIndex
		cs.nextIndex++
		if index/chunkSize >= len(cs.chunks) {
			cs.chunks = append(cs.chunks, new(chunk[T]))
		}
	}

	c, i, _ := cs.slot(index)
	c.items[i] = value
	c.live[i] = true
	cs.count++
	return index
}

// Get returns a *T for a live slot, or nil.
func (cs *genericComponentStorage[T]) Get(index int) any {
	c, i, ok := cs.slot(index)
	if !ok || !c.live[i] {
		return nil
	}
	return &c.items[i]
}

func (cs *genericComponentStorage[T]) Delete(index int) {
	c, i, ok := cs.slot(index)
	if !ok || !c.live[i] {
		return
	}
	var zero T
	c.items[i] = zero
	c.live[i] = false
	cs.freeSlots = append(cs.freeSlots, index)
	cs.count--
}

func (cs *genericComponentStorage[T]) Len() int {
	return cs.count
}

// Iter yields live indices in ascending order.
func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for index := 0; index < cs.nextIndex; index++ {
			c := cs.chunks[index/chunkSize]
			if c.live[index%chunkSize] && !yield(index) {
				return
			}
		}
	}
}
