package ecs

import (
	"cmp"
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

func sortTypes(types []reflect.Type) {
	slices.SortFunc(types, func(a, b reflect.Type) int {
		return cmp.Compare(a.String(), b.String())
	})
}

// Archetype holds every entity sharing one exact set of component types.
// All of its storages allocate in lockstep, so a slot index addresses the
// same entity in each of them.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	refs     *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
		refs:     intmap.New[EntityId, weak.Pointer[EntityRef]](64),
	}
	for i, t := range types {
		factory := registry.getFactory(t)
		if factory == nil {
			panic("ecs: component type " + t.String() + " not registered")
		}
		a.storages[i] = factory()
	}
	return a
}

func (a *Archetype) column(t reflect.Type) int {
	return slices.Index(a.types, t)
}

// spawn appends components, which must already match a.types, and returns
// the shared slot index.
func (a *Archetype) spawn(components []any) uint32 {
	index := -1
	for _, c := range components {
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		if col := a.column(t); col >= 0 {
			index = a.storages[col].Append(c)
		}
	}
	return uint32(index)
}

func (a *Archetype) component(index uint32, t reflect.Type) any {
	col := a.column(t)
	if col < 0 {
		return nil
	}
	return a.storages[col].Get(int(index))
}

// delete frees the slot and invalidates any outstanding EntityRef.
func (a *Archetype) delete(index uint32) bool {
	if len(a.storages) == 0 || a.storages[0].Get(int(index)) == nil {
		return false
	}
	id := NewEntityId(a.id, index)
	if wp, ok := a.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}
	for _, s := range a.storages {
		s.Delete(int(index))
	}
	return true
}

func (a *Archetype) HasComponent(t reflect.Type) bool {
	return a.column(t) >= 0
}

func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types in their sorted order.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len is the number of live entities.
func (a *Archetype) Len() int {
	if len(a.storages) == 0 {
		return 0
	}
	return a.storages[0].Len()
}

// Iter yields the ids of live entities in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.storages) == 0 {
			return
		}
		for index := range a.storages[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
