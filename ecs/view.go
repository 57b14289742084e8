package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// View matches entities against a struct of component pointers. Every field
// of T must be a pointer to a registered component type. Named fields tagged
// `ecs:"optional"` are nil when the entity lacks that component; all other
// fields are required.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr
}

func NewView[T any](storage *Storage) *View[T] {
	st := reflect.TypeFor[T]()
	if st.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := range st.NumField() {
		f := st.Field(i)
		if f.Type.Kind() != reflect.Pointer {
			panic("ecs: View field " + f.Name + " must be a pointer")
		}
		opt := false
		if tag, ok := f.Tag.Lookup("ecs"); ok && !f.Anonymous {
			if tag != "optional" {
				panic(`ecs: invalid ecs tag "` + tag + `" (only "optional" is supported)`)
			}
			opt = true
		}
		v.types = append(v.types, f.Type.Elem())
		v.optional = append(v.optional, opt)
		v.offsets = append(v.offsets, f.Offset)
	}
	return v
}

func (v *View[T]) matches(a *Archetype) bool {
	for i, t := range v.types {
		if !v.optional[i] && !a.HasComponent(t) {
			return false
		}
	}
	return true
}

// columns maps each view field to a column of a, or -1.
func (v *View[T]) columns(a *Archetype) []int {
	cols := make([]int, len(v.types))
	for i, t := range v.types {
		cols[i] = a.column(t)
	}
	return cols
}

func (v *View[T]) fill(dst unsafe.Pointer, a *Archetype, index int, cols []int) bool {
	for i, col := range cols {
		field := unsafe.Add(dst, v.offsets[i])
		var c any
		if col >= 0 {
			c = a.storages[col].Get(index)
		}
		if c == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(field) = nil
			continue
		}
		*(*unsafe.Pointer)(field) = (*iface)(unsafe.Pointer(&c)).data
	}
	return true
}

// Fill points the fields of dst at id's components. It returns false if id
// is gone or lacks a required component.
func (v *View[T]) Fill(id EntityId, dst *T) bool {
	a, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !v.matches(a) {
		return false
	}
	return v.fill(unsafe.Pointer(dst), a, int(id.Index()), v.columns(a))
}

func (v *View[T]) Get(id EntityId) *T {
	var out T
	if !v.Fill(id, &out) {
		return nil
	}
	return &out
}

func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

func (v *View[T]) iterArchetype(a *Archetype) iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		if len(a.storages) == 0 {
			return
		}
		cols := v.columns(a)
		var out T
		for index := range a.storages[0].Iter() {
			if !v.fill(unsafe.Pointer(&out), a, index, cols) {
				continue
			}
			if !yield(NewEntityId(a.id, uint32(index)), out) {
				return
			}
		}
	}
}

// Iter walks matching entities, archetypes in creation order.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, a := range v.storage.order {
			if !v.matches(a) {
				continue
			}
			for id, out := range v.iterArchetype(a) {
				if !yield(id, out) {
					return
				}
			}
		}
	}
}

func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, out := range v.Iter() {
			if !yield(out) {
				return
			}
		}
	}
}
