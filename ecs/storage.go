package ecs

import (
	"reflect"
	"unsafe"
	"weak"
)

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// Storage owns the archetypes and singletons of one world.
type Storage struct {
	archetypes map[uint32]*Archetype
	// order keeps archetypes in creation order so iteration is deterministic.
	order      []*Archetype
	singletons map[reflect.Type]*singletonEntry
	registry   *ComponentRegistry
}

func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		registry:   registry,
	}
}

// Registry returns the component registry the storage was built with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// CreateEntityRef returns the shared ref for id, creating it on first use.
// It returns nil if the entity does not exist.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype := s.archetypes[id.ArchetypeId()]
	if archetype == nil || len(archetype.storages) == 0 || archetype.storages[0].Get(int(id.Index())) == nil {
		return nil
	}

	if wp, ok := archetype.refs.Get(id); ok {
		if ref := wp.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Alive() {
		return 0, false
	}
	return ref.Id, true
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := hashTypesToUint32(types)
	archetype, ok := s.archetypes[id]
	if !ok {
		archetype = newArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
		s.order = append(s.order, archetype)
	}
	return archetype
}

// Spawn creates an entity from the given components. Each may be a value or
// a pointer to one; pointers are copied.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}
	archetype := s.archetypeFor(extractComponentTypes(components))
	return NewEntityId(archetype.id, archetype.spawn(components))
}

// Delete removes the entity and reports whether it existed.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return false
	}
	return archetype.delete(id.Index())
}

// GetComponent returns a pointer to the component, or nil.
func (s *Storage) GetComponent(id EntityId, t reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.component(id.Index(), t)
}

func (s *Storage) HasComponent(id EntityId, t reflect.Type) bool {
	return s.GetComponent(id, t) != nil
}

// Archetypes returns the archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// AddSingleton stores a copy of value as the singleton of its type,
// replacing any previous one. Existing Singleton accessors keep pointing at
// the old copy until re-initialised.
func (s *Storage) AddSingleton(value any) {
	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
		value = reflect.ValueOf(value).Elem().Interface()
	}
	v := reflect.New(t)
	v.Elem().Set(reflect.ValueOf(value))
	s.singletons[t] = &singletonEntry{value: v, dataPtr: v.UnsafePointer()}
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// ReadSingleton points *ptr at the stored singleton. ptr must be a **T.
func (s *Storage) ReadSingleton(ptr any) bool {
	pv := reflect.ValueOf(ptr)
	if pv.Kind() != reflect.Pointer || pv.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton expects a pointer to a pointer")
	}
	entry := s.singletons[pv.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	pv.Elem().Set(entry.value)
	return true
}

func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, c := range components {
		t := reflect.TypeOf(c)
		if t.Kind() == reflect.Pointer {
			t = t.Elem()
		}
		switch t.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}
		types = append(types, t)
	}
	sortTypes(types)
	return types
}

// hashTypesToUint32 is FNV-1a over the runtime type pointers of a sorted
// type list.
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261
	const prime uint32 = 16777619

	for _, t := range types {
		ptr := uintptr((*iface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(ptr) == 8 {
			val ^= uint32(uint64(ptr) >> 32)
		}
		h ^= val
		h *= prime
	}
	return h
}

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent is a typed GetComponent; it returns nil when absent.
func ReadComponent[T any](reader ComponentReader, id EntityId) *T {
	c, _ := reader.GetComponent(id, reflect.TypeFor[T]()).(*T)
	return c
}
