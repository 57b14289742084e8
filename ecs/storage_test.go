package ecs_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/zonefall/ecs"
)

func TestStorage(t *testing.T) {
	t.Run("spawn and read back", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		id := storage.Spawn(Position{Row: 1, Col: 2}, &Velocity{DCol: 1})

		pos := ecs.ReadComponent[Position](storage, id)
		if assert.NotNil(t, pos) {
			assert.Equal(t, Position{Row: 1, Col: 2}, *pos)
		}
		assert.Equal(t, 1, ecs.ReadComponent[Velocity](storage, id).DCol)
		assert.Nil(t, ecs.ReadComponent[Label](storage, id))
		assert.True(t, storage.HasComponent(id, reflect.TypeFor[Velocity]()))
	})

	t.Run("argument order does not change the archetype", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		a := storage.Spawn(Position{}, Velocity{})
		b := storage.Spawn(Velocity{}, Position{})
		assert.Equal(t, a.ArchetypeId(), b.ArchetypeId())
		assert.Len(t, storage.Archetypes(), 1)
	})

	t.Run("delete frees the slot for reuse", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		a := storage.Spawn(Label{Name: "a"})
		storage.Spawn(Label{Name: "b"})

		assert.True(t, storage.Delete(a))
		assert.False(t, storage.Delete(a))
		assert.Nil(t, ecs.ReadComponent[Label](storage, a))

		c := storage.Spawn(Label{Name: "c"})
		assert.Equal(t, a.Index(), c.Index())
		assert.Equal(t, "c", ecs.ReadComponent[Label](storage, c).Name)
	})

	t.Run("storage grows past one chunk", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		var first *Position
		for i := range 200 {
			id := storage.Spawn(Position{Row: i})
			if i == 0 {
				first = ecs.ReadComponent[Position](storage, id)
			}
		}
		assert.Equal(t, 200, storage.Archetypes()[0].Len())
		assert.Equal(t, 0, first.Row)
		first.Row = 7
		assert.Equal(t, 7, ecs.ReadComponent[Position](storage, ecs.NewEntityId(storage.Archetypes()[0].ID(), 0)).Row)
	})

	t.Run("unregistered component panics", func(t *testing.T) {
		storage := ecs.NewStorage(newRegistry())
		assert.Panics(t, func() { storage.Spawn(Clock{}) })
		assert.Panics(t, func() { storage.Spawn() })
	})
}

func TestEntityRef(t *testing.T) {
	storage := ecs.NewStorage(newRegistry())
	id := storage.Spawn(Label{Name: "p1"})

	ref := storage.CreateEntityRef(id)
	assert.Same(t, ref, storage.CreateEntityRef(id))
	assert.True(t, ref.Alive())

	resolved, ok := storage.ResolveEntityRef(ref)
	assert.True(t, ok)
	assert.Equal(t, id, resolved)

	storage.Delete(id)
	assert.False(t, ref.Alive())
	_, ok = storage.ResolveEntityRef(ref)
	assert.False(t, ok)

	assert.Nil(t, storage.CreateEntityRef(id))
	var nilRef *ecs.EntityRef
	assert.False(t, nilRef.Alive())
}

func TestSingletons(t *testing.T) {
	storage := ecs.NewStorage(newRegistry())

	var clock *Clock
	assert.False(t, storage.ReadSingleton(&clock))

	handle := ecs.NewSingleton(storage, Clock{Elapsed: 1.5})
	assert.True(t, handle.Exists())
	assert.True(t, storage.ReadSingleton(&clock))
	assert.Same(t, handle.Get(), clock)

	clock.Elapsed += 1
	assert.Equal(t, 2.5, handle.Get().Elapsed)

	again := ecs.NewSingleton(storage, Clock{Elapsed: 99})
	assert.Equal(t, 2.5, again.Get().Elapsed)

	var missing ecs.Singleton[Label]
	missing.Init(storage)
	assert.Nil(t, missing.Get())
	assert.False(t, missing.Exists())
}

func TestCollectStats(t *testing.T) {
	storage := ecs.NewStorage(newRegistry())
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Position{}, Velocity{})
	storage.Spawn(Label{})
	storage.AddSingleton(Clock{})

	stats := storage.CollectStats()
	assert.Equal(t, 2, stats.ArchetypeCount)
	assert.Equal(t, 3, stats.TotalEntityCount)
	assert.Equal(t, 1, stats.SingletonCount)
	assert.Equal(t, []string{"ecs_test.Clock"}, stats.SingletonTypes)
	assert.Equal(t, []string{"ecs_test.Position", "ecs_test.Velocity"}, stats.ArchetypeBreakdown[0].ComponentTypes)
	assert.Equal(t, 2, stats.ArchetypeBreakdown[0].EntityCount)
}
