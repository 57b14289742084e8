package ecs_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/zonefall/ecs"
)

type mover struct {
	*Position
	*Velocity
	Label *Label `ecs:"optional"`
}

func TestView(t *testing.T) {
	storage := ecs.NewStorage(newRegistry())
	named := storage.Spawn(Position{}, Velocity{DRow: 1}, Label{Name: "bomb"})
	plain := storage.Spawn(Position{}, Velocity{DCol: 1})
	still := storage.Spawn(Position{})

	view := ecs.NewView[mover](storage)

	got := view.Get(named)
	if assert.NotNil(t, got) {
		assert.Equal(t, "bomb", got.Label.Name)
	}
	got = view.Get(plain)
	if assert.NotNil(t, got) {
		assert.Nil(t, got.Label)
	}
	assert.Nil(t, view.Get(still))

	var ids []ecs.EntityId
	for id := range view.Iter() {
		ids = append(ids, id)
	}
	assert.Equal(t, []ecs.EntityId{named, plain}, ids)

	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			P *Position `ecs:"sometimes"`
		}](storage)
	})
}

func TestQuery(t *testing.T) {
	storage := ecs.NewStorage(newRegistry())
	query := ecs.NewQuery[struct{ *Position }](storage)

	assert.Panics(t, func() { query.Iter() })

	storage.Spawn(Position{Row: 1})
	query.Execute()
	assert.Equal(t, 1, query.Len())

	storage.Spawn(Position{Row: 2}, Label{})
	assert.Equal(t, 1, query.Len(), "matches are fixed until the next Execute")

	query.Execute()
	rows := []int{}
	for item := range query.Values() {
		rows = append(rows, item.Row)
	}
	assert.Equal(t, []int{1, 2}, rows)
}
