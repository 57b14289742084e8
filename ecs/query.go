package ecs

import "iter"

// Query is a View whose matches are collected once per frame. The Scheduler
// calls Execute before each system that owns the query runs, so systems see
// entities spawned by earlier frames but not their own pending Commands.
type Query[T any] struct {
	view     *View[T]
	storage  *Storage
	matched  []*Archetype
	seen     int
	ids      []EntityId
	items    []T
	executed bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.matched = nil
	q.seen = 0
	q.executed = false
}

// Execute snapshots the matching entities.
func (q *Query[T]) Execute() {
	// Archetypes are only ever added, so new ones are a suffix of order.
	for _, a := range q.storage.order[q.seen:] {
		if q.view.matches(a) {
			q.matched = append(q.matched, a)
		}
	}
	q.seen = len(q.storage.order)

	q.ids = q.ids[:0]
	q.items = q.items[:0]
	for _, a := range q.matched {
		for id, item := range q.view.iterArchetype(a) {
			q.ids = append(q.ids, id)
			q.items = append(q.items, item)
		}
	}
	q.executed = true
}

// Len is the number of matches from the last Execute.
func (q *Query[T]) Len() int {
	return len(q.ids)
}

// Iter yields the matches from the last Execute. It panics if Execute has
// never run.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	if !q.executed {
		panic("ecs: Query.Iter called before Query.Execute")
	}
	return func(yield func(EntityId, T) bool) {
		for i := range q.ids {
			if !yield(q.ids[i], q.items[i]) {
				return
			}
		}
	}
}

func (q *Query[T]) Values() iter.Seq[T] {
	if !q.executed {
		panic("ecs: Query.Values called before Query.Execute")
	}
	return func(yield func(T) bool) {
		for i := range q.items {
			if !yield(q.items[i]) {
				return
			}
		}
	}
}
