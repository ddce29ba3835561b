package ecs

import (
	"iter"
	"unsafe"
)

type queryRow[T any] struct {
	id   EntityId
	item T
}

// Query is a View whose matches are snapshotted once per frame. The scheduler calls
// Execute right before the owning system runs, so spawns and deletes queued during the
// frame never show up mid-iteration.
type Query[T any] struct {
	view    *View[T]
	storage *Storage

	// matched is rebuilt whenever the storage gains an archetype.
	matched []*Archetype
	seen    int

	rows     []queryRow[T]
	executed bool
}

func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. Called by the Scheduler during system registration.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.matched = nil
	q.seen = -1
	q.rows = q.rows[:0]
	q.executed = false
}

// Execute takes this frame's snapshot of matching entities.
func (q *Query[T]) Execute() {
	if n := len(q.storage.order); n != q.seen {
		q.matched = q.matched[:0]
		for _, archetype := range q.storage.order {
			if q.view.matchesArchetype(archetype) {
				q.matched = append(q.matched, archetype)
			}
		}
		q.seen = n
	}

	q.rows = q.rows[:0]
	for _, archetype := range q.matched {
		q.collect(archetype)
	}
	q.executed = true
}

func (q *Query[T]) collect(archetype *Archetype) {
	if len(archetype.columns) == 0 {
		return
	}
	indices := q.view.buildStorageIndices(archetype)

	var item T
	ptr := unsafe.Pointer(&item)
	for slot := range archetype.columns[0].Iter() {
		if q.view.populateResult(ptr, archetype, slot, indices) {
			q.rows = append(q.rows, queryRow[T]{id: NewEntityId(archetype.id, uint32(slot)), item: item})
		}
	}
}

func (q *Query[T]) mustExecute(method string) {
	if !q.executed {
		panic("Query." + method + "() called before Query.Execute()")
	}
}

// Iter yields the snapshot's entity ids and component views. Panics before Execute.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.mustExecute("Iter")
	return func(yield func(EntityId, T) bool) {
		for _, row := range q.rows {
			if !yield(row.id, row.item) {
				return
			}
		}
	}
}

// Values yields the snapshot's component views. Panics before Execute.
func (q *Query[T]) Values() iter.Seq[T] {
	q.mustExecute("Values")
	return func(yield func(T) bool) {
		for _, row := range q.rows {
			if !yield(row.item) {
				return
			}
		}
	}
}

// Len returns the number of entities in the last snapshot.
func (q *Query[T]) Len() int {
	return len(q.rows)
}
