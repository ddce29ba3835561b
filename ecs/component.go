package ecs

import (
	"iter"
	"reflect"
)

// componentStorage is a type-erased column of one component type inside an archetype.
type componentStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry maps component types to storage factories. Each Storage owns one
// registry, so several worlds can coexist in a process (the headless simulator relies on it).
type ComponentRegistry struct {
	factories map[reflect.Type]func() componentStorage
}

// NewComponentRegistry creates an empty component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() componentStorage),
	}
}

// RegisterComponent registers T with the registry. Every component type must be registered
// before an entity carrying it is spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	r.factories[reflect.TypeFor[T]()] = func() componentStorage {
		return &blockStorage[T]{}
	}
}

// Registered reports whether a component type has a storage factory.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() componentStorage {
	return r.factories[t]
}

const blockSize = 64

// blockStorage keeps components in fixed-size heap blocks. Blocks are never moved once
// allocated, so a pointer handed out by Get stays valid until its slot is deleted.
type blockStorage[T any] struct {
	blocks    []*[blockSize]T
	filled    []*[blockSize]bool
	freeSlots []int
	nextIndex int
	count     int
}

func (bs *blockStorage[T]) Append(item any) int {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return -1
	}

	var index int
	if n := len(bs.freeSlots); n > 0 {
		index = bs.freeSlots[n-1]
		bs.freeSlots = bs.freeSlots[:n-1]
	} else {
		index = bs.nextIndex
		bs.nextIndex++
		if index/blockSize >= len(bs.blocks) {
			bs.blocks = append(bs.blocks, new([blockSize]T))
			bs.filled = append(bs.filled, new([blockSize]bool))
		}
	}

	block, slot := index/blockSize, index%blockSize
	bs.blocks[block][slot] = value
	bs.filled[block][slot] = true
	bs.count++
	return index
}

func (bs *blockStorage[T]) Get(index int) any {
	if !bs.Has(index) {
		return nil
	}
	return &bs.blocks[index/blockSize][index%blockSize]
}

func (bs *blockStorage[T]) Delete(index int) {
	if !bs.Has(index) {
		return
	}
	block, slot := index/blockSize, index%blockSize
	var zero T
	bs.blocks[block][slot] = zero
	bs.filled[block][slot] = false
	bs.freeSlots = append(bs.freeSlots, index)
	bs.count--
}

func (bs *blockStorage[T]) Has(index int) bool {
	if index < 0 || index >= bs.nextIndex {
		return false
	}
	return bs.filled[index/blockSize][index%blockSize]
}

func (bs *blockStorage[T]) Len() int {
	return bs.count
}

func (bs *blockStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := 0; i < bs.nextIndex; i++ {
			if !bs.filled[i/blockSize][i%blockSize] {
				continue
			}
			if !yield(i) {
				return
			}
		}
	}
}
