package ecs

import (
	"fmt"
	"iter"
	"reflect"
	"unsafe"
)

// eface mirrors the runtime layout of an empty interface, so a boxed component pointer can
// be read without a type switch.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// View reads entities through a struct of component pointers. Embedded pointer fields are
// required components; named pointer fields tagged `ecs:"optional"` are nil when the
// entity lacks the component.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr
}

// NewView builds a view for T. It panics if T is not a struct of pointer fields or carries
// an unknown ecs tag.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" && !field.Anonymous {
			if tag != "optional" {
				panic(fmt.Sprintf("invalid ecs tag value: %q (only \"optional\" is supported)", tag))
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.offsets = append(v.offsets, field.Offset)
	}
	return v
}

// Fill points ptr's fields at the entity's components. It returns false when the entity
// is gone or lacks a required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype := v.storage.lookup(id.ArchetypeId())
	if archetype == nil || !v.matchesArchetype(archetype) {
		return false
	}
	return v.populateResult(unsafe.Pointer(ptr), archetype, int(id.Index()), v.buildStorageIndices(archetype))
}

// Get is Fill into a fresh value; nil means no match.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

func (v *View[T]) matchesArchetype(archetype *Archetype) bool {
	for i, typ := range v.types {
		if !v.optional[i] && !archetype.HasComponent(typ) {
			return false
		}
	}
	return true
}

// buildStorageIndices maps each view field to its archetype column, -1 when absent.
func (v *View[T]) buildStorageIndices(archetype *Archetype) []int {
	indices := make([]int, len(v.types))
	for i, typ := range v.types {
		indices[i] = archetype.column(typ)
	}
	return indices
}

func (v *View[T]) populateResult(resultPtr unsafe.Pointer, archetype *Archetype, slot int, indices []int) bool {
	for i, column := range indices {
		field := (*unsafe.Pointer)(unsafe.Add(resultPtr, v.offsets[i]))

		var component any
		if column >= 0 {
			component = archetype.columns[column].Get(slot)
		}
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*field = nil
			continue
		}
		*field = (*eface)(unsafe.Pointer(&component)).data
	}
	return true
}

// Iter walks matching archetypes in creation order. Unlike a Query it reads storage live,
// so it suits lookups outside the scheduler.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.order {
			if len(archetype.columns) == 0 || !v.matchesArchetype(archetype) {
				continue
			}
			indices := v.buildStorageIndices(archetype)

			var result T
			for slot := range archetype.columns[0].Iter() {
				if !v.populateResult(unsafe.Pointer(&result), archetype, slot, indices) {
					continue
				}
				if !yield(NewEntityId(archetype.id, uint32(slot)), result) {
					return
				}
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}
