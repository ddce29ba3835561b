package ecs

import (
	"reflect"
	"slices"
)

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

// Archetype stores every entity that has exactly one particular set of component types.
// Each component type is a column; all columns of an archetype allocate and free slots in
// lockstep, so a slot index addresses one entity across every column.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []componentStorage
}

// NewArchetype creates an archetype for the given name-sorted component types.
// It panics if a type was never registered.
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]componentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("component type " + typ.String() + " not registered")
		}
		a.columns[idx] = factory()
	}

	return a
}

// Spawn appends one entity and returns its slot index.
func (a *Archetype) Spawn(components []any) uint32 {
	slot := -1
	for _, comp := range components {
		column := a.column(componentType(comp))
		if column < 0 {
			continue
		}
		slot = a.columns[column].Append(comp)
	}
	return uint32(slot)
}

// GetComponent returns a pointer to the component of the given type for the entity in slot,
// or nil if the archetype lacks the type or the slot is empty.
func (a *Archetype) GetComponent(slot uint32, compType reflect.Type) any {
	column := a.column(compType)
	if column < 0 {
		return nil
	}
	return a.columns[column].Get(int(slot))
}

// Delete frees the slot in every column.
func (a *Archetype) Delete(slot uint32) {
	for _, column := range a.columns {
		column.Delete(int(slot))
	}
}

// HasComponent reports whether the archetype includes the component type.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's hash identifier.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types of this archetype.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// Iter yields the id of every live entity in slot order.
func (a *Archetype) Iter() func(yield func(EntityId) bool) {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for slot := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(slot))) {
				return
			}
		}
	}
}

func (a *Archetype) column(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}
