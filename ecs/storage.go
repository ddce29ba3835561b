package ecs

import (
	"reflect"
	"sort"
	"unsafe"

	"github.com/kamstrup/intmap"
)

// Storage owns every archetype and singleton of one world.
type Storage struct {
	archetypes *intmap.Map[uint32, *Archetype]
	order      []*Archetype
	registry   *ComponentRegistry

	singletons     *intmap.Map[int, *singletonEntry]
	singletonOrder []*singletonEntry
}

type singletonEntry struct {
	typ     reflect.Type
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: intmap.New[uint32, *Archetype](32),
		registry:   registry,
		singletons: intmap.New[int, *singletonEntry](16),
	}
}

// Registry returns the component registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Archetypes returns all archetypes in creation order.
func (s *Storage) Archetypes() []*Archetype {
	return s.order
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := extractComponentTypes(components)
	return s.lookup(hashTypesToUint32(types))
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := append([]reflect.Type(nil), types...)
	sort.Sort(byTypeName(sorted))
	return s.lookup(hashTypesToUint32(sorted))
}

func (s *Storage) lookup(id uint32) *Archetype {
	archetype, _ := s.archetypes.Get(id)
	return archetype
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	types := extractComponentTypes(components)
	archetypeId := hashTypesToUint32(types)

	archetype, exists := s.archetypes.Get(archetypeId)
	if !exists {
		archetype = NewArchetype(archetypeId, types, s.registry)
		s.archetypes.Put(archetypeId, archetype)
		s.order = append(s.order, archetype)
	}

	entityIndex := archetype.Spawn(components)
	return NewEntityId(archetypeId, entityIndex)
}

// Delete removes all data related to the entity ID. Deleting an unknown or already
// deleted entity is a no-op.
func (s *Storage) Delete(id EntityId) {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return
	}
	archetype.Delete(id.Index())
}

// Alive reports whether the entity id currently refers to a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok || len(archetype.columns) == 0 {
		return false
	}
	return archetype.columns[0].Has(int(id.Index()))
}

// GetComponent returns the component for the given entity ID and component type
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes.Get(id.ArchetypeId())
	if !ok {
		return false
	}
	return archetype.HasComponent(compType)
}

// EntityCount returns the number of live entities across all archetypes.
func (s *Storage) EntityCount() int {
	total := 0
	for _, archetype := range s.order {
		total += archetype.Len()
	}
	return total
}

// AddSingleton stores value as the world-wide instance of its type, replacing any
// previous instance.
func (s *Storage) AddSingleton(value any) {
	v := reflect.ValueOf(value)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	typ := v.Type()

	if entry := s.getSingletonEntry(typ); entry != nil {
		entry.value.Set(v)
		return
	}

	holder := reflect.New(typ)
	holder.Elem().Set(v)
	entry := &singletonEntry{
		typ:     typ,
		value:   holder.Elem(),
		dataPtr: holder.UnsafePointer(),
	}
	s.singletons.Put(typeId(typ), entry)
	s.singletonOrder = append(s.singletonOrder, entry)
}

// ReadSingleton points *out at the stored singleton of type T. It returns false and leaves
// *out untouched when no such singleton exists.
func ReadSingleton[T any](s *Storage, out **T) bool {
	entry := s.getSingletonEntry(reflect.TypeFor[T]())
	if entry == nil {
		return false
	}
	*out = (*T)(entry.dataPtr)
	return true
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	entry, _ := s.singletons.Get(typeId(typ))
	return entry
}

// extractComponentTypes extracts and sorts component types from a slice of components
func extractComponentTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		types = append(types, componentType(comp))
	}
	sort.Sort(byTypeName(types))
	return types
}

// componentType returns the value type of a component passed by value or by pointer.
func componentType(comp any) reflect.Type {
	compType := reflect.TypeOf(comp)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}

	// Components can be structs or primitives, but not reference-like kinds.
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

func typeId(t reflect.Type) int {
	ptr := (*eface)(unsafe.Pointer(&t)).data
	return int(uintptr(ptr))
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		ptr := uintptr((*eface)(unsafe.Pointer(&t)).data)
		val := uint32(ptr)
		if unsafe.Sizeof(uintptr(0)) == 8 {
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

// ReadComponent returns a typed pointer to the entity's component, or nil if it has none.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
