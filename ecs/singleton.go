package ecs

import "reflect"

// Singleton is a typed handle to one world-wide component instance. As a system field it
// is bound to the scheduler's storage on registration; the instance may be added later,
// Get simply returns nil until it exists.
type Singleton[T any] struct {
	storage *Storage
	entry   *singletonEntry
}

// NewSingleton binds a handle to storage, adding the instance first if it is missing.
// The optional initial value is only used in that case.
func NewSingleton[T any](storage *Storage, initial ...T) *Singleton[T] {
	s := &Singleton[T]{}
	s.Init(storage)
	if s.entry == nil {
		var value T
		if len(initial) > 0 {
			value = initial[0]
		}
		storage.AddSingleton(value)
		s.lookup()
	}
	return s
}

// Init binds the handle to storage. Called by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.entry = nil
	s.lookup()
}

func (s *Singleton[T]) lookup() {
	if s.storage != nil {
		s.entry = s.storage.getSingletonEntry(reflect.TypeFor[T]())
	}
}

// Get returns the instance, or nil if it has not been added.
func (s *Singleton[T]) Get() *T {
	if s.entry == nil {
		s.lookup()
		if s.entry == nil {
			return nil
		}
	}
	return (*T)(s.entry.dataPtr)
}

// Exists reports whether the instance has been added.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
