package ecs

import "github.com/milk9111/wordtitan/ecs/component"

// componentStore is the type-erased view of a typed component store used for
// entity teardown and multi-component queries.
type componentStore interface {
	has(e Entity) bool
	remove(e Entity) bool
	size() int
	entities() []Entity
}

type typedStore[T any] struct {
	set SparseSet[*T]
}

func (s *typedStore[T]) has(e Entity) bool       { return s.set.Has(e) }
func (s *typedStore[T]) remove(e Entity) bool    { return s.set.Remove(e) }
func (s *typedStore[T]) size() int               { return s.set.Len() }
func (s *typedStore[T]) entities() []Entity      { return s.set.Entities() }
func (s *typedStore[T]) get(e Entity) (*T, bool) { return s.set.Get(e) }

var (
	ErrEntityNotAlive       = component.ErrEntityNotAlive
	ErrNilComponent         = component.ErrNilComponent
	ErrInvalidComponentKind = component.ErrInvalidComponentKind
)

// World owns entities, their components and the per-frame event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]componentStore
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]componentStore)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and retires its handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is still valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func storeFor[T any](w *World, kind component.ComponentKind[T], create bool) *typedStore[T] {
	if w == nil || !kind.Valid() {
		return nil
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]componentStore)
	}
	if s, ok := w.stores[kind.ID()]; ok {
		typed, _ := s.(*typedStore[T])
		return typed
	}
	if !create {
		return nil
	}
	s := &typedStore[T]{}
	w.stores[kind.ID()] = s
	return s
}
