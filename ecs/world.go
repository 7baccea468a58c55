package ecs

import (
	"github.com/milk9111/jointlab/ecs/component"
)

// kind is satisfied by every component.ComponentKind[T].
type kind interface {
	ID() component.ComponentID
	Valid() bool
}

// World owns entities and their components.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*SparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*SparseSet)}
}

// CreateEntity allocates a new entity.
func (w *World) CreateEntity() Entity {
	return w.entities.create()
}

// DestroyEntity removes an entity and all of its components.
func (w *World) DestroyEntity(e Entity) bool {
	if w == nil || !w.entities.destroy(e) {
		return false
	}
	for _, s := range w.stores {
		s.Remove(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns all live entities.
func (w *World) Entities() []Entity {
	if w == nil {
		return nil
	}
	return w.entities.list()
}

// AddComponent sets the component of kind k on e, replacing any previous value.
func (w *World) AddComponent(e Entity, k kind, value any) error {
	if !w.IsAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !k.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*SparseSet)
	}
	s, ok := w.stores[k.ID()]
	if !ok {
		s = &SparseSet{}
		w.stores[k.ID()] = s
	}
	s.Set(e, value)
	return nil
}

// GetComponent returns the component of kind k on e.
func (w *World) GetComponent(e Entity, k kind) (any, bool) {
	if !w.IsAlive(e) {
		return nil, false
	}
	s := w.stores[k.ID()]
	if !s.Has(e) {
		return nil, false
	}
	return s.Get(e), true
}

// RemoveComponent deletes the component of kind k from e.
func (w *World) RemoveComponent(e Entity, k kind) bool {
	if w == nil {
		return false
	}
	return w.stores[k.ID()].Remove(e)
}

// HasComponent reports whether e carries a component of kind k.
func (w *World) HasComponent(e Entity, k kind) bool {
	return w.IsAlive(e) && w.stores[k.ID()].Has(e)
}

// Query returns the live entities that carry every listed kind.
func (w *World) Query(kinds ...kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.stores[k.ID()]
		if s.Len() == 0 {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate the smallest set
	smallest := sets[0]
	for _, s := range sets[1:] {
		if s.Len() < smallest.Len() {
			smallest = s
		}
	}
	out := make([]Entity, 0, smallest.Len())
outer:
	for _, e := range smallest.Entities() {
		if !w.entities.isAlive(e) {
			continue
		}
		for _, s := range sets {
			if !s.Has(e) {
				continue outer
			}
		}
		out = append(out, e)
	}
	return out
}

// First returns the first live entity carrying kind k.
func (w *World) First(k kind) (Entity, bool) {
	if ents := w.Query(k); len(ents) > 0 {
		return ents[0], true
	}
	return 0, false
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}
