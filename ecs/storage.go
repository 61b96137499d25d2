package ecs

import "github.com/milk9111/cemetery/ecs/component"

// entityStore tracks entity generations and free ids.
type entityStore struct {
	gen   []generation
	alive []bool
	free  []entityID
	count int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gen = append(s.gen, 0)
		s.alive = append(s.alive, false)
		id = entityID(len(s.gen))
	}
	s.alive[id-1] = true
	s.count++
	return makeEntity(id, s.gen[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	idx := e.id() - 1
	s.alive[idx] = false
	s.gen[idx]++
	s.free = append(s.free, e.id())
	s.count--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gen) {
		return false
	}
	return s.alive[id-1] && s.gen[id-1] == e.generation()
}

func (s *entityStore) all() []Entity {
	out := make([]Entity, 0, s.count)
	for i, ok := range s.alive {
		if ok {
			out = append(out, makeEntity(entityID(i+1), s.gen[i]))
		}
	}
	return out
}

// store is the type-erased view of a component store used by the world.
type store interface {
	remove(e Entity) bool
}

// sparseStore keeps components densely packed and indexed by entity id.
type sparseStore[T any] struct {
	sparse   []int
	entities []Entity
	values   []*T
}

func newSparseStore[T any]() *sparseStore[T] {
	return &sparseStore[T]{}
}

func (s *sparseStore[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id == 0 || id > len(s.sparse) {
		return 0, false
	}
	idx := s.sparse[id-1]
	if idx < 0 || idx >= len(s.entities) || s.entities[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseStore[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseStore[T]) set(e Entity, v *T) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	for len(s.sparse) < id {
		s.sparse = append(s.sparse, -1)
	}
	s.entities = append(s.entities, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = len(s.entities) - 1
}

func (s *sparseStore[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.entities) - 1
	if idx != last {
		moved := s.entities[last]
		s.entities[idx] = moved
		s.values[idx] = s.values[last]
		s.sparse[int(moved.id())-1] = idx
	}
	s.entities = s.entities[:last]
	s.values[last] = nil
	s.values = s.values[:last]
	s.sparse[int(e.id())-1] = -1
	return true
}

// snapshot copies the entity list so callbacks may add, remove or destroy
// while iterating.
func (s *sparseStore[T]) snapshot() []Entity {
	if s == nil || len(s.entities) == 0 {
		return nil
	}
	return append([]Entity(nil), s.entities...)
}

func (s *sparseStore[T]) len() int {
	if s == nil {
		return 0
	}
	return len(s.entities)
}

func storeFor[T any](w *World, kind component.ComponentKind[T]) *sparseStore[T] {
	if w == nil || w.stores == nil {
		return nil
	}
	st, ok := w.stores[kind.ID()]
	if !ok {
		return nil
	}
	typed, ok := st.(*sparseStore[T])
	if !ok {
		return nil
	}
	return typed
}

func ensureStore[T any](w *World, kind component.ComponentKind[T]) *sparseStore[T] {
	if st := storeFor(w, kind); st != nil {
		return st
	}
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]store)
	}
	st := newSparseStore[T]()
	w.stores[kind.ID()] = st
	return st
}
