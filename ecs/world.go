package ecs

import "github.com/milk9111/cemetery/ecs/component"

// World owns entities, component stores and per-tick resources.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]store
	events   EventQueue

	deltaTime float64
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]store)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and invalidates the handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, st := range w.stores {
		st.remove(e)
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	return w.entities.all()
}

// IsAlive reports whether an entity handle is valid.
func (w *World) IsAlive(e Entity) bool {
	return IsAlive(w, e)
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetDeltaTime stores the elapsed seconds of the current tick.
func (w *World) SetDeltaTime(dt float64) {
	if w == nil {
		return
	}
	w.deltaTime = dt
}

// DeltaTime returns the elapsed seconds of the current tick.
func (w *World) DeltaTime() float64 {
	if w == nil {
		return 0
	}
	return w.deltaTime
}
