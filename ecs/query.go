package ecs

import "github.com/milk9111/cemetery/ecs/component"

// ForEach visits every live entity holding a component of kind.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	sa := storeFor(w, ka)
	for _, e := range sa.snapshot() {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		fn(e, a)
	}
}

// ForEach2 visits entities holding both components, iterating the smaller store.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	sa, sb := storeFor(w, ka), storeFor(w, kb)
	if sa == nil || sb == nil {
		return
	}
	ents := sa.snapshot()
	if sb.len() < sa.len() {
		ents = sb.snapshot()
	}
	for _, e := range ents {
		a, ok := Get(w, e, ka)
		if !ok {
			continue
		}
		b, ok := Get(w, e, kb)
		if !ok {
			continue
		}
		fn(e, a, b)
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	ForEach2(w, ka, kb, func(e Entity, a *A, b *B) {
		c, ok := Get(w, e, kc)
		if !ok {
			return
		}
		fn(e, a, b, c)
	})
}

func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	ForEach3(w, ka, kb, kc, func(e Entity, a *A, b *B, c *C) {
		d, ok := Get(w, e, kd)
		if !ok {
			return
		}
		fn(e, a, b, c, d)
	})
}

// First returns the first live entity holding kind.
func First[A any](w *World, ka component.ComponentKind[A]) (Entity, bool) {
	sa := storeFor(w, ka)
	if sa == nil {
		return 0, false
	}
	for _, e := range sa.entities {
		if IsAlive(w, e) {
			return e, true
		}
	}
	return 0, false
}

// Count returns how many entities hold kind.
func Count[A any](w *World, ka component.ComponentKind[A]) int {
	return storeFor(w, ka).len()
}
