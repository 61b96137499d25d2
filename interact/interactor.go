// Package interact implements the player's item interactor: it tracks the
// pickable object currently in reach and collects it on request.
package interact

import (
	"go.uber.org/zap"

	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
	"github.com/milk9111/cemetery/item"
)

type State int

const (
	StateIdle State = iota
	StateTracking
)

func (s State) String() string {
	if s == StateTracking {
		return "tracking"
	}
	return "idle"
}

// Collector receives picked up items.
type Collector interface {
	Add(def *item.Definition)
}

// Prompt shows or hides the pickup prompt.
type Prompt interface {
	ShowPickUpItemPrompt(show bool)
}

// Interactor tracks at most one reachable pickable. When two pickable
// triggers overlap, the most recent enter wins.
type Interactor struct {
	pickableTag string
	collector   Collector
	prompt      Prompt
	log         *zap.Logger

	state   State
	tracked ecs.Entity
}

func New(pickableTag string, collector Collector, prompt Prompt, log *zap.Logger) *Interactor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Interactor{
		pickableTag: pickableTag,
		collector:   collector,
		prompt:      prompt,
		log:         log,
	}
}

func (i *Interactor) State() State {
	return i.state
}

// Tracked returns the reachable entity while tracking.
func (i *Interactor) Tracked() (ecs.Entity, bool) {
	if i.state != StateTracking {
		return 0, false
	}
	return i.tracked, true
}

func (i *Interactor) isPickable(w *ecs.World, e ecs.Entity) bool {
	tags, ok := ecs.Get(w, e, component.TagsComponent.Kind())
	return ok && tags.Has(i.pickableTag)
}

// OnTriggerEnter starts tracking other if it carries the pickable tag.
func (i *Interactor) OnTriggerEnter(w *ecs.World, other ecs.Entity) {
	if !i.isPickable(w, other) {
		return
	}
	i.log.Debug("able to pick up item", zap.Stringer("entity", other))
	i.tracked = other
	i.state = StateTracking
	i.showPrompt(true)
}

// OnTriggerExit returns to idle when a pickable, or the tracked entity, leaves reach.
func (i *Interactor) OnTriggerExit(w *ecs.World, other ecs.Entity) {
	isTracked := i.state == StateTracking && other == i.tracked
	if !isTracked && !i.isPickable(w, other) {
		return
	}
	i.log.Debug("unable to pick up item", zap.Stringer("entity", other))
	i.reset()
}

// Interact collects the tracked item. It is a no-op while idle.
func (i *Interactor) Interact(w *ecs.World) {
	if i.state != StateTracking {
		return
	}
	e := i.tracked

	pickable, ok := ecs.Get(w, e, component.PickableComponent.Kind())
	if !ok || pickable.Item == nil {
		i.log.Debug("tracked item is gone", zap.Stringer("entity", e))
		i.reset()
		return
	}

	if i.collector != nil {
		i.collector.Add(pickable.Item)
	}
	i.log.Info("picked up item", zap.String("item", pickable.Item.ID), zap.String("name", pickable.Item.Name))

	_ = ecs.Remove(w, e, component.PickableComponent.Kind())
	_ = ecs.Remove(w, e, component.TriggerComponent.Kind())
	_ = ecs.Remove(w, e, component.BillboardComponent.Kind())
	_ = ecs.Add(w, e, component.TTLComponent.Kind(), &component.TTL{Frames: 1})

	i.reset()
}

func (i *Interactor) reset() {
	i.tracked = 0
	i.state = StateIdle
	i.showPrompt(false)
}

func (i *Interactor) showPrompt(show bool) {
	if i.prompt != nil {
		i.prompt.ShowPickUpItemPrompt(show)
	}
}
