package entity

import (
	"fmt"

	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
	"github.com/milk9111/cemetery/item"
	"github.com/milk9111/cemetery/prefabs"
)

const pickablePrefab = "pickable.yaml"

// NewPickable places a world instance of def at x,z with a trigger volume and
// a billboard tinted for its kind.
func NewPickable(w *ecs.World, def *item.Definition, x, z float64) (ecs.Entity, error) {
	if def == nil || def.Kind == nil {
		return 0, fmt.Errorf("pickable: item definition is nil")
	}

	e, err := BuildEntity(w, pickablePrefab)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, x, 0, z, 0); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("pickable: %s: %w", def.ID, err)
	}
	if err := ecs.Add(w, e, component.PickableComponent.Kind(), &component.Pickable{Item: def}); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("pickable: %s: %w", def.ID, err)
	}

	if bb, ok := ecs.Get(w, e, component.BillboardComponent.Kind()); ok {
		spec, err := billboardSpec()
		if err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("pickable: %s: %w", def.ID, err)
		}
		if c := spec.ColorFor(def.Kind.String()); c.Color != nil {
			bb.Color = c.Color
		}
	}

	return e, nil
}

func billboardSpec() (prefabs.BillboardComponentSpec, error) {
	spec, err := prefabs.LoadEntityBuildSpec(pickablePrefab)
	if err != nil {
		return prefabs.BillboardComponentSpec{}, err
	}
	return prefabs.DecodeComponentSpec[prefabs.BillboardComponentSpec](spec.Components["billboard"])
}
