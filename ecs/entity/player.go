package entity

import (
	"fmt"

	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
	"github.com/milk9111/cemetery/levels"
	"github.com/milk9111/cemetery/prefabs"
)

const playerPrefab = "player.yaml"

func NewPlayer(w *ecs.World) (ecs.Entity, error) {
	return BuildEntity(w, playerPrefab)
}

// NewPlayerAt builds the player and stands it on the floor at spawn.
func NewPlayerAt(w *ecs.World, spawn levels.Spawn) (ecs.Entity, error) {
	e, err := NewPlayer(w)
	if err != nil {
		return 0, err
	}
	if err := SetEntityTransform(w, e, spawn.X, 0, spawn.Z, spawn.Yaw); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("player: place at spawn: %w", err)
	}
	return e, nil
}

// ApplyPlayerController swaps in new tuning for e while keeping its movement
// state. The enabled flag stays as the running game set it.
func ApplyPlayerController(w *ecs.World, e ecs.Entity, spec prefabs.PlayerControllerComponentSpec) error {
	current, ok := ecs.Get(w, e, component.PlayerControllerComponent.Kind())
	if !ok {
		return fmt.Errorf("player: entity %d has no controller", e)
	}
	next, err := PlayerControllerFromSpec(spec)
	if err != nil {
		return fmt.Errorf("player: %w", err)
	}
	next.MovementEnabled = current.MovementEnabled
	*current = *next
	return nil
}
