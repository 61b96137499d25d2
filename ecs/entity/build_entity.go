package entity

import (
	"fmt"
	"sort"

	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
	"github.com/milk9111/cemetery/physics"
	"github.com/milk9111/cemetery/prefabs"
)

type buildContext struct {
	PrefabPath string
}

type componentBuildFn func(w *ecs.World, e ecs.Entity, raw any, ctx *buildContext) error

var componentRegistry = map[string]componentBuildFn{
	"player_tag":        addPlayerTag,
	"tags":              addTags,
	"transform":         addTransform,
	"input":             addInput,
	"player_controller": addPlayerController,
	"character_body":    addCharacterBody,
	"camera_rig":        addCameraRig,
	"trigger_sensor":    addTriggerSensor,
	"trigger":           addTrigger,
	"billboard":         addBillboard,
}

var componentBuildOrder = []string{
	"player_tag",
	"tags",
	"transform",
	"input",
	"player_controller",
	"character_body",
	"camera_rig",
	"trigger_sensor",
	"trigger",
	"billboard",
}

// BuildEntity creates an entity from a prefab's component blocks. The
// entity is destroyed again if any block fails to build.
func BuildEntity(w *ecs.World, prefabPath string) (ecs.Entity, error) {
	if w == nil {
		return 0, fmt.Errorf("build entity: world is nil")
	}

	spec, err := prefabs.LoadEntityBuildSpec(prefabPath)
	if err != nil {
		return 0, fmt.Errorf("build entity: load %q: %w", prefabPath, err)
	}

	e := ecs.CreateEntity(w)
	ctx := &buildContext{PrefabPath: prefabPath}

	remaining := make(map[string]any, len(spec.Components))
	for k, v := range spec.Components {
		remaining[k] = v
	}

	for _, name := range componentBuildOrder {
		raw, ok := remaining[name]
		if !ok {
			continue
		}
		if err := componentRegistry[name](w, e, raw, ctx); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("build entity: %q: add %q: %w", prefabPath, name, err)
		}
		delete(remaining, name)
	}

	if len(remaining) > 0 {
		names := make([]string, 0, len(remaining))
		for name := range remaining {
			names = append(names, name)
		}
		sort.Strings(names)
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("build entity: %q: no builder for component %q", prefabPath, names[0])
	}

	return e, nil
}

// SetEntityTransform places e, keeping its vertical scale.
func SetEntityTransform(w *ecs.World, e ecs.Entity, x, y, z, yaw float64) error {
	t, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok || t == nil {
		t = &component.Transform{ScaleY: 1}
	}
	t.X = x
	t.Y = y
	t.Z = z
	t.Yaw = yaw
	return ecs.Add(w, e, component.TransformComponent.Kind(), t)
}

func addPlayerTag(w *ecs.World, e ecs.Entity, _ any, _ *buildContext) error {
	return ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
}

func addTags(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TagsComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode tags spec: %w", err)
	}
	return ecs.Add(w, e, component.TagsComponent.Kind(), &component.Tags{Names: append([]string(nil), spec.Names...)})
}

func addTransform(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TransformComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode transform spec: %w", err)
	}
	if spec.ScaleY == 0 {
		spec.ScaleY = 1
	}
	return ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		X:      spec.X,
		Y:      spec.Y,
		Z:      spec.Z,
		Yaw:    spec.Yaw,
		ScaleY: spec.ScaleY,
	})
}

func addInput(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.InputComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode input spec: %w", err)
	}
	return ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{CursorInputForLook: spec.CursorInputForLook})
}

func addPlayerController(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.PlayerControllerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode player controller spec: %w", err)
	}
	ctrl, err := PlayerControllerFromSpec(spec)
	if err != nil {
		return err
	}
	if err := ecs.Add(w, e, component.PlayerControllerComponent.Kind(), ctrl); err != nil {
		return err
	}
	return ecs.Add(w, e, component.MovementStateComponent.Kind(), component.NewMovementState(ctrl))
}

// PlayerControllerFromSpec converts prefab tuning into the runtime component.
func PlayerControllerFromSpec(spec prefabs.PlayerControllerComponentSpec) (*component.PlayerController, error) {
	layers, err := physics.ParseLayers(spec.GroundLayers)
	if err != nil {
		return nil, fmt.Errorf("ground layers: %w", err)
	}
	return &component.PlayerController{
		MoveSpeed:               spec.MoveSpeed,
		SprintSpeed:             spec.SprintSpeed,
		CrouchSpeed:             spec.CrouchSpeed,
		RotationSpeed:           spec.RotationSpeed,
		SpeedChangeRate:         spec.SpeedChangeRate,
		JumpHeight:              spec.JumpHeight,
		Gravity:                 spec.Gravity,
		JumpTimeout:             spec.JumpTimeout,
		FallTimeout:             spec.FallTimeout,
		TerminalVelocity:        spec.TerminalVelocity,
		CrouchingHeightRatio:    spec.CrouchingHeightRatio,
		CrouchingTransitionTime: spec.CrouchingTransitionTime,
		GroundedOffset:          spec.GroundedOffset,
		GroundedRadius:          spec.GroundedRadius,
		GroundLayers:            layers,
		TopClamp:                spec.TopClamp,
		BottomClamp:             spec.BottomClamp,
		MovementEnabled:         !spec.MovementDisabled,
	}, nil
}

func addCharacterBody(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CharacterBodyComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode character body spec: %w", err)
	}
	return ecs.Add(w, e, component.CharacterBodyComponent.Kind(), &component.CharacterBody{Radius: spec.Radius, Height: spec.Height})
}

func addCameraRig(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.CameraRigComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode camera rig spec: %w", err)
	}
	return ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{EyeHeight: spec.EyeHeight, FOV: spec.FOV})
}

func addTriggerSensor(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TriggerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode trigger sensor spec: %w", err)
	}
	return ecs.Add(w, e, component.TriggerSensorComponent.Kind(), &component.TriggerSensor{Radius: spec.Radius})
}

func addTrigger(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.TriggerComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode trigger spec: %w", err)
	}
	return ecs.Add(w, e, component.TriggerComponent.Kind(), &component.Trigger{Radius: spec.Radius})
}

func addBillboard(w *ecs.World, e ecs.Entity, raw any, _ *buildContext) error {
	spec, err := prefabs.DecodeComponentSpec[prefabs.BillboardComponentSpec](raw)
	if err != nil {
		return fmt.Errorf("decode billboard spec: %w", err)
	}
	return ecs.Add(w, e, component.BillboardComponent.Kind(), &component.Billboard{
		Width:        spec.Width,
		Height:       spec.Height,
		Lift:         spec.Lift,
		Color:        spec.Color.Color,
		BobAmplitude: spec.BobAmplitude,
		BobSpeed:     spec.BobSpeed,
	})
}
