package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type EntityBuildSpec struct {
	Name       string         `yaml:"name" validate:"required"`
	Components map[string]any `yaml:"components" validate:"required,min=1"`
}

func LoadEntityBuildSpec(filename string) (EntityBuildSpec, error) {
	return LoadSpec[EntityBuildSpec](filename)
}

// DecodeComponentSpec re-decodes one raw component block into T and
// validates it.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var zero T
	if raw == nil {
		return zero, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return zero, err
	}
	var out T
	if err := yaml.Unmarshal(b, &out); err != nil {
		return zero, err
	}
	if err := Validate(out); err != nil {
		return zero, err
	}
	return out, nil
}

type TransformComponentSpec struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Z      float64 `yaml:"z"`
	Yaw    float64 `yaml:"yaw"`
	ScaleY float64 `yaml:"scale_y" validate:"gte=0,lte=1"`
}

type TagsComponentSpec struct {
	Names []string `yaml:"names" validate:"required,min=1,dive,required"`
}

type InputComponentSpec struct {
	CursorInputForLook bool `yaml:"cursor_input_for_look"`
}

type PlayerControllerComponentSpec struct {
	MoveSpeed       float64 `yaml:"move_speed" validate:"gt=0"`
	SprintSpeed     float64 `yaml:"sprint_speed" validate:"gtefield=MoveSpeed"`
	CrouchSpeed     float64 `yaml:"crouch_speed" validate:"gt=0"`
	RotationSpeed   float64 `yaml:"rotation_speed" validate:"gt=0"`
	SpeedChangeRate float64 `yaml:"speed_change_rate" validate:"gt=0"`

	JumpHeight       float64 `yaml:"jump_height" validate:"gte=0"`
	Gravity          float64 `yaml:"gravity" validate:"lt=0"`
	JumpTimeout      float64 `yaml:"jump_timeout" validate:"gte=0"`
	FallTimeout      float64 `yaml:"fall_timeout" validate:"gte=0"`
	TerminalVelocity float64 `yaml:"terminal_velocity" validate:"gt=0"`

	CrouchingHeightRatio    float64 `yaml:"crouching_height_ratio" validate:"gte=0.1,lte=1"`
	CrouchingTransitionTime float64 `yaml:"crouching_transition_time" validate:"gt=0"`

	GroundedOffset float64  `yaml:"grounded_offset"`
	GroundedRadius float64  `yaml:"grounded_radius" validate:"gt=0"`
	GroundLayers   []string `yaml:"ground_layers" validate:"required,min=1"`

	TopClamp    float64 `yaml:"top_clamp" validate:"gte=-90,lte=90"`
	BottomClamp float64 `yaml:"bottom_clamp" validate:"gte=-90,lte=90,ltefield=TopClamp"`

	MovementDisabled bool `yaml:"movement_disabled"`
}

type CharacterBodyComponentSpec struct {
	Radius float64 `yaml:"radius" validate:"gt=0"`
	Height float64 `yaml:"height" validate:"gt=0,gtfield=Radius"`
}

type CameraRigComponentSpec struct {
	EyeHeight float64 `yaml:"eye_height" validate:"gt=0"`
	FOV       float64 `yaml:"fov" validate:"gt=10,lt=170"`
}

type TriggerComponentSpec struct {
	Radius float64 `yaml:"radius" validate:"gt=0"`
}

type BillboardComponentSpec struct {
	Width        float64              `yaml:"width" validate:"gt=0"`
	Height       float64              `yaml:"height" validate:"gt=0"`
	Lift         float64              `yaml:"lift" validate:"gte=0"`
	BobAmplitude float64              `yaml:"bob_amplitude" validate:"gte=0,ltefield=Lift"`
	BobSpeed     float64              `yaml:"bob_speed" validate:"gte=0"`
	Color        YAMLColor            `yaml:"color"`
	KindColors   map[string]YAMLColor `yaml:"kind_colors"`
}

// ColorFor returns the color configured for an item kind, falling back to
// the default color.
func (b BillboardComponentSpec) ColorFor(kind string) YAMLColor {
	if c, ok := b.KindColors[kind]; ok && c.Color != nil {
		return c
	}
	return b.Color
}

// PlayerControllerSpec decodes the player_controller block of a prefab.
func PlayerControllerSpec(filename string) (PlayerControllerComponentSpec, error) {
	spec, err := LoadEntityBuildSpec(filename)
	if err != nil {
		return PlayerControllerComponentSpec{}, err
	}
	raw, ok := spec.Components["player_controller"]
	if !ok {
		return PlayerControllerComponentSpec{}, fmt.Errorf("prefabs: %s: no player_controller component", filename)
	}
	out, err := DecodeComponentSpec[PlayerControllerComponentSpec](raw)
	if err != nil {
		return PlayerControllerComponentSpec{}, fmt.Errorf("prefabs: %s: player_controller: %w", filename, err)
	}
	return out, nil
}
