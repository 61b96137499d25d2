package system

import (
	"github.com/milk9111/cemetery/common"
	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
)

// PlayerControls switches player look and movement on and off, for menus
// that need the pointer.
type PlayerControls struct {
	w *ecs.World
}

func NewPlayerControls(w *ecs.World) *PlayerControls {
	return &PlayerControls{w: w}
}

func (c *PlayerControls) SetControlsEnabled(enabled bool) {
	if c == nil || c.w == nil {
		return
	}
	ecs.ForEach2(c.w, component.PlayerControllerComponent.Kind(), component.InputComponent.Kind(), func(e ecs.Entity, ctrl *component.PlayerController, input *component.Input) {
		ctrl.MovementEnabled = enabled
		input.CursorInputForLook = enabled
		if !enabled {
			input.Look = common.Vec2{}
		}
	})
}
