package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/milk9111/cemetery/common"
	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
)

func TestApplyInputFrameLatchesPresses(t *testing.T) {
	input := &component.Input{CursorInputForLook: true}

	applyInputFrame(input, InputFrame{JumpPressed: true, InteractPressed: true, Move: common.Vec2{Y: 1}})
	applyInputFrame(input, InputFrame{})

	assert.True(t, input.Jump)
	assert.True(t, input.Interact)
	assert.False(t, input.Crouch)
	assert.Equal(t, common.Vec2{}, input.Move)
}

func TestApplyInputFrameLookFollowsCursorFlag(t *testing.T) {
	input := &component.Input{CursorInputForLook: true}
	look := common.Vec2{X: 3, Y: -2}

	applyInputFrame(input, InputFrame{Look: look, Device: component.InputDeviceGamepad, Analog: true})
	assert.Equal(t, look, input.Look)
	assert.Equal(t, component.InputDeviceGamepad, input.Device)
	assert.True(t, input.AnalogMovement)

	input.CursorInputForLook = false
	applyInputFrame(input, InputFrame{Look: look})
	assert.Equal(t, common.Vec2{}, input.Look)
}

func TestInputSystemWritesEveryInput(t *testing.T) {
	w := ecs.NewWorld()
	a, b := ecs.CreateEntity(w), ecs.CreateEntity(w)
	ia, ib := &component.Input{}, &component.Input{}
	_ = ecs.Add(w, a, component.InputComponent.Kind(), ia)
	_ = ecs.Add(w, b, component.InputComponent.Kind(), ib)

	sys := NewInputSystem(0.1, 120)
	sys.read = func(*InputSystem) InputFrame {
		return InputFrame{Sprint: true, CrouchPressed: true}
	}
	step(w, sys, frame)

	assert.True(t, ia.Sprint && ia.Crouch)
	assert.True(t, ib.Sprint && ib.Crouch)
}

func TestPlayerControlsToggle(t *testing.T) {
	f := spawnTestPlayer(t)
	controls := NewPlayerControls(f.w)

	f.input.Look = common.Vec2{X: 4}
	controls.SetControlsEnabled(false)
	assert.False(t, f.ctrl.MovementEnabled)
	assert.False(t, f.input.CursorInputForLook)
	assert.Equal(t, common.Vec2{}, f.input.Look)

	controls.SetControlsEnabled(true)
	assert.True(t, f.ctrl.MovementEnabled)
	assert.True(t, f.input.CursorInputForLook)

	var nilControls *PlayerControls
	assert.NotPanics(t, func() { nilControls.SetControlsEnabled(false) })
}
