package system

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/milk9111/cemetery/common"
	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
)

const stickDeadzone = 0.2

// InputFrame is one frame of raw device state.
type InputFrame struct {
	Move            common.Vec2
	Look            common.Vec2
	Sprint          bool
	JumpPressed     bool
	CrouchPressed   bool
	InteractPressed bool
	Device          component.InputDevice
	Analog          bool
}

// InputSystem copies device state into every Input component.
type InputSystem struct {
	// MouseSensitivity scales pointer deltas (degrees per pixel).
	MouseSensitivity float64
	// GamepadLookSpeed scales the right stick (degrees per second).
	GamepadLookSpeed float64

	read func(s *InputSystem) InputFrame

	cursorX, cursorY int
	cursorKnown      bool
}

func NewInputSystem(mouseSensitivity, gamepadLookSpeed float64) *InputSystem {
	return &InputSystem{
		MouseSensitivity: mouseSensitivity,
		GamepadLookSpeed: gamepadLookSpeed,
		read:             readDevices,
	}
}

func (s *InputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	read := s.read
	if read == nil {
		read = readDevices
	}
	frame := read(s)

	ecs.ForEach(w, component.InputComponent.Kind(), func(e ecs.Entity, input *component.Input) {
		applyInputFrame(input, frame)
	})
}

// applyInputFrame writes frame into input. Look is zeroed while the cursor
// is not driving the camera; presses latch until consumed.
func applyInputFrame(input *component.Input, frame InputFrame) {
	if input == nil {
		return
	}
	input.Move = frame.Move
	input.Sprint = frame.Sprint
	input.AnalogMovement = frame.Analog
	input.Device = frame.Device
	if input.CursorInputForLook {
		input.Look = frame.Look
	} else {
		input.Look = common.Vec2{}
	}
	if frame.JumpPressed {
		input.Jump = true
	}
	if frame.CrouchPressed {
		input.Crouch = true
	}
	if frame.InteractPressed {
		input.Interact = true
	}
}

func readDevices(s *InputSystem) InputFrame {
	var f InputFrame

	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		f.Move.X -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		f.Move.X += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		f.Move.Y += 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		f.Move.Y -= 1
	}
	f.Sprint = ebiten.IsKeyPressed(ebiten.KeyShiftLeft)
	f.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	f.CrouchPressed = inpututil.IsKeyJustPressed(ebiten.KeyC) || inpututil.IsKeyJustPressed(ebiten.KeyControlLeft)
	f.InteractPressed = inpututil.IsKeyJustPressed(ebiten.KeyE)

	cx, cy := ebiten.CursorPosition()
	if s.cursorKnown {
		f.Look = common.Vec2{
			X: float64(cx-s.cursorX) * s.MouseSensitivity,
			Y: float64(cy-s.cursorY) * s.MouseSensitivity,
		}
	}
	s.cursorX, s.cursorY, s.cursorKnown = cx, cy, true
	f.Device = component.InputDeviceKeyboardMouse

	gamepads := ebiten.GamepadIDs()
	if len(gamepads) == 0 {
		return f
	}
	id := gamepads[0]

	lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	if math.Hypot(lx, ly) > stickDeadzone {
		f.Move = common.Vec2{X: lx, Y: -ly}
		f.Analog = true
		f.Device = component.InputDeviceGamepad
	}

	rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
	ry := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickVertical)
	if math.Hypot(rx, ry) > stickDeadzone {
		f.Look = common.Vec2{X: rx * s.GamepadLookSpeed, Y: ry * s.GamepadLookSpeed}
		f.Device = component.InputDeviceGamepad
	}

	f.Sprint = f.Sprint || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonLeftStick)
	f.JumpPressed = f.JumpPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightBottom)
	f.CrouchPressed = f.CrouchPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightRight)
	f.InteractPressed = f.InteractPressed || inpututil.IsStandardGamepadButtonJustPressed(id, ebiten.StandardGamepadButtonRightLeft)

	return f
}
