package component

import "github.com/milk9111/cemetery/common"

type InputDevice int

const (
	InputDeviceKeyboardMouse InputDevice = iota
	InputDeviceGamepad
)

// Input stores the per-frame input snapshot for an entity. Jump, Crouch and
// Interact latch on press until the controller consumes them.
type Input struct {
	Move           common.Vec2
	Look           common.Vec2
	Sprint         bool
	Jump           bool
	Crouch         bool
	Interact       bool
	AnalogMovement bool
	Device         InputDevice

	// CursorInputForLook gates pointer/stick look; menus turn it off.
	CursorInputForLook bool
}

var InputComponent = NewComponent[Input]()
