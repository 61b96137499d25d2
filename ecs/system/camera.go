package system

import (
	"math"

	"github.com/milk9111/cemetery/common"
	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
)

const lookThreshold = 0.01

// CameraLookSystem applies look input after movement: pitch goes to the
// camera rig, yaw rotates the body.
type CameraLookSystem struct{}

func NewCameraLookSystem() *CameraLookSystem {
	return &CameraLookSystem{}
}

func (c *CameraLookSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach4(w,
		component.InputComponent.Kind(),
		component.PlayerControllerComponent.Kind(),
		component.MovementStateComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, input *component.Input, ctrl *component.PlayerController, st *component.MovementState, t *component.Transform) {
			if input.Look.SqrMagnitude() >= lookThreshold {
				multiplier := 1.0
				if input.Device != component.InputDeviceKeyboardMouse {
					multiplier = dt
				}

				st.Pitch += input.Look.Y * ctrl.RotationSpeed * multiplier
				st.RotationVelocity = input.Look.X * ctrl.RotationSpeed * multiplier
				st.Pitch = common.ClampAngle(st.Pitch, ctrl.BottomClamp, ctrl.TopClamp)

				t.Yaw = wrapDegrees(t.Yaw + st.RotationVelocity)
			} else {
				st.RotationVelocity = 0
			}

			if rig, ok := ecs.Get(w, e, component.CameraRigComponent.Kind()); ok {
				rig.Pitch = st.Pitch
			}
		},
	)
}

// wrapDegrees maps an angle into [0, 360).
func wrapDegrees(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}
