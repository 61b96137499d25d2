package system

import (
	"math"

	"github.com/milk9111/cemetery/common"
	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
)

const (
	groundedVerticalVelocity = -2.0
	speedOffset              = 0.1
	ceilingCheckMargin       = 0.4
)

var up = common.Vec3{Y: 1}

// CharacterPhysics is the collision world the controller queries.
type CharacterPhysics interface {
	CheckSphere(center common.Vec3, radius float64, mask uint32) bool
	Raycast(origin, dir common.Vec3, maxDist float64, mask uint32) bool
	MoveCharacter(pos common.Vec3, radius, height float64, motion common.Vec3) common.Vec3
}

// Interactor collects whatever the player can currently reach.
type Interactor interface {
	Interact(w *ecs.World)
}

// PlayerControllerSystem drives first-person movement: grounded check,
// jump and gravity, crouch, interact and horizontal movement, in that order.
type PlayerControllerSystem struct {
	physics    CharacterPhysics
	interactor Interactor
}

func NewPlayerControllerSystem(physics CharacterPhysics, interactor Interactor) *PlayerControllerSystem {
	return &PlayerControllerSystem{physics: physics, interactor: interactor}
}

func (p *PlayerControllerSystem) Update(w *ecs.World) {
	if p == nil || w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach4(w,
		component.PlayerControllerComponent.Kind(),
		component.MovementStateComponent.Kind(),
		component.InputComponent.Kind(),
		component.TransformComponent.Kind(),
		func(e ecs.Entity, ctrl *component.PlayerController, st *component.MovementState, input *component.Input, t *component.Transform) {
			if !ecs.Has(w, e, component.PlayerTagComponent.Kind()) {
				return
			}
			body, ok := ecs.Get(w, e, component.CharacterBodyComponent.Kind())
			if !ok {
				return
			}

			p.groundedCheck(ctrl, st, t)

			if !ctrl.MovementEnabled {
				input.Jump = false
				input.Crouch = false
				input.Interact = false
				return
			}

			p.jumpAndGravity(ctrl, st, input, t, dt)
			p.crouch(ctrl, st, input, t, body, dt)

			if input.Interact {
				input.Interact = false
				if p.interactor != nil {
					p.interactor.Interact(w)
				}
			}

			p.move(ctrl, st, input, t, body, dt)
		},
	)
}

func (p *PlayerControllerSystem) groundedCheck(ctrl *component.PlayerController, st *component.MovementState, t *component.Transform) {
	if p.physics == nil {
		st.Grounded = false
		return
	}
	center := common.Vec3{X: t.X, Y: t.Y - ctrl.GroundedOffset, Z: t.Z}
	st.Grounded = p.physics.CheckSphere(center, ctrl.GroundedRadius, ctrl.GroundLayers)
}

// isStandingUp reports a full-height, non-crouching body.
func isStandingUp(st *component.MovementState, t *component.Transform) bool {
	return t.ScaleY == 1 && !st.Crouching
}

func (p *PlayerControllerSystem) jumpAndGravity(ctrl *component.PlayerController, st *component.MovementState, input *component.Input, t *component.Transform, dt float64) {
	jumped := false

	if st.Grounded {
		st.FallTimeoutDelta = ctrl.FallTimeout

		if st.VerticalVelocity < 0 {
			st.VerticalVelocity = groundedVerticalVelocity
		}

		if input.Jump && st.JumpTimeoutDelta <= 0 {
			if isStandingUp(st, t) {
				st.VerticalVelocity = math.Sqrt(ctrl.JumpHeight * -2 * ctrl.Gravity)
				jumped = true
			}
			input.Jump = false
		}

		if st.JumpTimeoutDelta >= 0 {
			st.JumpTimeoutDelta -= dt
		}
	} else {
		st.JumpTimeoutDelta = ctrl.JumpTimeout

		if st.FallTimeoutDelta >= 0 {
			st.FallTimeoutDelta -= dt
		}

		input.Jump = false
	}

	if !jumped && st.VerticalVelocity > -ctrl.TerminalVelocity {
		st.VerticalVelocity = math.Max(st.VerticalVelocity+ctrl.Gravity*dt, -ctrl.TerminalVelocity)
	}
}

func (p *PlayerControllerSystem) crouch(ctrl *component.PlayerController, st *component.MovementState, input *component.Input, t *component.Transform, body *component.CharacterBody, dt float64) {
	if input.Crouch && st.Grounded {
		st.Crouching = !st.Crouching
		if st.Crouching {
			st.TargetHeightRatio = ctrl.CrouchingHeightRatio
		} else {
			st.TargetHeightRatio = 1
		}
		st.StartingHeightRatio = t.ScaleY
		st.CrouchDelta = 0
	}
	input.Crouch = false

	if t.ScaleY == st.TargetHeightRatio {
		return
	}

	standingUp := st.TargetHeightRatio > t.ScaleY
	if standingUp && p.physics != nil {
		origin := common.Vec3{X: t.X, Y: t.Y, Z: t.Z}
		if p.physics.Raycast(origin, up, body.Height*t.ScaleY+ceilingCheckMargin, ctrl.GroundLayers) {
			return
		}
	}

	st.CrouchDelta += dt * ctrl.CrouchingTransitionSpeed()
	if st.CrouchDelta >= 1 {
		t.ScaleY = st.TargetHeightRatio
		return
	}
	t.ScaleY = common.Lerp(st.StartingHeightRatio, st.TargetHeightRatio, st.CrouchDelta)
}

// crouchAmount is 0 fully standing and 1 fully crouched.
func crouchAmount(ctrl *component.PlayerController, t *component.Transform) float64 {
	if ctrl.CrouchingHeightRatio >= 1 {
		return 0
	}
	return common.Clamp01((1 - t.ScaleY) / (1 - ctrl.CrouchingHeightRatio))
}

func (p *PlayerControllerSystem) move(ctrl *component.PlayerController, st *component.MovementState, input *component.Input, t *component.Transform, body *component.CharacterBody, dt float64) {
	targetSpeed := ctrl.MoveSpeed
	if input.Sprint {
		targetSpeed = ctrl.SprintSpeed
	}
	targetSpeed = common.Lerp(targetSpeed, ctrl.CrouchSpeed, crouchAmount(ctrl, t))
	if input.Move.IsZero() {
		targetSpeed = 0
	}

	currentHorizontalSpeed := body.Velocity.HorizontalLength()
	inputMagnitude := 1.0
	if input.AnalogMovement {
		inputMagnitude = input.Move.Magnitude()
	}

	if currentHorizontalSpeed < targetSpeed-speedOffset || currentHorizontalSpeed > targetSpeed+speedOffset {
		st.Speed = common.Round3(common.Lerp(currentHorizontalSpeed, targetSpeed*inputMagnitude, dt*ctrl.SpeedChangeRate))
	} else {
		st.Speed = targetSpeed
	}

	var dir common.Vec3
	if !input.Move.IsZero() {
		dir = common.Right(t.Yaw).Scale(input.Move.X).Add(common.Forward(t.Yaw).Scale(input.Move.Y)).Normalized()
	}

	motion := dir.Scale(st.Speed * dt)
	motion.Y = st.VerticalVelocity * dt

	pos := common.Vec3{X: t.X, Y: t.Y, Z: t.Z}
	next := pos.Add(motion)
	if p.physics != nil {
		next = p.physics.MoveCharacter(pos, body.Radius, body.Height*t.ScaleY, motion)
	}

	if dt > 0 {
		body.Velocity = next.Sub(pos).Scale(1 / dt)
	}
	t.X, t.Y, t.Z = next.X, next.Y, next.Z
}
