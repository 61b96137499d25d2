package component

// PlayerController holds first-person movement tuning.
type PlayerController struct {
	MoveSpeed       float64
	SprintSpeed     float64
	CrouchSpeed     float64
	RotationSpeed   float64
	SpeedChangeRate float64

	JumpHeight       float64
	Gravity          float64
	JumpTimeout      float64
	FallTimeout      float64
	TerminalVelocity float64

	CrouchingHeightRatio    float64
	CrouchingTransitionTime float64

	GroundedOffset float64
	GroundedRadius float64
	GroundLayers   uint32

	TopClamp    float64
	BottomClamp float64

	MovementEnabled bool
}

// CrouchingTransitionSpeed is the crouch interpolation progress per second.
func (p *PlayerController) CrouchingTransitionSpeed() float64 {
	if p.CrouchingTransitionTime <= 0 {
		return 1
	}
	return 1 / p.CrouchingTransitionTime
}

var PlayerControllerComponent = NewComponent[PlayerController]()

// MovementState is the transient per-frame state of the first-person controller.
type MovementState struct {
	Grounded         bool
	Speed            float64
	VerticalVelocity float64
	Pitch            float64
	RotationVelocity float64

	JumpTimeoutDelta float64
	FallTimeoutDelta float64

	Crouching           bool
	TargetHeightRatio   float64
	StartingHeightRatio float64
	CrouchDelta         float64
}

// NewMovementState returns the spawn state for the given tuning.
func NewMovementState(p *PlayerController) *MovementState {
	st := &MovementState{TargetHeightRatio: 1, StartingHeightRatio: 1}
	if p != nil {
		st.JumpTimeoutDelta = p.JumpTimeout
		st.FallTimeoutDelta = p.FallTimeout
	}
	return st
}

var MovementStateComponent = NewComponent[MovementState]()
