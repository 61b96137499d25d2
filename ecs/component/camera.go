package component

// CameraRig is the first-person camera target mounted on the player body.
type CameraRig struct {
	EyeHeight float64
	Pitch     float64
	FOV       float64
}

var CameraRigComponent = NewComponent[CameraRig]()
