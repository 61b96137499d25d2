package component

// Transform places an entity in the world. Y is the feet height, Yaw is in
// degrees and ScaleY is the vertical body scale (1 when standing).
type Transform struct {
	X      float64
	Y      float64
	Z      float64
	Yaw    float64
	ScaleY float64
}

var TransformComponent = NewComponent[Transform]()
