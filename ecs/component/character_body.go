package component

import "github.com/milk9111/cemetery/common"

// CharacterBody is the capsule moved by the character mover. Height is the
// standing height; the effective height is scaled by Transform.ScaleY.
type CharacterBody struct {
	Radius   float64
	Height   float64
	Velocity common.Vec3
}

var CharacterBodyComponent = NewComponent[CharacterBody]()
