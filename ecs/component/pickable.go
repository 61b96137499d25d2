package component

import (
	"image/color"

	"github.com/milk9111/cemetery/item"
)

// Pickable pairs a world object with the item definition it grants. The
// definition is shared and outlives the entity.
type Pickable struct {
	Item *item.Definition
}

var PickableComponent = NewComponent[Pickable]()

// Billboard draws an entity as a camera-facing quad.
// Billboard is a camera-facing quad drawn at Lift above the transform.
type Billboard struct {
	Width  float64
	Height float64
	Lift   float64
	Color  color.Color

	BobAmplitude float64
	BobSpeed     float64
	BobPhase     float64
	BaseLift     float64
	Initialized  bool
}

var BillboardComponent = NewComponent[Billboard]()
