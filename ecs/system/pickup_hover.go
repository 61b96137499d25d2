package system

import (
	"math"

	"github.com/milk9111/cemetery/ecs"
	"github.com/milk9111/cemetery/ecs/component"
)

// PickupHoverSystem bobs billboards around their authored lift. BobSpeed is
// in radians per second.
type PickupHoverSystem struct{}

func NewPickupHoverSystem() *PickupHoverSystem { return &PickupHoverSystem{} }

func (s *PickupHoverSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaTime()

	ecs.ForEach(w, component.BillboardComponent.Kind(), func(e ecs.Entity, bb *component.Billboard) {
		if !bb.Initialized {
			bb.BaseLift = bb.Lift
			bb.Initialized = true
		}
		if bb.BobAmplitude == 0 || bb.BobSpeed == 0 {
			return
		}

		bb.BobPhase = math.Mod(bb.BobPhase+bb.BobSpeed*dt, 2*math.Pi)
		bb.Lift = bb.BaseLift + math.Sin(bb.BobPhase)*bb.BobAmplitude
	})
}
