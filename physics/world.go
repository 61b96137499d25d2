// Package physics is the static collision world the first-person controller
// queries: axis-aligned boxes on layers, sphere overlap, raycasts and a
// collide-and-slide character mover.
package physics

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/milk9111/cemetery/common"
)

var ErrUnknownLayer = errors.New("physics: unknown layer")

const (
	LayerGround uint32 = 1 << iota
	LayerWalls

	LayerAll uint32 = math.MaxUint32
)

var layerNames = map[string]uint32{
	"ground": LayerGround,
	"walls":  LayerWalls,
}

// ParseLayers folds layer names into a mask.
func ParseLayers(names []string) (uint32, error) {
	var mask uint32
	for _, n := range names {
		bit, ok := layerNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrUnknownLayer, n)
		}
		mask |= bit
	}
	return mask, nil
}

// Box is a static axis-aligned solid.
type Box struct {
	Min   common.Vec3
	Max   common.Vec3
	Layer uint32
}

func (b Box) overlaps(o Box) bool {
	return b.Min.X < o.Max.X && b.Max.X > o.Min.X &&
		b.Min.Y < o.Max.Y && b.Max.Y > o.Min.Y &&
		b.Min.Z < o.Max.Z && b.Max.Z > o.Min.Z
}

// World holds the level's static solids.
type World struct {
	boxes []Box
}

func NewWorld() *World {
	return &World{}
}

func (w *World) AddBox(b Box) {
	if b.Layer == 0 {
		b.Layer = LayerGround
	}
	w.boxes = append(w.boxes, b)
}

func (w *World) Boxes() []Box {
	if w == nil {
		return nil
	}
	return w.boxes
}

func (w *World) Clear() {
	w.boxes = w.boxes[:0]
}

// CheckSphere reports whether a sphere overlaps any box on the masked layers.
func (w *World) CheckSphere(center common.Vec3, radius float64, mask uint32) bool {
	if w == nil || radius <= 0 {
		return false
	}
	r2 := radius * radius
	for _, b := range w.boxes {
		if b.Layer&mask == 0 {
			continue
		}
		dx := center.X - common.Clamp(center.X, b.Min.X, b.Max.X)
		dy := center.Y - common.Clamp(center.Y, b.Min.Y, b.Max.Y)
		dz := center.Z - common.Clamp(center.Z, b.Min.Z, b.Max.Z)
		if dx*dx+dy*dy+dz*dz < r2 {
			return true
		}
	}
	return false
}

// Raycast reports whether a ray enters a box on the masked layers within maxDist.
func (w *World) Raycast(origin, dir common.Vec3, maxDist float64, mask uint32) bool {
	_, ok := w.RaycastDistance(origin, dir, maxDist, mask)
	return ok
}

// RaycastDistance returns the nearest hit distance along dir. Boxes the ray
// only grazes at its origin are ignored.
func (w *World) RaycastDistance(origin, dir common.Vec3, maxDist float64, mask uint32) (float64, bool) {
	if w == nil || maxDist <= 0 {
		return 0, false
	}
	dir = dir.Normalized()
	if dir == (common.Vec3{}) {
		return 0, false
	}

	best := math.Inf(1)
	for _, b := range w.boxes {
		if b.Layer&mask == 0 {
			continue
		}
		if t, ok := rayBoxHit(origin, dir, maxDist, b); ok && t < best {
			best = t
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}

func rayBoxHit(o, d common.Vec3, maxDist float64, b Box) (float64, bool) {
	tmin := 0.0
	tmax := maxDist

	axes := [3][4]float64{
		{o.X, d.X, b.Min.X, b.Max.X},
		{o.Y, d.Y, b.Min.Y, b.Max.Y},
		{o.Z, d.Z, b.Min.Z, b.Max.Z},
	}
	for _, a := range axes {
		o0, dd, lo, hi := a[0], a[1], a[2], a[3]
		if dd != 0 {
			invD := 1.0 / dd
			t1 := (lo - o0) * invD
			t2 := (hi - o0) * invD
			if t1 > t2 {
				t1, t2 = t2, t1
			}
			tmin = math.Max(tmin, t1)
			tmax = math.Min(tmax, t2)
		} else if o0 <= lo || o0 >= hi {
			return 0, false
		}
	}

	if tmax >= tmin && tmax > 1e-9 {
		return tmin, true
	}
	return 0, false
}

// MoveCharacter moves an upright box body (feet at pos, half-width radius)
// by motion, resolving one axis at a time so the body slides along walls.
// It returns the resolved feet position.
func (w *World) MoveCharacter(pos common.Vec3, radius, height float64, motion common.Vec3) common.Vec3 {
	if w == nil {
		return pos.Add(motion)
	}
	pos.X = w.sweepAxis(pos, radius, height, 0, motion.X)
	pos.Z = w.sweepAxis(pos, radius, height, 2, motion.Z)
	pos.Y = w.sweepAxis(pos, radius, height, 1, motion.Y)
	return pos
}

func characterBox(pos common.Vec3, radius, height float64) Box {
	return Box{
		Min: common.Vec3{X: pos.X - radius, Y: pos.Y, Z: pos.Z - radius},
		Max: common.Vec3{X: pos.X + radius, Y: pos.Y + height, Z: pos.Z + radius},
	}
}

// sweepAxis applies delta on one axis (0=X, 1=Y, 2=Z) and clips it against
// every box the body would enter. Returns the new coordinate on that axis.
func (w *World) sweepAxis(pos common.Vec3, radius, height float64, axis int, delta float64) float64 {
	start := axisOf(pos, axis)
	if delta == 0 {
		return start
	}

	moved := setAxis(pos, axis, start+delta)
	body := characterBox(moved, radius, height)
	target := start + delta

	for _, b := range w.boxes {
		if !body.overlaps(b) {
			continue
		}
		// Boxes already overlapping before the move are left alone so a body
		// spawned inside geometry can walk out.
		if characterBox(pos, radius, height).overlaps(b) {
			continue
		}
		lo, hi := extent(axis, radius, height)
		if delta > 0 {
			target = math.Min(target, axisOf(b.Min, axis)-hi)
		} else {
			target = math.Max(target, axisOf(b.Max, axis)-lo)
		}
	}
	if (delta > 0 && target < start) || (delta < 0 && target > start) {
		return start
	}
	return target
}

// extent returns the body's offsets from its origin along axis.
func extent(axis int, radius, height float64) (float64, float64) {
	if axis == 1 {
		return 0, height
	}
	return -radius, radius
}

func axisOf(v common.Vec3, axis int) float64 {
	switch axis {
	case 0:
		return v.X
	case 1:
		return v.Y
	default:
		return v.Z
	}
}

func setAxis(v common.Vec3, axis int, value float64) common.Vec3 {
	switch axis {
	case 0:
		v.X = value
	case 1:
		v.Y = value
	default:
		v.Z = value
	}
	return v
}
