package common

import "math"

const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// Vec3 is a world-space vector. Y is up; yaw 0 faces +Z.
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

func (v Vec3) Length() float64 { return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z) }

// HorizontalLength ignores the vertical axis.
func (v Vec3) HorizontalLength() float64 { return math.Hypot(v.X, v.Z) }

// Normalized returns the unit vector, or zero for a zero-length input.
func (v Vec3) Normalized() Vec3 {
	l := v.Length()
	if l == 0 {
		return Vec3{}
	}
	return v.Scale(1 / l)
}

// Vec2 holds stick or pointer axes.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) SqrMagnitude() float64 { return v.X*v.X + v.Y*v.Y }

func (v Vec2) Magnitude() float64 { return math.Sqrt(v.SqrMagnitude()) }

func (v Vec2) IsZero() bool { return v.SqrMagnitude() < 1e-10 }

// Lerp interpolates from a to b with t clamped to [0, 1].
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*Clamp01(t)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Round3 rounds to three decimal places.
func Round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// ClampAngle folds one turn out of angle before clamping it, in degrees.
func ClampAngle(angle, lo, hi float64) float64 {
	if angle < -360 {
		angle += 360
	}
	if angle > 360 {
		angle -= 360
	}
	return Clamp(angle, lo, hi)
}

// Forward returns the horizontal facing direction for a yaw in degrees.
func Forward(yawDeg float64) Vec3 {
	r := yawDeg * math.Pi / 180
	return Vec3{X: math.Sin(r), Z: math.Cos(r)}
}

// Right returns the horizontal right-hand direction for a yaw in degrees.
func Right(yawDeg float64) Vec3 {
	r := yawDeg * math.Pi / 180
	return Vec3{X: math.Cos(r), Z: -math.Sin(r)}
}
