package gamemath

import (
	dmath "github.com/yohamta/donburi/features/math"
)

// Vec2 is the donburi vector type; both engines steer and hit-test with it.
// Arithmetic goes through its methods (Add, Sub, MulScalar, Distance).
type Vec2 = dmath.Vec2

// epsilon below which a vector is treated as zero length.
const epsilon = 1e-9

// Rect is an axis-aligned body in world units, anchored at its top-left corner.
type Rect struct {
	X, Y          float64
	Width, Height float64
}

// Center returns the body's center point.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Normalize returns the unit vector of v and v's original length.
// A zero-length input yields the zero vector, unlike Vec2.Normalized
// which hands the input back.
func Normalize(v Vec2) (Vec2, float64) {
	l := v.Magnitude()
	if l < epsilon {
		return Vec2{}, 0
	}
	return v.DivScalar(l), l
}

// Perpendicular rotates v by 90 degrees counter-clockwise (screen space y-down).
func Perpendicular(v Vec2) Vec2 {
	return Vec2{X: -v.Y, Y: v.X}
}

// ClampFloat clamps v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
