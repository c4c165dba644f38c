package attack

import (
	"fmt"

	"github.com/automoto/doomerang-combat/gamemath"
)

// Shape names a pair of geometry functions so profiles can be declared in data.
type Shape string

const (
	// ShapeForward hits a circle Range units ahead of the attacker's facing.
	ShapeForward Shape = "forward"
	// ShapeSelf hits a circle around the attacker's own body (spins, stomps).
	ShapeSelf Shape = "self"
)

// ForwardCenter returns a GeometryFunc placing the hit circle rng units in
// front of the body center along its facing.
func ForwardCenter(rng float64) GeometryFunc {
	return func(b Body) gamemath.Vec2 {
		return b.Center().Add(b.Facing.Vector().MulScalar(rng))
	}
}

// SelfCenter returns a GeometryFunc that always yields the body center.
func SelfCenter() GeometryFunc {
	return func(b Body) gamemath.Vec2 {
		return b.Center()
	}
}

// ApplyShape fills in p's geometry functions for the named shape.
func ApplyShape(p *Profile, s Shape) error {
	switch s {
	case ShapeForward, "":
		p.AttackCenter = ForwardCenter(p.Range)
		p.VfxOrigin = ForwardCenter(p.Range * 0.6)
	case ShapeSelf:
		p.AttackCenter = SelfCenter()
		p.VfxOrigin = SelfCenter()
	default:
		return fmt.Errorf("%w: unknown shape %q", ErrInvalidProfile, s)
	}
	return nil
}
