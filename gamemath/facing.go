package gamemath

// Facing is the cardinal direction an entity looks toward.
type Facing int

const (
	FacingDown Facing = iota
	FacingUp
	FacingLeft
	FacingRight
)

func (f Facing) String() string {
	switch f {
	case FacingUp:
		return "up"
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	default:
		return "down"
	}
}

// Vector returns the unit vector for f.
func (f Facing) Vector() Vec2 {
	switch f {
	case FacingUp:
		return Vec2{X: 0, Y: -1}
	case FacingLeft:
		return Vec2{X: -1, Y: 0}
	case FacingRight:
		return Vec2{X: 1, Y: 0}
	default:
		return Vec2{X: 0, Y: 1}
	}
}

// FacingFromVector picks the facing of the larger-magnitude axis of (dx, dy).
// Ties go to the horizontal axis. A zero vector keeps current.
func FacingFromVector(dx, dy float64, current Facing) Facing {
	ax, ay := dx, dy
	if ax < 0 {
		ax = -ax
	}
	if ay < 0 {
		ay = -ay
	}
	switch {
	case ax == 0 && ay == 0:
		return current
	case ax >= ay && dx < 0:
		return FacingLeft
	case ax >= ay:
		return FacingRight
	case dy < 0:
		return FacingUp
	default:
		return FacingDown
	}
}
