// Package attack holds the attack profile catalog and the damage rolls that
// both the player swing and enemy strikes resolve through.
package attack

import (
	"errors"
	"fmt"
	"math"

	"github.com/automoto/doomerang-combat/gamemath"
)

// ErrInvalidProfile is returned when a profile is rejected at registration.
var ErrInvalidProfile = errors.New("attack: invalid profile")

// Body is the geometry an attacker exposes to a profile's hit-test functions.
type Body struct {
	gamemath.Rect
	Facing gamemath.Facing
}

// GeometryFunc derives a world-space point from an attacker's body.
type GeometryFunc func(Body) gamemath.Vec2

// Vfx is an opaque effect hint forwarded to whoever draws the swing.
type Vfx struct {
	Type       string  `yaml:"type"`
	DurationMs int64   `yaml:"duration_ms"`
	SizeOffset float64 `yaml:"size_offset"`
}

// Profile describes one attack: its timing windows, reach and damage.
//
// Invariant: all windows and distances are non-negative once registered.
type Profile struct {
	CooldownMs int64
	WindupMs   int64
	ActiveMs   int64
	RecoveryMs int64

	Range     float64
	HitRadius float64
	Damage    int

	Vfx Vfx

	AttackCenter GeometryFunc
	VfxOrigin    GeometryFunc
}

// Center returns the hit-test origin for b, or b's body center when the
// profile has no AttackCenter.
func (p *Profile) Center(b Body) gamemath.Vec2 {
	if p == nil || p.AttackCenter == nil {
		return b.Center()
	}
	return p.AttackCenter(b)
}

// Origin returns where the windup effect is placed. Falls back to Center.
func (p *Profile) Origin(b Body) gamemath.Vec2 {
	if p == nil || p.VfxOrigin == nil {
		return p.Center(b)
	}
	return p.VfxOrigin(b)
}

// DurationMs is the full windup+active+recovery length of one swing.
func (p *Profile) DurationMs() int64 {
	return p.WindupMs + p.ActiveMs + p.RecoveryMs
}

// Validate rejects negative windows, distances, and damage.
func (p *Profile) Validate() error {
	if p == nil {
		return fmt.Errorf("%w: nil profile", ErrInvalidProfile)
	}
	windows := []struct {
		name string
		v    int64
	}{
		{"cooldown_ms", p.CooldownMs},
		{"windup_ms", p.WindupMs},
		{"active_ms", p.ActiveMs},
		{"recovery_ms", p.RecoveryMs},
	}
	for _, w := range windows {
		if w.v < 0 {
			return fmt.Errorf("%w: %s must be >= 0, got %d", ErrInvalidProfile, w.name, w.v)
		}
	}
	if !finiteNonNegative(p.Range) {
		return fmt.Errorf("%w: range must be a finite value >= 0, got %v", ErrInvalidProfile, p.Range)
	}
	if !finiteNonNegative(p.HitRadius) {
		return fmt.Errorf("%w: hit_radius must be a finite value >= 0, got %v", ErrInvalidProfile, p.HitRadius)
	}
	if p.Damage < 0 {
		return fmt.Errorf("%w: damage must be >= 0, got %d", ErrInvalidProfile, p.Damage)
	}
	return nil
}

func finiteNonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
