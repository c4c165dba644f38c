package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/gamemath"
)

// AttackState is the attacker's position in its swing lifecycle.
type AttackState int

const (
	AttackIdle AttackState = iota
	AttackWindup
	AttackActive
	AttackRecovery
)

func (s AttackState) String() string {
	switch s {
	case AttackWindup:
		return "windup"
	case AttackActive:
		return "active"
	case AttackRecovery:
		return "recovery"
	default:
		return "idle"
	}
}

// AttackerData is the player entity as the combat engine sees it. All
// timestamps are absolute milliseconds on the simulation clock.
type AttackerData struct {
	ID     string
	World  string
	X, Y   float64
	Width  float64
	Height float64
	Facing gamemath.Facing

	HP     int
	MaxHP  int
	SpawnX float64
	SpawnY float64

	InvulnerableUntil int64

	// Swing lifecycle
	AttackState         AttackState
	AttackStartedAt     int64
	AttackActiveAt      int64
	AttackActiveUntil   int64
	AttackRecoveryUntil int64
	LastAttackAt        int64
	HasAttacked         bool   // LastAttackAt is meaningful
	ActiveAttackID      string // profile used by the current swing
	EquippedAttackID    string // profile used when no attack is requested by id

	DamageRolls attack.WeightedTable
	Equipment   attack.Equipment
}

// Rect returns the attacker's body rectangle.
func (a *AttackerData) Rect() gamemath.Rect {
	return gamemath.Rect{X: a.X, Y: a.Y, Width: a.Width, Height: a.Height}
}

// Body returns the geometry attack profiles derive their centers from.
func (a *AttackerData) Body() attack.Body {
	return attack.Body{Rect: a.Rect(), Facing: a.Facing}
}

func (a *AttackerData) Center() gamemath.Vec2 {
	return a.Rect().Center()
}

// Invulnerable reports whether hits are ignored at now.
func (a *AttackerData) Invulnerable(now int64) bool {
	return now < a.InvulnerableUntil
}

var Attacker = donburi.NewComponentType[AttackerData]()
