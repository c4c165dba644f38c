package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/gamemath"
)

// EnemyState is the enemy's current lifecycle or behavior state. The
// lifecycle states are owned by the AI engine; the rest are set by behaviors.
type EnemyState string

const (
	EnemyIdle    EnemyState = "idle"
	EnemyChase   EnemyState = "chase"
	EnemyFlank   EnemyState = "flank"
	EnemyZone    EnemyState = "zone"
	EnemyRetreat EnemyState = "retreat"
	EnemyStrafe  EnemyState = "strafe"
	EnemyReturn  EnemyState = "return"

	EnemyAttackWindup EnemyState = "attackWindup"
	EnemyRecover      EnemyState = "recover"
	EnemyHitStun      EnemyState = "hitStun"
	EnemyDead         EnemyState = "dead"
)

// CircleScratch is behavior-local steering state for tangential movement.
type CircleScratch struct {
	Dir        float64 // +1 or -1, zero until first used
	NextFlipAt int64
}

// EnemyData is one enemy as the AI and combat engines see it.
type EnemyData struct {
	ID       string
	World    string // area the enemy lives in
	TypeName string
	X, Y     float64
	Width    float64
	Height   float64
	Facing   gamemath.Facing

	HP    int
	MaxHP int
	Dead  bool
	State EnemyState

	BehaviorType string
	AttackID     string // optional catalog profile used for strikes
	Damage       int
	DamageRolls  attack.WeightedTable

	AttackRange      float64
	AggroRange       float64
	AttackCooldownMs int64
	AttackWindupMs   int64
	AttackRecoveryMs int64
	Speed            float64

	// Attack lifecycle
	LastAttackAt   int64
	HasAttacked    bool
	AttackStrikeAt int64
	RecoverUntil   int64
	PendingStrike  bool // raised by the AI engine, consumed by the combat engine

	InvulnerableUntil int64
	HitStunUntil      int64

	RespawnAt      int64
	RespawnDelayMs int64
	RespawnEnabled bool
	SpawnX         float64
	SpawnY         float64

	// Orbit belongs to orbitStriker, Strafe to zoneKeeper.
	Orbit  CircleScratch
	Strafe CircleScratch
}

func (e *EnemyData) Rect() gamemath.Rect {
	return gamemath.Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
}

func (e *EnemyData) Center() gamemath.Vec2 {
	return e.Rect().Center()
}

// Invulnerable reports whether player hits are ignored at now.
func (e *EnemyData) Invulnerable(now int64) bool {
	return now < e.InvulnerableUntil
}

// CooldownReady reports whether a new windup may start at now.
func (e *EnemyData) CooldownReady(now int64) bool {
	return !e.HasAttacked || now-e.LastAttackAt >= e.AttackCooldownMs
}

// Respawn restores the enemy to its spawn point with full health and clears
// every transient flag. Behavior scratch state is reset too.
func (e *EnemyData) Respawn() {
	e.HP = e.MaxHP
	e.X, e.Y = e.SpawnX, e.SpawnY
	e.Dead = false
	e.State = EnemyIdle
	e.PendingStrike = false
	e.AttackStrikeAt = 0
	e.RecoverUntil = 0
	e.InvulnerableUntil = 0
	e.HitStunUntil = 0
	e.RespawnAt = 0
	e.HasAttacked = false
	e.LastAttackAt = 0
	e.Orbit = CircleScratch{}
	e.Strafe = CircleScratch{}
}

var Enemy = donburi.NewComponentType[EnemyData]()
