package combat

import (
	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/vfx"
)

// HitType tags a HitConfirmed event.
type HitType string

const (
	HitEntityDamaged HitType = "entityDamaged"
	HitNPC           HitType = "npcHit"
	HitPlayerDamaged HitType = "playerDamaged"
)

// EntityDamaged is emitted when a player swing damages an enemy.
type EntityDamaged struct {
	Source *components.AttackerData
	Target *components.EnemyData
	Damage int
	Now    int64
}

// PlayerDamaged is emitted when an enemy strike lands on the player.
type PlayerDamaged struct {
	Source *components.EnemyData
	Target *components.AttackerData
	Damage int
	Now    int64
}

// PlayerDefeated is emitted when the player's hp reaches zero.
type PlayerDefeated struct {
	Player *components.AttackerData
	Source *components.EnemyData
	Now    int64
}

// AttackStarted is emitted when a swing enters windup.
type AttackStarted struct {
	Attacker *components.AttackerData
	AttackID string
	Profile  *attack.Profile
	Now      int64
}

// HitConfirmed is the unified feedback channel for every landed hit. Only
// the fields relevant to Type are set.
type HitConfirmed struct {
	Type   HitType
	Now    int64
	Damage int
	Player *components.AttackerData
	Enemy  *components.EnemyData
	NPC    *components.NPCData
}

// Handlers are the outbound callbacks. Every nil field is a no-op, except
// OnPlayerDefeated: leaving it nil makes the engine respawn the player
// itself, which is only meant for standalone use.
type Handlers struct {
	OnRequestVfx          vfx.Handler
	OnEntityDamaged       func(EntityDamaged)
	OnEntityDefeated      func(enemy *components.EnemyData, now int64)
	OnPlayerDamaged       func(PlayerDamaged)
	OnPlayerDefeated      func(PlayerDefeated)
	OnPlayerAttackStarted func(AttackStarted)
	OnHitConfirmed        func(HitConfirmed)
}

func (h Handlers) withDefaults() Handlers {
	if h.OnRequestVfx == nil {
		h.OnRequestVfx = func(string, vfx.Request) {}
	}
	if h.OnEntityDamaged == nil {
		h.OnEntityDamaged = func(EntityDamaged) {}
	}
	if h.OnEntityDefeated == nil {
		h.OnEntityDefeated = func(*components.EnemyData, int64) {}
	}
	if h.OnPlayerDamaged == nil {
		h.OnPlayerDamaged = func(PlayerDamaged) {}
	}
	if h.OnPlayerAttackStarted == nil {
		h.OnPlayerAttackStarted = func(AttackStarted) {}
	}
	if h.OnHitConfirmed == nil {
		h.OnHitConfirmed = func(HitConfirmed) {}
	}
	return h
}
