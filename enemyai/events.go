package enemyai

import "github.com/automoto/doomerang-combat/components"

// WindupStarted is emitted when an enemy begins telegraphing an attack.
type WindupStarted struct {
	Enemy     *components.EnemyData
	Now       int64
	ToPlayerX float64
	ToPlayerY float64
}

// Handlers are the outbound callbacks. Nil fields are no-ops.
type Handlers struct {
	OnEnemyAttackWindupStarted func(WindupStarted)
	OnEnemyRespawned           func(enemy *components.EnemyData, now int64)
}

func (h Handlers) withDefaults() Handlers {
	if h.OnEnemyAttackWindupStarted == nil {
		h.OnEnemyAttackWindupStarted = func(WindupStarted) {}
	}
	if h.OnEnemyRespawned == nil {
		h.OnEnemyRespawned = func(*components.EnemyData, int64) {}
	}
	return h
}
