package factory

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/gamemath"
	"github.com/automoto/doomerang-combat/leveldata"
)

func CreateEnemy(ecs *ecs.ECS, areaID string, spawn leveldata.EnemySpawn) *donburi.Entry {
	// Use the requested enemy type, default to the configured one if not found
	typeName := spawn.EnemyType
	enemyType, exists := cfg.Enemy.EnemyType(typeName)
	if !exists {
		typeName = cfg.Enemy.DefaultType
		enemyType, _ = cfg.Enemy.EnemyType(typeName)
	}

	behavior := enemyType.Behavior
	if spawn.Behavior != "" {
		behavior = spawn.Behavior
	}
	attackID := enemyType.AttackID
	if spawn.AttackID != "" {
		attackID = spawn.AttackID
	}

	enemy := archetypes.Enemy.Spawn(ecs)
	components.Enemy.SetValue(enemy, components.EnemyData{
		ID:       uuid.NewString(),
		World:    areaID,
		TypeName: typeName,
		X:        spawn.X,
		Y:        spawn.Y,
		Width:    enemyType.Width,
		Height:   enemyType.Height,
		Facing:   gamemath.FacingDown,

		HP:    enemyType.Health,
		MaxHP: enemyType.Health,
		State: components.EnemyIdle,

		BehaviorType: behavior,
		AttackID:     attackID,
		Damage:       enemyType.Damage,
		DamageRolls:  enemyType.DamageRolls,

		AttackRange:      enemyType.AttackRange,
		AggroRange:       enemyType.AggroRange,
		AttackCooldownMs: enemyType.AttackCooldownMs,
		AttackWindupMs:   enemyType.AttackWindupMs,
		AttackRecoveryMs: enemyType.AttackRecoveryMs,
		Speed:            enemyType.Speed,

		RespawnDelayMs: enemyType.RespawnDelayMs,
		RespawnEnabled: enemyType.RespawnEnabled && !spawn.NoRespawn,
		SpawnX:         spawn.X,
		SpawnY:         spawn.Y,
	})

	return enemy
}
