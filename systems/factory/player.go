package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/gamemath"
)

// PlayerID is the id every player entity is created with.
const PlayerID = "player"

func CreatePlayer(ecs *ecs.ECS, areaID string, x, y float64) *donburi.Entry {
	player := archetypes.Player.Spawn(ecs)

	components.Attacker.SetValue(player, components.AttackerData{
		ID:               PlayerID,
		World:            areaID,
		X:                x,
		Y:                y,
		Width:            cfg.Player.Width,
		Height:           cfg.Player.Height,
		Facing:           gamemath.FacingRight,
		HP:               cfg.Player.Health,
		MaxHP:            cfg.Player.Health,
		SpawnX:           x,
		SpawnY:           y,
		AttackState:      components.AttackIdle,
		EquippedAttackID: cfg.Player.DefaultAttack,
		Equipment:        attack.Equipment{Weapon: cfg.Player.Weapon},
		DamageRolls:      cfg.Player.DamageRolls,
	})
	components.Input.SetValue(player, components.InputData{})

	return player
}
