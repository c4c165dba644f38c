package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
)

// NewUpdateCombat returns the system that advances the player's swing,
// resolves hits and lands pending enemy strikes. The tick's attack input is
// consumed.
func NewUpdateCombat(engine *combat.Engine) ecs.System {
	return func(ecs *ecs.ECS) {
		entry, ok := playerEntry(ecs)
		if !ok {
			return
		}
		scene, clock, _ := sceneClock(ecs)
		level := levelData(ecs)
		player := components.Attacker.Get(entry)
		input := components.Input.Get(entry)

		engine.Update(&combat.Frame{
			Now:      clock.Now,
			AreaID:   areaOf(player, level),
			Scene:    scene,
			TileSize: level.TileSize,
			Player:   player,
			Enemies:  enemies(ecs),
			NPCs:     npcs(ecs),
			Attack: combat.AttackInput{
				Pressed:  input.AttackPressed,
				AttackID: input.AttackID,
			},
		})

		input.AttackPressed = false
		input.AttackID = ""
	}
}
