package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/enemyai"
)

// NewUpdateEnemyAI returns the system that runs one AI tick for the
// player's area. It must run before the combat system.
func NewUpdateEnemyAI(engine *enemyai.Engine, collides enemyai.CollidesFunc) ecs.System {
	return func(ecs *ecs.ECS) {
		entry, ok := playerEntry(ecs)
		if !ok {
			return
		}
		scene, clock, _ := sceneClock(ecs)
		level := levelData(ecs)
		player := components.Attacker.Get(entry)

		engine.Update(&enemyai.Frame{
			Now: clock.Now,
			Area: enemyai.Area{
				ID:     areaOf(player, level),
				Width:  level.Width,
				Height: level.Height,
			},
			Scene:      scene,
			TileSize:   level.TileSize,
			DtScale:    clock.DtScale,
			CollidesAt: collides,
			Player:     player,
			Enemies:    enemies(ecs),
		})
	}
}
