package systems

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/tags"
)

// playerEntry returns the player entity, if one exists.
func playerEntry(ecs *ecs.ECS) (*donburi.Entry, bool) {
	return tags.Player.First(ecs.World)
}

// sceneClock reads the scene and clock singleton.
func sceneClock(ecs *ecs.ECS) (components.SceneData, components.ClockData, bool) {
	entry, ok := components.Scene.First(ecs.World)
	if !ok {
		return components.SceneData{}, components.ClockData{}, false
	}
	return *components.Scene.Get(entry), *components.Clock.Get(entry), true
}

// levelData returns the active level, or the zero value when none is loaded.
func levelData(ecs *ecs.ECS) components.LevelData {
	if entry, ok := components.Level.First(ecs.World); ok {
		return *components.Level.Get(entry)
	}
	return components.LevelData{}
}

// areaOf is the area a tick simulates: the player's, else the active level's.
func areaOf(player *components.AttackerData, level components.LevelData) string {
	if player.World != "" {
		return player.World
	}
	return level.AreaID
}

func enemies(ecs *ecs.ECS) []*components.EnemyData {
	var out []*components.EnemyData
	components.Enemy.Each(ecs.World, func(e *donburi.Entry) {
		out = append(out, components.Enemy.Get(e))
	})
	return out
}

func npcs(ecs *ecs.ECS) []*components.NPCData {
	var out []*components.NPCData
	components.NPC.Each(ecs.World, func(e *donburi.Entry) {
		out = append(out, components.NPC.Get(e))
	})
	return out
}
