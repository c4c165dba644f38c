package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
)

// CreateScene spawns the scene and clock singleton in explore mode.
func CreateScene(ecs *ecs.ECS) *donburi.Entry {
	scene := archetypes.Scene.Spawn(ecs)
	components.Scene.SetValue(scene, components.SceneData{GameState: components.GameStateExplore})
	components.Clock.SetValue(scene, components.ClockData{DtScale: 1})
	return scene
}
