package factory

import (
	"github.com/google/uuid"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/leveldata"
)

func CreateNPC(ecs *ecs.ECS, areaID string, spawn leveldata.NPCSpawn) *donburi.Entry {
	npc := archetypes.NPC.Spawn(ecs)
	components.NPC.SetValue(npc, components.NPCData{
		ID:        uuid.NewString(),
		World:     areaID,
		Name:      spawn.Name,
		X:         spawn.X,
		Y:         spawn.Y,
		Width:     cfg.NPC.Width,
		Height:    cfg.NPC.Height,
		Reactions: append([]string(nil), spawn.Reactions...),
	})
	return npc
}
