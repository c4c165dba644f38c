package factory

import (
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/collision"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/leveldata"
)

// CreateLevel spawns an area's walls, enemies and NPCs and returns the area's
// collision grid. The first level created becomes the active one.
func CreateLevel(ecs *ecs.ECS, level *leveldata.Level) (*donburi.Entry, *collision.Grid) {
	tileSize := level.TileSize
	if tileSize <= 0 {
		tileSize = cfg.Sim.TileSize
	}
	width, height := float64(level.Width), float64(level.Height)

	_, grid := CreateSpace(ecs, width, height, tileSize)
	for _, r := range level.SolidRects {
		CreateWall(ecs, grid, r.X, r.Y, r.W, r.H)
	}
	for _, s := range level.EnemySpawns {
		CreateEnemy(ecs, level.Name, s)
	}
	for _, s := range level.NPCSpawns {
		CreateNPC(ecs, level.Name, s)
	}

	if entry, ok := components.Level.First(ecs.World); ok {
		return entry, grid
	}

	spawn := level.PlayerSpawn()
	entry := archetypes.Level.Spawn(ecs)
	components.Level.SetValue(entry, components.LevelData{
		AreaID:   level.Name,
		Width:    width,
		Height:   height,
		TileSize: tileSize,
		SpawnX:   spawn.X,
		SpawnY:   spawn.Y,
	})
	return entry, grid
}

// CreateArena builds an open walled rectangle from the sim config, for runs
// without a TMX level.
func CreateArena(ecs *ecs.ECS) (*donburi.Entry, *collision.Grid) {
	tile := cfg.Sim.TileSize
	cols := int(cfg.Sim.ArenaWidth / tile)
	rows := int(cfg.Sim.ArenaHeight / tile)

	level := &leveldata.Level{
		Name:     cfg.Sim.AreaID,
		Width:    cols * int(tile),
		Height:   rows * int(tile),
		TileSize: tile,
		PlayerSpawns: []leveldata.SpawnPoint{
			{X: 2 * tile, Y: float64(rows/2) * tile},
		},
	}
	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			if x == 0 || y == 0 || x == cols-1 || y == rows-1 {
				level.SolidRects = append(level.SolidRects, leveldata.SolidRect{
					X: float64(x) * tile, Y: float64(y) * tile, W: tile, H: tile,
				})
			}
		}
	}
	return CreateLevel(ecs, level)
}
