package factory

import (
	"github.com/solarlune/resolv"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/archetypes"
	"github.com/automoto/doomerang-combat/collision"
	"github.com/automoto/doomerang-combat/components"
)

// CreateSpace spawns the resolv space for one area and returns it wrapped in
// a collision grid of the same bounds.
func CreateSpace(ecs *ecs.ECS, width, height, cellSize float64) (*donburi.Entry, *collision.Grid) {
	space := archetypes.Space.Spawn(ecs)
	cell := max(1, int(cellSize))
	spaceData := resolv.NewSpace(int(width), int(height), cell, cell)
	components.Space.Set(space, spaceData)
	return space, collision.NewGrid(components.Space.Get(space), width, height)
}
