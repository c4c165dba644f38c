package components

import "github.com/yohamta/donburi"

// LevelData describes the area currently being simulated.
type LevelData struct {
	AreaID   string
	Width    float64
	Height   float64
	TileSize float64
	SpawnX   float64
	SpawnY   float64
}

var Level = donburi.NewComponentType[LevelData]()
