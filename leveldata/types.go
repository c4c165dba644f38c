// Package leveldata parses TMX levels into plain spawn and collision data.
// It has no dependencies on donburi or resolv.
package leveldata

// Layer and object group names read from TMX files.
const (
	SolidLayer        = "solid"
	PlayerSpawnGroup  = "PlayerSpawn"
	EnemySpawnGroup   = "EnemySpawn"
	NPCSpawnGroup     = "NPC"
	reactionSeparator = "|"
)

// Level is one area. Its Name, the TMX file stem, is the area id entities
// are partitioned by.
type Level struct {
	Name         string
	Width        int
	Height       int
	TileSize     float64
	SolidRects   []SolidRect
	PlayerSpawns []SpawnPoint
	EnemySpawns  []EnemySpawn
	NPCSpawns    []NPCSpawn
}

// SolidRect represents a solid collision tile.
type SolidRect struct {
	X, Y, W, H float64
}

// SpawnPoint represents a player spawn location.
type SpawnPoint struct {
	X, Y  float64
	Index int
}

// EnemySpawn places one enemy. Empty EnemyType and Behavior fall back to the
// configured defaults.
type EnemySpawn struct {
	X, Y      float64
	EnemyType string
	Behavior  string
	AttackID  string
	NoRespawn bool
}

// NPCSpawn places one non-combatant.
type NPCSpawn struct {
	X, Y      float64
	Name      string
	Reactions []string
}

// PlayerSpawn returns the leftmost spawn point, or the map origin when the
// level has none.
func (l *Level) PlayerSpawn() SpawnPoint {
	if len(l.PlayerSpawns) == 0 {
		return SpawnPoint{}
	}
	return l.PlayerSpawns[0]
}
