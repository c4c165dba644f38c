package leveldata

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/lafriks/go-tiled"
)

// LoadLevel parses a TMX file. It takes an fs.FS so callers can pass
// embed.FS or os.DirFS.
func LoadLevel(fsys fs.FS, tmxPath string) (*Level, error) {
	levelMap, err := tiled.LoadFile(tmxPath, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", tmxPath, err)
	}

	level := &Level{
		Name:     strings.TrimSuffix(filepath.Base(tmxPath), ".tmx"),
		Width:    levelMap.Width * levelMap.TileWidth,
		Height:   levelMap.Height * levelMap.TileHeight,
		TileSize: float64(levelMap.TileWidth),
	}

	tileW := float64(levelMap.TileWidth)
	tileH := float64(levelMap.TileHeight)
	for _, layer := range levelMap.Layers {
		if layer.Name != SolidLayer {
			continue
		}
		for y := 0; y < levelMap.Height; y++ {
			for x := 0; x < levelMap.Width; x++ {
				if layer.Tiles[y*levelMap.Width+x].IsNil() {
					continue
				}
				level.SolidRects = append(level.SolidRects, SolidRect{
					X: float64(x) * tileW,
					Y: float64(y) * tileH,
					W: tileW,
					H: tileH,
				})
			}
		}
		break
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case PlayerSpawnGroup:
			for _, o := range og.Objects {
				level.PlayerSpawns = append(level.PlayerSpawns, SpawnPoint{
					X:     o.X,
					Y:     o.Y,
					Index: o.Properties.GetInt("spawnIndex"),
				})
			}
		case EnemySpawnGroup:
			for _, o := range og.Objects {
				level.EnemySpawns = append(level.EnemySpawns, EnemySpawn{
					X:         o.X,
					Y:         o.Y,
					EnemyType: o.Properties.GetString("enemyType"),
					Behavior:  o.Properties.GetString("behavior"),
					AttackID:  o.Properties.GetString("attackId"),
					NoRespawn: o.Properties.GetBool("noRespawn"),
				})
			}
		case NPCSpawnGroup:
			for _, o := range og.Objects {
				level.NPCSpawns = append(level.NPCSpawns, NPCSpawn{
					X:         o.X,
					Y:         o.Y,
					Name:      o.Name,
					Reactions: splitReactions(o.Properties.GetString("reactions")),
				})
			}
		}
	}

	// Sort spawns left-to-right for consistent assignment
	sort.Slice(level.PlayerSpawns, func(i, j int) bool {
		return level.PlayerSpawns[i].X < level.PlayerSpawns[j].X
	})

	return level, nil
}

func splitReactions(s string) []string {
	var out []string
	for _, r := range strings.Split(s, reactionSeparator) {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

// LoadAllLevels discovers all .tmx files in levelsDir within fsys, loads each,
// and returns a map keyed by stem name plus a sorted list of names.
func LoadAllLevels(fsys fs.FS, levelsDir string) (map[string]*Level, []string, error) {
	pattern := levelsDir + "/*.tmx"
	matches, err := fs.Glob(fsys, pattern)
	if err != nil {
		return nil, nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, nil, fmt.Errorf("no .tmx files found in %s", levelsDir)
	}

	levels := make(map[string]*Level, len(matches))
	names := make([]string, 0, len(matches))

	for _, path := range matches {
		level, err := LoadLevel(fsys, path)
		if err != nil {
			return nil, nil, fmt.Errorf("load %s: %w", path, err)
		}
		levels[level.Name] = level
		names = append(names, level.Name)
	}

	sort.Strings(names)
	return levels, names, nil
}
