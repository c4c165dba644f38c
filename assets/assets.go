// Package assets embeds the shipped attack catalog, levels and Lua
// behaviors so the arena runs without any files on disk.
package assets

import (
	"embed"
	"fmt"

	"go.uber.org/zap"

	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/enemyai"
	"github.com/automoto/doomerang-combat/leveldata"
	"github.com/automoto/doomerang-combat/scripting"
)

var (
	//go:embed all:levels
	assetFS embed.FS

	//go:embed all:behaviors
	behaviorFS embed.FS

	//go:embed attacks.yaml
	attacksYAML []byte
)

// MustLoadLevels parses every embedded level, sorted by name.
func MustLoadLevels() []*leveldata.Level {
	byName, names, err := leveldata.LoadAllLevels(assetFS, "levels")
	if err != nil {
		panic(fmt.Sprintf("Failed to load embedded levels: %v", err))
	}
	levels := make([]*leveldata.Level, 0, len(names))
	for _, name := range names {
		levels = append(levels, byName[name])
	}
	return levels
}

// LoadCatalog parses the embedded attack catalog.
func LoadCatalog(logger *zap.Logger) (*attack.Catalog, attack.BonusTables, error) {
	return attack.LoadCatalogYAML(attacksYAML, logger)
}

// LoadBehaviors registers the embedded Lua behaviors into reg.
func LoadBehaviors(reg *enemyai.Registry, logger *zap.Logger) ([]*scripting.LuaBehavior, error) {
	return scripting.LoadBehaviorsFS(behaviorFS, "behaviors", reg, scripting.DefaultInstructionLimit, logger)
}
