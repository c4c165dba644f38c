package attack

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// profileDef is the YAML form of a Profile. Geometry is picked by Shape.
type profileDef struct {
	ID         string  `yaml:"id"`
	Shape      Shape   `yaml:"shape"`
	CooldownMs int64   `yaml:"cooldown_ms"`
	WindupMs   int64   `yaml:"windup_ms"`
	ActiveMs   int64   `yaml:"active_ms"`
	RecoveryMs int64   `yaml:"recovery_ms"`
	Range      float64 `yaml:"range"`
	HitRadius  float64 `yaml:"hit_radius"`
	Damage     int     `yaml:"damage"`
	Vfx        Vfx     `yaml:"vfx"`
}

// catalogFile is the top level of an attack catalog YAML document.
type catalogFile struct {
	Default     string                   `yaml:"default"`
	Profiles    []profileDef             `yaml:"profiles"`
	WeaponBonus map[string]WeightedTable `yaml:"weapon_bonus"`
}

// LoadCatalogYAML parses a catalog document into a Catalog and its weapon
// bonus tables.
//
// Postcondition: the returned Catalog has a valid default entry.
func LoadCatalogYAML(data []byte, logger *zap.Logger) (*Catalog, BonusTables, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("parsing attack catalog: %w", err)
	}
	if len(f.Profiles) == 0 {
		return nil, nil, fmt.Errorf("%w: catalog has no profiles", ErrInvalidProfile)
	}

	entries := make([]Entry, 0, len(f.Profiles))
	for _, def := range f.Profiles {
		p := &Profile{
			CooldownMs: def.CooldownMs,
			WindupMs:   def.WindupMs,
			ActiveMs:   def.ActiveMs,
			RecoveryMs: def.RecoveryMs,
			Range:      def.Range,
			HitRadius:  def.HitRadius,
			Damage:     def.Damage,
			Vfx:        def.Vfx,
		}
		if err := ApplyShape(p, def.Shape); err != nil {
			return nil, nil, fmt.Errorf("attack %q: %w", def.ID, err)
		}
		entries = append(entries, Entry{ID: def.ID, Profile: p})
	}

	defaultID := f.Default
	if defaultID == "" {
		defaultID = entries[0].ID
	}
	c, err := NewCatalog(defaultID, entries, logger)
	if err != nil {
		return nil, nil, err
	}

	bonus := BonusTables{}
	for weapon, table := range f.WeaponBonus {
		bonus[weapon] = table
	}
	return c, bonus, nil
}

// LoadCatalogFile reads path and parses it with LoadCatalogYAML.
func LoadCatalogFile(path string, logger *zap.Logger) (*Catalog, BonusTables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("reading attack catalog %s: %w", path, err)
	}
	return LoadCatalogYAML(data, logger)
}
