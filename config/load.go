package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/automoto/doomerang-combat/attack"
)

// Load reads configuration from the given YAML file over the shipped
// defaults, applies ARENA_-prefixed environment overrides, and validates the
// result. Enemy types present in the file replace the default entry of the
// same name wholesale; viper lower-cases map keys, so type lookups go
// through EnemyType.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvPrefix("ARENA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v, Defaults())

	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance,
// starting from Defaults.
func LoadFromViper(v *viper.Viper) (Config, error) {
	cfg := Defaults()
	presets := cfg.Enemy.Types
	cfg.Enemy.Types = nil
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	cfg.Enemy.Types = mergeEnemyTypes(presets, cfg.Enemy.Types)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeEnemyTypes keys every preset by its lower-cased name, letting file
// entries replace defaults of the same name.
func mergeEnemyTypes(defaults, file map[string]EnemyTypeConfig) map[string]EnemyTypeConfig {
	out := make(map[string]EnemyTypeConfig, len(defaults)+len(file))
	for name, t := range defaults {
		out[strings.ToLower(name)] = t
	}
	for name, t := range file {
		out[strings.ToLower(name)] = t
	}
	return out
}

// setDefaults registers the scalar keys so environment overrides apply to
// them even when the file omits them.
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("sim.tick_rate", d.Sim.TickRate)
	v.SetDefault("sim.tile_size", d.Sim.TileSize)
	v.SetDefault("sim.arena_width", d.Sim.ArenaWidth)
	v.SetDefault("sim.arena_height", d.Sim.ArenaHeight)
	v.SetDefault("sim.area_id", d.Sim.AreaID)
	v.SetDefault("sim.level_path", d.Sim.LevelPath)
	v.SetDefault("sim.catalog_path", d.Sim.CatalogPath)
	v.SetDefault("sim.script_dir", d.Sim.ScriptDir)
	v.SetDefault("sim.seed", d.Sim.Seed)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)

	v.SetDefault("player.health", d.Player.Health)
	v.SetDefault("player.default_attack", d.Player.DefaultAttack)
	v.SetDefault("player.weapon", d.Player.Weapon)

	v.SetDefault("combat.player_invulnerable_ms", d.Combat.PlayerInvulnerableMs)
	v.SetDefault("combat.enemy_invulnerable_ms", d.Combat.EnemyInvulnerableMs)
	v.SetDefault("combat.enemy_hit_stun_ms", d.Combat.EnemyHitStunMs)
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if c.Player.Health < 1 {
		errs = append(errs, fmt.Sprintf("player.health must be >= 1, got %d", c.Player.Health))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, "player.width and player.height must be > 0")
	}
	if err := validateRolls(c.Player.DamageRolls); err != nil {
		errs = append(errs, "player."+err.Error())
	}
	if _, ok := c.Enemy.EnemyType(c.Enemy.DefaultType); !ok {
		errs = append(errs, fmt.Sprintf("enemy.default_type %q is not a configured enemy type", c.Enemy.DefaultType))
	}
	for name, t := range c.Enemy.Types {
		if err := validateEnemyType(name, t); err != nil {
			errs = append(errs, err.Error())
		}
	}
	if c.Enemy.OrbitFlipMinMs > c.Enemy.OrbitFlipMaxMs {
		errs = append(errs, "enemy.orbit_flip_min_ms must be <= enemy.orbit_flip_max_ms")
	}
	if c.Enemy.StrafeFlipMinMs > c.Enemy.StrafeFlipMaxMs {
		errs = append(errs, "enemy.strafe_flip_min_ms must be <= enemy.strafe_flip_max_ms")
	}
	if c.Combat.EnemyInvulnerableMs < 0 || c.Combat.EnemyHitStunMs < 0 || c.Combat.PlayerInvulnerableMs < 0 {
		errs = append(errs, "combat invulnerability and hit-stun windows must be >= 0")
	}
	if c.Sim.TickRate < 1 {
		errs = append(errs, fmt.Sprintf("sim.tick_rate must be >= 1, got %d", c.Sim.TickRate))
	}
	if c.Sim.TileSize <= 0 {
		errs = append(errs, fmt.Sprintf("sim.tile_size must be > 0, got %v", c.Sim.TileSize))
	}
	if c.Sim.AreaID == "" {
		errs = append(errs, "sim.area_id must not be empty")
	}
	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateEnemyType(name string, t EnemyTypeConfig) error {
	var errs []string
	if t.Health < 1 {
		errs = append(errs, "health must be >= 1")
	}
	if t.AttackRange < 0 || t.AggroRange < 0 || t.Speed < 0 {
		errs = append(errs, "ranges and speed must be >= 0")
	}
	if t.AttackCooldownMs < 0 || t.AttackWindupMs < 0 || t.AttackRecoveryMs < 0 || t.RespawnDelayMs < 0 {
		errs = append(errs, "timings must be >= 0")
	}
	if t.Width <= 0 || t.Height <= 0 {
		errs = append(errs, "width and height must be > 0")
	}
	if err := validateRolls(t.DamageRolls); err != nil {
		errs = append(errs, err.Error())
	}
	if len(errs) > 0 {
		return fmt.Errorf("enemy.types.%s: %s", name, strings.Join(errs, ", "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

// validateRolls rejects buckets the damage resolver would silently skip.
func validateRolls(rolls attack.WeightedTable) error {
	for i, r := range rolls {
		if r.Value < 0 || r.Weight <= 0 {
			return fmt.Errorf("damage_rolls[%d] needs value >= 0 and weight > 0, got %v/%v", i, r.Value, r.Weight)
		}
	}
	return nil
}
