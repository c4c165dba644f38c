package config

import (
	"strings"

	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/attack"
)

// Default is the only ECS layer the headless simulation uses.
const Default ecs.LayerID = 0

// PlayerConfig contains all player-related configuration values
type PlayerConfig struct {
	Health        int     `mapstructure:"health"`
	Width         float64 `mapstructure:"width"`
	Height        float64 `mapstructure:"height"`
	DefaultAttack string  `mapstructure:"default_attack"`
	Weapon        string  `mapstructure:"weapon"`

	// DamageRolls replaces the attack profile's damage when non-empty.
	DamageRolls attack.WeightedTable `mapstructure:"damage_rolls"`
}

// EnemyTypeConfig contains configuration for specific enemy types
type EnemyTypeConfig struct {
	Name     string  `mapstructure:"name"`
	Behavior string  `mapstructure:"behavior"`
	AttackID string  `mapstructure:"attack_id"` // optional catalog profile for strikes
	Health   int     `mapstructure:"health"`
	Damage   int     `mapstructure:"damage"`
	Speed    float64 `mapstructure:"speed"`

	DamageRolls attack.WeightedTable `mapstructure:"damage_rolls"` // strike damage table, Damage is the fallback

	AttackRange float64 `mapstructure:"attack_range"`
	AggroRange  float64 `mapstructure:"aggro_range"`

	AttackCooldownMs int64 `mapstructure:"attack_cooldown_ms"`
	AttackWindupMs   int64 `mapstructure:"attack_windup_ms"`
	AttackRecoveryMs int64 `mapstructure:"attack_recovery_ms"`

	RespawnDelayMs int64 `mapstructure:"respawn_delay_ms"`
	RespawnEnabled bool  `mapstructure:"respawn_enabled"`

	// Dimensions
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

// EnemyConfig contains enemy system configuration
type EnemyConfig struct {
	// Default enemy type configurations
	Types       map[string]EnemyTypeConfig `mapstructure:"types"`
	DefaultType string                     `mapstructure:"default_type"`

	// AI behavior constants
	ChaseHysteresis float64 `mapstructure:"chase_hysteresis"` // fraction of attack range to re-enter chase
	ReturnDeadzone  float64 `mapstructure:"return_deadzone"`  // spawn displacement ignored by return-to-home
	ReturnSpeed     float64 `mapstructure:"return_speed"`     // multiplier on speed when walking home
	MinStep         float64 `mapstructure:"min_step"`         // targets closer than this are reached

	OrbitGateFactor     float64 `mapstructure:"orbit_gate_factor"`
	OrbitStandoffFactor float64 `mapstructure:"orbit_standoff_factor"`
	OrbitTangentFactor  float64 `mapstructure:"orbit_tangent_factor"`
	OrbitFlipMinMs      int64   `mapstructure:"orbit_flip_min_ms"`
	OrbitFlipMaxMs      int64   `mapstructure:"orbit_flip_max_ms"`

	ZoneInnerTiles      float64 `mapstructure:"zone_inner_tiles"`
	ZoneInnerRangeRatio float64 `mapstructure:"zone_inner_range_ratio"`
	ZoneOuterRangeRatio float64 `mapstructure:"zone_outer_range_ratio"`
	ZoneAggroFactor     float64 `mapstructure:"zone_aggro_factor"`
	StrafeFlipMinMs     int64   `mapstructure:"strafe_flip_min_ms"`
	StrafeFlipMaxMs     int64   `mapstructure:"strafe_flip_max_ms"`
}

// CombatConfig contains combat-related configuration values
type CombatConfig struct {
	// Enemy reaction to a landed hit
	EnemyInvulnerableMs int64 `mapstructure:"enemy_invulnerable_ms"`
	EnemyHitStunMs      int64 `mapstructure:"enemy_hit_stun_ms"`

	// Hit test padding: a target's width times this widens the hit circle
	BodyWidthFactor float64 `mapstructure:"body_width_factor"`
	// Enemy strikes reach this many tiles past their strike radius
	StrikeTileReach float64 `mapstructure:"strike_tile_reach"`

	PlayerInvulnerableMs int64 `mapstructure:"player_invulnerable_ms"`

	// Effect timings (ms)
	DamageNumberMs int64 `mapstructure:"damage_number_ms"`
	SparkMs        int64 `mapstructure:"spark_ms"`
	DefeatMs       int64 `mapstructure:"defeat_ms"`
	TransitionMs   int64 `mapstructure:"transition_ms"`
}

// NPCConfig contains the cosmetic flinch tuning for NPCs struck by the player.
type NPCConfig struct {
	Width           float64 `mapstructure:"width"`
	Height          float64 `mapstructure:"height"`
	HitShakeMs      int64   `mapstructure:"hit_shake_ms"`
	HitBubbleMs     int64   `mapstructure:"hit_bubble_ms"`
	DefaultReaction string  `mapstructure:"default_reaction"`
}

// SimConfig contains the headless simulation loop settings.
type SimConfig struct {
	TickRate    int     `mapstructure:"tick_rate"`
	TileSize    float64 `mapstructure:"tile_size"`
	ArenaWidth  float64 `mapstructure:"arena_width"`
	ArenaHeight float64 `mapstructure:"arena_height"`
	AreaID      string  `mapstructure:"area_id"`
	LevelPath   string  `mapstructure:"level_path"`
	CatalogPath string  `mapstructure:"catalog_path"`
	ScriptDir   string  `mapstructure:"script_dir"`
	Seed        uint64  `mapstructure:"seed"`
}

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// Config is the top-level document Load reads.
type Config struct {
	Player  PlayerConfig  `mapstructure:"player"`
	Enemy   EnemyConfig   `mapstructure:"enemy"`
	Combat  CombatConfig  `mapstructure:"combat"`
	NPC     NPCConfig     `mapstructure:"npc"`
	Sim     SimConfig     `mapstructure:"sim"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// Global configuration instances
var Player PlayerConfig
var Enemy EnemyConfig
var Combat CombatConfig
var NPC NPCConfig
var Sim SimConfig
var Logging LoggingConfig

func init() {
	Apply(Defaults())
}

// Apply replaces the global configuration instances with c.
func Apply(c Config) {
	Player = c.Player
	Enemy = c.Enemy
	Combat = c.Combat
	NPC = c.NPC
	Sim = c.Sim
	Logging = c.Logging
}

// Current snapshots the global configuration instances.
func Current() Config {
	return Config{
		Player:  Player,
		Enemy:   Enemy,
		Combat:  Combat,
		NPC:     NPC,
		Sim:     Sim,
		Logging: Logging,
	}
}

// Defaults returns the tuned values the game ships with.
func Defaults() Config {
	guardType := EnemyTypeConfig{
		Name:             "Guard",
		Behavior:         "meleeChaser",
		Health:           60,
		Damage:           10,
		Speed:            1.6,
		AttackRange:      40,
		AggroRange:       180,
		AttackCooldownMs: 1100,
		AttackWindupMs:   380,
		AttackRecoveryMs: 420,
		RespawnDelayMs:   5000,
		RespawnEnabled:   true,
		Width:            32,
		Height:           32,
	}

	lightGuardType := EnemyTypeConfig{
		Name:             "LightGuard",
		Behavior:         "orbitStriker",
		Health:           30,
		Damage:           6,
		Speed:            2.2,
		AttackRange:      36,
		AggroRange:       220,
		AttackCooldownMs: 900,
		AttackWindupMs:   300,
		AttackRecoveryMs: 350,
		RespawnDelayMs:   4000,
		RespawnEnabled:   true,
		Width:            28,
		Height:           28,
	}

	heavyGuardType := EnemyTypeConfig{
		Name:             "HeavyGuard",
		Behavior:         "meleeChaser",
		AttackID:         "heavySlam",
		Health:           100,
		Damage:           18,
		Speed:            1.1,
		AttackRange:      44,
		AggroRange:       150,
		AttackCooldownMs: 1800,
		AttackWindupMs:   650,
		AttackRecoveryMs: 700,
		RespawnDelayMs:   8000,
		RespawnEnabled:   true,
		Width:            40,
		Height:           40,
		DamageRolls: attack.WeightedTable{
			{Value: 14, Weight: 1},
			{Value: 18, Weight: 2},
			{Value: 24, Weight: 1},
		},
	}

	spearmanType := EnemyTypeConfig{
		Name:             "Spearman",
		Behavior:         "zoneKeeper",
		Health:           45,
		Damage:           9,
		Speed:            1.8,
		AttackRange:      72,
		AggroRange:       200,
		AttackCooldownMs: 1300,
		AttackWindupMs:   450,
		AttackRecoveryMs: 500,
		RespawnDelayMs:   6000,
		RespawnEnabled:   true,
		Width:            30,
		Height:           30,
	}

	return Config{
		Player: PlayerConfig{
			Health:        100,
			Width:         24,
			Height:        32,
			DefaultAttack: "slash",
		},
		Enemy: EnemyConfig{
			Types: map[string]EnemyTypeConfig{
				"Guard":      guardType,
				"LightGuard": lightGuardType,
				"HeavyGuard": heavyGuardType,
				"Spearman":   spearmanType,
			},
			DefaultType: "Guard",

			ChaseHysteresis: 0.7,
			ReturnDeadzone:  6,
			ReturnSpeed:     0.8,
			MinStep:         0.5,

			OrbitGateFactor:     0.95,
			OrbitStandoffFactor: 0.85,
			OrbitTangentFactor:  0.9,
			OrbitFlipMinMs:      850,
			OrbitFlipMaxMs:      1550,

			ZoneInnerTiles:      1.2,
			ZoneInnerRangeRatio: 0.58,
			ZoneOuterRangeRatio: 1.04,
			ZoneAggroFactor:     1.15,
			StrafeFlipMinMs:     1400,
			StrafeFlipMaxMs:     2600,
		},
		Combat: CombatConfig{
			EnemyInvulnerableMs:  180,
			EnemyHitStunMs:       230,
			BodyWidthFactor:      0.42,
			StrikeTileReach:      0.25,
			PlayerInvulnerableMs: 650,
			DamageNumberMs:       700,
			SparkMs:              160,
			DefeatMs:             420,
			TransitionMs:         500,
		},
		NPC: NPCConfig{
			Width:           24,
			Height:          32,
			HitShakeMs:      260,
			HitBubbleMs:     1200,
			DefaultReaction: "Hey! Watch it!",
		},
		Sim: SimConfig{
			TickRate:    60,
			TileSize:    32,
			ArenaWidth:  640,
			ArenaHeight: 480,
			AreaID:      "arena",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// EnemyType looks up an enemy preset by name, ignoring case.
func (e EnemyConfig) EnemyType(name string) (EnemyTypeConfig, bool) {
	if t, ok := e.Types[name]; ok {
		return t, true
	}
	for key, t := range e.Types {
		if strings.EqualFold(key, name) {
			return t, true
		}
	}
	return EnemyTypeConfig{}, false
}
