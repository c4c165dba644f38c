// Package enemyai runs each enemy's lifecycle (dead, hit-stunned, winding
// up, recovering) and hands free enemies to a pluggable Behavior.
package enemyai

import (
	"go.uber.org/zap"

	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
)

// Frame is everything one AI tick reads and mutates. Entity slices are owned
// by the caller and mutated in place.
type Frame struct {
	Now      int64
	Area     Area
	Scene    components.SceneData
	TileSize float64
	DtScale  float64

	CollidesAt CollidesFunc

	Player  *components.AttackerData
	Enemies []*components.EnemyData
}

// Options configures an Engine. Zero-valued fields take defaults.
type Options struct {
	Registry *Registry
	Handlers Handlers
	Rand     attack.Source
	Logger   *zap.Logger
	Tuning   *config.EnemyConfig
}

// Engine advances enemy lifecycles and runs behaviors. It is not safe for
// concurrent use; call Update once per tick, before the combat engine.
type Engine struct {
	registry *Registry
	handlers Handlers
	rand     attack.Source
	logger   *zap.Logger
	tuning   config.EnemyConfig

	// unknown behavior keys already logged, to keep fallback logs to one per key
	warned map[string]struct{}
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		registry: opts.Registry,
		handlers: opts.Handlers.withDefaults(),
		rand:     opts.Rand,
		logger:   opts.Logger,
		tuning:   config.Enemy,
		warned:   make(map[string]struct{}),
	}
	if e.registry == nil {
		e.registry = NewRegistry()
	}
	if e.rand == nil {
		e.rand = attack.DefaultSource()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if opts.Tuning != nil {
		e.tuning = *opts.Tuning
	}
	return e
}

// Registry returns the behavior registry enemies resolve against.
func (e *Engine) Registry() *Registry {
	return e.registry
}

// Update runs one AI tick for every enemy in f.Area. It panics when f or
// f.Player is nil.
func (e *Engine) Update(f *Frame) {
	if f == nil || f.Player == nil {
		panic("enemyai: Update requires a frame with a player")
	}
	canFight := f.Scene.CombatAllowed()

	for _, en := range f.Enemies {
		if en == nil || en.World != f.Area.ID {
			continue
		}
		if !e.advanceLifecycle(en, f.Now) {
			continue
		}
		if !canFight {
			en.State = components.EnemyIdle
			continue
		}
		e.runBehavior(f, en)
	}
}

// advanceLifecycle applies the timer-gated states and reports whether the
// enemy is free to run its behavior this tick.
func (e *Engine) advanceLifecycle(en *components.EnemyData, now int64) bool {
	switch {
	case en.Dead:
		if !en.RespawnEnabled || now < en.RespawnAt {
			return false
		}
		en.Respawn()
		e.handlers.OnEnemyRespawned(en, now)
		return false

	case en.State == components.EnemyHitStun:
		if now < en.HitStunUntil {
			return false
		}
		en.State = components.EnemyIdle
		return true

	case en.State == components.EnemyAttackWindup:
		if now >= en.AttackStrikeAt {
			en.PendingStrike = true
			en.State = components.EnemyRecover
			en.RecoverUntil = now + en.AttackRecoveryMs
		}
		return false

	case en.State == components.EnemyRecover:
		if now < en.RecoverUntil {
			return false
		}
		en.State = components.EnemyIdle
		return true
	}
	return true
}

func (e *Engine) runBehavior(f *Frame, en *components.EnemyData) {
	b, ok := e.registry.Resolve(en.BehaviorType)
	if !ok {
		if _, seen := e.warned[en.BehaviorType]; !seen {
			e.warned[en.BehaviorType] = struct{}{}
			e.logger.Debug("unknown enemy behavior, using default",
				zap.String("behavior", en.BehaviorType),
				zap.String("enemy", en.ID),
				zap.String("default", DefaultBehavior),
			)
		}
	}

	ctx := &Context{
		Now:        f.Now,
		Enemy:      en,
		Player:     f.Player,
		CanFight:   true,
		CollidesAt: f.CollidesAt,
		Area:       f.Area,
		TileSize:   f.TileSize,
		DtScale:    f.DtScale,
		Rand:       e.rand,
		Tuning:     &e.tuning,
		onWindup:   e.handlers.OnEnemyAttackWindupStarted,
	}
	b.Decide(ctx)
}
