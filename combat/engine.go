// Package combat resolves the player's attack lifecycle, hits against
// enemies and NPCs, and enemy strikes against the player.
package combat

import (
	"math"
	"strconv"

	"go.uber.org/zap"

	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/gamemath"
	"github.com/automoto/doomerang-combat/vfx"
)

// AttackInput is the player's attack request for one tick.
type AttackInput struct {
	Pressed  bool
	AttackID string // empty selects the equipped profile
}

// Frame is everything one combat tick reads and mutates. Entity slices are
// owned by the caller and mutated in place.
type Frame struct {
	Now      int64
	AreaID   string
	Scene    components.SceneData
	TileSize float64

	Player  *components.AttackerData
	Enemies []*components.EnemyData
	NPCs    []*components.NPCData

	Attack AttackInput
}

// Options configures an Engine. Zero-valued fields take defaults: the built-in
// catalog, no weapon bonuses, a clock-seeded random source, a nop logger and
// the global combat and NPC tuning.
type Options struct {
	Catalog  *attack.Catalog
	Bonus    attack.BonusTables
	Handlers Handlers
	Rand     attack.Source
	Logger   *zap.Logger
	Config   *config.CombatConfig
	NPC      *config.NPCConfig
}

// Engine owns the player's swing state machine and per-swing hit tracking.
// It is not safe for concurrent use; call Update once per tick.
type Engine struct {
	catalog  *attack.Catalog
	bonus    attack.BonusTables
	handlers Handlers
	fallback bool // respawn the player when no defeat handler is installed
	rand     attack.Source
	logger   *zap.Logger
	cfg      config.CombatConfig
	npc      config.NPCConfig

	hitEnemies map[string]struct{}
	hitNPCs    map[string]struct{}
}

func NewEngine(opts Options) *Engine {
	e := &Engine{
		catalog:    opts.Catalog,
		bonus:      opts.Bonus,
		handlers:   opts.Handlers.withDefaults(),
		fallback:   opts.Handlers.OnPlayerDefeated == nil,
		rand:       opts.Rand,
		logger:     opts.Logger,
		cfg:        config.Combat,
		npc:        config.NPC,
		hitEnemies: make(map[string]struct{}),
		hitNPCs:    make(map[string]struct{}),
	}
	if e.catalog == nil {
		e.catalog = attack.DefaultCatalog(opts.Logger)
	}
	if e.rand == nil {
		e.rand = attack.DefaultSource()
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if opts.Config != nil {
		e.cfg = *opts.Config
	}
	if opts.NPC != nil {
		e.npc = *opts.NPC
	}
	return e
}

// Catalog returns the catalog swings resolve against. Registering on it at
// runtime is how new moves are unlocked.
func (e *Engine) Catalog() *attack.Catalog {
	return e.catalog
}

// Update runs one combat tick: gate on the scene, start or advance the
// player's swing, detect hits while active, then resolve enemy strikes.
// It panics when f or f.Player is nil.
func (e *Engine) Update(f *Frame) {
	if f == nil || f.Player == nil {
		panic("combat: Update requires a frame with a player")
	}
	p := f.Player

	if !f.Scene.CombatAllowed() {
		e.reset(f)
		return
	}

	started := f.Attack.Pressed && e.tryStart(f)
	if !started {
		e.advance(p, f.Now)
	}

	if p.AttackState == components.AttackActive && f.Now < p.AttackActiveUntil {
		e.detectHits(f)
	}

	e.resolveEnemyStrikes(f)
}

// reset is the hard stop used when combat is disallowed.
func (e *Engine) reset(f *Frame) {
	p := f.Player
	p.AttackState = components.AttackIdle
	p.ActiveAttackID = ""
	e.clearHits()

	for _, en := range f.Enemies {
		if en != nil && en.World == f.AreaID {
			en.PendingStrike = false
		}
	}
}

func (e *Engine) clearHits() {
	clear(e.hitEnemies)
	clear(e.hitNPCs)
}

// tryStart begins a swing when the player is idle or recovering and the
// resolved profile's cooldown has elapsed.
func (e *Engine) tryStart(f *Frame) bool {
	p := f.Player
	if p.AttackState != components.AttackIdle && p.AttackState != components.AttackRecovery {
		return false
	}

	id, profile, ok := e.catalog.Resolve(f.Attack.AttackID, p.EquippedAttackID)
	if !ok {
		e.logger.Debug("attack dropped, no profile available",
			zap.String("requested", f.Attack.AttackID),
			zap.String("equipped", p.EquippedAttackID),
		)
		return false
	}
	if p.HasAttacked && f.Now-p.LastAttackAt < profile.CooldownMs {
		return false
	}

	now := f.Now
	p.AttackState = components.AttackWindup
	p.ActiveAttackID = id
	p.AttackStartedAt = now
	p.AttackActiveAt = now + profile.WindupMs
	p.AttackActiveUntil = p.AttackActiveAt + profile.ActiveMs
	p.AttackRecoveryUntil = now + profile.DurationMs()
	p.LastAttackAt = now
	p.HasAttacked = true
	e.clearHits()

	e.handlers.OnPlayerAttackStarted(AttackStarted{Attacker: p, AttackID: id, Profile: profile, Now: now})

	origin := profile.Origin(p.Body())
	kind := profile.Vfx.Type
	if kind == "" {
		kind = id
	}
	duration := profile.Vfx.DurationMs
	if duration <= 0 {
		duration = profile.WindupMs
	}
	e.handlers.OnRequestVfx(kind, vfx.Request{
		X:          origin.X,
		Y:          origin.Y,
		Size:       profile.HitRadius + profile.Vfx.SizeOffset,
		DurationMs: duration,
	})
	return true
}

// advance moves the swing forward at most one phase per tick so every phase
// is observed in order.
func (e *Engine) advance(p *components.AttackerData, now int64) {
	switch p.AttackState {
	case components.AttackWindup:
		if now >= p.AttackActiveAt {
			p.AttackState = components.AttackActive
		}
	case components.AttackActive:
		if now >= p.AttackActiveUntil {
			p.AttackState = components.AttackRecovery
		}
	case components.AttackRecovery:
		if now >= p.AttackRecoveryUntil {
			p.AttackState = components.AttackIdle
			p.ActiveAttackID = ""
			e.clearHits()
		}
	}
}

// activeProfile returns the profile of the swing in progress. A profile
// overwritten mid-swing only changes reach and damage, never the windows.
func (e *Engine) activeProfile(p *components.AttackerData) (*attack.Profile, bool) {
	_, profile, ok := e.catalog.Resolve(p.ActiveAttackID, p.EquippedAttackID)
	return profile, ok
}

func (e *Engine) detectHits(f *Frame) {
	p := f.Player
	profile, ok := e.activeProfile(p)
	if !ok {
		return
	}
	center := profile.Center(p.Body())

	for _, en := range f.Enemies {
		if en == nil || en.World != f.AreaID || en.Dead || en.Invulnerable(f.Now) {
			continue
		}
		if _, hit := e.hitEnemies[en.ID]; hit {
			continue
		}
		if center.Distance(en.Center()) > profile.HitRadius+en.Width*e.cfg.BodyWidthFactor {
			continue
		}
		e.hitEnemies[en.ID] = struct{}{}
		e.damageEnemy(f, profile, en)
	}

	for _, n := range f.NPCs {
		if n == nil || n.World != f.AreaID {
			continue
		}
		if _, hit := e.hitNPCs[n.ID]; hit {
			continue
		}
		if center.Distance(n.Center()) > profile.HitRadius+n.Width*e.cfg.BodyWidthFactor {
			continue
		}
		e.hitNPCs[n.ID] = struct{}{}
		e.flinchNPC(f, n)
	}
}

func (e *Engine) damageEnemy(f *Frame, profile *attack.Profile, en *components.EnemyData) {
	p, now := f.Player, f.Now

	damage := attack.ResolveWeightedDamage(p.DamageRolls, float64(profile.Damage), e.rand) +
		e.bonus.Resolve(p.Equipment, e.rand)

	en.HP = max(0, en.HP-damage)
	en.InvulnerableUntil = now + e.cfg.EnemyInvulnerableMs
	en.HitStunUntil = now + e.cfg.EnemyHitStunMs
	en.State = components.EnemyHitStun
	en.PendingStrike = false

	e.impactVfx(p.Center(), en.Center(), en.Height, damage, vfx.ColorEnemyDamage)

	e.handlers.OnEntityDamaged(EntityDamaged{Source: p, Target: en, Damage: damage, Now: now})
	e.handlers.OnHitConfirmed(HitConfirmed{Type: HitEntityDamaged, Now: now, Damage: damage, Player: p, Enemy: en})

	if en.HP > 0 {
		return
	}
	en.Dead = true
	en.State = components.EnemyDead
	en.RespawnAt = now + en.RespawnDelayMs
	c := en.Center()
	e.handlers.OnRequestVfx(vfx.KindDefeat, vfx.Request{
		X:          c.X,
		Y:          c.Y,
		Size:       math.Max(en.Width, en.Height),
		DurationMs: e.cfg.DefeatMs,
	})
	e.handlers.OnEntityDefeated(en, now)
}

func (e *Engine) flinchNPC(f *Frame, n *components.NPCData) {
	now := f.Now
	n.HitShakeUntil = now + e.npc.HitShakeMs
	n.HitBubbleUntil = now + e.npc.HitBubbleMs
	n.BubbleText = n.NextReaction(e.npc.DefaultReaction)

	c := n.Center()
	e.handlers.OnRequestVfx(vfx.KindReaction, vfx.Request{
		X:          c.X,
		Y:          c.Y - n.Height/2,
		Size:       n.Width,
		DurationMs: e.npc.HitBubbleMs,
		Text:       n.BubbleText,
	})
	e.handlers.OnHitConfirmed(HitConfirmed{Type: HitNPC, Now: now, Player: f.Player, NPC: n})
}

// impactVfx places a spark on the attacker→target line near the target's
// edge and a damage number above the target.
func (e *Engine) impactVfx(from, to gamemath.Vec2, targetHeight float64, damage int, color string) {
	dir, dist := gamemath.Normalize(to.Sub(from))
	spark := from.Add(dir.MulScalar(dist * 0.7))
	e.handlers.OnRequestVfx(vfx.KindSpark, vfx.Request{
		X:          spark.X,
		Y:          spark.Y,
		Size:       10,
		DurationMs: e.cfg.SparkMs,
	})

	number := to.Add(dir.MulScalar(4))
	e.handlers.OnRequestVfx(vfx.KindDamageNumber, vfx.Request{
		X:          number.X,
		Y:          number.Y - targetHeight/2,
		Size:       12,
		DurationMs: e.cfg.DamageNumberMs,
		Text:       strconv.Itoa(damage),
		Color:      color,
	})
}

// strike returns where an enemy's strike is centered, how far it reaches and
// its fallback damage. Enemies without a registered AttackID use their
// innate range and damage.
func (e *Engine) strike(en *components.EnemyData) (gamemath.Vec2, float64, int) {
	if en.AttackID != "" {
		if profile, ok := e.catalog.Get(en.AttackID); ok {
			body := attack.Body{Rect: en.Rect(), Facing: en.Facing}
			return profile.Center(body), profile.HitRadius, profile.Damage
		}
	}
	return en.Center(), en.AttackRange, en.Damage
}

func (e *Engine) resolveEnemyStrikes(f *Frame) {
	p, now := f.Player, f.Now

	for _, en := range f.Enemies {
		if en == nil || !en.PendingStrike || en.World != f.AreaID {
			continue
		}
		en.PendingStrike = false
		if en.Dead {
			continue
		}

		center, radius, fallback := e.strike(en)
		if center.Distance(p.Center()) > radius+f.TileSize*e.cfg.StrikeTileReach {
			continue
		}
		if p.Invulnerable(now) {
			continue
		}

		damage := attack.ResolveWeightedDamage(en.DamageRolls, float64(fallback), e.rand)
		p.HP = max(0, p.HP-damage)
		p.InvulnerableUntil = now + e.cfg.PlayerInvulnerableMs

		e.impactVfx(en.Center(), p.Center(), p.Height, damage, vfx.ColorPlayerDamage)

		defeated := p.HP == 0
		if defeated && e.fallback {
			e.respawnPlayer(p, en)
		}

		e.handlers.OnPlayerDamaged(PlayerDamaged{Source: en, Target: p, Damage: damage, Now: now})
		e.handlers.OnHitConfirmed(HitConfirmed{Type: HitPlayerDamaged, Now: now, Damage: damage, Player: p, Enemy: en})

		if defeated && !e.fallback {
			e.handlers.OnPlayerDefeated(PlayerDefeated{Player: p, Source: en, Now: now})
		}
	}
}

// respawnPlayer is the standalone stand-in for a defeat handler: full heal,
// back to spawn, swing cancelled.
func (e *Engine) respawnPlayer(p *components.AttackerData, source *components.EnemyData) {
	e.logger.Warn("player defeated with no defeat handler installed, respawning at spawn",
		zap.String("player", p.ID),
		zap.String("source", source.ID),
	)
	p.HP = p.MaxHP
	p.X, p.Y = p.SpawnX, p.SpawnY
	p.AttackState = components.AttackIdle
	p.ActiveAttackID = ""
	e.clearHits()

	c := p.Center()
	e.handlers.OnRequestVfx(vfx.KindTransition, vfx.Request{
		X:          c.X,
		Y:          c.Y,
		Size:       math.Max(p.Width, p.Height),
		DurationMs: e.cfg.TransitionMs,
	})
}
