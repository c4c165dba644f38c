// Package core drives the headless combat simulation: an ECS world with the
// AI, effects and combat systems in fixed order, and a ticker loop.
package core

import (
	"sync"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/collision"
	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	cfg "github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/enemyai"
	"github.com/automoto/doomerang-combat/gamemath"
	"github.com/automoto/doomerang-combat/leveldata"
	"github.com/automoto/doomerang-combat/systems"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/automoto/doomerang-combat/tags"
	"github.com/automoto/doomerang-combat/vfx"
)

// Options configures a Sim. Zero-valued fields take defaults.
type Options struct {
	Logger   *zap.Logger
	Catalog  *attack.Catalog
	Bonus    attack.BonusTables
	Registry *enemyai.Registry
	Rand     attack.Source

	// Levels are spawned in order; the first is where the player starts.
	// With none, a walled arena is built from the sim config.
	Levels []*leveldata.Level

	CombatHandlers combat.Handlers
	AIHandlers     enemyai.Handlers
}

// Sim owns the ECS world and both engines. Tick and the read accessors may
// be called from different goroutines.
type Sim struct {
	mu sync.Mutex

	ecs     *ecs.ECS
	combat  *combat.Engine
	ai      *enemyai.Engine
	effects vfx.Tracker
	areas   collision.Areas

	player *donburi.Entry
	scene  *donburi.Entry

	lastNow int64
	ticked  bool
	frameMs float64
}

func NewSim(opts Options) *Sim {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Rand == nil {
		opts.Rand = attack.DefaultSource()
	}
	if opts.Bonus == nil {
		opts.Bonus = attack.DefaultBonusTables()
	}

	s := &Sim{
		ecs:     ecs.NewECS(donburi.NewWorld()),
		areas:   collision.Areas{},
		frameMs: 1000 / float64(max(1, cfg.Sim.TickRate)),
	}

	handlers := opts.CombatHandlers
	onVfx := handlers.OnRequestVfx
	handlers.OnRequestVfx = func(kind string, req vfx.Request) {
		s.effects.Push(kind, req)
		if onVfx != nil {
			onVfx(kind, req)
		}
	}

	s.combat = combat.NewEngine(combat.Options{
		Catalog:  opts.Catalog,
		Bonus:    opts.Bonus,
		Handlers: handlers,
		Rand:     opts.Rand,
		Logger:   opts.Logger.Named("combat"),
	})
	s.ai = enemyai.NewEngine(enemyai.Options{
		Registry: opts.Registry,
		Handlers: opts.AIHandlers,
		Rand:     opts.Rand,
		Logger:   opts.Logger.Named("enemyai"),
	})

	s.scene = factory.CreateScene(s.ecs)
	if len(opts.Levels) == 0 {
		_, grid := factory.CreateArena(s.ecs)
		s.areas[cfg.Sim.AreaID] = grid
	}
	for _, level := range opts.Levels {
		_, grid := factory.CreateLevel(s.ecs, level)
		s.areas[level.Name] = grid
	}
	levelEntry, ok := components.Level.First(s.ecs.World)
	if !ok {
		panic("core: no level was created")
	}
	level := components.Level.Get(levelEntry)
	s.player = factory.CreatePlayer(s.ecs, level.AreaID, level.SpawnX, level.SpawnY)

	// AI raises pending strikes that combat lands in the same tick. Effects
	// age before combat so new requests start at this tick's time.
	s.ecs.AddSystem(systems.WithGameplayChecks(systems.NewUpdateEnemyAI(s.ai, s.areas.CollidesAt)))
	s.ecs.AddSystem(systems.NewUpdateEffects(&s.effects))
	s.ecs.AddSystem(systems.WithGameplayChecks(systems.NewUpdateCombat(s.combat)))

	return s
}

// Tick runs one simulation step at now, in absolute milliseconds.
func (s *Sim) Tick(now int64, input components.InputData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dtScale := 1.0
	if s.ticked && now > s.lastNow {
		dtScale = float64(now-s.lastNow) / s.frameMs
	}
	s.lastNow, s.ticked = now, true

	components.Clock.SetValue(s.scene, components.ClockData{Now: now, DtScale: dtScale})
	components.Input.SetValue(s.player, input)
	s.ecs.Update()
}

// SetScene replaces the scene signal read on the next tick.
func (s *Sim) SetScene(scene components.SceneData) {
	s.mu.Lock()
	defer s.mu.Unlock()
	components.Scene.SetValue(s.scene, scene)
}

// Player returns a copy of the player's state.
func (s *Sim) Player() components.AttackerData {
	s.mu.Lock()
	defer s.mu.Unlock()
	return *components.Attacker.Get(s.player)
}

// Enemies returns copies of every enemy, in world order.
func (s *Sim) Enemies() []components.EnemyData {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []components.EnemyData
	components.Enemy.Each(s.ecs.World, func(e *donburi.Entry) {
		out = append(out, *components.Enemy.Get(e))
	})
	return out
}

// NPCs returns copies of every NPC, in world order.
func (s *Sim) NPCs() []components.NPCData {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []components.NPCData
	components.NPC.Each(s.ecs.World, func(e *donburi.Entry) {
		out = append(out, *components.NPC.Get(e))
	})
	return out
}

// Effects returns copies of the effects still playing.
func (s *Sim) Effects() []vfx.Effect {
	s.mu.Lock()
	defer s.mu.Unlock()
	active := s.effects.Active()
	out := make([]vfx.Effect, 0, len(active))
	for _, fx := range active {
		out = append(out, *fx)
	}
	return out
}

// Catalog returns the attack catalog. It is safe to read while ticking.
func (s *Sim) Catalog() *attack.Catalog {
	return s.combat.Catalog()
}

// RegisterAttack adds or replaces a move; the next swing that asks for id
// uses it.
func (s *Sim) RegisterAttack(id string, p *attack.Profile) error {
	return s.combat.Catalog().Register(id, p)
}

// Walls returns the solid rectangles of areaID, read back from the wall
// entities linked to its collision space.
func (s *Sim) Walls(areaID string) []gamemath.Rect {
	s.mu.Lock()
	defer s.mu.Unlock()
	grid, ok := s.areas[areaID]
	if !ok {
		return nil
	}
	var out []gamemath.Rect
	for _, obj := range grid.Space().Objects() {
		wall, ok := obj.Data.(*donburi.Entry)
		if !ok || !wall.Valid() || !wall.HasComponent(tags.Wall) {
			continue
		}
		o := components.Object.Get(wall)
		out = append(out, gamemath.Rect{X: o.X, Y: o.Y, Width: o.W, Height: o.H})
	}
	return out
}

// Update runs fn with exclusive access to the ECS world, for spawning or
// editing entities between ticks.
func (s *Sim) Update(fn func(*ecs.ECS)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.ecs)
}
