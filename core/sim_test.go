package core_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/core"
	"github.com/automoto/doomerang-combat/gamemath"
	"github.com/automoto/doomerang-combat/leveldata"
	"github.com/automoto/doomerang-combat/systems/factory"
	"github.com/automoto/doomerang-combat/vfx"
)

type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

// newArenaSim builds the default arena with a Guard just right of the
// player's slash reach. The player spawns at (64, 224), 24x32.
func newArenaSim(t *testing.T, handlers combat.Handlers) *core.Sim {
	t.Helper()
	sim := core.NewSim(core.Options{Rand: fixedSource(0.5), CombatHandlers: handlers})
	sim.Update(func(e *ecs.ECS) {
		factory.CreateEnemy(e, "arena", leveldata.EnemySpawn{X: 94, Y: 224, EnemyType: "Guard"})
	})
	return sim
}

func TestSim_PlayerSpawnsInArena(t *testing.T) {
	sim := core.NewSim(core.Options{})
	p := sim.Player()
	assert.Equal(t, "arena", p.World)
	assert.Equal(t, factory.PlayerID, p.ID)
	assert.Equal(t, 64.0, p.X)
	assert.Equal(t, 224.0, p.Y)
	assert.Equal(t, 100, p.HP)
	assert.Equal(t, attack.Slash, p.EquippedAttackID)
}

func TestSim_SwingInterruptsEnemyWindup(t *testing.T) {
	var damaged []combat.EntityDamaged
	sim := newArenaSim(t, combat.Handlers{
		OnEntityDamaged: func(ev combat.EntityDamaged) { damaged = append(damaged, ev) },
	})

	sim.Tick(1000, components.InputData{AttackPressed: true})
	en := sim.Enemies()[0]
	assert.Equal(t, components.EnemyAttackWindup, en.State, "the guard is in range and winds up first")
	assert.Equal(t, components.AttackWindup, sim.Player().AttackState)

	for now := int64(1016); now <= 1200; now += 16 {
		sim.Tick(now, components.InputData{})
	}

	require.Len(t, damaged, 1)
	en = sim.Enemies()[0]
	assert.Equal(t, 40, en.HP)
	assert.Equal(t, components.EnemyHitStun, en.State)
	assert.False(t, en.PendingStrike)
	assert.Equal(t, 100, sim.Player().HP, "the stunned guard never strikes")

	var kinds []string
	for _, fx := range sim.Effects() {
		kinds = append(kinds, fx.Kind)
	}
	assert.Contains(t, kinds, vfx.KindDamageNumber)
}

func TestSim_UnansweredWindupLands(t *testing.T) {
	var hits []combat.PlayerDamaged
	sim := newArenaSim(t, combat.Handlers{
		OnPlayerDamaged: func(ev combat.PlayerDamaged) { hits = append(hits, ev) },
	})

	for now := int64(1000); now <= 1400; now += 16 {
		sim.Tick(now, components.InputData{})
	}
	require.Len(t, hits, 1)
	assert.Equal(t, 90, sim.Player().HP)
	assert.Equal(t, components.EnemyRecover, sim.Enemies()[0].State)
}

func TestSim_PausedSceneFreezesCombat(t *testing.T) {
	sim := newArenaSim(t, combat.Handlers{})
	sim.Tick(1000, components.InputData{AttackPressed: true})

	sim.SetScene(components.SceneData{GameState: components.GameStatePaused})
	sim.Tick(1016, components.InputData{AttackPressed: true})
	assert.Equal(t, components.AttackIdle, sim.Player().AttackState)

	// The guard's windup still matures, but its strike is dropped.
	for now := int64(1032); now <= 1400; now += 16 {
		sim.Tick(now, components.InputData{})
	}
	assert.Equal(t, 100, sim.Player().HP)
	assert.False(t, sim.Enemies()[0].PendingStrike)
}

func TestSim_Levels(t *testing.T) {
	level := &leveldata.Level{
		Name: "cellar", Width: 320, Height: 256, TileSize: 32,
		SolidRects:   []leveldata.SolidRect{{X: 0, Y: 0, W: 32, H: 32}},
		PlayerSpawns: []leveldata.SpawnPoint{{X: 64, Y: 64}},
		EnemySpawns: []leveldata.EnemySpawn{
			{X: 200, Y: 64, EnemyType: "Spearman"},
			{X: 200, Y: 160, EnemyType: "Dragon", Behavior: "orbitStriker", NoRespawn: true},
		},
		NPCSpawns: []leveldata.NPCSpawn{{X: 100, Y: 160, Name: "Miller"}},
	}
	sim := core.NewSim(core.Options{Levels: []*leveldata.Level{level}})

	assert.Equal(t, "cellar", sim.Player().World)
	enemies := sim.Enemies()
	require.Len(t, enemies, 2)
	assert.Equal(t, "zoneKeeper", enemies[0].BehaviorType)
	assert.Equal(t, "Guard", enemies[1].TypeName, "unknown types use the default preset")
	assert.Equal(t, "orbitStriker", enemies[1].BehaviorType)
	assert.False(t, enemies[1].RespawnEnabled)
	assert.NotEqual(t, enemies[0].ID, enemies[1].ID)

	npcs := sim.NPCs()
	require.Len(t, npcs, 1)
	assert.Equal(t, "Miller", npcs[0].Name)
	assert.Equal(t, "cellar", npcs[0].World)
}

func TestSim_DamageRollsFromConfig(t *testing.T) {
	saved := config.Current()
	t.Cleanup(func() { config.Apply(saved) })
	c := config.Defaults()
	c.Player.DamageRolls = attack.WeightedTable{{Value: 3, Weight: 1}}
	config.Apply(c)

	sim := newArenaSim(t, combat.Handlers{})
	sim.Update(func(e *ecs.ECS) {
		factory.CreateEnemy(e, "arena", leveldata.EnemySpawn{X: 400, Y: 64, EnemyType: "HeavyGuard"})
	})
	assert.Equal(t, c.Player.DamageRolls, sim.Player().DamageRolls)

	sim.Tick(1000, components.InputData{AttackPressed: true})
	for now := int64(1016); now <= 1200; now += 16 {
		sim.Tick(now, components.InputData{})
	}

	enemies := sim.Enemies()
	require.Len(t, enemies, 2)
	assert.Equal(t, 57, enemies[0].HP, "the roll table replaces the slash's damage")
	heavy, _ := c.Enemy.EnemyType("HeavyGuard")
	assert.Equal(t, heavy.DamageRolls, enemies[1].DamageRolls)
}

func TestSim_Walls(t *testing.T) {
	sim := core.NewSim(core.Options{})

	walls := sim.Walls("arena")
	assert.Len(t, walls, 66, "border of a 20x15 tile arena")
	assert.Contains(t, walls, gamemath.Rect{X: 0, Y: 0, Width: 32, Height: 32})
	assert.Contains(t, walls, gamemath.Rect{X: 608, Y: 448, Width: 32, Height: 32})
	assert.NotContains(t, walls, gamemath.Rect{X: 64, Y: 224, Width: 32, Height: 32})
	assert.Empty(t, sim.Walls("cellar"))
}

func TestSim_RegisterAttackWhileLoopRuns(t *testing.T) {
	sim := core.NewSim(core.Options{})
	loop := core.NewGameLoop(sim, 1000, func(now int64) components.InputData {
		return components.InputData{AttackPressed: true, AttackID: "jab"}
	}, nil)

	go loop.Run()
	defer loop.Stop()

	for i := 0; i < 2000; i++ {
		jab := &attack.Profile{ActiveMs: 4, HitRadius: 10, Damage: 1 + i%3}
		require.NoError(t, attack.ApplyShape(jab, attack.ShapeForward))
		require.NoError(t, sim.RegisterAttack("jab", jab))
		_, _ = sim.Catalog().Get(attack.Slash)
	}

	require.Eventually(t, func() bool {
		return sim.Player().ActiveAttackID == "jab"
	}, 2*time.Second, time.Millisecond)
	assert.Contains(t, sim.Catalog().IDs(), "jab")
}

func TestGameLoop_RunsUntilStopped(t *testing.T) {
	sim := core.NewSim(core.Options{})
	pressed := 0
	loop := core.NewGameLoop(sim, 200, func(now int64) components.InputData {
		pressed++
		return components.InputData{AttackPressed: true}
	}, nil)

	go loop.Run()
	require.Eventually(t, func() bool { return loop.Ticks() >= 3 }, 2*time.Second, 5*time.Millisecond)
	loop.Stop()

	ticks := loop.Ticks()
	assert.GreaterOrEqual(t, ticks, int64(3))
	assert.Equal(t, ticks, int64(pressed))
	assert.True(t, sim.Player().HasAttacked)
}
