package combat_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/gamemath"
	"github.com/automoto/doomerang-combat/vfx"
)

const area = "arena"

// fixedSource always draws the same value.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

type recorder struct {
	started        []combat.AttackStarted
	damaged        []combat.EntityDamaged
	defeated       []*components.EnemyData
	playerDamaged  []combat.PlayerDamaged
	playerDefeated []combat.PlayerDefeated
	hits           []combat.HitConfirmed
	vfx            []string
	observedHP     []int
}

func (r *recorder) handlers(withDefeat bool) combat.Handlers {
	h := combat.Handlers{
		OnRequestVfx: func(kind string, _ vfx.Request) { r.vfx = append(r.vfx, kind) },
		OnEntityDamaged: func(ev combat.EntityDamaged) {
			r.damaged = append(r.damaged, ev)
		},
		OnEntityDefeated: func(en *components.EnemyData, _ int64) {
			r.defeated = append(r.defeated, en)
		},
		OnPlayerDamaged: func(ev combat.PlayerDamaged) {
			r.playerDamaged = append(r.playerDamaged, ev)
			r.observedHP = append(r.observedHP, ev.Target.HP)
		},
		OnPlayerAttackStarted: func(ev combat.AttackStarted) {
			r.started = append(r.started, ev)
		},
		OnHitConfirmed: func(ev combat.HitConfirmed) {
			r.hits = append(r.hits, ev)
			r.observedHP = append(r.observedHP, ev.Player.HP)
		},
	}
	if withDefeat {
		h.OnPlayerDefeated = func(ev combat.PlayerDefeated) {
			r.playerDefeated = append(r.playerDefeated, ev)
		}
	}
	return h
}

func newEngine(t *testing.T, rec *recorder, opts combat.Options) *combat.Engine {
	t.Helper()
	if opts.Rand == nil {
		opts.Rand = fixedSource(0.5)
	}
	opts.Handlers = rec.handlers(opts.Handlers.OnPlayerDefeated != nil)
	return combat.NewEngine(opts)
}

// newPlayer is a 20x20 body centered on (10, 10) facing right, so the slash
// center sits at (28, 10).
func newPlayer() *components.AttackerData {
	return &components.AttackerData{
		ID:               "player",
		World:            area,
		X:                0,
		Y:                0,
		Width:            20,
		Height:           20,
		Facing:           gamemath.FacingRight,
		HP:               100,
		MaxHP:            100,
		SpawnX:           -100,
		SpawnY:           -50,
		EquippedAttackID: attack.Slash,
	}
}

// newEnemy places a 32x32 enemy whose center is (cx, cy).
func newEnemy(id string, cx, cy float64) *components.EnemyData {
	return &components.EnemyData{
		ID:             id,
		World:          area,
		X:              cx - 16,
		Y:              cy - 16,
		Width:          32,
		Height:         32,
		HP:             60,
		MaxHP:          60,
		State:          components.EnemyIdle,
		Damage:         10,
		AttackRange:    40,
		RespawnDelayMs: 5000,
		RespawnEnabled: true,
	}
}

func frame(now int64, p *components.AttackerData, enemies []*components.EnemyData, pressed bool) *combat.Frame {
	return &combat.Frame{
		Now:      now,
		AreaID:   area,
		Scene:    components.SceneData{GameState: components.GameStateExplore},
		TileSize: 32,
		Player:   p,
		Enemies:  enemies,
		Attack:   combat.AttackInput{Pressed: pressed},
	}
}

func noInvuln() *config.CombatConfig {
	c := config.Defaults().Combat
	c.EnemyInvulnerableMs = 0
	return &c
}

func TestUpdate_SwingTimeline(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{})
	p := newPlayer()

	steps := []struct {
		now     int64
		pressed bool
		want    components.AttackState
	}{
		{1000, true, components.AttackWindup},
		{1069, false, components.AttackWindup},
		{1070, false, components.AttackActive},
		{1179, false, components.AttackActive},
		{1180, false, components.AttackRecovery},
		{1339, false, components.AttackRecovery},
		{1340, false, components.AttackIdle},
	}
	for _, s := range steps {
		eng.Update(frame(s.now, p, nil, s.pressed))
		assert.Equal(t, s.want, p.AttackState, "t=%d", s.now)
	}

	assert.Equal(t, int64(1000), p.AttackStartedAt)
	assert.Equal(t, int64(1070), p.AttackActiveAt)
	assert.Equal(t, int64(1180), p.AttackActiveUntil)
	assert.Equal(t, int64(1340), p.AttackRecoveryUntil)
	require.Len(t, rec.started, 1)
	assert.Equal(t, attack.Slash, rec.started[0].AttackID)
	assert.Contains(t, rec.vfx, "slash")
}

func TestUpdate_CooldownGatesSecondPress(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{})
	p := newPlayer()

	eng.Update(frame(1000, p, nil, true))
	eng.Update(frame(1070, p, nil, false))
	eng.Update(frame(1180, p, nil, false))

	eng.Update(frame(1200, p, nil, true))
	assert.Equal(t, components.AttackRecovery, p.AttackState, "cooldown runs until 1290")
	assert.Len(t, rec.started, 1)

	eng.Update(frame(1291, p, nil, true))
	assert.Equal(t, components.AttackWindup, p.AttackState)
	assert.Equal(t, int64(1291), p.AttackStartedAt)
	assert.Equal(t, int64(1361), p.AttackActiveAt)
	assert.Len(t, rec.started, 2)
}

func TestUpdate_FirstPressNeedsNoPriorSwing(t *testing.T) {
	eng := newEngine(t, &recorder{}, combat.Options{})
	p := newPlayer()

	eng.Update(frame(5, p, nil, true))
	assert.Equal(t, components.AttackWindup, p.AttackState)
}

func TestUpdate_UnknownAttackFallsBackToEquipped(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{})
	p := newPlayer()
	p.EquippedAttackID = attack.Spin

	f := frame(1000, p, nil, true)
	f.Attack.AttackID = "uppercut"
	eng.Update(f)

	assert.Equal(t, attack.Spin, p.ActiveAttackID)
	assert.Equal(t, int64(1160), p.AttackActiveAt)
}

func TestUpdate_EmptyCatalogDropsAttack(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{Catalog: &attack.Catalog{}})
	p := newPlayer()

	assert.NotPanics(t, func() {
		eng.Update(frame(1000, p, nil, true))
		eng.Update(frame(1100, p, nil, true))
	})
	assert.Equal(t, components.AttackIdle, p.AttackState)
	assert.Empty(t, rec.started)
	assert.Empty(t, rec.vfx)
}

func TestUpdate_PanicsWithoutPlayer(t *testing.T) {
	eng := newEngine(t, &recorder{}, combat.Options{})
	assert.Panics(t, func() { eng.Update(&combat.Frame{Now: 1}) })
	assert.Panics(t, func() { eng.Update(nil) })
}

func TestDetectHits_Threshold(t *testing.T) {
	tap := &attack.Profile{WindupMs: 0, ActiveMs: 100, RecoveryMs: 0, HitRadius: 20, Damage: 5}
	require.NoError(t, attack.ApplyShape(tap, attack.ShapeSelf))

	tests := []struct {
		name     string
		distance float64
		hit      bool
	}{
		{"inside padded radius", 25, true},
		{"just inside", 33.4, true},
		{"outside", 40, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog := attack.DefaultCatalog(nil)
			require.NoError(t, catalog.Register("tap", tap))
			rec := &recorder{}
			eng := newEngine(t, rec, combat.Options{Catalog: catalog})

			p := newPlayer()
			p.EquippedAttackID = "tap"
			en := newEnemy("e1", 10+tt.distance, 10)
			enemies := []*components.EnemyData{en}

			eng.Update(frame(1000, p, enemies, true))
			eng.Update(frame(1001, p, enemies, false))

			if tt.hit {
				assert.Len(t, rec.damaged, 1)
				assert.Equal(t, 55, en.HP)
			} else {
				assert.Empty(t, rec.damaged)
				assert.Equal(t, 60, en.HP)
			}
		})
	}
}

func TestDetectHits_AppliesHitReaction(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{})
	p := newPlayer()
	en := newEnemy("e1", 40, 10)
	en.State = components.EnemyAttackWindup
	en.PendingStrike = true
	enemies := []*components.EnemyData{en}

	eng.Update(frame(1000, p, enemies, true))
	// The pending strike resolves on the start tick, before the hit lands.
	require.Len(t, rec.playerDamaged, 1)
	en.PendingStrike = true

	eng.Update(frame(1070, p, enemies, false))

	require.Len(t, rec.damaged, 1)
	assert.Equal(t, 20, rec.damaged[0].Damage)
	assert.Equal(t, 40, en.HP)
	assert.Equal(t, components.EnemyHitStun, en.State)
	assert.Equal(t, int64(1070+180), en.InvulnerableUntil)
	assert.Equal(t, int64(1070+230), en.HitStunUntil)
	assert.False(t, en.PendingStrike, "a landed hit cancels the enemy's strike")

	require.NotEmpty(t, rec.hits)
	last := rec.hits[len(rec.hits)-1]
	assert.Equal(t, combat.HitEntityDamaged, last.Type)
	assert.Same(t, en, last.Enemy)
	assert.Contains(t, rec.vfx, vfx.KindSpark)
	assert.Contains(t, rec.vfx, vfx.KindDamageNumber)
}

func TestDetectHits_RollsAndWeaponBonus(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{Bonus: attack.DefaultBonusTables()})
	p := newPlayer()
	p.DamageRolls = attack.WeightedTable{{Value: 10, Weight: 1}}
	p.Equipment = attack.Equipment{Weapon: "Kendo Stick"}
	en := newEnemy("e1", 40, 10)
	enemies := []*components.EnemyData{en}

	eng.Update(frame(1000, p, enemies, true))
	eng.Update(frame(1070, p, enemies, false))

	require.Len(t, rec.damaged, 1)
	// 10 from the roll table plus 4, the middle bucket of the stick's bonus.
	assert.Equal(t, 14, rec.damaged[0].Damage)
	assert.Equal(t, 46, en.HP)
}

func TestDetectHits_DefeatSchedulesRespawn(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{})
	p := newPlayer()
	en := newEnemy("e1", 40, 10)
	en.HP = 15
	enemies := []*components.EnemyData{en}

	eng.Update(frame(1000, p, enemies, true))
	eng.Update(frame(1070, p, enemies, false))

	assert.Zero(t, en.HP, "hp floors at zero")
	assert.True(t, en.Dead)
	assert.Equal(t, components.EnemyDead, en.State)
	assert.Equal(t, int64(6070), en.RespawnAt)
	require.Len(t, rec.defeated, 1)
	assert.Same(t, en, rec.defeated[0])
	assert.Contains(t, rec.vfx, vfx.KindDefeat)

	eng.Update(frame(1100, p, enemies, false))
	assert.Len(t, rec.damaged, 1, "dead enemies are never hit")
}

func TestDetectHits_AtMostOncePerSwing(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{Config: noInvuln()})
	p := newPlayer()
	en := newEnemy("e1", 40, 10)
	enemies := []*components.EnemyData{en}

	eng.Update(frame(1000, p, enemies, true))
	for now := int64(1070); now <= 1340; now += 5 {
		eng.Update(frame(now, p, enemies, false))
	}
	assert.Len(t, rec.damaged, 1)

	// A fresh swing may hit the same enemy again.
	eng.Update(frame(1400, p, enemies, true))
	eng.Update(frame(1470, p, enemies, false))
	assert.Len(t, rec.damaged, 2)
}

func TestDetectHits_NPCFlinchesWithoutDamage(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{})
	p := newPlayer()
	npc := &components.NPCData{
		ID: "villager", World: area, X: 24, Y: -6, Width: 32, Height: 32,
		Reactions: []string{"Ow!", "Stop that!"},
	}
	f := func(now int64, pressed bool) *combat.Frame {
		fr := frame(now, p, nil, pressed)
		fr.NPCs = []*components.NPCData{npc}
		return fr
	}

	eng.Update(f(1000, true))
	eng.Update(f(1070, false))
	eng.Update(f(1100, false))

	require.Len(t, rec.hits, 1)
	assert.Equal(t, combat.HitNPC, rec.hits[0].Type)
	assert.Same(t, npc, rec.hits[0].NPC)
	assert.Empty(t, rec.damaged)
	assert.Equal(t, "Ow!", npc.BubbleText)
	assert.Equal(t, int64(1070+260), npc.HitShakeUntil)
	assert.Equal(t, int64(1070+1200), npc.HitBubbleUntil)
	assert.True(t, npc.Shaking(1100))

	eng.Update(f(1340, false))
	eng.Update(f(1400, true))
	eng.Update(f(1470, false))
	require.Len(t, rec.hits, 2)
	assert.Equal(t, "Stop that!", npc.BubbleText)
}

func TestUpdate_AreaPartition(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{})
	p := newPlayer()
	other := newEnemy("far", 40, 10)
	other.World = "cellar"
	other.PendingStrike = true
	npc := &components.NPCData{ID: "n", World: "cellar", X: 24, Y: -6, Width: 32, Height: 32}

	fr := func(now int64, pressed bool) *combat.Frame {
		f := frame(now, p, []*components.EnemyData{other}, pressed)
		f.NPCs = []*components.NPCData{npc}
		return f
	}
	eng.Update(fr(1000, true))
	eng.Update(fr(1070, false))

	assert.Empty(t, rec.hits)
	assert.Equal(t, 60, other.HP)
	assert.Equal(t, 100, p.HP)
	assert.True(t, other.PendingStrike, "other areas are left untouched")
}

func TestUpdate_DisallowedIsHardReset(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{Config: noInvuln()})
	p := newPlayer()
	en := newEnemy("e1", 40, 10)
	enemies := []*components.EnemyData{en}

	eng.Update(frame(1000, p, enemies, true))
	eng.Update(frame(1070, p, enemies, false))
	require.Len(t, rec.damaged, 1)

	en.PendingStrike = true
	blocked := frame(1080, p, enemies, true)
	blocked.Scene.DialogueActive = true
	eng.Update(blocked)
	assert.Equal(t, components.AttackIdle, p.AttackState)
	assert.Empty(t, p.ActiveAttackID)
	assert.False(t, en.PendingStrike)

	blocked.Now = 1090
	eng.Update(blocked)
	assert.Equal(t, components.AttackIdle, p.AttackState, "reset is idempotent")

	eng.Update(frame(1300, p, enemies, true))
	assert.Equal(t, components.AttackWindup, p.AttackState)
	assert.Equal(t, attack.Slash, p.ActiveAttackID)
	eng.Update(frame(1370, p, enemies, false))
	assert.Len(t, rec.damaged, 2, "hit set does not leak across the reset")
}

func TestUpdate_SceneGate(t *testing.T) {
	tests := []struct {
		name  string
		scene components.SceneData
	}{
		{"paused", components.SceneData{GameState: components.GameStatePaused}},
		{"choice", components.SceneData{GameState: components.GameStateExplore, ChoiceActive: true}},
		{"dialogue", components.SceneData{GameState: components.GameStateExplore, DialogueActive: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			eng := newEngine(t, rec, combat.Options{})
			p := newPlayer()
			f := frame(1000, p, nil, true)
			f.Scene = tt.scene
			eng.Update(f)
			assert.Equal(t, components.AttackIdle, p.AttackState)
			assert.Empty(t, rec.started)
		})
	}
}

func TestEnemyStrike_InnateRangeAndDamage(t *testing.T) {
	tests := []struct {
		name       string
		cx         float64
		invulnTill int64
		wantHP     int
	}{
		{"in range", 40, 0, 90},
		{"at reach edge", 10 + 48, 0, 90},
		{"out of reach", 10 + 49, 0, 100},
		{"player invulnerable", 40, 2000, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			eng := newEngine(t, rec, combat.Options{})
			p := newPlayer()
			p.InvulnerableUntil = tt.invulnTill
			en := newEnemy("e1", tt.cx, 10)
			en.PendingStrike = true

			eng.Update(frame(1000, p, []*components.EnemyData{en}, false))

			assert.False(t, en.PendingStrike, "the flag is always consumed")
			assert.Equal(t, tt.wantHP, p.HP)
			if tt.wantHP < 100 {
				assert.Equal(t, int64(1650), p.InvulnerableUntil)
				require.Len(t, rec.playerDamaged, 1)
				assert.Equal(t, combat.HitPlayerDamaged, rec.hits[0].Type)
			} else {
				assert.Empty(t, rec.playerDamaged)
			}
		})
	}
}

func TestEnemyStrike_UsesCatalogProfileAndRolls(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{})
	p := newPlayer()
	en := newEnemy("brute", 10+44, 10)
	en.AttackID = attack.HeavySlam
	en.PendingStrike = true

	eng.Update(frame(1000, p, []*components.EnemyData{en}, false))
	assert.Equal(t, 100, p.HP, "heavySlam reaches 30+8, not the innate 40+8")

	en.X, en.Y = 10+30-16, 10-16
	en.PendingStrike = true
	eng.Update(frame(1001, p, []*components.EnemyData{en}, false))
	assert.Equal(t, 82, p.HP)

	en.DamageRolls = attack.WeightedTable{{Value: 3, Weight: 1}}
	en.PendingStrike = true
	p.InvulnerableUntil = 0
	eng.Update(frame(1002, p, []*components.EnemyData{en}, false))
	assert.Equal(t, 79, p.HP)
}

func TestEnemyStrike_DefeatFallbackRespawns(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{})
	p := newPlayer()
	p.HP = 1
	p.AttackState = components.AttackActive
	en := newEnemy("e1", 40, 10)
	en.Damage = 5
	en.PendingStrike = true

	eng.Update(frame(1000, p, []*components.EnemyData{en}, false))

	assert.Equal(t, p.MaxHP, p.HP)
	assert.Equal(t, -100.0, p.X)
	assert.Equal(t, -50.0, p.Y)
	assert.Equal(t, components.AttackIdle, p.AttackState)
	assert.Contains(t, rec.vfx, vfx.KindTransition)
	for _, hp := range rec.observedHP {
		assert.NotZero(t, hp, "zero hp must never be observed")
	}
	require.Len(t, rec.playerDamaged, 1)
	assert.Equal(t, 5, rec.playerDamaged[0].Damage)
}

func TestEnemyStrike_DefeatHandler(t *testing.T) {
	rec := &recorder{}
	eng := newEngine(t, rec, combat.Options{Handlers: combat.Handlers{
		OnPlayerDefeated: func(combat.PlayerDefeated) {},
	}})
	p := newPlayer()
	p.HP = 3
	en := newEnemy("e1", 40, 10)
	en.PendingStrike = true

	eng.Update(frame(1000, p, []*components.EnemyData{en}, false))

	assert.Zero(t, p.HP)
	require.Len(t, rec.playerDefeated, 1)
	assert.Same(t, en, rec.playerDefeated[0].Source)
	assert.Equal(t, int64(1000), rec.playerDefeated[0].Now)
	assert.NotContains(t, rec.vfx, vfx.KindTransition)
}

func TestEnemyStrike_DeadEnemyNeverStrikes(t *testing.T) {
	eng := newEngine(t, &recorder{}, combat.Options{})
	p := newPlayer()
	en := newEnemy("e1", 40, 10)
	en.Dead = true
	en.PendingStrike = true

	eng.Update(frame(1000, p, []*components.EnemyData{en}, false))
	assert.Equal(t, 100, p.HP)
	assert.False(t, en.PendingStrike)
}

// TestSwing_PhaseOrderAndCooldown drives random tick spacing and presses and
// checks every transition, the window ordering, and the cooldown.
func TestSwing_PhaseOrderAndCooldown(t *testing.T) {
	allowed := map[[2]components.AttackState]bool{
		{components.AttackIdle, components.AttackWindup}:     true,
		{components.AttackWindup, components.AttackActive}:   true,
		{components.AttackActive, components.AttackRecovery}: true,
		{components.AttackRecovery, components.AttackIdle}:   true,
		{components.AttackRecovery, components.AttackWindup}: true,
	}

	rapid.Check(t, func(rt *rapid.T) {
		rec := &recorder{}
		eng := combat.NewEngine(combat.Options{Rand: fixedSource(0.5), Config: noInvuln(), Handlers: rec.handlers(false)})
		p := newPlayer()
		en := newEnemy("e1", 40, 10)
		en.HP = 1 << 30
		en.MaxHP = en.HP
		enemies := []*components.EnemyData{en}

		now := int64(rapid.IntRange(0, 1000).Draw(rt, "start"))
		var lastStart int64 = -1
		hitsPerSwing := map[int64]int{}
		steps := rapid.IntRange(1, 120).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			now += int64(rapid.IntRange(1, 250).Draw(rt, "dt"))
			pressed := rapid.Bool().Draw(rt, "pressed")

			before := p.AttackState
			beforeStart := p.AttackStartedAt
			hitsBefore := len(rec.damaged)
			eng.Update(frame(now, p, enemies, pressed))

			if p.AttackState != before {
				if !allowed[[2]components.AttackState{before, p.AttackState}] {
					rt.Fatalf("illegal transition %s -> %s at %d", before, p.AttackState, now)
				}
			}
			if p.AttackStartedAt != beforeStart || (before == components.AttackIdle && p.AttackState == components.AttackWindup) {
				if lastStart >= 0 && now-lastStart < 290 {
					rt.Fatalf("swing started %dms after the previous one", now-lastStart)
				}
				lastStart = now
			}
			if p.AttackState != components.AttackIdle {
				if !(p.AttackStartedAt <= p.AttackActiveAt &&
					p.AttackActiveAt <= p.AttackActiveUntil &&
					p.AttackActiveUntil <= p.AttackRecoveryUntil) {
					rt.Fatalf("windows out of order: %+v", p)
				}
			}
			hitsPerSwing[p.AttackStartedAt] += len(rec.damaged) - hitsBefore
		}
		for start, n := range hitsPerSwing {
			if n > 1 {
				rt.Fatalf("swing started at %d hit the enemy %d times", start, n)
			}
		}
	})
}
