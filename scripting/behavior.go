package scripting

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	lua "github.com/yuin/gopher-lua"
	"go.uber.org/zap"

	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/enemyai"
	"github.com/automoto/doomerang-combat/gamemath"
)

// ErrNoDecide is returned when a script does not define a decide function.
var ErrNoDecide = errors.New("scripting: script does not define decide(ctx)")

// Actions a script's decide function may return.
const (
	ActionIdle   = "idle"
	ActionMove   = "move"
	ActionWindup = "windup"
	ActionReturn = "return"
)

// moveStates are the states a script may report while moving.
var moveStates = map[string]components.EnemyState{
	string(components.EnemyChase):   components.EnemyChase,
	string(components.EnemyFlank):   components.EnemyFlank,
	string(components.EnemyZone):    components.EnemyZone,
	string(components.EnemyRetreat): components.EnemyRetreat,
	string(components.EnemyStrafe):  components.EnemyStrafe,
	string(components.EnemyReturn):  components.EnemyReturn,
}

// LuaBehavior is an enemyai.Behavior backed by a script's global
// decide(ctx) function. decide returns an action and, for "move", a target
// point and an optional state name:
//
//	function decide(ctx)
//	  if ctx.distance <= ctx.enemy.attack_range and ctx.enemy.cooldown_ready then
//	    return "windup"
//	  end
//	  return "move", ctx.player.x, ctx.player.y, "chase"
//	end
//
// Script errors and exhausted budgets leave the enemy idle for the tick.
// A LuaBehavior is not safe for concurrent use.
type LuaBehavior struct {
	name   string
	L      *lua.LState
	decide lua.LValue
	limit  int
	logger *zap.Logger
}

// NewLuaBehavior loads source into a fresh sandbox. limit is the opcode
// budget for loading and for each decide call.
func NewLuaBehavior(name, source string, limit int, logger *zap.Logger) (*LuaBehavior, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	L := NewSandboxedState()
	if err := withLimit(L, limit, func() error { return L.DoString(source) }); err != nil {
		L.Close()
		return nil, fmt.Errorf("scripting: loading %q: %w", name, err)
	}
	fn := L.GetGlobal("decide")
	if fn.Type() != lua.LTFunction {
		L.Close()
		return nil, fmt.Errorf("%w: %q", ErrNoDecide, name)
	}
	return &LuaBehavior{name: name, L: L, decide: fn, limit: limit, logger: logger}, nil
}

// Name is the key the behavior registers under.
func (b *LuaBehavior) Name() string {
	return b.name
}

// Close releases the Lua VM.
func (b *LuaBehavior) Close() {
	b.L.Close()
}

func (b *LuaBehavior) Decide(ctx *enemyai.Context) {
	L := b.L
	arg := b.snapshot(ctx)

	err := withLimit(L, b.limit, func() error {
		return L.CallByParam(lua.P{Fn: b.decide, NRet: 4, Protect: true}, arg)
	})
	if err != nil {
		b.logger.Warn("lua behavior failed",
			zap.String("behavior", b.name),
			zap.String("enemy", ctx.Enemy.ID),
			zap.Error(err),
		)
		ctx.Idle()
		return
	}

	action := lua.LVAsString(L.Get(-4))
	x, y := float64(lua.LVAsNumber(L.Get(-3))), float64(lua.LVAsNumber(L.Get(-2)))
	state := lua.LVAsString(L.Get(-1))
	L.Pop(4)

	b.apply(ctx, action, gamemath.Vec2{X: x, Y: y}, state)
}

func (b *LuaBehavior) apply(ctx *enemyai.Context, action string, target gamemath.Vec2, state string) {
	en := ctx.Enemy
	switch action {
	case ActionWindup:
		if !en.CooldownReady(ctx.Now) {
			ctx.Idle()
			return
		}
		to, _ := ctx.ToPlayer()
		ctx.BeginWindup(to.X, to.Y)
	case ActionMove:
		s, ok := moveStates[state]
		if !ok {
			s = components.EnemyChase
		}
		en.State = s
		ctx.MoveToward(target, 1)
	case ActionReturn:
		ctx.ReturnOrIdle()
	case ActionIdle, "":
		ctx.Idle()
	default:
		b.logger.Debug("lua behavior returned unknown action",
			zap.String("behavior", b.name),
			zap.String("action", action),
		)
		ctx.Idle()
	}
}

// snapshot builds the read-only ctx table handed to decide.
func (b *LuaBehavior) snapshot(ctx *enemyai.Context) *lua.LTable {
	L := b.L
	en := ctx.Enemy
	ec := en.Center()
	pc := ctx.Player.Center()
	to, dist := ctx.ToPlayer()

	enemy := L.NewTable()
	enemy.RawSetString("id", lua.LString(en.ID))
	enemy.RawSetString("x", lua.LNumber(ec.X))
	enemy.RawSetString("y", lua.LNumber(ec.Y))
	enemy.RawSetString("hp", lua.LNumber(en.HP))
	enemy.RawSetString("max_hp", lua.LNumber(en.MaxHP))
	enemy.RawSetString("state", lua.LString(en.State))
	enemy.RawSetString("attack_range", lua.LNumber(en.AttackRange))
	enemy.RawSetString("aggro_range", lua.LNumber(en.AggroRange))
	enemy.RawSetString("speed", lua.LNumber(en.Speed))
	enemy.RawSetString("spawn_x", lua.LNumber(en.SpawnX+en.Width/2))
	enemy.RawSetString("spawn_y", lua.LNumber(en.SpawnY+en.Height/2))
	enemy.RawSetString("cooldown_ready", lua.LBool(en.CooldownReady(ctx.Now)))

	player := L.NewTable()
	player.RawSetString("x", lua.LNumber(pc.X))
	player.RawSetString("y", lua.LNumber(pc.Y))
	player.RawSetString("hp", lua.LNumber(ctx.Player.HP))

	t := L.NewTable()
	t.RawSetString("now", lua.LNumber(ctx.Now))
	t.RawSetString("tile_size", lua.LNumber(ctx.TileSize))
	t.RawSetString("distance", lua.LNumber(dist))
	t.RawSetString("to_player_x", lua.LNumber(to.X))
	t.RawSetString("to_player_y", lua.LNumber(to.Y))
	t.RawSetString("enemy", enemy)
	t.RawSetString("player", player)
	return t
}

// LoadBehaviors loads every *.lua file in dir, in lexicographic order, and
// registers each under its file stem. Already-loaded behaviors are returned
// alongside the first error so the caller can close them.
func LoadBehaviors(dir string, reg *enemyai.Registry, limit int, logger *zap.Logger) ([]*LuaBehavior, error) {
	return LoadBehaviorsFS(os.DirFS(dir), ".", reg, limit, logger)
}

// LoadBehaviorsFS is LoadBehaviors over dir within fsys, for embedded scripts.
func LoadBehaviorsFS(fsys fs.FS, dir string, reg *enemyai.Registry, limit int, logger *zap.Logger) ([]*LuaBehavior, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("scripting: reading behavior dir %q: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && path.Ext(e.Name()) == ".lua" {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)

	var loaded []*LuaBehavior
	for _, name := range files {
		src, err := fs.ReadFile(fsys, path.Join(dir, name))
		if err != nil {
			return loaded, fmt.Errorf("scripting: reading %q: %w", name, err)
		}
		key := strings.TrimSuffix(name, ".lua")
		b, err := NewLuaBehavior(key, string(src), limit, logger)
		if err != nil {
			return loaded, err
		}
		if err := reg.Register(key, b); err != nil {
			b.Close()
			return loaded, err
		}
		loaded = append(loaded, b)
		logger.Info("lua behavior registered", zap.String("behavior", key))
	}
	return loaded, nil
}
