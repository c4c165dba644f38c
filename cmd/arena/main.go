package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"syscall"

	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"

	"github.com/automoto/doomerang-combat/assets"
	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/combat"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/core"
	"github.com/automoto/doomerang-combat/enemyai"
	"github.com/automoto/doomerang-combat/leveldata"
	"github.com/automoto/doomerang-combat/observability"
	"github.com/automoto/doomerang-combat/scripting"
	"github.com/automoto/doomerang-combat/systems/factory"
)

// swingEveryMs is how often the demo input presses attack.
const swingEveryMs = 300

func main() {
	os.Exit(realMain(os.Args[1:]))
}

// realMain returns the exit code instead of exiting so deferred cleanup
// (logger sync, Lua states) runs on failure too.
func realMain(args []string) int {
	flags := flag.NewFlagSet("arena", flag.ContinueOnError)
	configPath := flags.String("config", "", "YAML config file (defaults are used when empty)")
	ticks := flags.Int("ticks", 0, "Run this many ticks as fast as possible and exit (0 = real time until interrupted)")
	open := flags.Bool("open", false, "Use an open walled arena with one enemy per preset instead of the level files")
	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *configPath != "" {
		c, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			return 1
		}
		config.Apply(c)
	}

	logger, err := observability.NewLogger(config.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()

	if err := run(logger, *ticks, *open); err != nil {
		logger.Error("arena failed", zap.Error(err))
		return 1
	}
	return 0
}

func run(logger *zap.Logger, ticks int, open bool) error {
	opts := core.Options{
		Logger:         logger,
		Registry:       enemyai.NewRegistry(),
		CombatHandlers: combatLogging(logger),
		AIHandlers:     aiLogging(logger),
	}
	if config.Sim.Seed != 0 {
		opts.Rand = attack.NewSource(config.Sim.Seed)
	}

	var err error
	if path := config.Sim.CatalogPath; path != "" {
		opts.Catalog, opts.Bonus, err = attack.LoadCatalogFile(path, logger.Named("catalog"))
	} else {
		opts.Catalog, opts.Bonus, err = assets.LoadCatalog(logger.Named("catalog"))
	}
	if err != nil {
		return err
	}

	var loaded []*scripting.LuaBehavior
	if dir := config.Sim.ScriptDir; dir != "" {
		loaded, err = scripting.LoadBehaviors(dir, opts.Registry, scripting.DefaultInstructionLimit, logger.Named("lua"))
	} else {
		loaded, err = assets.LoadBehaviors(opts.Registry, logger.Named("lua"))
	}
	defer func() {
		for _, b := range loaded {
			b.Close()
		}
	}()
	if err != nil {
		return err
	}

	switch dir := config.Sim.LevelPath; {
	case open:
	case dir != "":
		byName, names, err := leveldata.LoadAllLevels(os.DirFS(filepath.Dir(dir)), filepath.Base(dir))
		if err != nil {
			return err
		}
		levels := make([]*leveldata.Level, 0, len(names))
		for _, name := range names {
			levels = append(levels, byName[name])
		}
		opts.Levels = startFirst(levels, config.Sim.AreaID)
	default:
		opts.Levels = startFirst(assets.MustLoadLevels(), config.Sim.AreaID)
	}

	sim := core.NewSim(opts)
	if len(opts.Levels) == 0 {
		sim.Update(spawnPresets)
	}
	p := sim.Player()
	logger.Info("arena ready",
		zap.String("area", p.World),
		zap.Int("enemies", len(sim.Enemies())),
		zap.Int("npcs", len(sim.NPCs())),
		zap.Int("walls", len(sim.Walls(p.World))),
		zap.Strings("attacks", sim.Catalog().IDs()),
		zap.Strings("behaviors", opts.Registry.Keys()),
	)

	if ticks > 0 {
		frameMs := int64(1000 / config.Sim.TickRate)
		for i := 0; i < ticks; i++ {
			now := int64(i) * frameMs
			sim.Tick(now, demoInput(now))
		}
		logger.Info("arena finished", zap.Int("ticks", ticks), zap.Int("player_hp", sim.Player().HP))
		return nil
	}

	loop := core.NewGameLoop(sim, config.Sim.TickRate, demoInput, logger.Named("loop"))
	go loop.Run()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	logger.Info("shutting down arena")
	loop.Stop()
	return nil
}

// startFirst moves the start area to the front, keeping the rest in order.
func startFirst(levels []*leveldata.Level, startArea string) []*leveldata.Level {
	out := make([]*leveldata.Level, 0, len(levels))
	for _, l := range levels {
		if l.Name == startArea {
			out = append(out, l)
		}
	}
	for _, l := range levels {
		if l.Name != startArea {
			out = append(out, l)
		}
	}
	return out
}

// spawnPresets lines up one enemy of every configured type across the
// right half of the built-in arena.
func spawnPresets(e *ecs.ECS) {
	names := make([]string, 0, len(config.Enemy.Types))
	for name := range config.Enemy.Types {
		names = append(names, name)
	}
	sort.Strings(names)

	tile := config.Sim.TileSize
	for i, name := range names {
		factory.CreateEnemy(e, config.Sim.AreaID, leveldata.EnemySpawn{
			X:         config.Sim.ArenaWidth/2 + float64(i%2)*3*tile,
			Y:         2*tile + float64(i)*2*tile,
			EnemyType: name,
		})
	}
}

// demoInput swings the equipped attack on a fixed cadence.
func demoInput(now int64) components.InputData {
	return components.InputData{AttackPressed: now%swingEveryMs < int64(1000/config.Sim.TickRate)}
}

func combatLogging(logger *zap.Logger) combat.Handlers {
	return combat.Handlers{
		OnEntityDamaged: func(ev combat.EntityDamaged) {
			logger.Info("enemy damaged",
				zap.String("enemy", ev.Target.ID),
				zap.Int("damage", ev.Damage),
				zap.Int("hp", ev.Target.HP),
				zap.Int64("now", ev.Now),
			)
		},
		OnEntityDefeated: func(en *components.EnemyData, now int64) {
			logger.Info("enemy defeated", zap.String("enemy", en.ID), zap.String("type", en.TypeName), zap.Int64("now", now))
		},
		OnPlayerDamaged: func(ev combat.PlayerDamaged) {
			logger.Info("player damaged",
				zap.String("enemy", ev.Source.ID),
				zap.Int("damage", ev.Damage),
				zap.Int("hp", ev.Target.HP),
				zap.Int64("now", ev.Now),
			)
		},
		OnPlayerAttackStarted: func(ev combat.AttackStarted) {
			logger.Debug("attack started", zap.String("attack", ev.AttackID), zap.Int64("now", ev.Now))
		},
	}
}

func aiLogging(logger *zap.Logger) enemyai.Handlers {
	return enemyai.Handlers{
		OnEnemyAttackWindupStarted: func(ev enemyai.WindupStarted) {
			logger.Debug("enemy windup", zap.String("enemy", ev.Enemy.ID), zap.Int64("now", ev.Now))
		},
		OnEnemyRespawned: func(en *components.EnemyData, now int64) {
			logger.Info("enemy respawned", zap.String("enemy", en.ID), zap.Int64("now", now))
		},
	}
}
