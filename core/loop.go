package core

import (
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/automoto/doomerang-combat/components"
)

// InputFunc supplies the player's input for the tick at now.
type InputFunc func(now int64) components.InputData

type GameLoop struct {
	sim      *Sim
	tickRate int
	input    InputFunc
	logger   *zap.Logger
	ticks    atomic.Int64
	stopChan chan struct{}
	done     chan struct{}
}

func NewGameLoop(sim *Sim, tickRate int, input InputFunc, logger *zap.Logger) *GameLoop {
	if input == nil {
		input = func(int64) components.InputData { return components.InputData{} }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameLoop{
		sim:      sim,
		tickRate: max(1, tickRate),
		input:    input,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Run ticks the sim until Stop is called. The sim clock is milliseconds
// since Run started.
func (g *GameLoop) Run() {
	defer close(g.done)

	start := time.Now()
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.logger.Info("game loop started", zap.Int("tick_rate", g.tickRate))

	for {
		select {
		case <-g.stopChan:
			g.logger.Info("game loop stopped", zap.Int64("ticks", g.ticks.Load()))
			return
		case <-ticker.C:
			now := time.Since(start).Milliseconds()
			g.sim.Tick(now, g.input(now))
			g.ticks.Add(1)
		}
	}
}

// Stop ends Run and waits for the in-flight tick to finish. It must only be
// called once, after Run has started.
func (g *GameLoop) Stop() {
	close(g.stopChan)
	<-g.done
}

// Ticks is the number of ticks run so far.
func (g *GameLoop) Ticks() int64 {
	return g.ticks.Load()
}
