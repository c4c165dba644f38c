package components

import "github.com/yohamta/donburi"

// GameState is the scene orchestrator's top-level mode.
type GameState string

const (
	GameStateExplore  GameState = "explore"
	GameStatePaused   GameState = "paused"
	GameStateMenu     GameState = "menu"
	GameStateCutscene GameState = "cutscene"
)

// SceneData is the signal the scene orchestrator supplies each tick.
type SceneData struct {
	GameState      GameState
	DialogueActive bool
	ChoiceActive   bool
}

// CombatAllowed reports whether attacks and enemy behaviors may run.
func (s SceneData) CombatAllowed() bool {
	return s.GameState == GameStateExplore && !s.DialogueActive && !s.ChoiceActive
}

var Scene = donburi.NewComponentType[SceneData]()

// ClockData is the simulation clock for the current tick.
type ClockData struct {
	Now     int64   // absolute milliseconds
	DtScale float64 // elapsed time relative to one nominal frame
}

var Clock = donburi.NewComponentType[ClockData]()
