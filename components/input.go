package components

import "github.com/yohamta/donburi"

// InputData is the player's attack input for the current tick. Device
// polling happens outside the simulation.
type InputData struct {
	AttackPressed bool
	AttackID      string // requested profile, empty for the equipped one
	MoveX, MoveY  float64
}

var Input = donburi.NewComponentType[InputData]()
