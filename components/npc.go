package components

import (
	"github.com/yohamta/donburi"

	"github.com/automoto/doomerang-combat/gamemath"
)

// NPCData is a non-hostile character. Player swings make it flinch and
// speak but never damage it.
type NPCData struct {
	ID     string
	World  string
	Name   string
	X, Y   float64
	Width  float64
	Height float64

	Reactions    []string // cycled one line per hit
	ReactionNext int

	HitShakeUntil  int64
	HitBubbleUntil int64
	BubbleText     string
}

func (n *NPCData) Rect() gamemath.Rect {
	return gamemath.Rect{X: n.X, Y: n.Y, Width: n.Width, Height: n.Height}
}

func (n *NPCData) Center() gamemath.Vec2 {
	return n.Rect().Center()
}

// NextReaction returns the next reaction line, or fallback when the NPC has
// none of its own.
func (n *NPCData) NextReaction(fallback string) string {
	if len(n.Reactions) == 0 {
		return fallback
	}
	line := n.Reactions[n.ReactionNext%len(n.Reactions)]
	n.ReactionNext = (n.ReactionNext + 1) % len(n.Reactions)
	return line
}

// Shaking reports whether the flinch is still playing at now.
func (n *NPCData) Shaking(now int64) bool {
	return now < n.HitShakeUntil
}

var NPC = donburi.NewComponentType[NPCData]()
