package tags

import "github.com/yohamta/donburi"

var (
	Player = donburi.NewTag().SetName("Player")
	Enemy  = donburi.NewTag().SetName("Enemy")
	NPC    = donburi.NewTag().SetName("NPC")
	Wall   = donburi.NewTag().SetName("Wall")
)

// Resolv tags for tile collision
const (
	ResolvSolid = "solid"
	ResolvPoint = "point"
)
