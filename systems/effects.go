package systems

import (
	"github.com/yohamta/donburi/ecs"

	"github.com/automoto/doomerang-combat/vfx"
)

// NewUpdateEffects returns the system that ages tracked effects to the
// current clock and drops expired ones.
func NewUpdateEffects(tracker *vfx.Tracker) ecs.System {
	return func(ecs *ecs.ECS) {
		_, clock, ok := sceneClock(ecs)
		if !ok {
			return
		}
		tracker.Advance(clock.Now)
	}
}
