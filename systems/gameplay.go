package systems

import "github.com/yohamta/donburi/ecs"

// WithGameplayChecks wraps a system to skip execution until the world has a
// player and a scene to read.
func WithGameplayChecks(system ecs.System) ecs.System {
	return func(e *ecs.ECS) {
		if _, ok := playerEntry(e); !ok {
			return
		}
		if _, _, ok := sceneClock(e); !ok {
			return
		}
		system(e)
	}
}
