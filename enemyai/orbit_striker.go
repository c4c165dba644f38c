package enemyai

import (
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/gamemath"
)

// OrbitStriker circles the player at a standoff distance and darts in when
// close enough. The orbit direction reverses at randomized intervals.
//
// It owns EnemyData.Orbit.
func OrbitStriker(ctx *Context) {
	en, tune := ctx.Enemy, ctx.Tuning
	to, dist := ctx.ToPlayer()

	if dist <= en.AttackRange*tune.OrbitGateFactor && en.CooldownReady(ctx.Now) {
		ctx.BeginWindup(to.X, to.Y)
		return
	}

	if dist > en.AggroRange {
		ctx.ReturnOrIdle()
		return
	}

	dir := ctx.flip(&en.Orbit, tune.OrbitFlipMinMs, tune.OrbitFlipMaxMs)
	away := awayFromPlayer(to, dist, en.Facing)

	standoff := away.MulScalar(en.AttackRange * tune.OrbitStandoffFactor)
	tangent := gamemath.Perpendicular(away).MulScalar(dir * en.AttackRange * tune.OrbitTangentFactor)
	target := ctx.Player.Center().Add(standoff.Add(tangent))

	en.State = components.EnemyFlank
	ctx.MoveToward(target, 1)
}

// awayFromPlayer is the unit vector from the player to the enemy. When they
// overlap it falls back to behind the enemy's facing.
func awayFromPlayer(to gamemath.Vec2, dist float64, facing gamemath.Facing) gamemath.Vec2 {
	if dist < 1e-9 {
		return facing.Vector().MulScalar(-1)
	}
	return to.MulScalar(-1 / dist)
}
