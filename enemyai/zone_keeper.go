package enemyai

import (
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/gamemath"
)

// ZoneBand returns the distance band a zone keeper tries to hold.
func ZoneBand(en *components.EnemyData, tileSize float64, tune *config.EnemyConfig) (inner, outer float64) {
	inner = max(tileSize*tune.ZoneInnerTiles, en.AttackRange*tune.ZoneInnerRangeRatio)
	outer = en.AttackRange * tune.ZoneOuterRangeRatio
	return inner, outer
}

// ZoneKeeper holds a preferred distance band around the player: it backs off
// when crowded, closes in to the band's outer edge from further out, and
// strafes while inside the band. It strikes from its full attack range.
//
// It owns EnemyData.Strafe.
func ZoneKeeper(ctx *Context) {
	en, tune := ctx.Enemy, ctx.Tuning
	to, dist := ctx.ToPlayer()

	if dist <= en.AttackRange && en.CooldownReady(ctx.Now) {
		ctx.BeginWindup(to.X, to.Y)
		return
	}

	inner, outer := ZoneBand(en, ctx.TileSize, tune)
	away := awayFromPlayer(to, dist, en.Facing)
	player := ctx.Player.Center()

	switch {
	case dist < inner:
		en.State = components.EnemyRetreat
		ctx.MoveToward(player.Add(away.MulScalar(inner)), 1)

	case dist <= outer:
		dir := ctx.flip(&en.Strafe, tune.StrafeFlipMinMs, tune.StrafeFlipMaxMs)
		side := gamemath.Perpendicular(away).MulScalar(dir * max(ctx.TileSize, ctx.Step(1)))
		en.State = components.EnemyStrafe
		ctx.MoveToward(en.Center().Add(side), 1)
		ctx.FaceToward(to)

	case dist <= en.AggroRange*tune.ZoneAggroFactor:
		en.State = components.EnemyZone
		ctx.MoveToward(player.Add(away.MulScalar(outer)), 1)

	default:
		ctx.ReturnOrIdle()
	}
}
