package enemyai

import "github.com/automoto/doomerang-combat/components"

// MeleeChaser winds up when the player is in range and the cooldown is
// ready, otherwise runs straight at the player while in aggro range. Chase
// only resumes once the player is beyond a fraction of the attack range, so
// an enemy waiting out its cooldown at the range edge holds still instead of
// flickering between chase and windup.
func MeleeChaser(ctx *Context) {
	en := ctx.Enemy
	to, dist := ctx.ToPlayer()

	if dist <= en.AttackRange && en.CooldownReady(ctx.Now) {
		ctx.BeginWindup(to.X, to.Y)
		return
	}

	if dist <= en.AggroRange {
		if dist > en.AttackRange*ctx.Tuning.ChaseHysteresis {
			en.State = components.EnemyChase
			ctx.MoveToward(ctx.Player.Center(), 1)
			return
		}
		ctx.Idle()
		ctx.FaceToward(to)
		return
	}

	ctx.ReturnOrIdle()
}
