package enemyai

import (
	"github.com/automoto/doomerang-combat/attack"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/gamemath"
)

// Area identifies the map an enemy moves in and its bounds in world units.
// A zero Width or Height leaves that axis unbounded.
type Area struct {
	ID     string
	Width  float64
	Height float64
}

// CollidesFunc reports whether the world point (x, y) is solid in area.
type CollidesFunc func(x, y float64, area Area) bool

// Context is what a Behavior sees for one enemy on one tick.
type Context struct {
	Now      int64
	Enemy    *components.EnemyData
	Player   *components.AttackerData
	CanFight bool

	CollidesAt CollidesFunc
	Area       Area
	TileSize   float64
	DtScale    float64

	Rand   attack.Source
	Tuning *config.EnemyConfig

	onWindup func(WindupStarted)
}

// ToPlayer returns the vector from the enemy's center to the player's
// center and its length.
func (c *Context) ToPlayer() (gamemath.Vec2, float64) {
	v := c.Player.Center().Sub(c.Enemy.Center())
	return v, v.Magnitude()
}

// Step is how far the enemy may move this tick at the given speed factor.
func (c *Context) Step(factor float64) float64 {
	dt := c.DtScale
	if dt <= 0 {
		dt = 1
	}
	return c.Enemy.Speed * factor * dt
}

// MoveToward steers the enemy's center toward target at speed factor,
// treating targets inside Tuning.MinStep as reached.
func (c *Context) MoveToward(target gamemath.Vec2, factor float64) bool {
	minStep := config.Enemy.MinStep
	if c.Tuning != nil {
		minStep = c.Tuning.MinStep
	}
	return moveEnemy(c.Enemy, target.X, target.Y, c.Step(factor), minStep, c.CollidesAt, c.Area)
}

// BeginWindup starts the enemy's attack telegraph toward (toX, toY). The
// windup event only fires on the tick the enemy enters windup.
func (c *Context) BeginWindup(toX, toY float64) {
	en := c.Enemy
	first := en.State != components.EnemyAttackWindup

	en.State = components.EnemyAttackWindup
	en.AttackStrikeAt = c.Now + en.AttackWindupMs
	en.LastAttackAt = c.Now
	en.HasAttacked = true
	en.PendingStrike = false
	en.Facing = gamemath.FacingFromVector(toX, toY, en.Facing)

	if first && c.onWindup != nil {
		c.onWindup(WindupStarted{Enemy: en, Now: c.Now, ToPlayerX: toX, ToPlayerY: toY})
	}
}

// ReturnOrIdle walks the enemy home when it has drifted past the deadzone
// and idles otherwise.
func (c *Context) ReturnOrIdle() {
	en := c.Enemy
	home := gamemath.Vec2{X: en.SpawnX + en.Width/2, Y: en.SpawnY + en.Height/2}
	if en.Center().Distance(home) <= c.Tuning.ReturnDeadzone {
		en.State = components.EnemyIdle
		return
	}
	en.State = components.EnemyReturn
	c.MoveToward(home, c.Tuning.ReturnSpeed)
}

// Idle stops the enemy where it stands.
func (c *Context) Idle() {
	c.Enemy.State = components.EnemyIdle
}

// FaceToward turns the enemy toward v without moving it.
func (c *Context) FaceToward(v gamemath.Vec2) {
	c.Enemy.Facing = gamemath.FacingFromVector(v.X, v.Y, c.Enemy.Facing)
}

// RandomMs returns a duration drawn uniformly from [lo, hi].
func (c *Context) RandomMs(lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	r := c.Rand
	if r == nil {
		r = attack.DefaultSource()
	}
	return lo + int64(r.Float64()*float64(hi-lo+1))
}

// flip maintains a ±1 direction that reverses at randomized intervals.
func (c *Context) flip(s *components.CircleScratch, lo, hi int64) float64 {
	switch {
	case s.Dir == 0:
		s.Dir = 1
		if c.RandomMs(0, 1) == 0 {
			s.Dir = -1
		}
		s.NextFlipAt = c.Now + c.RandomMs(lo, hi)
	case c.Now >= s.NextFlipAt:
		s.Dir = -s.Dir
		s.NextFlipAt = c.Now + c.RandomMs(lo, hi)
	}
	return s.Dir
}
