package enemyai

import (
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/config"
	"github.com/automoto/doomerang-combat/gamemath"
)

// collisionInset keeps corner samples just inside the body so an enemy
// flush against a wall is not treated as overlapping it.
const collisionInset = 0.01

// MoveEnemy steps the enemy's center up to speed units toward (tx, ty).
// Facing follows the larger axis of the step. X and Y are applied as
// separate collision-checked sub-steps, so a blocked axis does not stop the
// other and the enemy slides along walls. The result is clamped to the
// area's bounds. It reports whether the enemy moved. Targets closer than
// the global config.Enemy.MinStep count as reached.
func MoveEnemy(en *components.EnemyData, tx, ty, speed float64, collides CollidesFunc, area Area) bool {
	return moveEnemy(en, tx, ty, speed, config.Enemy.MinStep, collides, area)
}

func moveEnemy(en *components.EnemyData, tx, ty, speed, minStep float64, collides CollidesFunc, area Area) bool {
	c := en.Center()
	dir, dist := gamemath.Normalize(gamemath.Vec2{X: tx - c.X, Y: ty - c.Y})
	if dist < minStep || dist == 0 || speed <= 0 {
		return false
	}
	step := min(speed, dist)
	dx, dy := dir.X*step, dir.Y*step

	en.Facing = gamemath.FacingFromVector(dx, dy, en.Facing)

	startX, startY := en.X, en.Y
	if dx != 0 && !bodyCollides(en, en.X+dx, en.Y, collides, area) {
		en.X += dx
	}
	if dy != 0 && !bodyCollides(en, en.X, en.Y+dy, collides, area) {
		en.Y += dy
	}

	if area.Width > 0 {
		en.X = gamemath.ClampFloat(en.X, 0, max(0, area.Width-en.Width))
	}
	if area.Height > 0 {
		en.Y = gamemath.ClampFloat(en.Y, 0, max(0, area.Height-en.Height))
	}
	return en.X != startX || en.Y != startY
}

// bodyCollides samples the corners and edge midpoints of the enemy's body
// placed at (x, y).
func bodyCollides(en *components.EnemyData, x, y float64, collides CollidesFunc, area Area) bool {
	if collides == nil {
		return false
	}
	left, top := x+collisionInset, y+collisionInset
	right, bottom := x+en.Width-collisionInset, y+en.Height-collisionInset
	midX, midY := x+en.Width/2, y+en.Height/2
	points := [...][2]float64{
		{left, top}, {right, top}, {left, bottom}, {right, bottom},
		{midX, top}, {midX, bottom}, {left, midY}, {right, midY},
	}
	for _, p := range points {
		if collides(p[0], p[1], area) {
			return true
		}
	}
	return false
}
