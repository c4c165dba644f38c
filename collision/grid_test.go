package collision_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/automoto/doomerang-combat/collision"
	"github.com/automoto/doomerang-combat/components"
	"github.com/automoto/doomerang-combat/enemyai"
)

func TestGrid_Solid(t *testing.T) {
	g := collision.NewEmptyGrid(320, 240, 32)
	g.AddSolid(64, 64, 32, 32)

	tests := []struct {
		name  string
		x, y  float64
		solid bool
	}{
		{"open floor", 10, 10, false},
		{"inside tile", 70, 90, true},
		{"tile top-left corner", 64, 64, true},
		{"just past tile", 96, 70, false},
		{"same cell neighbour", 63.9, 70, false},
		{"left of bounds", -1, 10, true},
		{"below bounds", 10, 240, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.solid, g.Solid(tt.x, tt.y))
		})
	}
}

func TestAreas_CollidesAtIsPerArea(t *testing.T) {
	arena := collision.NewEmptyGrid(320, 240, 32)
	arena.AddSolid(0, 0, 32, 32)
	areas := collision.Areas{"arena": arena}

	assert.True(t, areas.CollidesAt(5, 5, enemyai.Area{ID: "arena"}))
	assert.False(t, areas.CollidesAt(5, 5, enemyai.Area{ID: "cellar"}))
}

func TestAreas_StopsEnemyAtWall(t *testing.T) {
	g := collision.NewEmptyGrid(320, 240, 32)
	g.AddSolid(128, 0, 32, 240)
	areas := collision.Areas{"arena": g}

	en := &components.EnemyData{X: 90, Y: 100, Width: 32, Height: 32}
	for i := 0; i < 20; i++ {
		enemyai.MoveEnemy(en, 300, 116, 2, areas.CollidesAt, enemyai.Area{ID: "arena", Width: 320, Height: 240})
	}
	assert.LessOrEqual(t, en.X+en.Width, 128.0)
	assert.Greater(t, en.X, 90.0)
}
