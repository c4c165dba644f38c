// Package collision answers point-solidity queries against the solid tiles
// of each area, backed by a resolv space.
package collision

import (
	"github.com/solarlune/resolv"

	"github.com/automoto/doomerang-combat/enemyai"
	"github.com/automoto/doomerang-combat/tags"
)

// Grid is the solid geometry of one area.
type Grid struct {
	space  *resolv.Space
	cursor *resolv.Object
	width  float64
	height float64
}

// NewGrid wraps space, whose bounds are width x height world units. Points
// outside the bounds count as solid.
func NewGrid(space *resolv.Space, width, height float64) *Grid {
	cursor := resolv.NewObject(0, 0, 1, 1, tags.ResolvPoint)
	space.Add(cursor)
	return &Grid{space: space, cursor: cursor, width: width, height: height}
}

// NewEmptyGrid creates a grid with its own space, divided into tileSize cells.
func NewEmptyGrid(width, height, tileSize float64) *Grid {
	cell := max(1, int(tileSize))
	return NewGrid(resolv.NewSpace(int(width), int(height), cell, cell), width, height)
}

// Space returns the underlying resolv space.
func (g *Grid) Space() *resolv.Space {
	return g.space
}

// AddSolid adds a solid rectangle and returns its object.
func (g *Grid) AddSolid(x, y, w, h float64) *resolv.Object {
	obj := resolv.NewObject(x, y, w, h, tags.ResolvSolid)
	obj.SetShape(resolv.NewRectangle(0, 0, w, h))
	g.space.Add(obj)
	return obj
}

// Solid reports whether (x, y) lies inside a solid object or outside the
// grid's bounds.
func (g *Grid) Solid(x, y float64) bool {
	if x < 0 || y < 0 || x >= g.width || y >= g.height {
		return true
	}

	g.cursor.X, g.cursor.Y = x, y
	g.cursor.Update()

	check := g.cursor.Check(0, 0, tags.ResolvSolid)
	if check == nil {
		return false
	}
	// Check is cell-granular; confirm the point is inside the object.
	for _, obj := range check.Objects {
		if x >= obj.X && x < obj.X+obj.W && y >= obj.Y && y < obj.Y+obj.H {
			return true
		}
	}
	return false
}

// Areas holds one Grid per area id.
type Areas map[string]*Grid

// CollidesAt is an enemyai.CollidesFunc. Areas without a grid have no solid
// geometry.
func (a Areas) CollidesAt(x, y float64, area enemyai.Area) bool {
	g, ok := a[area.ID]
	if !ok {
		return false
	}
	return g.Solid(x, y)
}

var _ enemyai.CollidesFunc = Areas(nil).CollidesAt
