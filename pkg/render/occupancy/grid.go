// Package occupancy tracks which parts of the plot plane are already taken
// by text labels.
//
// The plane is discretized into square cells. A label claims the cells under
// its bounding box; later labels must find free space elsewhere. A [Grid]
// lives for exactly one render and is not safe for concurrent use.
package occupancy

import (
	"math"

	"github.com/matzehuels/nnviz/pkg/render/layout"
)

// DefaultCellSize is the side of one grid cell in plot units.
const DefaultCellSize = 0.2

// Rect is a rectangle in plot units.
type Rect = layout.Rect

// Grid is a boolean occupancy map over a rectangle of the plane.
type Grid struct {
	origin     layout.Point
	cell       float64
	cols, rows int
	taken      []bool
}

// New creates a grid covering bounds with square cells of the given size.
// A non-positive cell size selects DefaultCellSize.
func New(bounds Rect, cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = DefaultCellSize
	}
	cols := max(1, int(math.Ceil(bounds.Width()/cellSize)))
	rows := max(1, int(math.Ceil(bounds.Height()/cellSize)))
	return &Grid{
		origin: layout.Point{X: bounds.XMin, Y: bounds.YMin},
		cell:   cellSize,
		cols:   cols,
		rows:   rows,
		taken:  make([]bool, cols*rows),
	}
}

// Size returns the number of columns and rows.
func (g *Grid) Size() (cols, rows int) { return g.cols, g.rows }

// CellSize returns the side of one cell in plot units.
func (g *Grid) CellSize() float64 { return g.cell }

// TryClaim marks r as occupied if its four corner cells are free and
// reports whether it did. Nothing changes when it returns false.
//
// Claimed cells span the half-open index range [left, right) x [bottom, top),
// so rectangles that only share an edge do not block each other.
//
// Only the corners are inspected: a rectangle larger than an existing claim
// can be granted even though an interior cell is already taken.
func (g *Grid) TryClaim(r Rect) bool {
	left, bottom := g.index(r.XMin, r.YMin)
	right, top := g.index(r.XMax, r.YMax)

	if g.occupied(left, bottom) || g.occupied(left, top) ||
		g.occupied(right, top) || g.occupied(right, bottom) {
		return false
	}

	for i := left; i < right; i++ {
		for j := bottom; j < top; j++ {
			g.taken[j*g.cols+i] = true
		}
	}
	return true
}

// Occupied reports whether the cell containing p is taken.
func (g *Grid) Occupied(p layout.Point) bool {
	return g.occupied(g.index(p.X, p.Y))
}

// Claimed returns the number of occupied cells.
func (g *Grid) Claimed() int {
	n := 0
	for _, t := range g.taken {
		if t {
			n++
		}
	}
	return n
}

func (g *Grid) occupied(i, j int) bool {
	return g.taken[j*g.cols+i]
}

// index maps a plane position to its cell. Positions outside the grid are
// clamped onto the border cells.
func (g *Grid) index(x, y float64) (int, int) {
	i := int(math.Floor((x - g.origin.X) / g.cell))
	j := int(math.Floor((y - g.origin.Y) / g.cell))
	return clamp(i, g.cols), clamp(j, g.rows)
}

func clamp(i, n int) int {
	return max(0, min(i, n-1))
}
