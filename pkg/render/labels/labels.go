// Package labels places connection labels so they do not overlap.
//
// Candidate positions lie on the connection segment at step/10 of its
// length for steps 2 through 9; the two tenths nearest each endpoint are
// skipped so labels stay clear of the nodes. The first candidate whose
// surrounding box can be claimed on the occupancy grid wins.
package labels

import (
	"github.com/matzehuels/nnviz/pkg/render/layout"
)

const (
	// Segments is the number of equal subdivisions of a connection.
	Segments = 10
	// FirstStep and LastStep bound the candidate subdivisions.
	FirstStep = 2
	LastStep  = 9
	// BoxSize is the side of the square reserved around a label.
	BoxSize = 1.0
)

// Claimer reserves rectangles of the plot plane. *occupancy.Grid implements it.
type Claimer interface {
	TryClaim(r layout.Rect) bool
}

// Placement is a granted label position.
type Placement struct {
	layout.Point
	Step int // subdivision index in [FirstStep, LastStep]
}

// Place scans the segment from→to and claims the first free label box.
// It returns false when every candidate is taken; the caller then skips the
// label.
func Place(from, to layout.Point, grid Claimer) (Placement, bool) {
	for step := FirstStep; step <= LastStep; step++ {
		p := Candidate(from, to, step)
		if grid.TryClaim(Box(p)) {
			return Placement{Point: p, Step: step}, true
		}
	}
	return Placement{}, false
}

// Candidate returns the label position for a subdivision step.
func Candidate(from, to layout.Point, step int) layout.Point {
	return from.Lerp(to, float64(step)/Segments)
}

// Box returns the square reserved for a label centered on p.
func Box(p layout.Point) layout.Rect {
	h := BoxSize / 2
	return layout.Rect{XMin: p.X - h, YMin: p.Y - h, XMax: p.X + h, YMax: p.Y + h}
}
