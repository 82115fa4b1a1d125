package labels

import (
	"math"
	"testing"

	"github.com/matzehuels/nnviz/pkg/render/layout"
	"github.com/matzehuels/nnviz/pkg/render/occupancy"
)

// scripted grants claims only for the listed call numbers and records every
// rectangle it was asked for.
type scripted struct {
	grant map[int]bool
	asked []layout.Rect
}

func (s *scripted) TryClaim(r layout.Rect) bool {
	s.asked = append(s.asked, r)
	return s.grant[len(s.asked)-1]
}

func TestPlaceFirstFree(t *testing.T) {
	from := layout.Point{X: 0, Y: 10}
	to := layout.Point{X: 0, Y: 0}

	for blocked := 0; blocked < LastStep-FirstStep+1; blocked++ {
		s := &scripted{grant: map[int]bool{blocked: true}}

		p, ok := Place(from, to, s)
		if !ok {
			t.Fatalf("blocked=%d: Place returned false", blocked)
		}
		wantStep := FirstStep + blocked
		if p.Step != wantStep {
			t.Errorf("blocked=%d: step = %d, want %d", blocked, p.Step, wantStep)
		}
		if len(s.asked) != blocked+1 {
			t.Errorf("blocked=%d: %d claims attempted, want %d (scan stops at first success)", blocked, len(s.asked), blocked+1)
		}
		wantY := 10 - float64(wantStep)
		if math.Abs(p.Y-wantY) > 1e-9 || p.X != 0 {
			t.Errorf("blocked=%d: position = %v, want (0, %v)", blocked, p.Point, wantY)
		}
	}
}

func TestPlaceAllTaken(t *testing.T) {
	s := &scripted{}

	if _, ok := Place(layout.Point{X: 0, Y: 0}, layout.Point{X: 10, Y: 0}, s); ok {
		t.Error("Place should fail when every candidate is taken")
	}
	if len(s.asked) != LastStep-FirstStep+1 {
		t.Errorf("%d candidates tried, want %d", len(s.asked), LastStep-FirstStep+1)
	}
}

func TestPlaceWithOccupancyGrid(t *testing.T) {
	grid := occupancy.New(layout.Rect{XMin: -2, YMin: -2, XMax: 12, YMax: 2}, 0.2)
	from := layout.Point{X: 0, Y: 0}
	to := layout.Point{X: 10, Y: 0}

	// Occupy the early candidates at x=2, 3 and 4.
	if !grid.TryClaim(layout.Rect{XMin: 1.5, YMin: -0.5, XMax: 4.5, YMax: 0.5}) {
		t.Fatal("setup claim failed")
	}

	p, ok := Place(from, to, grid)
	if !ok {
		t.Fatal("Place should find a free step")
	}
	if p.Step != 5 {
		t.Errorf("step = %d, want 5", p.Step)
	}

	// The granted box is now unavailable.
	again, ok := Place(from, to, grid)
	if !ok {
		t.Fatal("second label should still fit further along")
	}
	if again.Step <= p.Step {
		t.Errorf("second label step = %d, want > %d", again.Step, p.Step)
	}
}

func TestPlaceGridExhausted(t *testing.T) {
	grid := occupancy.New(layout.Rect{XMin: -2, YMin: -2, XMax: 12, YMax: 2}, 0.2)
	if !grid.TryClaim(layout.Rect{XMin: -2, YMin: -2, XMax: 12, YMax: 2}) {
		t.Fatal("setup claim failed")
	}

	if _, ok := Place(layout.Point{X: 0, Y: 0}, layout.Point{X: 10, Y: 0}, grid); ok {
		t.Error("Place should fail on a fully occupied grid")
	}
}

func TestCandidate(t *testing.T) {
	from := layout.Point{X: 1, Y: 1}
	to := layout.Point{X: 11, Y: -9}

	got := Candidate(from, to, 2)
	if math.Abs(got.X-3) > 1e-9 || math.Abs(got.Y+1) > 1e-9 {
		t.Errorf("Candidate(step 2) = %v, want (3, -1)", got)
	}
}

func TestBox(t *testing.T) {
	got := Box(layout.Point{X: 2, Y: 3})
	want := layout.Rect{XMin: 1.5, YMin: 2.5, XMax: 2.5, YMax: 3.5}
	if got != want {
		t.Errorf("Box() = %v, want %v", got, want)
	}
}
