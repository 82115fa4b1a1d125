package occupancy

import (
	"testing"

	"github.com/matzehuels/nnviz/pkg/render/layout"
)

func newTestGrid() *Grid {
	return New(Rect{XMin: 0, YMin: 0, XMax: 10, YMax: 10}, 0.2)
}

func TestNewSize(t *testing.T) {
	tests := []struct {
		name     string
		bounds   Rect
		cell     float64
		wantCols int
		wantRows int
	}{
		{"exact", Rect{0, 0, 10, 4}, 0.5, 20, 8},
		{"rounded up", Rect{0, 0, 1.1, 1}, 0.5, 3, 2},
		{"offset origin", Rect{-2, -1, 2, 1}, 1, 4, 2},
		{"default cell", Rect{0, 0, 1, 1}, 0, 5, 5},
		{"degenerate", Rect{0, 0, 0, 0}, 1, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.bounds, tt.cell)
			cols, rows := g.Size()
			if cols != tt.wantCols || rows != tt.wantRows {
				t.Errorf("Size() = %dx%d, want %dx%d", cols, rows, tt.wantCols, tt.wantRows)
			}
		})
	}
}

func TestTryClaimSameRectTwice(t *testing.T) {
	g := newTestGrid()
	r := Rect{1, 1, 2, 2}

	if !g.TryClaim(r) {
		t.Fatal("first claim should succeed")
	}
	if g.TryClaim(r) {
		t.Error("second claim of the same rectangle should fail")
	}
}

func TestTryClaimDisjoint(t *testing.T) {
	g := newTestGrid()

	if !g.TryClaim(Rect{1, 1, 2, 2}) {
		t.Error("first rectangle should be free")
	}
	if !g.TryClaim(Rect{5, 5, 6, 6}) {
		t.Error("disjoint rectangle should be free")
	}
}

func TestTryClaimOverlapping(t *testing.T) {
	g := newTestGrid()

	if !g.TryClaim(Rect{1, 1, 2, 2}) {
		t.Fatal("first rectangle should be free")
	}
	if g.TryClaim(Rect{1.5, 1.5, 2.5, 2.5}) {
		t.Error("rectangle overlapping a claimed corner should fail")
	}
}

func TestTryClaimFailureDoesNotMutate(t *testing.T) {
	g := newTestGrid()
	g.TryClaim(Rect{1, 1, 2, 2})
	before := g.Claimed()

	if g.TryClaim(Rect{1.5, 1.5, 4, 4}) {
		t.Fatal("overlapping claim should fail")
	}
	if after := g.Claimed(); after != before {
		t.Errorf("Claimed() = %d after failed claim, want %d", after, before)
	}
	if g.Occupied(layout.Point{X: 3.5, Y: 3.5}) {
		t.Error("failed claim must not occupy its free cells")
	}
}

func TestTryClaimMarksWholeRange(t *testing.T) {
	g := newTestGrid()
	g.TryClaim(Rect{1, 1, 2, 2})

	for _, p := range []layout.Point{{1, 1}, {1.5, 1.5}, {1.9, 1.9}, {1, 1.9}} {
		if !g.Occupied(p) {
			t.Errorf("Occupied(%v) = false, want true", p)
		}
	}
	for _, p := range []layout.Point{{0.5, 0.5}, {2.1, 2.1}, {2.4, 1}, {1, 2.4}} {
		if g.Occupied(p) {
			t.Errorf("Occupied(%v) = true, want false", p)
		}
	}
}

// A large rectangle whose corners all lie outside an existing claim is
// granted even though it covers it.
func TestTryClaimSharedEdge(t *testing.T) {
	g := newTestGrid()

	if !g.TryClaim(Rect{1, 1, 2, 2}) {
		t.Fatal("first rectangle should be free")
	}
	if !g.TryClaim(Rect{2, 1, 3, 2}) {
		t.Error("rectangle sharing only an edge should be free")
	}
}

func TestTryClaimCornerOnlyCheck(t *testing.T) {
	g := newTestGrid()

	if !g.TryClaim(Rect{4.5, 4.5, 5, 5}) {
		t.Fatal("small rectangle should be free")
	}
	if !g.TryClaim(Rect{3, 3, 7, 7}) {
		t.Error("enclosing rectangle is granted by the corner check")
	}
}

func TestTryClaimClampsOutside(t *testing.T) {
	g := newTestGrid()

	if !g.TryClaim(Rect{-1, -1, 0.5, 0.5}) {
		t.Fatal("rectangle hanging off the grid should be clamped and claimed")
	}
	if !g.Occupied(layout.Point{X: 0, Y: 0}) {
		t.Error("origin cell should be occupied")
	}
	if g.TryClaim(Rect{-3, -3, -2, -2}) {
		t.Error("rectangle clamped onto an occupied border cell should fail")
	}
}
