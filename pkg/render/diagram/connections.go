package diagram

import (
	"fmt"
	"math"

	"github.com/matzehuels/nnviz/pkg/render/canvas"
	"github.com/matzehuels/nnviz/pkg/render/labels"
	"github.com/matzehuels/nnviz/pkg/render/layout"
	"github.com/matzehuels/nnviz/pkg/render/styles"
)

// connector draws the connections into one destination node at a time and
// places their labels.
type connector struct {
	surface   canvas.Surface
	radius    float64
	widths    styles.Widths
	palette   styles.Palette
	grid      labels.Claimer // nil disables labels
	labelSize float64
	stats     *Stats
}

// segment returns the visible part of the connection between dest and the
// node src below it: the line from the boundary of dest's circle to the
// boundary of src's circle, both along the center-to-center direction.
func segment(dest, src layout.Point, r float64) (from, to layout.Point) {
	angle := math.Atan((dest.X - src.X) / (dest.Y - src.Y))
	adj := layout.Point{X: r * math.Sin(angle), Y: r * math.Cos(angle)}
	return dest.Sub(adj), src.Add(adj)
}

// connect draws the line from src into dest for weight w and, when labels are
// enabled and w is large enough, its label.
func (c *connector) connect(dest, src layout.Point, w float64) {
	from, to := segment(dest, src, c.radius)
	cat, width := styles.StyleFor(w, c.widths)
	c.surface.Line(from, to, width, c.palette.Connection(cat))
	c.stats.Connections++
	c.stats.Categories[cat]++

	if c.grid == nil || !styles.Labeled(w) {
		return
	}
	p, ok := labels.Place(from, to, c.grid)
	if !ok {
		c.stats.LabelsSkipped++
		return
	}
	c.surface.Text(p.Point, FormatWeight(w), c.labelSize, canvas.AlignCenter, c.palette.TextColor())
	c.stats.Labels++
}

// FormatWeight renders a weight the way connection labels show it.
func FormatWeight(w float64) string {
	return fmt.Sprintf("%3.2f", w)
}
