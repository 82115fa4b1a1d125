package layout

// Point is a position in plot units. Y grows upwards.
type Point struct {
	X, Y float64
}

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p scaled by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Lerp returns the point a fraction t of the way from p to q.
func (p Point) Lerp(q Point, t float64) Point { return p.Add(q.Sub(p).Scale(t)) }

// Rect is an axis-aligned rectangle in plot units.
type Rect struct {
	XMin, YMin, XMax, YMax float64
}

// Width returns the horizontal span of the rectangle.
func (r Rect) Width() float64 { return r.XMax - r.XMin }

// Height returns the vertical span of the rectangle.
func (r Rect) Height() float64 { return r.YMax - r.YMin }

// Union returns the smallest rectangle containing r and s.
func (r Rect) Union(s Rect) Rect {
	return Rect{
		XMin: min(r.XMin, s.XMin),
		YMin: min(r.YMin, s.YMin),
		XMax: max(r.XMax, s.XMax),
		YMax: max(r.YMax, s.YMax),
	}
}

// Expand grows the rectangle by d on every side.
func (r Rect) Expand(d float64) Rect {
	return Rect{r.XMin - d, r.YMin - d, r.XMax + d, r.YMax + d}
}

// Node is a single neuron. Its position never changes after Build.
type Node struct {
	Point
}

// Layer is one row of nodes sharing the same Y.
type Layer struct {
	Index int
	Y     float64
	Nodes []Node
	Prev  int // index of the layer below in Network.Layers, -1 for the input layer
}

// IsInput reports whether l is the first layer.
func (l Layer) IsInput() bool { return l.Prev < 0 }
