package canvas

import (
	"encoding/json"
	"io"

	"github.com/matzehuels/nnviz/pkg/render/layout"
)

// Op kinds recorded by [Recorder].
const (
	OpCircle = "circle"
	OpLine   = "line"
	OpText   = "text"
	OpTitle  = "title"
)

// Op is one recorded drawing call. Coordinates are in plot units.
type Op struct {
	Kind   string        `json:"kind"`
	Points []layout.Point `json:"points,omitempty"`
	Radius float64       `json:"radius,omitempty"`
	Width  float64       `json:"width,omitempty"`
	Text   string        `json:"text,omitempty"`
	Size   float64       `json:"size,omitempty"`
	Align  string        `json:"align,omitempty"`
	Color  string        `json:"color"`
}

// Recorder keeps every drawing call. It backs the json output format and
// lets tests inspect exactly what a diagram drew.
type Recorder struct {
	Figure
	Ops []Op `json:"ops"`
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Begin(fig Figure) error {
	r.Figure = fig
	return nil
}

func (r *Recorder) Circle(c layout.Point, radius float64, color string) {
	r.Ops = append(r.Ops, Op{Kind: OpCircle, Points: []layout.Point{c}, Radius: radius, Color: color})
}

func (r *Recorder) Line(from, to layout.Point, width float64, color string) {
	r.Ops = append(r.Ops, Op{Kind: OpLine, Points: []layout.Point{from, to}, Width: width, Color: color})
}

func (r *Recorder) Text(p layout.Point, s string, size float64, align Align, color string) {
	r.Ops = append(r.Ops, Op{Kind: OpText, Points: []layout.Point{p}, Text: s, Size: size, Align: align.String(), Color: color})
}

func (r *Recorder) Title(s string, size float64, color string) {
	r.Ops = append(r.Ops, Op{Kind: OpTitle, Text: s, Size: size, Align: AlignCenter.String(), Color: color})
}

// Filter returns the recorded ops of the given kind.
func (r *Recorder) Filter(kind string) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}

func (r *Recorder) Save(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}

func (r *Recorder) Close() error { return nil }
