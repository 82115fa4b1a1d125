package canvas

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/nnviz/pkg/errors"
	"github.com/matzehuels/nnviz/pkg/render/layout"
)

// Output formats produced by surfaces.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// Formats lists the formats [New] accepts.
var Formats = []string{FormatPNG, FormatSVG, FormatPDF, FormatJSON}

var errNotBegun = errors.New(errors.ErrCodeInternal, "surface saved before Begin")

// Align is the horizontal anchoring of text.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	default:
		return "left"
	}
}

// Figure is what a surface must show.
type Figure struct {
	// Bounds is the plot region in plot units.
	Bounds layout.Rect `json:"bounds"`
	// Gutter is the width in points kept free right of Bounds, for text
	// anchored inside Bounds that runs past its right edge. Text is sized in
	// points, so its extent does not shrink with the plot scale.
	Gutter float64 `json:"gutter,omitempty"`
}

// Surface is the drawing capability the diagram assembler renders onto.
type Surface interface {
	// Begin sizes the figure so that fig.Bounds fits it with equal axis
	// scaling, plus the gutter. It must be called once before any drawing
	// call.
	Begin(fig Figure) error
	// Circle draws an unfilled circle.
	Circle(center layout.Point, radius float64, color string)
	// Line draws a segment; width is in points.
	Line(from, to layout.Point, width float64, color string)
	// Text draws s with its baseline at p; size is in points.
	Text(p layout.Point, s string, size float64, align Align, color string)
	// Title sets the figure title drawn above the plot.
	Title(s string, size float64, color string)
	// Save encodes the figure.
	Save(w io.Writer) error
	// Close releases the surface. It is safe to call more than once.
	Close() error
}

// Options configures a figure.
type Options struct {
	Width, Height float64 // figure size in inches
	DPI           float64 // pixels per inch
	Margin        float64 // blank border in pixels
	TitleSize     float64 // points reserved for the title band
	Background    string
}

// DefaultOptions returns a 20x20 inch figure at 100 DPI.
func DefaultOptions() Options {
	return Options{
		Width:      20,
		Height:     20,
		DPI:        100,
		Margin:     20,
		TitleSize:  16,
		Background: "white",
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Width <= 0 {
		o.Width = d.Width
	}
	if o.Height <= 0 {
		o.Height = d.Height
	}
	if o.DPI <= 0 {
		o.DPI = d.DPI
	}
	if o.Margin < 0 {
		o.Margin = 0
	}
	if o.TitleSize <= 0 {
		o.TitleSize = d.TitleSize
	}
	if o.Background == "" {
		o.Background = d.Background
	}
	return o
}

// New returns an empty surface for the given output format.
func New(format string, opts Options) (Surface, error) {
	switch strings.ToLower(format) {
	case FormatPNG:
		return NewPNG(opts), nil
	case FormatSVG:
		return NewSVG(opts), nil
	case FormatPDF:
		return NewPDF(opts), nil
	case FormatJSON:
		return NewRecorder(), nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat,
			"unknown format %q (must be one of %s)", format, strings.Join(Formats, ", "))
	}
}

// SaveFile writes the surface to path, creating parent directories.
func SaveFile(s Surface, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := s.Save(f); err != nil {
		f.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	return f.Close()
}

// frame maps plot units to pixels: uniform scale, Y flipped, with a margin,
// a title band above the plot and the gutter right of it.
type frame struct {
	bounds    layout.Rect
	scale     float64 // pixels per plot unit
	ptPx      float64 // pixels per point
	margin    float64
	titleBand float64
	width     int
	height    int
}

func newFrame(fig Figure, o Options) (frame, error) {
	bounds := fig.Bounds
	if bounds.Width() <= 0 || bounds.Height() <= 0 {
		return frame{}, errors.New(errors.ErrCodeInvalidInput,
			"empty plot bounds %.2fx%.2f", bounds.Width(), bounds.Height())
	}
	ptPx := o.DPI / 72
	band := o.TitleSize * ptPx * 2.5
	gutter := max(fig.Gutter, 0) * ptPx
	availW := o.Width*o.DPI - 2*o.Margin - gutter
	availH := o.Height*o.DPI - 2*o.Margin - band
	if availW <= 0 || availH <= 0 {
		return frame{}, errors.New(errors.ErrCodeInvalidConfig,
			"figure %.1fx%.1f in at %.0f dpi leaves no room for the plot", o.Width, o.Height, o.DPI)
	}
	scale := min(availW/bounds.Width(), availH/bounds.Height())
	return frame{
		bounds:    bounds,
		scale:     scale,
		ptPx:      ptPx,
		margin:    o.Margin,
		titleBand: band,
		width:     int(bounds.Width()*scale + 2*o.Margin + gutter + 0.5),
		height:    int(bounds.Height()*scale + 2*o.Margin + band + 0.5),
	}, nil
}

// project converts a plot position to pixel coordinates (origin top-left).
func (f frame) project(p layout.Point) (float64, float64) {
	x := f.margin + (p.X-f.bounds.XMin)*f.scale
	y := f.margin + f.titleBand + (f.bounds.YMax-p.Y)*f.scale
	return x, y
}

// px converts points to pixels.
func (f frame) px(points float64) float64 { return points * f.ptPx }

// titleAnchor is the baseline center of the title.
func (f frame) titleAnchor(size float64) (float64, float64) {
	return float64(f.width) / 2, f.margin + f.px(size)*1.25
}
