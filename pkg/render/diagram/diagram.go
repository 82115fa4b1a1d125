// Package diagram draws a laid-out neural network onto a canvas surface.
//
// [Draw] validates its input, builds the layout, then walks the layers from
// input to output. Each layer draws its nodes, the connections from the layer
// below (colored and sized by weight), and its caption. Connection labels are
// optional; when enabled they are spread over an occupancy grid so that no
// two labels overlap. A title closes the figure.
//
// The caller owns the surface: it saves and closes it after Draw returns.
package diagram

import (
	"context"
	"strconv"

	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/nnviz/pkg/errors"
	"github.com/matzehuels/nnviz/pkg/fonts"
	"github.com/matzehuels/nnviz/pkg/render/canvas"
	"github.com/matzehuels/nnviz/pkg/render/layout"
	"github.com/matzehuels/nnviz/pkg/render/occupancy"
	"github.com/matzehuels/nnviz/pkg/render/styles"
	"github.com/matzehuels/nnviz/pkg/weights"
)

// DefaultTitle is the figure title before the epoch suffix.
const DefaultTitle = "Neural Network architecture"

// Input is the network to draw.
type Input struct {
	Sizes         []int        // layer sizes, input layer first
	Weights       []mat.Matrix // one per layer pair; nil for the default weights
	OutputWeights []float64    // one score per output node; nil for plain nodes
	Epoch         *int         // appended to the title when set
}

// Options controls how a network is drawn.
type Options struct {
	Layout         layout.Options
	Widths         styles.Widths
	Palette        styles.Palette
	Labels         bool    // print weight labels on strong connections
	LabelSize      float64 // points
	LayerFontSize  float64 // points
	TitleFontSize  float64 // points
	Title          string
	GridCellSize   float64
	CaptionPadding float64 // points kept free after the widest layer caption
	Filler         float64 // weight used when Input.Weights is empty; zero means the default
}

// DefaultOptions returns the standard look: gray nodes, 2pt base widths, no
// labels.
func DefaultOptions() Options {
	return Options{
		Layout:         layout.DefaultOptions(),
		Widths:         styles.DefaultWidths,
		Palette:        styles.DefaultPalette(),
		LabelSize:      8,
		LayerFontSize:  12,
		TitleFontSize:  16,
		Title:          DefaultTitle,
		GridCellSize:   occupancy.DefaultCellSize,
		CaptionPadding: 8,
		Filler:         weights.DefaultFiller,
	}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.Layout.VerticalSpacing == 0 {
		o.Layout.VerticalSpacing = d.Layout.VerticalSpacing
	}
	if o.Layout.HorizontalSpacing == 0 {
		o.Layout.HorizontalSpacing = d.Layout.HorizontalSpacing
	}
	if o.Layout.NodeRadius == 0 {
		o.Layout.NodeRadius = d.Layout.NodeRadius
	}
	if o.Widths == (styles.Widths{}) {
		o.Widths = d.Widths
	}
	if o.LabelSize <= 0 {
		o.LabelSize = d.LabelSize
	}
	if o.LayerFontSize <= 0 {
		o.LayerFontSize = d.LayerFontSize
	}
	if o.TitleFontSize <= 0 {
		o.TitleFontSize = d.TitleFontSize
	}
	if o.Title == "" {
		o.Title = d.Title
	}
	if o.GridCellSize <= 0 {
		o.GridCellSize = d.GridCellSize
	}
	if o.CaptionPadding <= 0 {
		o.CaptionPadding = d.CaptionPadding
	}
	if o.Filler == 0 {
		o.Filler = d.Filler
	}
	return o
}

// Stats summarizes what Draw put on the surface.
type Stats struct {
	Layers        int                     `json:"layers"`
	Nodes         int                     `json:"nodes"`
	Connections   int                     `json:"connections"`
	Labels        int                     `json:"labels"`
	LabelsSkipped int                     `json:"labels_skipped"`
	Categories    map[styles.Category]int `json:"categories,omitempty"`
}

// Prepared is a validated input together with its layout.
type Prepared struct {
	Network       layout.Network
	Weights       []mat.Matrix
	OutputWeights []float64
	Epoch         *int
}

// Prepare validates in and lays it out without drawing anything. Every
// input error surfaces here.
func Prepare(in Input, opts Options) (Prepared, error) {
	opts = opts.withDefaults()
	net, err := layout.Build(in.Sizes,
		layout.WithVerticalSpacing(opts.Layout.VerticalSpacing),
		layout.WithHorizontalSpacing(opts.Layout.HorizontalSpacing),
		layout.WithNodeRadius(opts.Layout.NodeRadius),
	)
	if err != nil {
		return Prepared{}, err
	}
	ws, err := weights.Resolve(in.Sizes, in.Weights, opts.Filler)
	if err != nil {
		return Prepared{}, err
	}
	if err := errors.ValidateOutputWeights(len(in.OutputWeights), in.Sizes[len(in.Sizes)-1]); err != nil {
		return Prepared{}, err
	}
	return Prepared{Network: net, Weights: ws, OutputWeights: in.OutputWeights, Epoch: in.Epoch}, nil
}

// Draw validates in and draws it onto s. Nothing is drawn when validation
// fails. The caller saves and closes s.
func Draw(ctx context.Context, s canvas.Surface, in Input, opts Options) (Stats, error) {
	opts = opts.withDefaults()
	p, err := Prepare(in, opts)
	if err != nil {
		return Stats{}, err
	}
	return DrawPrepared(ctx, s, p, opts)
}

// DrawPrepared draws an input that already went through [Prepare].
func DrawPrepared(ctx context.Context, s canvas.Surface, p Prepared, opts Options) (Stats, error) {
	opts = opts.withDefaults()
	net := p.Network
	if err := s.Begin(FigureFor(net, opts)); err != nil {
		return Stats{}, err
	}

	stats := Stats{Layers: len(net.Layers), Categories: make(map[styles.Category]int)}
	c := &connector{
		surface:   s,
		radius:    net.Options.NodeRadius,
		widths:    opts.Widths,
		palette:   opts.Palette,
		labelSize: opts.LabelSize,
		stats:     &stats,
	}
	if opts.Labels {
		c.grid = occupancy.New(GridBounds(net), opts.GridCellSize)
	}

	last := len(net.Layers) - 1
	for k, layer := range net.Layers {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		prev, hasPrev := net.Previous(layer)
		for j, node := range layer.Nodes {
			s.Circle(node.Point, net.Options.NodeRadius, opts.Palette.Node(nodeCategory(k == last, p.OutputWeights, j)))
			stats.Nodes++
			if !hasPrev {
				continue
			}
			w := p.Weights[layer.Prev]
			for i, src := range prev.Nodes {
				c.connect(node.Point, src.Point, w.At(i, j))
			}
		}
		caption := layout.Point{X: net.Width(), Y: layer.Y}
		s.Text(caption, Caption(k, len(net.Layers)), opts.LayerFontSize, canvas.AlignLeft, opts.Palette.TextColor())
	}

	s.Title(Title(opts.Title, p.Epoch), opts.TitleFontSize, opts.Palette.TextColor())
	return stats, nil
}

func nodeCategory(output bool, scores []float64, j int) styles.NodeCategory {
	if !output || len(scores) == 0 {
		return styles.NodePlain
	}
	return styles.NodeCategoryFor(scores[j])
}

// Caption returns the label of layer k in a network of n layers.
func Caption(k, n int) string {
	switch k {
	case 0:
		return "Input Layer"
	case n - 1:
		return "Output Layer"
	default:
		return "Hidden Layer " + strconv.Itoa(k)
	}
}

// Title returns the figure title, suffixed with the epoch when one is given.
func Title(base string, epoch *int) string {
	if epoch == nil {
		return base
	}
	return base + " - Epoch: " + strconv.Itoa(*epoch)
}

// GridBounds is the plane region tracked for label placement: twice the
// widest layer across, one vertical spacing per layer up.
func GridBounds(net layout.Network) layout.Rect {
	return layout.Rect{XMax: 2 * net.Width(), YMax: net.Height()}
}

// FigureFor is what a surface must show for net: every node circle and the
// caption anchors with a small border, plus a gutter as wide as the longest
// layer caption.
func FigureFor(net layout.Network, opts Options) canvas.Figure {
	opts = opts.withDefaults()
	b := net.Bounds()
	b.XMax = max(b.XMax, net.Width())
	return canvas.Figure{
		Bounds: b.Expand(net.Options.NodeRadius),
		Gutter: captionWidth(len(net.Layers), opts.LayerFontSize) + opts.CaptionPadding,
	}
}

// captionWidth is the width in points of the widest caption of an n-layer
// network.
func captionWidth(n int, size float64) float64 {
	captions := make([]string, n)
	runes := 0
	for k := range n {
		captions[k] = Caption(k, n)
		runes = max(runes, len(captions[k]))
	}
	w, err := fonts.Measure(size, captions...)
	if err != nil {
		return size * float64(runes)
	}
	return w
}
