package layout

import (
	"github.com/samber/lo"

	"github.com/matzehuels/nnviz/pkg/errors"
)

const (
	DefaultVerticalSpacing   = 6.0
	DefaultHorizontalSpacing = 1.0
	DefaultNodeRadius        = 0.3
)

// Options holds the geometry constants of a diagram.
type Options struct {
	VerticalSpacing   float64
	HorizontalSpacing float64
	NodeRadius        float64
}

// Option configures Build.
type Option func(*Options)

// WithVerticalSpacing sets the distance between consecutive layers.
func WithVerticalSpacing(d float64) Option { return func(o *Options) { o.VerticalSpacing = d } }

// WithHorizontalSpacing sets the distance between neighbouring nodes of a layer.
func WithHorizontalSpacing(d float64) Option { return func(o *Options) { o.HorizontalSpacing = d } }

// WithNodeRadius sets the node circle radius.
func WithNodeRadius(r float64) Option { return func(o *Options) { o.NodeRadius = r } }

// DefaultOptions returns the standard diagram geometry.
func DefaultOptions() Options {
	return Options{
		VerticalSpacing:   DefaultVerticalSpacing,
		HorizontalSpacing: DefaultHorizontalSpacing,
		NodeRadius:        DefaultNodeRadius,
	}
}

// Network is the laid-out diagram: layers bottom to top plus the size of the
// widest layer, which every layer is centered under.
type Network struct {
	Layers  []Layer
	Widest  int
	Options Options
}

// Build lays out a network with the given layer sizes (input layer first).
func Build(sizes []int, opts ...Option) (Network, error) {
	if err := errors.ValidateLayerSizes(sizes); err != nil {
		return Network{}, err
	}

	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.VerticalSpacing <= 0 || o.HorizontalSpacing <= 0 || o.NodeRadius <= 0 {
		return Network{}, errors.New(errors.ErrCodeInvalidConfig,
			"spacing and radius must be positive (vertical %.2f, horizontal %.2f, radius %.2f)",
			o.VerticalSpacing, o.HorizontalSpacing, o.NodeRadius)
	}

	net := Network{
		Layers:  make([]Layer, 0, len(sizes)),
		Widest:  lo.Max(sizes),
		Options: o,
	}
	for _, n := range sizes {
		net.add(n)
	}
	return net, nil
}

func (n *Network) add(size int) {
	layer := Layer{Index: len(n.Layers), Prev: len(n.Layers) - 1}
	if layer.Prev >= 0 {
		layer.Y = n.Layers[layer.Prev].Y + n.Options.VerticalSpacing
	}

	layer.Nodes = make([]Node, size)
	x := n.leftMargin(size)
	for j := range layer.Nodes {
		layer.Nodes[j] = Node{Point{X: x, Y: layer.Y}}
		x += n.Options.HorizontalSpacing
	}
	n.Layers = append(n.Layers, layer)
}

func (n *Network) leftMargin(size int) float64 {
	return n.Options.HorizontalSpacing * float64(n.Widest-size) / 2
}

// Previous returns the layer below l, if any.
func (n Network) Previous(l Layer) (Layer, bool) {
	if l.Prev < 0 || l.Prev >= len(n.Layers) {
		return Layer{}, false
	}
	return n.Layers[l.Prev], true
}

// Sizes returns the node count of every layer.
func (n Network) Sizes() []int {
	return lo.Map(n.Layers, func(l Layer, _ int) int { return len(l.Nodes) })
}

// NodeCount returns the total number of nodes.
func (n Network) NodeCount() int {
	return lo.SumBy(n.Layers, func(l Layer) int { return len(l.Nodes) })
}

// ConnectionCount returns the number of connections between consecutive layers.
func (n Network) ConnectionCount() int {
	total := 0
	for _, l := range n.Layers {
		if prev, ok := n.Previous(l); ok {
			total += len(prev.Nodes) * len(l.Nodes)
		}
	}
	return total
}

// Width is the horizontal extent reserved for nodes: the widest layer times
// the horizontal spacing. Layer captions start here.
func (n Network) Width() float64 {
	return float64(n.Widest) * n.Options.HorizontalSpacing
}

// Height is the vertical extent covered by layers.
func (n Network) Height() float64 {
	return float64(len(n.Layers)) * n.Options.VerticalSpacing
}

// Center returns the horizontal center of the widest layer.
func (n Network) Center() float64 {
	return n.Options.HorizontalSpacing * float64(n.Widest-1) / 2
}

// Bounds returns the rectangle covering every node circle.
func (n Network) Bounds() Rect {
	r := n.Options.NodeRadius
	top := 0.0
	if len(n.Layers) > 0 {
		top = n.Layers[len(n.Layers)-1].Y
	}
	return Rect{
		XMin: -r,
		YMin: -r,
		XMax: n.Options.HorizontalSpacing*float64(n.Widest-1) + r,
		YMax: top + r,
	}
}
