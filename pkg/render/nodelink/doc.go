// Package nodelink renders networks as Graphviz node-link diagrams.
//
// # Overview
//
// This is the alternative to the geometric diagram in [render/diagram]: the
// same layers and weighted connections, but laid out by Graphviz. Each layer
// is one rank (input at the bottom) and each connection one edge, colored
// and sized with the same weight styles.
//
// # Usage
//
// Prepare the network, convert it to DOT, then render:
//
//	p, err := diagram.Prepare(in, diagram.DefaultOptions())
//	dot := nodelink.ToDOT(p, nodelink.Options{Labels: true})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// [RenderPNG] rasterizes in-process. [RenderPDF] converts the SVG and
// requires librsvg (rsvg-convert).
//
// # Dependencies
//
// This package uses [github.com/goccy/go-graphviz] for in-process rendering.
//
// [render/diagram]: github.com/matzehuels/nnviz/pkg/render/diagram
package nodelink
