package pipeline

import (
	"bytes"
	"context"
	"fmt"

	"github.com/matzehuels/nnviz/pkg/render/canvas"
	"github.com/matzehuels/nnviz/pkg/render/diagram"
	"github.com/matzehuels/nnviz/pkg/render/nodelink"
	"github.com/matzehuels/nnviz/pkg/render/styles"
)

// Render draws a prepared network in the view and format of opts. The
// surface is released on every path.
func Render(ctx context.Context, p diagram.Prepared, opts Options) ([]byte, diagram.Stats, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, diagram.Stats{}, err
	}
	if opts.IsNodelink() {
		return renderNodelink(ctx, p, opts)
	}
	return renderDiagram(ctx, p, opts)
}

func renderDiagram(ctx context.Context, p diagram.Prepared, opts Options) ([]byte, diagram.Stats, error) {
	s, err := canvas.New(opts.Format, opts.Config.CanvasOptions())
	if err != nil {
		return nil, diagram.Stats{}, err
	}
	defer s.Close()

	stats, err := diagram.DrawPrepared(ctx, s, p, opts.Config.DiagramOptions())
	if err != nil {
		return nil, stats, err
	}
	var buf bytes.Buffer
	if err := s.Save(&buf); err != nil {
		return nil, stats, fmt.Errorf("encode %s: %w", opts.Format, err)
	}
	return buf.Bytes(), stats, nil
}

func renderNodelink(ctx context.Context, p diagram.Prepared, opts Options) ([]byte, diagram.Stats, error) {
	nlOpts := opts.Config.NodelinkOptions()
	dot := nodelink.ToDOT(p, nlOpts)
	stats := nodelinkStats(p, nlOpts.Labels)

	var (
		data []byte
		err  error
	)
	switch opts.Format {
	case FormatDOT:
		data = []byte(dot)
	case FormatSVG:
		data, err = nodelink.RenderSVG(ctx, dot)
	case FormatPNG:
		data, err = nodelink.RenderPNG(ctx, dot)
	case FormatPDF:
		data, err = nodelink.RenderPDF(ctx, dot)
	default:
		return nil, stats, ValidateViewFormat(opts.View, opts.Format)
	}
	if err != nil {
		return nil, stats, err
	}
	return data, stats, nil
}

// nodelinkStats counts what the DOT graph contains. Graphviz places every
// edge label, so none are skipped.
func nodelinkStats(p diagram.Prepared, labels bool) diagram.Stats {
	net := p.Network
	stats := diagram.Stats{
		Layers:      len(net.Layers),
		Nodes:       net.NodeCount(),
		Connections: net.ConnectionCount(),
		Categories:  make(map[styles.Category]int),
	}
	for _, w := range p.Weights {
		rows, cols := w.Dims()
		for i := range rows {
			for j := range cols {
				v := w.At(i, j)
				stats.Categories[styles.CategoryFor(v)]++
				if labels && styles.Labeled(v) {
					stats.Labels++
				}
			}
		}
	}
	return stats
}
