package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/nnviz/pkg/render/canvas"
	"github.com/matzehuels/nnviz/pkg/render/diagram"
	"github.com/matzehuels/nnviz/pkg/render/styles"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Labels prints the weight on every connection that a diagram would label.
	Labels  bool
	Widths  styles.Widths
	Palette styles.Palette
}

// ToDOT converts a prepared network to Graphviz DOT source. Layers become
// ranks (input at the bottom), connections become edges styled by weight.
func ToDOT(p diagram.Prepared, opts Options) string {
	if opts.Widths == (styles.Widths{}) {
		opts.Widths = styles.DefaultWidths
	}
	net := p.Network
	last := len(net.Layers) - 1

	var buf bytes.Buffer
	buf.WriteString("digraph NN {\n")
	buf.WriteString("  rankdir=BT;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  splines=line;\n")
	buf.WriteString("  node [shape=circle, label=\"\", width=0.6, fixedsize=true];\n")
	buf.WriteString("  edge [arrowhead=none];\n")
	buf.WriteString("  ranksep=1.5;\n")
	buf.WriteString("  nodesep=0.4;\n")
	buf.WriteString("\n")

	for k, layer := range net.Layers {
		fmt.Fprintf(&buf, "  subgraph layer%d {\n", k)
		buf.WriteString("    rank=same;\n")
		fmt.Fprintf(&buf, "    %q [shape=plaintext, width=2, label=%q];\n",
			captionID(k), diagram.Caption(k, len(net.Layers)))
		for j := range layer.Nodes {
			cat := styles.NodePlain
			if k == last && len(p.OutputWeights) > 0 {
				cat = styles.NodeCategoryFor(p.OutputWeights[j])
			}
			fmt.Fprintf(&buf, "    %q [color=%q];\n", nodeID(k, j), opts.Palette.Node(cat))
		}
		buf.WriteString("  }\n")
	}

	buf.WriteString("\n")
	for k, layer := range net.Layers {
		prev, ok := net.Previous(layer)
		if !ok {
			continue
		}
		w := p.Weights[layer.Prev]
		for j := range layer.Nodes {
			for i := range prev.Nodes {
				fmt.Fprintf(&buf, "  %q -> %q [%s];\n",
					nodeID(layer.Prev, i), nodeID(k, j), strings.Join(edgeAttrs(w.At(i, j), opts), ", "))
			}
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func nodeID(layer, node int) string {
	return "L" + strconv.Itoa(layer) + "N" + strconv.Itoa(node)
}

func captionID(layer int) string {
	return "L" + strconv.Itoa(layer) + "caption"
}

func edgeAttrs(w float64, opts Options) []string {
	cat, width := styles.StyleFor(w, opts.Widths)
	attrs := []string{
		fmt.Sprintf("color=%q", opts.Palette.Connection(cat)),
		fmt.Sprintf("penwidth=%.2f", width),
	}
	if opts.Labels && styles.Labeled(w) {
		attrs = append(attrs, fmt.Sprintf("label=%q", diagram.FormatWeight(w)), "fontsize=8")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
// Returns the SVG bytes ready for display or further conversion with [canvas.ToPDF].
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG, true)
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG, false)
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
//
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return canvas.ToPDF(svg)
}

func render(ctx context.Context, dot string, format graphviz.Format, normalize bool) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	if normalize {
		return normalizeViewBox(buf.Bytes()), nil
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
