package config

import (
	"github.com/matzehuels/nnviz/pkg/render/canvas"
	"github.com/matzehuels/nnviz/pkg/render/diagram"
	"github.com/matzehuels/nnviz/pkg/render/layout"
	"github.com/matzehuels/nnviz/pkg/render/nodelink"
	"github.com/matzehuels/nnviz/pkg/render/styles"
)

// StylePalette converts the palette section.
func (c Config) StylePalette() styles.Palette {
	p := c.Palette
	return styles.Palette{
		Connections: map[styles.Category]string{
			styles.StrongPositive: p.StrongPositive,
			styles.Positive:       p.Positive,
			styles.WeakPositive:   p.WeakPositive,
			styles.Neutral:        p.Neutral,
			styles.WeakNegative:   p.WeakNegative,
			styles.Negative:       p.Negative,
			styles.StrongNegative: p.StrongNegative,
		},
		Nodes: map[styles.NodeCategory]string{
			styles.NodePlain:  p.Node,
			styles.NodeAlert:  p.NodeAlert,
			styles.NodeWarn:   p.NodeWarn,
			styles.NodeAccent: p.NodeAccent,
		},
		Text: p.Text,
	}
}

// Widths converts the line widths.
func (c Config) Widths() styles.Widths {
	var w styles.Widths
	copy(w[:], c.Lines.Widths)
	return w
}

// DiagramOptions returns the options for diagram.Draw.
func (c Config) DiagramOptions() diagram.Options {
	return diagram.Options{
		Layout: layout.Options{
			VerticalSpacing:   c.Layout.VerticalSpacing,
			HorizontalSpacing: c.Layout.HorizontalSpacing,
			NodeRadius:        c.Layout.NodeRadius,
		},
		Widths:         c.Widths(),
		Palette:        c.StylePalette(),
		Labels:         c.Labels.Enabled,
		LabelSize:      c.Labels.Size,
		LayerFontSize:  c.Figure.LayerFontSize,
		TitleFontSize:  c.Figure.TitleSize,
		Title:          c.Figure.Title,
		GridCellSize:   c.Labels.GridCell,
		CaptionPadding: c.Figure.CaptionPadding,
		Filler:         c.Weights.Filler,
	}
}

// CanvasOptions returns the figure options for canvas surfaces.
func (c Config) CanvasOptions() canvas.Options {
	return canvas.Options{
		Width:      c.Figure.Width,
		Height:     c.Figure.Height,
		DPI:        c.Figure.DPI,
		Margin:     c.Figure.Margin,
		TitleSize:  c.Figure.TitleSize,
		Background: c.Figure.Background,
	}
}

// NodelinkOptions returns the options for the Graphviz view.
func (c Config) NodelinkOptions() nodelink.Options {
	return nodelink.Options{
		Labels:  c.Labels.Enabled,
		Widths:  c.Widths(),
		Palette: c.StylePalette(),
	}
}
