package styles

// Palette maps categories to colors. Colors are CSS names or hex strings
// ("#8b0000"); surfaces resolve them.
type Palette struct {
	Connections map[Category]string
	Nodes       map[NodeCategory]string
	Text        string
}

// DefaultPalette returns the red-for-positive, blue-for-negative palette.
func DefaultPalette() Palette {
	return Palette{
		Connections: map[Category]string{
			StrongPositive: "darkred",
			Positive:       "red",
			WeakPositive:   "orange",
			Neutral:        "lightgray",
			WeakNegative:   "skyblue",
			Negative:       "dodgerblue",
			StrongNegative: "darkblue",
		},
		Nodes: map[NodeCategory]string{
			NodePlain:  "gray",
			NodeAlert:  "red",
			NodeWarn:   "orange",
			NodeAccent: "blue",
		},
		Text: "black",
	}
}

// Connection returns the color for c, falling back to the default palette.
func (p Palette) Connection(c Category) string {
	if col, ok := p.Connections[c]; ok && col != "" {
		return col
	}
	return DefaultPalette().Connections[c]
}

// Node returns the color for c, falling back to the default palette.
func (p Palette) Node(c NodeCategory) string {
	if col, ok := p.Nodes[c]; ok && col != "" {
		return col
	}
	return DefaultPalette().Nodes[c]
}

// TextColor returns the color used for labels and titles.
func (p Palette) TextColor() string {
	if p.Text == "" {
		return "black"
	}
	return p.Text
}
