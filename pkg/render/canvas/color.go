package canvas

import (
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/nnviz/pkg/errors"
)

// namedColors holds the CSS colors used by the default palette and a few
// common extras.
var namedColors = map[string]string{
	"black":      "#000000",
	"white":      "#ffffff",
	"gray":       "#808080",
	"grey":       "#808080",
	"lightgray":  "#d3d3d3",
	"lightgrey":  "#d3d3d3",
	"darkgray":   "#a9a9a9",
	"red":        "#ff0000",
	"darkred":    "#8b0000",
	"orange":     "#ffa500",
	"gold":       "#ffd700",
	"yellow":     "#ffff00",
	"green":      "#008000",
	"darkgreen":  "#006400",
	"blue":       "#0000ff",
	"darkblue":   "#00008b",
	"navy":       "#000080",
	"skyblue":    "#87ceeb",
	"dodgerblue": "#1e90ff",
	"steelblue":  "#4682b4",
	"purple":     "#800080",
	"teal":       "#008080",
}

// ParseColor resolves a CSS color name or a hex string ("#rgb" or "#rrggbb").
func ParseColor(s string) (color.Color, error) {
	hex, err := ResolveColor(s)
	if err != nil {
		return nil, err
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", s)
	}
	return c, nil
}

// ResolveColor returns the lower-case hex form of a color name or hex string.
func ResolveColor(s string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if hex, ok := namedColors[name]; ok {
		return hex, nil
	}
	if strings.HasPrefix(name, "#") {
		if _, err := colorful.Hex(name); err != nil {
			return "", errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid color %q", s)
		}
		return name, nil
	}
	return "", errors.New(errors.ErrCodeInvalidConfig, "unknown color %q", s)
}

// mustColor resolves s, falling back to black for unknown colors so a bad
// palette entry never aborts a half-drawn figure. Palettes are validated
// before rendering.
func mustColor(s string) color.Color {
	c, err := ParseColor(s)
	if err != nil {
		return color.Black
	}
	return c
}
