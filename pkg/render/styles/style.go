package styles

import "math"

// Category is the color class of a connection.
type Category string

const (
	StrongPositive Category = "strong-positive"
	Positive       Category = "positive"
	WeakPositive   Category = "weak-positive"
	Neutral        Category = "neutral"
	WeakNegative   Category = "weak-negative"
	Negative       Category = "negative"
	StrongNegative Category = "strong-negative"
)

// Categories lists every connection category, strongest positive first.
var Categories = []Category{
	StrongPositive, Positive, WeakPositive, Neutral, WeakNegative, Negative, StrongNegative,
}

// CategoryFor returns the color class of weight w. Every upper bound is
// inclusive: 0.8 is Positive, 0.2 is Neutral, -0.8 is StrongNegative.
func CategoryFor(w float64) Category {
	switch {
	case w > 0.8:
		return StrongPositive
	case w > 0.5:
		return Positive
	case w > 0.2:
		return WeakPositive
	case w > -0.2:
		return Neutral
	case w > -0.5:
		return WeakNegative
	case w > -0.8:
		return Negative
	default:
		return StrongNegative
	}
}

// LabelThreshold is the magnitude a weight must exceed to get a text label.
const LabelThreshold = 0.5

// Widths holds the base line widths for the small, large and very large
// magnitude bands.
type Widths [3]float64

// DefaultWidths is the base width of every band.
var DefaultWidths = Widths{2, 2, 2}

// For returns the line width for weight w.
//
// The very-large band (|w| > 0.8) is tested after |w| > 0.5 and therefore
// never selected: only w[0] and w[1] take effect.
func (ws Widths) For(w float64) float64 {
	a := math.Abs(w)
	if a > 0.5 {
		return ws[1] * a
	} else if a > 0.8 {
		return ws[2] * a
	}
	return ws[0] * a
}

// StyleFor returns the color class and line width for weight w.
func StyleFor(w float64, widths Widths) (Category, float64) {
	return CategoryFor(w), widths.For(w)
}

// Labeled reports whether a connection with weight w gets a text label.
func Labeled(w float64) bool {
	return math.Abs(w) > LabelThreshold
}

// NodeCategory is the color class of a node.
type NodeCategory string

const (
	NodePlain  NodeCategory = "plain"
	NodeAlert  NodeCategory = "alert"
	NodeWarn   NodeCategory = "warn"
	NodeAccent NodeCategory = "neutral-accent"
)

// NodeCategoryFor returns the color class of an output node with score s:
// alert from 0.7, warn strictly between 0.3 and 0.7, accent otherwise.
func NodeCategoryFor(s float64) NodeCategory {
	switch {
	case s >= 0.7:
		return NodeAlert
	case s > 0.3 && s < 0.7:
		return NodeWarn
	default:
		return NodeAccent
	}
}
