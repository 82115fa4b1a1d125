// Package layout computes node positions for neural network diagrams.
//
// # Overview
//
// A network is described by its layer sizes, input layer first. [Build]
// stacks the layers vertically (input at the bottom) and centers every layer
// horizontally under the widest one:
//
//	y(k)   = k * VerticalSpacing
//	x(k,j) = HorizontalSpacing * (widest - n_k) / 2 + j * HorizontalSpacing
//
// so that the mean x of any layer equals the center of the widest layer.
//
// # Building a Network
//
//	net, err := layout.Build([]int{4, 8, 2},
//	    layout.WithVerticalSpacing(6),
//	    layout.WithNodeRadius(0.3),
//	)
//
// The returned [Network] holds one [Layer] per size. Each layer knows the
// index of the layer below it ([Layer.Prev], -1 for the input layer); the
// relation is navigation only, layers never own each other.
//
// # Options
//
//   - [WithVerticalSpacing]: distance between consecutive layers (default 6)
//   - [WithHorizontalSpacing]: distance between neighbouring nodes (default 1)
//   - [WithNodeRadius]: circle radius used when drawing (default 0.3)
//
// # Integration
//
// The diagram assembler in [render/diagram] draws a Network onto a surface:
//
//	sizes → layout.Build → diagram.Draw → canvas.Surface
//
// [render/diagram]: github.com/matzehuels/nnviz/pkg/render/diagram
package layout
