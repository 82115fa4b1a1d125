// Package render groups the packages that turn a network into a picture.
//
// # Overview
//
// A diagram is built bottom-up:
//
//   - [layout] places every node of every layer in plot units
//   - [styles] maps a weight to a color category and a line width
//   - [occupancy] and [labels] find free spots for weight labels
//   - [diagram] walks the layers and issues drawing calls
//   - [canvas] implements those calls for PNG, SVG, PDF and JSON
//   - [nodelink] renders the same network through Graphviz
//
// # Drawing
//
//	s := canvas.NewSVG(canvas.DefaultOptions())
//	defer s.Close()
//	stats, err := diagram.Draw(ctx, s, diagram.Input{Sizes: []int{4, 8, 2}}, diagram.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	err = canvas.SaveFile(s, "ANN/ANN.svg")
//
// [layout]: github.com/matzehuels/nnviz/pkg/render/layout
// [styles]: github.com/matzehuels/nnviz/pkg/render/styles
// [occupancy]: github.com/matzehuels/nnviz/pkg/render/occupancy
// [labels]: github.com/matzehuels/nnviz/pkg/render/labels
// [diagram]: github.com/matzehuels/nnviz/pkg/render/diagram
// [canvas]: github.com/matzehuels/nnviz/pkg/render/canvas
// [nodelink]: github.com/matzehuels/nnviz/pkg/render/nodelink
package render
