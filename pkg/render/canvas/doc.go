// Package canvas provides drawing surfaces for network diagrams.
//
// # Overview
//
// A [Surface] receives drawing calls in plot units (circles, lines, text and a
// title) and encodes the finished figure with [Surface.Save]. The diagram
// assembler never knows which output format it is drawing for.
//
// Implementations:
//
//   - [SVG]: vector output written into a bytes.Buffer
//   - [PNG]: raster output drawn with github.com/fogleman/gg
//   - [PDF]: SVG converted with rsvg-convert (librsvg)
//   - [Recorder]: keeps every call; saved as JSON and used in tests
//
// # Coordinates
//
// Plot units have Y growing upwards. [Surface.Begin] receives the plot
// rectangle to show; surfaces scale it uniformly (equal axis scaling) to fit
// the figure size and hide axes. Line widths and font sizes are given in
// points (1/72 inch) and converted with the figure DPI.
//
// # Lifetime
//
// Surfaces hold buffers and font faces. Always release them:
//
//	s, err := canvas.New(canvas.FormatPNG, canvas.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
package canvas
