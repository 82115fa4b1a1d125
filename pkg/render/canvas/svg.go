package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"github.com/matzehuels/nnviz/pkg/fonts"
	"github.com/matzehuels/nnviz/pkg/render/layout"
)

// SVG is a vector surface. Elements are appended to an in-memory buffer and
// wrapped in the <svg> element on Save.
type SVG struct {
	opts  Options
	f     frame
	body  bytes.Buffer
	title string
	began bool
}

// NewSVG returns an empty SVG surface.
func NewSVG(opts Options) *SVG {
	return &SVG{opts: opts.withDefaults()}
}

func (s *SVG) Begin(fig Figure) error {
	f, err := newFrame(fig, s.opts)
	if err != nil {
		return err
	}
	s.f = f
	s.began = true
	return nil
}

func (s *SVG) Circle(c layout.Point, r float64, color string) {
	x, y := s.f.project(c)
	fmt.Fprintf(&s.body, `  <circle cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x, y, r*s.f.scale, EscapeXML(color), s.f.px(1))
}

func (s *SVG) Line(from, to layout.Point, width float64, color string) {
	x1, y1 := s.f.project(from)
	x2, y2 := s.f.project(to)
	fmt.Fprintf(&s.body, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.2f"/>`+"\n",
		x1, y1, x2, y2, EscapeXML(color), s.f.px(width))
}

func (s *SVG) Text(p layout.Point, text string, size float64, align Align, color string) {
	x, y := s.f.project(p)
	fmt.Fprintf(&s.body, `  <text x="%.2f" y="%.2f" font-size="%.2f" text-anchor="%s" fill="%s">%s</text>`+"\n",
		x, y, s.f.px(size), svgAnchor(align), EscapeXML(color), EscapeXML(text))
}

func (s *SVG) Title(text string, size float64, color string) {
	x, y := s.f.titleAnchor(size)
	s.title = fmt.Sprintf(`  <text x="%.2f" y="%.2f" font-size="%.2f" text-anchor="middle" fill="%s">%s</text>`+"\n",
		x, y, s.f.px(size), EscapeXML(color), EscapeXML(text))
}

// Bytes returns the complete SVG document.
func (s *SVG) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" width="%d" height="%d" font-family="%s">`+"\n",
		s.f.width, s.f.height, s.f.width, s.f.height, EscapeXML(fonts.FontFamily))
	fmt.Fprintf(&buf, `  <rect width="100%%" height="100%%" fill="%s"/>`+"\n", EscapeXML(s.opts.Background))
	buf.WriteString(s.title)
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (s *SVG) Save(w io.Writer) error {
	if !s.began {
		return errNotBegun
	}
	_, err := w.Write(s.Bytes())
	return err
}

func (s *SVG) Close() error {
	s.body.Reset()
	return nil
}

func svgAnchor(a Align) string {
	switch a {
	case AlignCenter:
		return "middle"
	case AlignRight:
		return "end"
	default:
		return "start"
	}
}

// EscapeXML escapes s for use in SVG text and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
