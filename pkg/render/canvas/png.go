package canvas

import (
	"io"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"

	"github.com/matzehuels/nnviz/pkg/fonts"
	"github.com/matzehuels/nnviz/pkg/render/layout"
)

// PNG is a raster surface backed by a gg context. Drawing calls made before
// Begin are ignored.
type PNG struct {
	opts  Options
	f     frame
	dc    *gg.Context
	faces map[float64]font.Face
}

// NewPNG returns an empty raster surface.
func NewPNG(opts Options) *PNG {
	return &PNG{opts: opts.withDefaults(), faces: make(map[float64]font.Face)}
}

func (p *PNG) Begin(fig Figure) error {
	f, err := newFrame(fig, p.opts)
	if err != nil {
		return err
	}
	bg, err := ParseColor(p.opts.Background)
	if err != nil {
		return err
	}
	p.f = f
	p.dc = gg.NewContext(f.width, f.height)
	p.dc.SetColor(bg)
	p.dc.Clear()
	return nil
}

func (p *PNG) Circle(c layout.Point, r float64, color string) {
	if p.dc == nil {
		return
	}
	x, y := p.f.project(c)
	p.dc.SetColor(mustColor(color))
	p.dc.SetLineWidth(p.f.px(1))
	p.dc.DrawCircle(x, y, r*p.f.scale)
	p.dc.Stroke()
}

func (p *PNG) Line(from, to layout.Point, width float64, color string) {
	if p.dc == nil {
		return
	}
	x1, y1 := p.f.project(from)
	x2, y2 := p.f.project(to)
	p.dc.SetColor(mustColor(color))
	p.dc.SetLineWidth(p.f.px(width))
	p.dc.DrawLine(x1, y1, x2, y2)
	p.dc.Stroke()
}

func (p *PNG) Text(pt layout.Point, s string, size float64, align Align, color string) {
	if p.dc == nil {
		return
	}
	x, y := p.f.project(pt)
	p.drawString(s, x, y, size, align, color)
}

func (p *PNG) Title(s string, size float64, color string) {
	if p.dc == nil {
		return
	}
	x, y := p.f.titleAnchor(size)
	p.drawString(s, x, y, size, AlignCenter, color)
}

func (p *PNG) drawString(s string, x, y, size float64, align Align, color string) {
	face, err := p.face(size)
	if err != nil {
		return
	}
	p.dc.SetFontFace(face)
	p.dc.SetColor(mustColor(color))
	p.dc.DrawStringAnchored(s, x, y, anchorX(align), 0)
}

func (p *PNG) face(size float64) (font.Face, error) {
	px := p.f.px(size)
	if face, ok := p.faces[px]; ok {
		return face, nil
	}
	face, err := fonts.Face(px)
	if err != nil {
		return nil, err
	}
	p.faces[px] = face
	return face, nil
}

func (p *PNG) Save(w io.Writer) error {
	if p.dc == nil {
		return errNotBegun
	}
	return p.dc.EncodePNG(w)
}

func (p *PNG) Close() error {
	for size, face := range p.faces {
		face.Close()
		delete(p.faces, size)
	}
	return nil
}

func anchorX(a Align) float64 {
	switch a {
	case AlignCenter:
		return 0.5
	case AlignRight:
		return 1
	default:
		return 0
	}
}
