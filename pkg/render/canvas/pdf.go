package canvas

import "io"

// PDF draws onto an SVG surface and converts the document on Save.
type PDF struct {
	*SVG
}

// NewPDF returns an empty PDF surface.
func NewPDF(opts Options) *PDF {
	return &PDF{SVG: NewSVG(opts)}
}

func (p *PDF) Save(w io.Writer) error {
	if !p.began {
		return errNotBegun
	}
	data, err := ToPDF(p.Bytes())
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
