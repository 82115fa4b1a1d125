// Package pipeline turns a network description into a rendered artifact.
//
// This package implements the prepare → draw → encode sequence shared by the
// CLI and the HTTP server, with artifact caching in front of it. By
// centralizing this logic, both entry points name, cache and log renders the
// same way.
//
// # Architecture
//
// A render runs in three steps:
//
//  1. Prepare: validate the layer sizes and weights and lay the network out
//  2. Draw: put the primitives on a surface (diagram view) or emit DOT
//     (nodelink view)
//  3. Encode: save the surface as PNG, SVG, PDF or JSON
//
// The artifact is cached under a key derived from the network and every
// drawing option, so re-rendering an unchanged epoch is a cache read.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, input, pipeline.Options{Format: "svg"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	path, _ := pipeline.OutputPath(cfg.Output, result.Epoch, result.Format)
//	err = pipeline.WriteArtifact(path, result.Artifact)
package pipeline

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nnviz/pkg/cache"
	"github.com/matzehuels/nnviz/pkg/config"
	"github.com/matzehuels/nnviz/pkg/errors"
	"github.com/matzehuels/nnviz/pkg/render/canvas"
	"github.com/matzehuels/nnviz/pkg/render/diagram"
	"github.com/matzehuels/nnviz/pkg/render/nodelink"
)

// View constants.
const (
	ViewDiagram  = "diagram"
	ViewNodelink = "nodelink"
)

// Format constants for output formats.
const (
	FormatPNG  = "png"
	FormatSVG  = "svg"
	FormatPDF  = "pdf"
	FormatJSON = "json"
	FormatDOT  = "dot"
)

// ViewFormats lists the formats each view can produce.
var ViewFormats = map[string][]string{
	ViewDiagram:  {FormatPNG, FormatSVG, FormatPDF, FormatJSON},
	ViewNodelink: {FormatPNG, FormatSVG, FormatPDF, FormatDOT},
}

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatPNG:  true,
	FormatSVG:  true,
	FormatPDF:  true,
	FormatJSON: true,
	FormatDOT:  true,
}

// ContentTypes maps formats to their MIME types.
var ContentTypes = map[string]string{
	FormatPNG:  "image/png",
	FormatSVG:  "image/svg+xml",
	FormatPDF:  "application/pdf",
	FormatJSON: "application/json",
	FormatDOT:  "text/vnd.graphviz",
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: png, svg, pdf, json, dot)", format)
	}
	return nil
}

// ValidateView checks that a view is valid.
func ValidateView(view string) error {
	if _, ok := ViewFormats[view]; !ok {
		return errors.New(errors.ErrCodeInvalidFormat,
			"invalid view: %q (must be one of: diagram, nodelink)", view)
	}
	return nil
}

// ValidateViewFormat checks that view can produce format.
func ValidateViewFormat(view, format string) error {
	if err := ValidateView(view); err != nil {
		return err
	}
	if err := ValidateFormat(format); err != nil {
		return err
	}
	for _, f := range ViewFormats[view] {
		if f == format {
			return nil
		}
	}
	return errors.New(errors.ErrCodeInvalidFormat,
		"view %s cannot produce %s (use one of: %s)", view, format, strings.Join(ViewFormats[view], ", "))
}

// =============================================================================
// Options
// =============================================================================

// Options selects what a render produces. View and Format fall back to the
// config's output section; a dot format without a view selects nodelink.
type Options struct {
	View    string `json:"view,omitempty"`
	Format  string `json:"format,omitempty"`
	Refresh bool   `json:"refresh,omitempty"` // skip the cache read

	// Config supplies every drawing option; nil means config.Default().
	Config *config.Config `json:"-"`
	Logger *log.Logger    `json:"-"`

	// OnOutput, when set, is called by RenderFiles as soon as each file is
	// written.
	OnOutput func(Output) `json:"-"`

	validated bool
}

// ValidateAndSetDefaults applies defaults and checks the view/format pair.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Config == nil {
		cfg := config.Default()
		o.Config = &cfg
	}
	o.View = strings.ToLower(o.View)
	o.Format = strings.ToLower(o.Format)
	if o.Format == "" {
		o.Format = o.Config.Output.Format
	}
	if o.View == "" {
		o.View = o.Config.Output.View
		if o.Format == FormatDOT {
			o.View = ViewNodelink
		}
	}
	if err := ValidateViewFormat(o.View, o.Format); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// IsNodelink returns true if this is a nodelink render.
func (o *Options) IsNodelink() bool {
	return o.View == ViewNodelink
}

// StyleHash hashes every option that changes the artifact's pixels.
func (o *Options) StyleHash() (string, error) {
	cfg := o.Config
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	return cache.HashJSON(struct {
		Diagram  diagram.Options
		Canvas   canvas.Options
		Nodelink nodelink.Options
	}{cfg.DiagramOptions(), cfg.CanvasOptions(), cfg.NodelinkOptions()})
}

// ArtifactKeyOpts returns cache key options for the artifact.
func (o *Options) ArtifactKeyOpts(style string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		View:   o.View,
		Format: o.Format,
		Style:  style,
	}
}

// =============================================================================
// Results
// =============================================================================

// Result is one rendered artifact.
type Result struct {
	Artifact []byte
	View     string
	Format   string
	Epoch    *int

	// NetworkHash is the content hash of the network description.
	NetworkHash string

	Stats    diagram.Stats
	CacheHit bool
	Duration time.Duration
}

// ContentType returns the MIME type of the artifact.
func (r *Result) ContentType() string {
	if ct, ok := ContentTypes[r.Format]; ok {
		return ct
	}
	return "application/octet-stream"
}
