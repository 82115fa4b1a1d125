// Package config loads the nnviz TOML configuration.
//
// Every drawing constant lives here: geometry, line widths, labels, figure
// size, output naming and the palette. [Default] returns the standard look;
// a file only needs the keys it changes:
//
//	[labels]
//	enabled = true
//
//	[palette]
//	strong_positive = "#b2182b"
//
// [Load] overlays a file on the defaults and validates the result.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/nnviz/pkg/errors"
	"github.com/matzehuels/nnviz/pkg/render/canvas"
	"github.com/matzehuels/nnviz/pkg/render/layout"
	"github.com/matzehuels/nnviz/pkg/render/occupancy"
	"github.com/matzehuels/nnviz/pkg/weights"
)

// FileName is the config file looked up in the working directory.
const FileName = "nnviz.toml"

// Config is the full configuration.
type Config struct {
	Layout  Layout  `toml:"layout"`
	Lines   Lines   `toml:"lines"`
	Labels  Labels  `toml:"labels"`
	Figure  Figure  `toml:"figure"`
	Output  Output  `toml:"output"`
	Palette Palette `toml:"palette"`
	Weights Weights `toml:"weights"`
}

// Layout holds the node geometry in plot units.
type Layout struct {
	VerticalSpacing   float64 `toml:"vertical_spacing" validate:"gt=0"`
	HorizontalSpacing float64 `toml:"horizontal_spacing" validate:"gt=0"`
	NodeRadius        float64 `toml:"node_radius" validate:"gt=0"`
}

// Lines holds the base widths (points) of the small, large and very large
// weight bands.
type Lines struct {
	Widths []float64 `toml:"widths" validate:"len=3,dive,gt=0"`
}

// Labels controls connection labels.
type Labels struct {
	Enabled  bool    `toml:"enabled"`
	Size     float64 `toml:"size" validate:"gt=0"`
	GridCell float64 `toml:"grid_cell" validate:"gt=0"`
}

// Figure controls the rendered image.
type Figure struct {
	Width         float64 `toml:"width" validate:"gt=0,lte=200"`
	Height        float64 `toml:"height" validate:"gt=0,lte=200"`
	DPI           float64 `toml:"dpi" validate:"gt=0,lte=1200"`
	Margin        float64 `toml:"margin" validate:"gte=0"`
	Background    string  `toml:"background" validate:"color"`
	Title         string  `toml:"title" validate:"required"`
	TitleSize     float64 `toml:"title_size" validate:"gt=0"`
	LayerFontSize float64 `toml:"layer_font_size" validate:"gt=0"`

	// CaptionPadding is the room in points after the widest layer caption.
	CaptionPadding float64 `toml:"caption_padding" validate:"gt=0"`
}

// Output controls where artifacts are written.
type Output struct {
	Dir    string `toml:"dir" validate:"required"`
	Prefix string `toml:"prefix" validate:"required"`
	Format string `toml:"format" validate:"oneof=png svg pdf json dot"`
	View   string `toml:"view" validate:"oneof=diagram nodelink"`
	// NoEpoch names the file when no epoch is given: "omit" drops the
	// suffix, "literal" writes "None", anything else is used as is.
	NoEpoch string `toml:"no_epoch" validate:"required"`
}

// Palette holds the colors, as CSS names or hex strings.
type Palette struct {
	StrongPositive string `toml:"strong_positive" validate:"color"`
	Positive       string `toml:"positive" validate:"color"`
	WeakPositive   string `toml:"weak_positive" validate:"color"`
	Neutral        string `toml:"neutral" validate:"color"`
	WeakNegative   string `toml:"weak_negative" validate:"color"`
	Negative       string `toml:"negative" validate:"color"`
	StrongNegative string `toml:"strong_negative" validate:"color"`

	Node       string `toml:"node" validate:"color"`
	NodeAlert  string `toml:"node_alert" validate:"color"`
	NodeWarn   string `toml:"node_warn" validate:"color"`
	NodeAccent string `toml:"node_accent" validate:"color"`
	Text       string `toml:"text" validate:"color"`
}

// Weights controls the weights used when a network has none.
type Weights struct {
	Filler float64 `toml:"filler" validate:"ne=0,gte=-1,lte=1"`
}

// Default returns the standard configuration.
func Default() Config {
	return Config{
		Layout: Layout{
			VerticalSpacing:   layout.DefaultVerticalSpacing,
			HorizontalSpacing: layout.DefaultHorizontalSpacing,
			NodeRadius:        layout.DefaultNodeRadius,
		},
		Lines: Lines{Widths: []float64{2, 2, 2}},
		Labels: Labels{
			Size:     8,
			GridCell: occupancy.DefaultCellSize,
		},
		Figure: Figure{
			Width:          20,
			Height:         20,
			DPI:            100,
			Margin:         20,
			Background:     "white",
			Title:          "Neural Network architecture",
			TitleSize:      16,
			LayerFontSize:  12,
			CaptionPadding: 8,
		},
		Output: Output{
			Dir:     "ANN",
			Prefix:  "ANN",
			Format:  canvas.FormatPNG,
			View:    "diagram",
			NoEpoch: "omit",
		},
		Palette: Palette{
			StrongPositive: "darkred",
			Positive:       "red",
			WeakPositive:   "orange",
			Neutral:        "lightgray",
			WeakNegative:   "skyblue",
			Negative:       "dodgerblue",
			StrongNegative: "darkblue",
			Node:           "gray",
			NodeAlert:      "red",
			NodeWarn:       "orange",
			NodeAccent:     "blue",
			Text:           "black",
		},
		Weights: Weights{Filler: weights.DefaultFiller},
	}
}

// Load reads the file at path over the defaults and validates the result.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "config %s", path)
	}
	return cfg, nil
}

// Decode reads TOML from r over the defaults and validates the result.
func Decode(r io.Reader) (Config, error) {
	cfg := Default()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Config{}, errors.New(errors.ErrCodeInvalidConfig, "unknown key %q", undecoded[0].String())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Find returns the config path to use: explicit if set, otherwise
// nnviz.toml in dir when it exists, otherwise "".
func Find(explicit, dir string) string {
	if explicit != "" {
		return explicit
	}
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// LoadOrDefault loads path, or returns the defaults when path is "".
func LoadOrDefault(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	return Load(path)
}

// Write encodes cfg as TOML.
func (c Config) Write(w io.Writer) error {
	if err := toml.NewEncoder(w).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return nil
}

// WriteFile writes cfg to path. It refuses to overwrite an existing file
// unless force is set.
func (c Config) WriteFile(path string, force bool) error {
	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if !force {
		flags |= os.O_EXCL
	}
	f, err := os.OpenFile(path, flags, 0644)
	if err != nil {
		if os.IsExist(err) {
			return errors.Wrap(errors.ErrCodeInvalidPath, err, "%s already exists (use --force to overwrite)", path)
		}
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := c.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func validatorInstance() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New()
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("toml"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
		_ = validate.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			_, err := canvas.ResolveColor(fl.Field().String())
			return err == nil
		})
	})
	return validate
}

// Validate checks every field. The error names the first offending key.
func (c Config) Validate() error {
	err := validatorInstance().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "validate")
	}
	fe := verrs[0]
	return errors.New(errors.ErrCodeInvalidConfig, "%s: %s", keyOf(fe.Namespace()), describe(fe))
}

// keyOf turns "Config.figure.dpi" into "figure.dpi".
func keyOf(namespace string) string {
	_, key, found := strings.Cut(namespace, ".")
	if !found {
		return namespace
	}
	return key
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "color":
		return fmt.Sprintf("unknown color %q", fe.Value())
	case "required":
		return "must be set"
	case "oneof":
		return fmt.Sprintf("%q is not one of %s", fe.Value(), fe.Param())
	case "len":
		return fmt.Sprintf("must have %s entries", fe.Param())
	case "ne":
		return fmt.Sprintf("must not be %s", fe.Param())
	default:
		return fmt.Sprintf("must be %s %s (got %v)", fe.Tag(), fe.Param(), fe.Value())
	}
}
