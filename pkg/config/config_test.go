package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/nnviz/pkg/errors"
	"github.com/matzehuels/nnviz/pkg/render/diagram"
	"github.com/matzehuels/nnviz/pkg/render/styles"
)

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v", err)
	}
}

func TestDefaultMatchesDiagramDefaults(t *testing.T) {
	got := Default().DiagramOptions()
	want := diagram.DefaultOptions()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("DiagramOptions mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeOverlaysDefaults(t *testing.T) {
	cfg, err := Decode(strings.NewReader(`
[labels]
enabled = true

[palette]
strong_positive = "#b2182b"

[output]
no_epoch = "literal"
`))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !cfg.Labels.Enabled || cfg.Labels.Size != 8 {
		t.Errorf("labels = %+v", cfg.Labels)
	}
	if cfg.Palette.StrongPositive != "#b2182b" || cfg.Palette.Positive != "red" {
		t.Errorf("palette = %+v", cfg.Palette)
	}
	if cfg.Output.NoEpoch != "literal" || cfg.Output.Dir != "ANN" {
		t.Errorf("output = %+v", cfg.Output)
	}
	if got := cfg.StylePalette().Connection(styles.StrongPositive); got != "#b2182b" {
		t.Errorf("StylePalette strong positive = %q", got)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"syntax", "[layout\n", "decode"},
		{"unknown key", "[layout]\nspacing = 3\n", `unknown key "layout.spacing"`},
		{"negative radius", "[layout]\nnode_radius = -1\n", "layout.node_radius"},
		{"bad color", "[palette]\nneutral = \"grayish\"\n", `palette.neutral: unknown color "grayish"`},
		{"bad format", "[output]\nformat = \"gif\"\n", "output.format"},
		{"two widths", "[lines]\nwidths = [1.0, 2.0]\n", "lines.widths: must have 3 entries"},
		{"zero width", "[lines]\nwidths = [1.0, 0.0, 2.0]\n", "lines.widths[1]"},
		{"zero filler", "[weights]\nfiller = 0.0\n", "weights.filler"},
		{"empty prefix", "[output]\nprefix = \"\"\n", "output.prefix: must be set"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.in))
			if !errors.Is(err, errors.ErrCodeInvalidConfig) {
				t.Fatalf("Decode error = %v, want %s", err, errors.ErrCodeInvalidConfig)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestWriteRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := Default().Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}
	cfg, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteFileAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	if err := Default().WriteFile(path, false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := Default().WriteFile(path, false); !errors.Is(err, errors.ErrCodeInvalidPath) {
		t.Errorf("second WriteFile error = %v, want %s", err, errors.ErrCodeInvalidPath)
	}
	if err := Default().WriteFile(path, true); err != nil {
		t.Errorf("forced WriteFile: %v", err)
	}
	if _, err := Load(path); err != nil {
		t.Errorf("Load: %v", err)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("Load error = %v", err)
	}
}

func TestFind(t *testing.T) {
	dir := t.TempDir()
	if got := Find("", dir); got != "" {
		t.Errorf("Find with no file = %q", got)
	}
	if got := Find("custom.toml", dir); got != "custom.toml" {
		t.Errorf("Find explicit = %q", got)
	}
	path := filepath.Join(dir, FileName)
	os.WriteFile(path, nil, 0644)
	if got := Find("", dir); got != path {
		t.Errorf("Find = %q, want %q", got, path)
	}

	cfg, err := LoadOrDefault("")
	if err != nil || cfg.Output.Format != "png" {
		t.Errorf("LoadOrDefault(\"\") = %+v, %v", cfg.Output, err)
	}
}

func TestCanvasAndNodelinkOptions(t *testing.T) {
	cfg := Default()
	cfg.Figure.DPI = 300
	cfg.Labels.Enabled = true

	co := cfg.CanvasOptions()
	if co.DPI != 300 || co.Width != 20 || co.Background != "white" {
		t.Errorf("CanvasOptions = %+v", co)
	}
	no := cfg.NodelinkOptions()
	if !no.Labels || no.Widths != styles.DefaultWidths {
		t.Errorf("NodelinkOptions = %+v", no)
	}
}
