package io

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/nnviz/pkg/errors"
	"github.com/matzehuels/nnviz/pkg/render/diagram"
)

func TestReadJSON_Sizes(t *testing.T) {
	n, err := ReadJSON(strings.NewReader(`{
		"layers": [2, 3, 1],
		"weights": [[[0.1, 0.2, 0.3], [0.4, 0.5, 0.6]], [[0.7], [0.8], [0.9]]],
		"output_weights": [0.85],
		"epoch": 12
	}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if diff := cmp.Diff([]int{2, 3, 1}, n.Layers.Sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if n.Epoch == nil || *n.Epoch != 12 {
		t.Errorf("epoch = %v, want 12", n.Epoch)
	}
	if len(n.Weights) != 2 || n.Weights[1][2][0] != 0.9 {
		t.Errorf("weights = %v", n.Weights)
	}
}

func TestReadJSON_Dense(t *testing.T) {
	n, err := ReadJSON(strings.NewReader(`{"layers": [
		{"type": "dense", "activation": "relu", "input_size": 4, "output_size": 8},
		{"type": "dense", "input_size": 8, "output_size": 2},
		{"type": "dense", "output_size": 1}
	]}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if diff := cmp.Diff([]int{4, 8, 2, 1}, n.Layers.Sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if len(n.Layers.Dense) != 3 || n.Layers.Dense[0].Activation != "relu" {
		t.Errorf("dense definitions = %+v", n.Layers.Dense)
	}
}

func TestReadJSON_Errors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"malformed", `{"layers": [1, 2`, errors.ErrCodeInvalidInput},
		{"unknown field", `{"layers": [1, 2], "colour": "red"}`, errors.ErrCodeInvalidInput},
		{"layers not a list", `{"layers": "1,2"}`, errors.ErrCodeInvalidInput},
		{"conv layer", `{"layers": [{"type": "conv2d", "input_size": 4, "output_size": 2}]}`, errors.ErrCodeUnsupported},
		{"missing input size", `{"layers": [{"type": "dense", "output_size": 2}]}`, errors.ErrCodeInvalidLayerSizes},
		{
			"chain mismatch",
			`{"layers": [{"input_size": 4, "output_size": 3}, {"input_size": 2, "output_size": 1}]}`,
			errors.ErrCodeInvalidLayerSizes,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("ReadJSON error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestReadTOML(t *testing.T) {
	n, err := ReadTOML(strings.NewReader(`
layers = [2, 2]
weights = [[[0.9, -0.9], [0.1, 0.0]]]
output_weights = [0.2, 0.8]
epoch = 3
`))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}
	if diff := cmp.Diff([]int{2, 2}, n.Layers.Sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if n.Weights[0][0][1] != -0.9 || *n.Epoch != 3 {
		t.Errorf("decoded = %+v", n)
	}
}

func TestReadTOML_DenseTables(t *testing.T) {
	n, err := ReadTOML(strings.NewReader(`
[[layers]]
type = "dense"
input_size = 3
output_size = 5

[[layers]]
type = "dense"
output_size = 2
`))
	if err != nil {
		t.Fatalf("ReadTOML: %v", err)
	}
	if diff := cmp.Diff([]int{3, 5, 2}, n.Layers.Sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestReadTOML_Errors(t *testing.T) {
	for name, in := range map[string]string{
		"syntax":        `layers = [1, 2`,
		"unknown field": "layers = [1, 2]\ncolour = \"red\"",
		"float size":    `layers = [1.5, 2]`,
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := ReadTOML(strings.NewReader(in)); err == nil {
				t.Errorf("ReadTOML(%q) succeeded, want error", in)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"layers":[1,1]}`), ""); err != nil {
		t.Errorf("Decode(default): %v", err)
	}
	if _, err := Decode(strings.NewReader(`layers = [1, 1]`), "TOML"); err != nil {
		t.Errorf("Decode(TOML): %v", err)
	}
	if _, err := Decode(strings.NewReader(""), "yaml"); !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("Decode(yaml) error = %v", err)
	}
}

func TestFormatOf(t *testing.T) {
	for path, want := range map[string]string{
		"net.json":     FormatJSON,
		"net.TOML":     FormatTOML,
		"epochs/e1":    FormatJSON,
		"a/b/net.toml": FormatTOML,
	} {
		if got := FormatOf(path); got != want {
			t.Errorf("FormatOf(%q) = %q, want %q", path, got, want)
		}
	}
}

func TestInput(t *testing.T) {
	epoch := 5
	n := Network{
		Layers:        Layers{Sizes: []int{2, 1}},
		Weights:       [][][]float64{{{0.3}, {-0.6}}},
		OutputWeights: []float64{0.9},
		Epoch:         &epoch,
	}
	in, err := n.Input()
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if len(in.Weights) != 1 || in.Weights[0].At(1, 0) != -0.6 {
		t.Errorf("weights = %v", in.Weights)
	}
	if in.Epoch != &epoch {
		t.Errorf("epoch pointer not carried over")
	}

	n.Weights = [][][]float64{{{0.3}, {}}}
	if _, err := n.Input(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("ragged weights error = %v", err)
	}
}

func TestRoundTrip(t *testing.T) {
	epoch := 9
	in := diagram.Input{
		Sizes:         []int{2, 2},
		Weights:       []mat.Matrix{mat.NewDense(2, 2, []float64{0.1, 0.2, 0.3, 0.4})},
		OutputWeights: []float64{0.5, 0.6},
		Epoch:         &epoch,
	}

	var buf bytes.Buffer
	if err := WriteJSON(FromInput(in), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	n, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	got, err := n.Input()
	if err != nil {
		t.Fatalf("Input: %v", err)
	}
	if diff := cmp.Diff(in.Sizes, got.Sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
	if !mat.Equal(in.Weights[0], got.Weights[0]) {
		t.Errorf("weights changed in round trip")
	}
	if *got.Epoch != 9 {
		t.Errorf("epoch = %d, want 9", *got.Epoch)
	}
}

func TestImportFile(t *testing.T) {
	dir := t.TempDir()
	jsonPath := filepath.Join(dir, "epoch-1.json")
	tomlPath := filepath.Join(dir, "epoch-1.toml")
	os.WriteFile(jsonPath, []byte(`{"layers":[3,1],"epoch":1}`), 0644)
	os.WriteFile(tomlPath, []byte("layers = [3, 1]\nepoch = 1\n"), 0644)

	for _, path := range []string{jsonPath, tomlPath} {
		n, err := ImportFile(path)
		if err != nil {
			t.Fatalf("ImportFile(%s): %v", path, err)
		}
		if diff := cmp.Diff([]int{3, 1}, n.Layers.Sizes); diff != "" {
			t.Errorf("%s sizes mismatch (-want +got):\n%s", path, diff)
		}
	}

	_, err := ImportFile(filepath.Join(dir, "missing.json"))
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}

func TestExportJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "net.json")
	if err := ExportJSON(Network{Layers: Layers{Sizes: []int{1, 2}}}, path); err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	n, err := ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, n.Layers.Sizes); diff != "" {
		t.Errorf("sizes mismatch (-want +got):\n%s", diff)
	}
}
