package io

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/nnviz/pkg/errors"
	"github.com/matzehuels/nnviz/pkg/render/diagram"
	"github.com/matzehuels/nnviz/pkg/weights"
)

// Network is the file form of a network to draw.
type Network struct {
	Layers        Layers        `json:"layers" toml:"layers"`
	Weights       [][][]float64 `json:"weights,omitempty" toml:"weights,omitempty"`
	OutputWeights []float64     `json:"output_weights,omitempty" toml:"output_weights,omitempty"`
	Epoch         *int          `json:"epoch,omitempty" toml:"epoch,omitempty"`
}

// LayerDefinition describes one dense layer by its input and output widths.
type LayerDefinition struct {
	Type       string `json:"type" toml:"type"`
	Activation string `json:"activation,omitempty" toml:"activation,omitempty"`
	InputSize  int    `json:"input_size,omitempty" toml:"input_size,omitempty"`
	OutputSize int    `json:"output_size" toml:"output_size"`
}

// Layers holds the layer sizes of a network. In a file it is written either
// as a list of sizes or as a list of dense layer definitions.
type Layers struct {
	Sizes []int
	// Dense is set when the file used layer definitions.
	Dense []LayerDefinition
}

// UnmarshalJSON accepts [4, 8, 2] or [{"type": "dense", ...}, ...].
func (l *Layers) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	var sizes []int
	if err := json.Unmarshal(data, &sizes); err == nil {
		l.Sizes, l.Dense = sizes, nil
		return nil
	}
	var defs []LayerDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("layers must be a list of sizes or of layer definitions: %w", err)
	}
	return l.setDense(defs)
}

// MarshalJSON writes the plain list of sizes.
func (l Layers) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Sizes)
}

// UnmarshalTOML accepts `layers = [4, 8, 2]` or an array of tables.
func (l *Layers) UnmarshalTOML(v any) error {
	var items []any
	switch t := v.(type) {
	case []any:
		items = t
	case []map[string]any:
		items = lo.Map(t, func(m map[string]any, _ int) any { return m })
	default:
		return fmt.Errorf("layers must be an array, got %T", v)
	}

	if len(items) == 0 {
		l.Sizes, l.Dense = nil, nil
		return nil
	}
	if _, ok := items[0].(map[string]any); !ok {
		sizes := make([]int, len(items))
		for i, it := range items {
			n, ok := it.(int64)
			if !ok {
				return fmt.Errorf("layer %d: size must be an integer, got %T", i, it)
			}
			sizes[i] = int(n)
		}
		l.Sizes, l.Dense = sizes, nil
		return nil
	}

	defs := make([]LayerDefinition, len(items))
	for i, it := range items {
		m, ok := it.(map[string]any)
		if !ok {
			return fmt.Errorf("layer %d: expected a table, got %T", i, it)
		}
		defs[i] = LayerDefinition{
			Type:       stringField(m, "type"),
			Activation: stringField(m, "activation"),
			InputSize:  intField(m, "input_size"),
			OutputSize: intField(m, "output_size"),
		}
	}
	return l.setDense(defs)
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func intField(m map[string]any, key string) int {
	n, _ := m[key].(int64)
	return int(n)
}

// setDense derives sizes from dense definitions: the input width of the first
// layer followed by the output width of every layer.
func (l *Layers) setDense(defs []LayerDefinition) error {
	if len(defs) == 0 {
		l.Sizes, l.Dense = nil, nil
		return nil
	}
	for i, d := range defs {
		if d.Type != "" && d.Type != "dense" {
			return errors.New(errors.ErrCodeUnsupported,
				"layer %d: type %q is not supported (only dense layers can be drawn)", i, d.Type)
		}
		if i == 0 && d.InputSize <= 0 {
			return errors.New(errors.ErrCodeInvalidLayerSizes, "layer 0: input_size is required")
		}
		if i > 0 && d.InputSize != 0 && d.InputSize != defs[i-1].OutputSize {
			return errors.New(errors.ErrCodeInvalidLayerSizes,
				"layer %d: input_size %d does not match previous output_size %d",
				i, d.InputSize, defs[i-1].OutputSize)
		}
	}
	sizes := append([]int{defs[0].InputSize}, lo.Map(defs, func(d LayerDefinition, _ int) int {
		return d.OutputSize
	})...)
	l.Sizes, l.Dense = sizes, defs
	return nil
}

// Input converts the file form into diagram input, checking the weight
// matrices for raggedness. Shape checks against the layers happen in
// [diagram.Prepare].
func (n Network) Input() (diagram.Input, error) {
	in := diagram.Input{
		Sizes:         n.Layers.Sizes,
		OutputWeights: n.OutputWeights,
		Epoch:         n.Epoch,
	}
	for k, rows := range n.Weights {
		m, err := weights.FromRows(rows)
		if err != nil {
			return diagram.Input{}, errors.Wrap(errors.GetCode(err), err, "weights %d", k)
		}
		in.Weights = append(in.Weights, m)
	}
	return in, nil
}

// FromInput converts diagram input back into its file form.
func FromInput(in diagram.Input) Network {
	return Network{
		Layers: Layers{Sizes: in.Sizes},
		Weights: lo.Map(in.Weights, func(m mat.Matrix, _ int) [][]float64 {
			return weights.Rows(m)
		}),
		OutputWeights: in.OutputWeights,
		Epoch:         in.Epoch,
	}
}
