// Package weights holds the connection weight matrices of a network.
//
// The matrix between layers k and k+1 has one row per node of layer k and one
// column per node of layer k+1, so entry (i, j) is the weight from source
// node i to destination node j. Matrices are gonum [mat.Matrix] values.
//
// When a caller supplies no weights, [Uniform] synthesizes matrices filled
// with [DefaultFiller]: every connection is then drawn alike.
package weights

import (
	"gonum.org/v1/gonum/mat"

	"github.com/matzehuels/nnviz/pkg/errors"
)

// DefaultFiller is the value of every synthesized weight.
const DefaultFiller = 0.4

// FromRows builds a matrix from row-major data. Every row must have the same,
// non-zero length.
func FromRows(rows [][]float64) (*mat.Dense, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "weight matrix is empty")
	}
	cols := len(rows[0])
	data := make([]float64, 0, len(rows)*cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"weight matrix row %d has %d columns, want %d", i, len(row), cols)
		}
		data = append(data, row...)
	}
	return mat.NewDense(len(rows), cols, data), nil
}

// Rows returns the entries of m as row-major slices.
func Rows(m mat.Matrix) [][]float64 {
	r, c := m.Dims()
	out := make([][]float64, r)
	for i := range out {
		out[i] = make([]float64, c)
		for j := range out[i] {
			out[i][j] = m.At(i, j)
		}
	}
	return out
}

// Uniform returns one matrix per consecutive layer pair, every entry set to
// filler. sizes must already be valid layer sizes.
func Uniform(sizes []int, filler float64) []mat.Matrix {
	if len(sizes) < 2 {
		return nil
	}
	out := make([]mat.Matrix, len(sizes)-1)
	for k := 1; k < len(sizes); k++ {
		data := make([]float64, sizes[k-1]*sizes[k])
		for i := range data {
			data[i] = filler
		}
		out[k-1] = mat.NewDense(sizes[k-1], sizes[k], data)
	}
	return out
}

// Validate checks that ws holds exactly one matrix per layer pair with the
// shape of that pair. An empty ws is valid: the default weights apply.
func Validate(sizes []int, ws []mat.Matrix) error {
	if len(ws) == 0 {
		return nil
	}
	if len(ws) != len(sizes)-1 {
		return errors.New(errors.ErrCodeWeightShapeMismatch,
			"got %d weight matrices for %d layers (want %d)", len(ws), len(sizes), len(sizes)-1)
	}
	for k, w := range ws {
		if w == nil {
			return errors.New(errors.ErrCodeWeightShapeMismatch, "weights %d: missing matrix", k)
		}
		rows, cols := w.Dims()
		if err := errors.ValidateWeightShape(k, rows, cols, sizes[k], sizes[k+1]); err != nil {
			return err
		}
	}
	return nil
}

// Resolve validates sizes and ws and returns ws, or the uniform default
// matrices when ws is empty. Oversized networks fail before anything is
// allocated.
func Resolve(sizes []int, ws []mat.Matrix, filler float64) ([]mat.Matrix, error) {
	if err := errors.ValidateLayerSizes(sizes); err != nil {
		return nil, err
	}
	if err := Validate(sizes, ws); err != nil {
		return nil, err
	}
	if len(ws) == 0 {
		return Uniform(sizes, filler), nil
	}
	return ws, nil
}

// Range returns the smallest and largest weight over all matrices.
// It returns (0, 0) for an empty slice.
func Range(ws []mat.Matrix) (lo, hi float64) {
	for k, w := range ws {
		wmin, wmax := mat.Min(w), mat.Max(w)
		if k == 0 || wmin < lo {
			lo = wmin
		}
		if k == 0 || wmax > hi {
			hi = wmax
		}
	}
	return lo, hi
}
