package errors

import (
	"strings"
	"unicode"
)

// Size limits for a network. Each connection is one weight and one line, so
// MaxConnections bounds both the memory and the drawing work of a render.
const (
	MaxLayerSize   = 4096
	MaxLayers      = 256
	MaxConnections = 1 << 20
)

// ValidateLayerSizes checks the layer sizes of a network.
//
// The rules are:
//   - at least two layers (an input and an output layer)
//   - every layer has at least one node
//   - no layer exceeds MaxLayerSize nodes
//   - at most MaxLayers layers
//   - at most MaxConnections connections between consecutive layers
func ValidateLayerSizes(sizes []int) error {
	if len(sizes) == 0 {
		return New(ErrCodeInvalidLayerSizes, "no layers given")
	}
	if len(sizes) < 2 {
		return New(ErrCodeInvalidLayerSizes, "need at least 2 layers, got %d", len(sizes))
	}
	if len(sizes) > MaxLayers {
		return New(ErrCodeInvalidLayerSizes, "%d layers (max %d)", len(sizes), MaxLayers)
	}
	connections := 0
	for i, n := range sizes {
		if n <= 0 {
			return New(ErrCodeInvalidLayerSizes, "layer %d has %d nodes (must be positive)", i, n)
		}
		if n > MaxLayerSize {
			return New(ErrCodeInvalidLayerSizes, "layer %d has %d nodes (max %d)", i, n, MaxLayerSize)
		}
		if i > 0 {
			connections += sizes[i-1] * n
		}
	}
	if connections > MaxConnections {
		return New(ErrCodeInvalidLayerSizes, "%d connections (max %d)", connections, MaxConnections)
	}
	return nil
}

// ValidateWeightShape checks that the weight matrix for the layer pair
// (pair, pair+1) has shape (src, dst).
func ValidateWeightShape(pair, rows, cols, src, dst int) error {
	if rows != src || cols != dst {
		return New(ErrCodeWeightShapeMismatch,
			"weights %d: shape %dx%d does not match layers %d->%d (%dx%d)",
			pair, rows, cols, pair, pair+1, src, dst)
	}
	return nil
}

// ValidateOutputWeights checks that there is one output weight per output node.
// An empty slice means "no output weights" and is always valid.
func ValidateOutputWeights(n, outputSize int) error {
	if n != 0 && n != outputSize {
		return New(ErrCodeOutputWeightLengthMismatch,
			"got %d output weights for %d output nodes", n, outputSize)
	}
	return nil
}

// ValidatePath validates a relative output path component (directory or
// file prefix) for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
//   - No path traversal sequences (..)
//   - No backslashes (Windows-style paths)
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	if strings.Contains(path, "..") {
		return New(ErrCodeInvalidPath, "path cannot contain path traversal sequences (..)")
	}

	if strings.Contains(path, "\\") {
		return New(ErrCodeInvalidPath, "path cannot contain backslashes")
	}

	return nil
}
