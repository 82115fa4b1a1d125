package io

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/nnviz/pkg/errors"
)

// File formats understood by [Decode] and [ImportFile].
const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// ReadJSON decodes a JSON network description from r.
//
// The input must be a JSON object with a "layers" field:
//
//	{
//	  "layers": [2, 3, 1],
//	  "weights": [[[0.1, 0.2, 0.3], [0.4, 0.5, 0.6]], [[0.7], [0.8], [0.9]]],
//	  "output_weights": [0.85],
//	  "epoch": 12
//	}
//
// Unknown fields are rejected. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Network, error) {
	var n Network
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&n); err != nil {
		if errors.GetCode(err) != "" {
			return Network{}, err
		}
		return Network{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode network")
	}
	return n, nil
}

// ReadTOML decodes a TOML network description from r. It accepts the same
// fields as [ReadJSON]; dense layers may be written as [[layers]] tables.
func ReadTOML(r io.Reader) (Network, error) {
	var n Network
	md, err := toml.NewDecoder(r).Decode(&n)
	if err != nil {
		if errors.GetCode(err) != "" {
			return Network{}, err
		}
		return Network{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode network")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return Network{}, errors.New(errors.ErrCodeInvalidInput, "unknown field %q", undecoded[0].String())
	}
	return n, nil
}

// Decode reads a description in the given format.
func Decode(r io.Reader, format string) (Network, error) {
	switch strings.ToLower(format) {
	case FormatJSON, "":
		return ReadJSON(r)
	case FormatTOML:
		return ReadTOML(r)
	default:
		return Network{}, errors.New(errors.ErrCodeInvalidFormat, "unknown network format %q", format)
	}
}

// FormatOf returns the description format implied by a file extension.
func FormatOf(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatJSON
}

// ImportFile reads the description at path, choosing the decoder by
// extension (.toml, anything else is JSON).
func ImportFile(path string) (Network, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Network{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Network{}, errors.Wrap(errors.ErrCodeInvalidPath, err, "open %s", path)
	}
	defer f.Close()

	n, err := Decode(f, FormatOf(path))
	if err != nil {
		return Network{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return n, nil
}
