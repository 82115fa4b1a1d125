package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/matzehuels/nnviz/pkg/config"
	"github.com/matzehuels/nnviz/pkg/errors"
)

// No-epoch naming policies.
const (
	NoEpochOmit    = "omit"    // <prefix>.<ext>
	NoEpochLiteral = "literal" // <prefix>-None.<ext>
)

// FileName returns <prefix>-<epoch>.<ext>. Without an epoch the noEpoch
// policy decides the suffix: omit drops it, literal writes "None", and any
// other value is used verbatim.
func FileName(prefix string, epoch *int, noEpoch, ext string) string {
	var suffix string
	switch {
	case epoch != nil:
		suffix = strconv.Itoa(*epoch)
	case noEpoch == NoEpochLiteral:
		suffix = "None"
	case noEpoch == NoEpochOmit, noEpoch == "":
	default:
		suffix = noEpoch
	}
	if suffix == "" {
		return prefix + "." + ext
	}
	return prefix + "-" + suffix + "." + ext
}

// OutputPath returns <dir>/<file name> for the output section of a config.
// The prefix and placeholder must be plain file names.
func OutputPath(out config.Output, epoch *int, ext string) (string, error) {
	for _, part := range []string{out.Prefix, out.NoEpoch} {
		if part == NoEpochOmit || part == NoEpochLiteral {
			continue
		}
		if err := errors.ValidatePath(part); err != nil {
			return "", err
		}
		if strings.ContainsRune(part, '/') {
			return "", errors.New(errors.ErrCodeInvalidPath, "%q must not contain a path separator", part)
		}
	}
	return filepath.Join(out.Dir, FileName(out.Prefix, epoch, out.NoEpoch, ext)), nil
}

// WriteArtifact writes data to path, creating parent directories.
func WriteArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
