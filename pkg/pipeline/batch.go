package pipeline

import (
	"context"
	"fmt"

	"github.com/samber/lo"

	"github.com/matzehuels/nnviz/pkg/errors"
)

// Output is one rendered input file.
type Output struct {
	Source string
	Path   string
	Result *Result
}

// RenderFiles renders every network file in paths and writes each artifact
// to its output path, named from the file's epoch. Files are processed in
// order; the first failure stops the batch and is returned with the outputs
// written so far. Two inputs that would write the same path are an error.
// opts.OnOutput sees each output before the next file starts.
func (r *Runner) RenderFiles(ctx context.Context, paths []string, opts Options) ([]Output, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if dups := lo.FindDuplicates(paths); len(dups) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "input %s given more than once", dups[0])
	}

	written := make(map[string]string, len(paths))
	outputs := make([]Output, 0, len(paths))
	for _, src := range paths {
		if err := ctx.Err(); err != nil {
			return outputs, err
		}
		res, err := r.ExecuteFile(ctx, src, opts)
		if err != nil {
			return outputs, fmt.Errorf("%s: %w", src, err)
		}
		path, err := OutputPath(opts.Config.Output, res.Epoch, res.Format)
		if err != nil {
			return outputs, err
		}
		if prev, ok := written[path]; ok {
			return outputs, errors.New(errors.ErrCodeInvalidInput,
				"%s and %s both write %s (set an epoch in each file)", prev, src, path)
		}
		if err := WriteArtifact(path, res.Artifact); err != nil {
			return outputs, err
		}
		written[path] = src
		out := Output{Source: src, Path: path, Result: res}
		outputs = append(outputs, out)
		if opts.OnOutput != nil {
			opts.OnOutput(out)
		}
	}
	return outputs, nil
}
