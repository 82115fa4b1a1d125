package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nnviz/pkg/config"
	nnio "github.com/matzehuels/nnviz/pkg/io"
	"github.com/matzehuels/nnviz/pkg/pipeline"
	"github.com/matzehuels/nnviz/pkg/render/canvas"
)

// renderOpts holds the command-line flags for the render command.
// Flags left unset keep the config file's values.
type renderOpts struct {
	format  string // png, svg, pdf, json, dot
	view    string // diagram or nodelink
	dir     string // output directory
	prefix  string // output file prefix
	noEpoch string // naming policy without an epoch
	labels  bool   // print weight labels
	epoch   int    // epoch override for a single input
	open    bool   // show the last artifact in the system viewer
	noCache bool   // render without the cache
	refresh bool   // ignore cached artifacts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <network.json|network.toml>...",
		Short: "Render network description files to images",
		Long: `Render draws one image per network description file. Each image is written
to <dir>/<prefix>-<epoch>.<ext> (ANN/ANN-<epoch>.png by default), taking the
epoch from the file. Files without an epoch follow the --no-epoch policy:
"omit" writes <prefix>.<ext>, "literal" writes <prefix>-None.<ext>, and any
other value is used as the suffix.`,
		Example: `  nnviz render network.json
  nnviz render --labels --format svg epoch-*.json
  nnviz render --view nodelink --format dot network.toml`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if err := applyRenderFlags(cmd, &cfg, opts); err != nil {
				return err
			}
			if cmd.Flags().Changed("epoch") && len(args) > 1 {
				return fmt.Errorf("--epoch applies to a single input, got %d", len(args))
			}
			return c.runRender(cmd.Context(), args, cfg, cmd.Flags().Changed("epoch"), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "output format: png (default), svg, pdf, json, dot")
	cmd.Flags().StringVarP(&opts.view, "view", "t", "", "view: diagram (default), nodelink")
	cmd.Flags().StringVarP(&opts.dir, "output", "o", "", "output directory (default ANN)")
	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "output file prefix (default ANN)")
	cmd.Flags().StringVar(&opts.noEpoch, "no-epoch", "", "file naming without an epoch: omit (default), literal, or a placeholder")
	cmd.Flags().BoolVarP(&opts.labels, "labels", "l", false, "print weight labels on strong connections")
	cmd.Flags().IntVar(&opts.epoch, "epoch", 0, "epoch for the title and file name (single input only)")
	cmd.Flags().BoolVar(&opts.open, "open", false, "open the last image in the system viewer")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the render cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when a cached image exists")

	_ = cmd.RegisterFlagCompletionFunc("format", cobra.FixedCompletions(
		[]string{pipeline.FormatPNG, pipeline.FormatSVG, pipeline.FormatPDF, pipeline.FormatJSON, pipeline.FormatDOT},
		cobra.ShellCompDirectiveNoFileComp))
	_ = cmd.RegisterFlagCompletionFunc("view", cobra.FixedCompletions(
		[]string{pipeline.ViewDiagram, pipeline.ViewNodelink}, cobra.ShellCompDirectiveNoFileComp))

	return cmd
}

// applyRenderFlags overlays the flags the user set on cfg and revalidates.
func applyRenderFlags(cmd *cobra.Command, cfg *config.Config, opts renderOpts) error {
	flags := cmd.Flags()
	if flags.Changed("format") {
		cfg.Output.Format = opts.format
		if !flags.Changed("view") && opts.format == pipeline.FormatDOT {
			cfg.Output.View = pipeline.ViewNodelink
		}
	}
	if flags.Changed("view") {
		cfg.Output.View = opts.view
	}
	if flags.Changed("output") {
		cfg.Output.Dir = opts.dir
	}
	if flags.Changed("prefix") {
		cfg.Output.Prefix = opts.prefix
	}
	if flags.Changed("no-epoch") {
		cfg.Output.NoEpoch = opts.noEpoch
	}
	if flags.Changed("labels") {
		cfg.Labels.Enabled = opts.labels
	}
	return cfg.Validate()
}

// runRender renders every input and reports the written files.
func (c *CLI) runRender(ctx context.Context, inputs []string, cfg config.Config, epochSet bool, opts renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newBatchProgress(logger, len(inputs))

	runner, cerr := c.newRunner(opts.noCache)
	if cerr != nil {
		printWarning("Render cache unavailable: %v", cerr)
		runner = pipeline.NewRunner(nil, nil, logger)
	}
	defer runner.Close()

	report := func(out pipeline.Output) {
		printSuccess("Rendered %s", out.Source)
		printFile(out.Path)
		printStats(out.Result.Stats, out.Result.CacheHit)
		prog.step(out)
	}
	popts := pipeline.Options{
		Format:   cfg.Output.Format,
		View:     cfg.Output.View,
		Refresh:  opts.refresh,
		Config:   &cfg,
		Logger:   logger,
		OnOutput: report,
	}

	var (
		outputs []pipeline.Output
		err     error
	)
	if epochSet {
		out, err := renderWithEpoch(ctx, runner, inputs[0], opts.epoch, popts)
		if err != nil {
			return err
		}
		report(out)
		outputs = append(outputs, out)
	} else {
		outputs, err = runner.RenderFiles(ctx, inputs, popts)
	}

	if err != nil {
		if len(outputs) > 0 {
			printWarning("Stopped after %d of %d files", len(outputs), len(inputs))
		}
		return err
	}
	if len(outputs) > 1 {
		prog.done()
	}

	if opts.open && len(outputs) > 0 {
		last := outputs[len(outputs)-1].Path
		if err := canvas.Open(last); err != nil {
			printWarning("Could not open %s: %v", last, err)
		}
	}
	return nil
}

// renderWithEpoch renders one file with its epoch replaced.
func renderWithEpoch(ctx context.Context, runner *pipeline.Runner, src string, epoch int, opts pipeline.Options) (pipeline.Output, error) {
	n, err := nnio.ImportFile(src)
	if err != nil {
		return pipeline.Output{}, err
	}
	n.Epoch = &epoch
	res, err := runner.ExecuteNetwork(ctx, n, opts)
	if err != nil {
		return pipeline.Output{}, err
	}
	path, err := pipeline.OutputPath(opts.Config.Output, res.Epoch, res.Format)
	if err != nil {
		return pipeline.Output{}, err
	}
	if err := pipeline.WriteArtifact(path, res.Artifact); err != nil {
		return pipeline.Output{}, err
	}
	return pipeline.Output{Source: src, Path: path, Result: res}, nil
}
