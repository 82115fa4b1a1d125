// Package cli implements the nnviz command-line interface.
//
// The commands render network description files to images, serve the same
// renders over HTTP, write the default configuration and manage the render
// cache. The CLI is built using cobra and logs through charmbracelet/log.
//
// # Commands
//
//   - render: draw one image per network file (png, svg, pdf, json, dot)
//   - serve: run the HTTP render API
//   - config: write or print the TOML configuration
//   - cache: inspect or clear the render cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context; batch renders log one debug line per file.
package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nnviz/pkg/pipeline"
)

// newLogger returns the CLI logger. Timestamps use "15:04:05.00" so the
// per-file lines of a batch render line up.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// batchProgress logs per-file results of a batch render at debug level and a
// summary at the end. Not safe for concurrent use.
type batchProgress struct {
	logger *log.Logger
	total  int
	seen   int
	cached int
	start  time.Time
}

func newBatchProgress(l *log.Logger, total int) *batchProgress {
	return &batchProgress{logger: l, total: total, start: time.Now()}
}

// step records one finished file.
func (p *batchProgress) step(out pipeline.Output) {
	p.seen++
	if out.Result.CacheHit {
		p.cached++
	}
	epoch := "none"
	if out.Result.Epoch != nil {
		epoch = strconv.Itoa(*out.Result.Epoch)
	}
	p.logger.Debug("file done",
		"n", fmt.Sprintf("%d/%d", p.seen, p.total),
		"src", out.Source,
		"epoch", epoch,
		"cached", out.Result.CacheHit,
		"took", out.Result.Duration.Round(time.Millisecond))
}

// done logs the summary, e.g. "Rendered 3 files, 1 cached (1.234s)".
func (p *batchProgress) done() {
	p.logger.Infof("Rendered %d files, %d cached (%s)",
		p.seen, p.cached, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the command logger, or log.Default() outside a
// command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
