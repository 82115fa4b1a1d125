package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/nnviz/pkg/cache"
	nnio "github.com/matzehuels/nnviz/pkg/io"
	"github.com/matzehuels/nnviz/pkg/observability"
	"github.com/matzehuels/nnviz/pkg/render/diagram"
)

// Runner encapsulates render execution with caching.
// Both CLI and server use it so that keys and logging stay identical.
//
// The Runner is stateless except for the cache and logger. Multiple
// goroutines can safely use the same Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// cachedArtifact is the cache entry for one artifact.
type cachedArtifact struct {
	Stats diagram.Stats `json:"stats"`
	Data  []byte        `json:"data"`
}

// Execute validates in, then returns the cached artifact or renders it.
// Input errors are returned before the cache is consulted.
func (r *Runner) Execute(ctx context.Context, in diagram.Input, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	start := time.Now()

	p, err := diagram.Prepare(in, opts.Config.DiagramOptions())
	if err != nil {
		return nil, err
	}
	observability.Render().OnPrepare(ctx, len(p.Network.Layers), p.Network.NodeCount())

	netHash, err := cache.HashJSON(nnio.FromInput(in))
	if err != nil {
		return nil, err
	}
	style, err := opts.StyleHash()
	if err != nil {
		return nil, err
	}
	key := r.Keyer.ArtifactKey(netHash, opts.ArtifactKeyOpts(style))

	result := &Result{
		View:        opts.View,
		Format:      opts.Format,
		Epoch:       in.Epoch,
		NetworkHash: netHash,
	}

	if !opts.Refresh {
		if entry, ok := r.lookup(ctx, key); ok {
			result.Artifact = entry.Data
			result.Stats = entry.Stats
			result.CacheHit = true
			result.Duration = time.Since(start)
			opts.Logger.Debug("cache hit", "view", opts.View, "format", opts.Format, "network", short(netHash))
			return result, nil
		}
	}

	observability.Render().OnRenderStart(ctx, opts.View, opts.Format)
	renderStart := time.Now()
	data, stats, err := Render(ctx, p, opts)
	observability.Render().OnRenderComplete(ctx, opts.View, opts.Format, stats.Connections, time.Since(renderStart), err)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", opts.Format, err)
	}
	result.Artifact = data
	result.Stats = stats
	result.Duration = time.Since(start)

	r.store(ctx, key, cachedArtifact{Stats: stats, Data: data}, opts.Logger)

	opts.Logger.Info("rendered",
		"view", opts.View,
		"format", opts.Format,
		"connections", stats.Connections,
		"labels", stats.Labels,
		"duration", result.Duration)

	return result, nil
}

// ExecuteNetwork renders a decoded network description.
func (r *Runner) ExecuteNetwork(ctx context.Context, n nnio.Network, opts Options) (*Result, error) {
	in, err := n.Input()
	if err != nil {
		return nil, err
	}
	return r.Execute(ctx, in, opts)
}

// ExecuteFile reads a JSON or TOML network description and renders it.
func (r *Runner) ExecuteFile(ctx context.Context, path string, opts Options) (*Result, error) {
	n, err := nnio.ImportFile(path)
	if err != nil {
		return nil, err
	}
	return r.ExecuteNetwork(ctx, n, opts)
}

// lookup reads a cache entry. Read failures and undecodable entries count as
// misses.
func (r *Runner) lookup(ctx context.Context, key string) (cachedArtifact, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "key", key, "err", err)
	}
	if err == nil && hit {
		var entry cachedArtifact
		if err := json.Unmarshal(data, &entry); err == nil {
			observability.Cache().OnCacheHit(ctx, key)
			return entry, true
		}
	}
	observability.Cache().OnCacheMiss(ctx, key)
	return cachedArtifact{}, false
}

func (r *Runner) store(ctx context.Context, key string, entry cachedArtifact, logger *log.Logger) {
	data, err := json.Marshal(entry)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err != nil {
		logger.Warn("cache write failed", "key", key, "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, key, len(data))
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}
