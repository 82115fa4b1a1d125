package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/nnviz/pkg/cache"
	"github.com/matzehuels/nnviz/pkg/observability"
	"github.com/matzehuels/nnviz/pkg/pipeline"
	"github.com/matzehuels/nnviz/pkg/server"
)

// redisPasswordEnv holds the Redis password so it stays out of shell history.
const redisPasswordEnv = "NNVIZ_REDIS_PASSWORD"

type serveOpts struct {
	addr      string
	redisAddr string
	redisDB   int
	keyPrefix string
	fileCache bool
	maxBody   int64
}

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: ":8080", keyPrefix: "nnviz:", maxBody: server.DefaultMaxBodyBytes}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve renders over HTTP",
		Long: `Serve runs the render API:

  POST /v1/render?format=png&view=diagram&labels=true   body: network description
  GET  /v1/formats
  GET  /healthz

Rendered artifacts are cached in Redis with --redis, in the local file cache
with --file-cache, and not at all otherwise.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the artifact cache (password from "+redisPasswordEnv+")")
	cmd.Flags().IntVar(&opts.redisDB, "redis-db", 0, "Redis database number")
	cmd.Flags().StringVar(&opts.keyPrefix, "key-prefix", opts.keyPrefix, "namespace for Redis cache keys")
	cmd.Flags().BoolVar(&opts.fileCache, "file-cache", false, "cache artifacts in the local cache directory")
	cmd.Flags().Int64Var(&opts.maxBody, "max-body", opts.maxBody, "maximum request body in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	store, err := serverCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(store, serverKeyer(opts), logger)
	defer runner.Close()

	hooks := observability.NewLogHooks(logger)
	observability.SetRenderHooks(hooks)
	observability.SetCacheHooks(hooks)
	observability.SetHTTPHooks(hooks)
	defer observability.Reset()

	printInfo("Serving on %s", opts.addr)
	srv := server.New(runner, cfg, logger, server.WithMaxBodyBytes(opts.maxBody))
	return srv.ListenAndServe(ctx, opts.addr)
}

// serverCache picks the artifact cache for the server.
func serverCache(ctx context.Context, opts serveOpts) (cache.Cache, error) {
	switch {
	case opts.redisAddr != "":
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     opts.redisAddr,
			Password: os.Getenv(redisPasswordEnv),
			DB:       opts.redisDB,
		})
	case opts.fileCache:
		return newCache(false)
	default:
		return cache.NewNullCache(), nil
	}
}

// serverKeyer namespaces keys when the cache is shared through Redis.
func serverKeyer(opts serveOpts) cache.Keyer {
	if opts.redisAddr == "" {
		return cache.NewDefaultKeyer()
	}
	return cache.WithPrefix(nil, opts.keyPrefix)
}
