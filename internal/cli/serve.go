package cli

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stackchart/pkg/cache"
	"github.com/matzehuels/stackchart/pkg/config"
	"github.com/matzehuels/stackchart/pkg/observability"
	"github.com/matzehuels/stackchart/pkg/pipeline"
	"github.com/matzehuels/stackchart/pkg/server"
	"github.com/matzehuels/stackchart/pkg/store"
)

type serveOpts struct {
	addr     string
	envFile  string
	storeDir string
	noCache  bool
	trace    bool
}

func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP render service",
		Long: `Serve renders chart definitions over HTTP and stores them by id.

Settings come from the environment, optionally loaded from a .env file:
  STACKCHART_ADDR        listen address (default :8080)
  STACKCHART_REDIS_ADDR  Redis address or redis:// URL for the artifact cache
  STACKCHART_MONGO_URI   MongoDB URI for stored charts
  STACKCHART_MONGO_DB    MongoDB database (default stackchart)

Without Redis the file cache is used; without MongoDB charts are kept in
--store-dir, or in memory when that is empty.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides STACKCHART_ADDR)")
	cmd.Flags().StringVar(&opts.envFile, "env-file", ".env", "environment file to load if present")
	cmd.Flags().StringVar(&opts.storeDir, "store-dir", "", "directory for stored charts when MongoDB is not configured")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	cmd.Flags().BoolVar(&opts.trace, "trace", false, "log pipeline, cache and HTTP events at debug level")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	svc, err := config.LoadService(opts.envFile)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		svc.Addr = opts.addr
	}
	if opts.trace {
		h := observability.NewLogHooks(logger)
		observability.SetPipelineHooks(h)
		observability.SetCacheHooks(h)
		observability.SetHTTPHooks(h)
	}

	ac, err := serviceCache(ctx, svc, opts.noCache, logger)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(ac, cache.NewScopedKeyer(nil, appName), logger)
	defer runner.Close()

	st, err := serviceStore(ctx, svc, opts.storeDir, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	printKeyValue("listen", svc.Addr)
	return server.New(runner, st, logger).ListenAndServe(ctx, svc.Addr)
}

func serviceCache(ctx context.Context, svc config.Service, noCache bool, logger *log.Logger) (cache.Cache, error) {
	switch {
	case noCache:
		printKeyValue("cache", "disabled")
		return cache.NewNullCache(), nil
	case svc.RedisAddr != "":
		rc, err := cache.NewRedisCache(ctx, svc.RedisAddr)
		if err != nil {
			return nil, err
		}
		printKeyValue("cache", "redis "+svc.RedisAddr)
		return rc, nil
	}
	ac, err := newCache(false)
	if err != nil {
		return nil, err
	}
	if fc, ok := ac.(*cache.FileCache); ok {
		printKeyValue("cache", fc.Dir())
	}
	logger.Debug("using local artifact cache")
	return ac, nil
}

func serviceStore(ctx context.Context, svc config.Service, dir string, logger *log.Logger) (store.Store, error) {
	switch {
	case svc.MongoURI != "":
		st, err := store.NewMongoStore(ctx, svc.MongoURI, svc.MongoDB)
		if err != nil {
			return nil, err
		}
		printKeyValue("store", "mongodb "+svc.MongoDB)
		return st, nil
	case dir != "":
		st, err := store.NewFileStore(dir)
		if err != nil {
			return nil, err
		}
		printKeyValue("store", st.Path())
		return st, nil
	}
	logger.Warn("charts are kept in memory and lost on exit")
	printKeyValue("store", "memory")
	return store.NewMemoryStore(), nil
}
