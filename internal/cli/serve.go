package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/antcolor/pkg/api"
	"github.com/matzehuels/antcolor/pkg/cache"
	"github.com/matzehuels/antcolor/pkg/config"
	"github.com/matzehuels/antcolor/pkg/metrics"
)

// cacheKeyPrefix namespaces server cache keys so a shared Redis can hold
// entries of several deployments and key layouts.
const cacheKeyPrefix = appName + ":v1:"

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath  string
		addr        string
		maxVertices int
		timeout     time.Duration
		cacheOpts   cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the coloring HTTP API",
		Long: `Serve the coloring HTTP API.

Endpoints:
  POST /v1/color   color an adjacency list, optionally rendering it
  GET  /healthz    liveness and build information
  GET  /metrics    Prometheus metrics

With --redis-addr, seeded results and rendered artifacts are shared through
Redis; otherwise the local file cache is used. Ctrl-C shuts the server down
gracefully.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") || cfg.Server.Addr == "" {
				cfg.Server.Addr = addr
			}
			if cmd.Flags().Changed("max-vertices") {
				cfg.Server.MaxVertices = maxVertices
			}
			cfg.Cache = cacheOpts.merge(cmd, cfg.Cache)

			metrics.Register()

			runner, err := c.newRunner(ctx, cfg.Cache, cache.NewScopedKeyer(cache.NewDefaultKeyer(), cacheKeyPrefix))
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			opts := []api.Option{api.WithLogger(logger), api.WithTimeout(timeout)}
			if cfg.Server.MaxVertices > 0 {
				opts = append(opts, api.WithMaxVertices(cfg.Server.MaxVertices))
			}
			return api.NewServer(runner, opts...).ListenAndServe(ctx, cfg.Server.Addr)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml, .yml)")
	cmd.Flags().StringVar(&addr, "addr", config.DefaultServerAddr, "listen address")
	cmd.Flags().IntVar(&maxVertices, "max-vertices", 0, "largest accepted graph (default: built-in limit)")
	cmd.Flags().DurationVar(&timeout, "timeout", 2*time.Minute, "time limit per color request")
	cacheOpts.register(cmd)

	return cmd
}
