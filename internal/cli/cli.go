package cli

import (
	"context"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/antcolor/pkg/buildinfo"
	"github.com/matzehuels/antcolor/pkg/cache"
	"github.com/matzehuels/antcolor/pkg/config"
	"github.com/matzehuels/antcolor/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "antcolor"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "antcolor colors graphs with an ant colony",
		Long: `antcolor finds small proper vertex colorings of undirected graphs using the
Ant System metaheuristic: a colony of ants builds colorings guided by a
pheromone trail that rewards cheap solutions.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(withLogger(ctx, c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.colorCommand())
	root.AddCommand(c.generateCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the cache backend for commands that run the pipeline.
type cacheFlags struct {
	noCache   bool
	dir       string
	redisAddr string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&f.dir, "cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/"+appName+")")
	cmd.Flags().StringVar(&f.redisAddr, "redis-addr", "", "use a shared Redis cache at host:port")
}

// merge fills flags left unset on the command line from cfg.
func (f *cacheFlags) merge(cmd *cobra.Command, cfg config.Cache) config.Cache {
	if cmd.Flags().Changed("no-cache") {
		cfg.Disabled = f.noCache
	}
	if cmd.Flags().Changed("cache-dir") {
		cfg.Dir = f.dir
	}
	if cmd.Flags().Changed("redis-addr") {
		cfg.Redis.Addr = f.redisAddr
	}
	return cfg
}

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, cfg config.Cache, keyer cache.Keyer) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(store, keyer, c.Logger), nil
}

// newCache opens the configured backend. A missing cache directory degrades
// to no caching; an unreachable Redis is an error since it was asked for
// explicitly.
func (c *CLI) newCache(ctx context.Context, cfg config.Cache) (cache.Cache, error) {
	if cfg.Disabled {
		return cache.NewNullCache(), nil
	}
	if cfg.Redis.Addr != "" {
		c.Logger.Debug("Using Redis cache", "addr", cfg.Redis.Addr)
		return cache.NewRedisCache(ctx, cache.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	dir, err := cacheDir(cfg.Dir)
	if err != nil {
		c.Logger.Warn("Caching disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns override when set, else the user cache directory
// (~/.cache/antcolor on Linux, honoring XDG_CACHE_HOME).
func cacheDir(override string) (string, error) {
	if override != "" {
		return override, nil
	}
	return cache.DefaultDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
// An empty string yields nil.
func parseFormats(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
