package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/oceanplot/pkg/buildinfo"
	"github.com/matzehuels/oceanplot/pkg/cache"
	"github.com/matzehuels/oceanplot/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "oceanplot"

	// envRedisURL selects the Redis artifact cache when --redis-url is not given.
	envRedisURL = "OCEANPLOT_REDIS_URL"

	// redisKeyPrefix scopes oceanplot keys in a shared Redis database.
	redisKeyPrefix = "oceanplot:"
)

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
		Short: "oceanplot draws T-S diagrams, depth profiles and region maps",
		Long: `oceanplot turns tabular cast data (CSV or JSON) into publication figures:
temperature-salinity diagrams with potential density contours, depth profiles
with a shaded standard deviation band, and maps of (possibly antimeridian
crossing) region boxes.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	// Register all subcommands
	root.AddCommand(c.tsCommand())
	root.AddCommand(c.profileCommand())
	root.AddCommand(c.boxCommand())
	root.AddCommand(c.previewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. A Redis URL takes
// precedence over the local file cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool, redisURL string) (*pipeline.Runner, error) {
	if noCache {
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	if redisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{URL: redisURL})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache")
		return pipeline.NewRunner(rc, cache.NewScopedKeyer(nil, redisKeyPrefix), c.Logger), nil
	}
	fc, err := newFileCache()
	if err != nil {
		c.Logger.Warn("file cache unavailable, caching disabled", "error", err)
		return pipeline.NewRunner(cache.NewNullCache(), nil, c.Logger), nil
	}
	return pipeline.NewRunner(fc, nil, c.Logger), nil
}

func newFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, err
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/oceanplot/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
