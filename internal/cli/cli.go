package cli

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/stepsort/pkg/cache"
	"github.com/matzehuels/stepsort/pkg/config"
	"github.com/matzehuels/stepsort/pkg/errors"
	"github.com/matzehuels/stepsort/pkg/runner"
	"github.com/matzehuels/stepsort/pkg/sorter"
	"github.com/matzehuels/stepsort/pkg/vector"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "stepsort"

	// defaultVerifyMaxN is the largest permutation size verify checks by default.
	defaultVerifyMaxN = 6

	// renderCacheTTL is how long rendered diagrams stay cached.
	renderCacheTTL = 30 * 24 * time.Hour
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

	configPath string
	config     *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// loadConfig reads the configuration file once per process.
func (c *CLI) loadConfig() (*config.Config, error) {
	if c.config != nil {
		return c.config, nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	c.config = cfg
	return cfg, nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a sorter runner for CLI use.
func (c *CLI) newRunner(cfg *config.Config, maxSteps int, seed uint64) *runner.Runner {
	if maxSteps <= 0 {
		maxSteps = cfg.Runner.MaxSteps
	}
	r := runner.NewRunner(c.Logger, maxSteps)
	r.Seed = seed
	return r
}

// =============================================================================
// Cache Factory
// =============================================================================

// newRenderCache creates the cache for rendered diagrams, or a NullCache when
// disabled or no cache directory is available.
func (c *CLI) newRenderCache(noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Debug("render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("render cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/stepsort/).
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

// =============================================================================
// Shared Flags
// =============================================================================

// vectorFlags are the input flags shared by commands that sort a sequence.
// Flags the user did not set fall back to the configuration file.
type vectorFlags struct {
	values string
	floor  uint32
	ceil   uint32
	size   int
	seed   uint64
}

func (f *vectorFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.values, "values", "", "explicit comma-separated input, e.g. 5,2,6")
	cmd.Flags().Uint32Var(&f.floor, "floor", vector.DefaultFloor, "smallest random value (inclusive)")
	cmd.Flags().Uint32Var(&f.ceil, "ceil", vector.DefaultCeil, "largest random value (exclusive)")
	cmd.Flags().IntVarP(&f.size, "size", "n", vector.DefaultSize, "number of random values")
	cmd.Flags().Uint64Var(&f.seed, "seed", 0, "random seed (0 for a random seed)")
}

// options merges changed flags over the configured vector options.
func (f *vectorFlags) options(cmd *cobra.Command, cfg *config.Config) vector.Options {
	opts := cfg.VectorOptions()
	flags := cmd.Flags()
	if flags.Changed("floor") {
		opts.Floor = f.floor
	}
	if flags.Changed("ceil") {
		opts.Ceil = f.ceil
	}
	if flags.Changed("size") {
		opts.Size = f.size
	}
	if flags.Changed("seed") {
		opts.Seed = f.seed
	}
	return opts
}

// sequence returns the explicit values, or a random vector.
func (f *vectorFlags) sequence(cmd *cobra.Command, cfg *config.Config) ([]uint32, error) {
	if f.values != "" {
		return vector.Parse(f.values)
	}
	return vector.Generate(f.options(cmd, cfg))
}

// parseAlgorithm resolves an --algorithm flag, defaulting to the configured
// algorithm when name is empty.
func parseAlgorithm(name string, cfg *config.Config) (sorter.Algorithm, error) {
	if name == "" {
		return cfg.AlgorithmValue(), nil
	}
	a, err := sorter.Parse(name)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "algorithm %q", name)
	}
	return a, nil
}

// parseAlgorithms resolves a comma-separated list; empty means all.
func parseAlgorithms(names []string) ([]sorter.Algorithm, error) {
	if len(names) == 0 {
		return sorter.All(), nil
	}
	algs := make([]sorter.Algorithm, 0, len(names))
	for _, name := range names {
		a, err := sorter.Parse(name)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidAlgorithm, err, "algorithm %q", name)
		}
		algs = append(algs, a)
	}
	return algs, nil
}

// completeAlgorithms offers algorithm names for shell completion.
func completeAlgorithms(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return sorter.Names(), cobra.ShellCompDirectiveNoFileComp
}
