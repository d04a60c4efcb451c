// Package cli implements the schreier command-line interface.
//
// This package provides commands for computing with permutation groups:
// group order, membership testing, orbits, stabilizer chain inspection,
// random element sampling, visualization and a small HTTP API server.
// The CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - order: Compute the exact order of a group from its generators
//   - contains: Test whether a permutation is a group element
//   - orbit: Compute the orbit of a point
//   - element: Sample random group elements
//   - levels: Inspect the stabilizer chain level by level
//   - render: Generate SVG visualizations of cycles and orbits
//   - explore: Browse the stabilizer chain interactively
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/schreier/pkg/buildinfo"
	"github.com/matzehuels/schreier/pkg/cache"
)

// appName is the application name used for directories and display.
const appName = "schreier"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config Config
}

// New creates a new CLI instance with a default logger and the on-disk
// configuration, falling back to defaults when no config file exists.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: LoadConfigOrDefault(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Schreier computes with permutation groups",
		Long:         `Schreier is a CLI tool for permutation group computations: exact group orders via stabilizer chains, membership tests, orbits, random sampling and visualizations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	var configFile string
	root.PersistentFlags().StringVar(&configFile, "config", "", "path to a TOML config file (overrides the default location)")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if configFile == "" {
			return nil
		}
		cfg, err := LoadConfig(configFile)
		if err != nil {
			return err
		}
		c.Config = cfg
		return nil
	}

	// Register all subcommands
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.containsCommand())
	root.AddCommand(c.orbitCommand())
	root.AddCommand(c.elementCommand())
	root.AddCommand(c.levelsCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.exploreCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.catalogCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// newCache builds the cache backend for CLI use: the file cache under the
// XDG cache directory, or the null cache when disabled. Failures to locate
// a cache directory silently disable caching; computing without a cache is
// always correct.
func (c *CLI) newCache(noCache bool) (cache.Cache, error) {
	if noCache || !c.Config.Cache.Enabled {
		return cache.NewNullCache(), nil
	}
	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewInstrumented(fc), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/schreier/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
