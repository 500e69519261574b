// Package cli implements the bracketgen command line: render, serve, picks,
// show, cache and completion.
//
// Every command shares one [CLI] value holding the logger and the loaded
// config. The logger is also stored in the command context with
// log.WithContext, so helpers that only see a context can still log.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bracketgen/pkg/buildinfo"
	"github.com/matzehuels/bracketgen/pkg/cache"
	"github.com/matzehuels/bracketgen/pkg/config"
	"github.com/matzehuels/bracketgen/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = config.AppName

	// defaultTeamsFile is read when neither --picks nor --teams is given.
	defaultTeamsFile = "teams.json"

	// defaultOutput is the render output path.
	defaultOutput = pipeline.PDFFilename
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
	verbose    bool
	cfg        *config.Config
	term       *terminal
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
		Use:          appName,
		Short:        "Bracketgen renders 64-team tournament brackets",
		Long:         `Bracketgen builds single-elimination tournament brackets from team lists or recorded picks and renders them as printable PDF, SVG or PNG pages.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(log.WithContext(cmd.Context(), c.Logger))
			c.term = newTerminal(cmd.OutOrStdout())
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bracketgen/config.toml)")

	render := c.renderCommand()
	root.AddCommand(render)
	registerRenderCompletions(render)
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.picksCommand())
	root.AddCommand(c.showCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// ui returns the status printer for the running command.
func (c *CLI) ui() *terminal {
	if c.term == nil {
		c.term = newTerminal(nil)
	}
	return c.term
}

// =============================================================================
// Configuration
// =============================================================================

func (c *CLI) loadConfig() error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = &cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// config returns the loaded configuration, or the defaults when the root
// pre-run did not execute (as in tests calling subcommands directly).
func (c *CLI) config() config.Config {
	if c.cfg == nil {
		return config.Default()
	}
	return *c.cfg
}

// baseOptions returns pipeline options carrying the configured render
// defaults.
func (c *CLI) baseOptions() pipeline.Options {
	cfg := c.config()
	return pipeline.Options{
		Title:      cfg.Title,
		Style:      cfg.Style,
		Scale:      cfg.Render.PNGScale,
		NoCompress: !cfg.Render.CompressPDF,
	}
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. With noCache the
// artifact cache is disabled; an unreachable backend degrades to no cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	cfg := c.config()
	runner := pipeline.NewRunner(c.newCache(ctx, noCache), nil, c.Logger)
	runner.TTL = cfg.Cache.TTL.Duration
	return runner
}

func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	ch, err := c.config().OpenCache(ctx)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "error", err)
		return cache.NewNullCache()
	}
	return ch
}

// cacheDir returns the directory used by the file cache.
func (c *CLI) cacheDir() (string, error) {
	return c.config().CacheDir()
}
