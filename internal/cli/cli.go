// Package cli implements the slidegen command-line interface.
//
// # Commands
//
//   - build: render an outline as PPTX, JSON, or a markdown preview
//   - inspect: summarize an outline's slides as a table
//   - serve: run the HTTP API
//   - styles: list code highlighting styles
//   - config: print the effective configuration
//   - cache: manage the artifact cache
//
// All commands accept --verbose (-v) for debug logging and --config to
// read settings from a TOML file other than the default.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/slidegen/pkg/buildinfo"
	"github.com/matzehuels/slidegen/pkg/cache"
	"github.com/matzehuels/slidegen/pkg/config"
	"github.com/matzehuels/slidegen/pkg/observability"
	"github.com/matzehuels/slidegen/pkg/pipeline"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   buildinfo.AppName,
		Short: "Slidegen turns slide outlines into presentations",
		Long: `Slidegen reads a JSON, TOML, or YAML slide outline and writes a PowerPoint
presentation. Each record becomes one slide with a title, explanatory text on
the left, and a table, highlighted code, or text on the right.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/slidegen/config.toml)")

	root.AddCommand(c.buildCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.stylesCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup runs before every command: it applies --verbose, loads the config,
// and stores the logger in the command context.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.NewLogHooks(c.Logger).Register()
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.cfg = cfg

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cc, err := c.openCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(cc, nil, c.Logger)
	if ttl := c.cfg.Cache.TTL.Duration; ttl > 0 {
		r.ArtifactTTL = ttl
	}
	return r, nil
}

func (c *CLI) openCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	opts := cache.Options{
		Disabled: noCache || c.cfg.Cache.Disabled,
		RedisURL: c.cfg.Cache.RedisURL,
		MongoURI: c.cfg.Cache.MongoURI,
		MongoDB:  c.cfg.Cache.MongoDB,
	}
	if !opts.Disabled && opts.RedisURL == "" && opts.MongoURI == "" {
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "err", err)
			return cache.NewNullCache(), nil
		}
		opts.Dir = dir
	}
	return cache.Open(ctx, opts)
}

// cacheDir returns the file cache directory: cache.dir from the config,
// else $XDG_CACHE_HOME/slidegen, else ~/.cache/slidegen.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, buildinfo.AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", buildinfo.AppName), nil
}
