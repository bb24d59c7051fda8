// Package cli implements the mindlayout command-line interface.
package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mindlayout/pkg/buildinfo"
	"github.com/matzehuels/mindlayout/pkg/cache"
	"github.com/matzehuels/mindlayout/pkg/config"
	"github.com/matzehuels/mindlayout/pkg/errors"
	"github.com/matzehuels/mindlayout/pkg/layout"
	"github.com/matzehuels/mindlayout/pkg/mapio"
	"github.com/matzehuels/mindlayout/pkg/mindmap"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "mindlayout"

	// stdio stands for stdin or stdout in file arguments.
	stdio = "-"
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
	stdin      io.Reader
	stdout     io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdin:  os.Stdin,
		stdout: os.Stdout,
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
		Short:        "Mindlayout computes mind-map layouts",
		Long:         `Mindlayout lays out mind maps: it reads a map document, computes where every node goes and writes the geometry as JSON, renders it as SVG, browses it interactively or serves layouts over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/mindlayout/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Shared Helpers
// =============================================================================

// loadConfig reads the --config file, or the default one when the flag is
// not set.
func (c *CLI) loadConfig() (config.Config, error) {
	path := c.configPath
	if path == "" {
		p, err := config.Path()
		if err != nil {
			c.Logger.Debug("No config directory, using defaults", "err", err)
			return config.Default(), nil
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("Loaded config", "path", path)
	return cfg, nil
}

// readMap loads a map document. An empty format is inferred from the file
// extension; stdin defaults to JSON.
func (c *CLI) readMap(path, format string) (*mindmap.Map, error) {
	if format == "" && path != stdio {
		return mapio.ReadFile(path)
	}

	f := mapio.FormatJSON
	if format != "" {
		var err error
		if f, err = mapio.ParseFormat(format); err != nil {
			return nil, err
		}
	}
	if path == stdio {
		return mapio.Read(c.stdin, f)
	}

	file, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.New(errors.ErrCodeFileNotFound, "map file not found: %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()
	return mapio.Read(file, f)
}

// newEngine creates an engine for m that logs diagnostics through the CLI
// logger.
func (c *CLI) newEngine(m *mindmap.Map, cfg config.Config) *layout.Engine {
	opts := append(cfg.LayoutOptions(), layout.WithLogger(c.Logger))
	return layout.NewEngine(m, opts...)
}

// outputPath derives the output file from the input when none is given.
// Stdin input goes to stdout.
func outputPath(input, output, suffix string) string {
	if output != "" {
		return output
	}
	if input == stdio {
		return stdio
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + suffix
}

// writeOutput writes data to path, or to stdout for "-".
func (c *CLI) writeOutput(path string, data []byte) error {
	if path == stdio {
		_, err := c.stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}

// artifactCache opens the on-disk artifact cache. It falls back to a null
// cache when disabled or when the cache directory is unusable.
func (c *CLI) artifactCache(disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	dir, err := cache.Dir()
	if err != nil {
		c.Logger.Debug("No cache directory", "error", err)
		return cache.NewNullCache()
	}
	store, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("Cache disabled", "dir", dir, "error", err)
		return cache.NewNullCache()
	}
	return store
}
