// Package cli implements the bloom command-line interface.
package cli

import (
	"context"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/bloom/internal/config"
	"github.com/matzehuels/bloom/pkg/buildinfo"
	"github.com/matzehuels/bloom/pkg/editor"
	"github.com/matzehuels/bloom/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "bloom"

	// scope is the session scope every CLI command edits.
	scope = session.LocalScope
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
	strict     bool
	noCache    bool
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
		Short:        "Bloom edits the styles of screen documents",
		Long:         `Bloom loads a JSON screen document, lets you select components and edit their styles, previews the resolved result and exports the document again. It runs as a CLI on a local session or as an HTTP API for the browser editor.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	flags := root.PersistentFlags()
	flags.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/bloom/config.toml)")
	flags.BoolVar(&c.strict, "strict", false, "reject documents with missing or duplicate ids and unknown types")
	flags.BoolVar(&c.noCache, "no-cache", false, "disable the preview and outline cache")

	root.AddCommand(c.serveCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.selectCommand())
	root.AddCommand(c.styleCommand())
	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.validateCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.presetsCommand())
	root.AddCommand(c.samplesCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Editor Factory
// =============================================================================

// loadConfig reads the config file and applies global flags.
func (c *CLI) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.strict {
		cfg.Editor.Strict = true
	}
	if c.noCache {
		cfg.Editor.Cache = config.CacheNone
	}
	return cfg, nil
}

// newEditor opens the configured backends for CLI use. The returned close
// function releases them.
func (c *CLI) newEditor(ctx context.Context) (*editor.Editor, func(), error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, nil, err
	}
	return openEditor(ctx, cfg, c.Logger, true)
}

// =============================================================================
// Output Helpers
// =============================================================================

// writeOutput writes data to path, or to stdout when path is "-".
func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
