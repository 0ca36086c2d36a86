// Package cli implements the inkframe command-line interface.
//
// The CLI is built with cobra. Every command accepts --verbose (-v) for
// debug logging; the charmbracelet/log logger is also installed as the
// slog handler of the library packages.
//
// # Commands
//
//   - render: render one frame from a configuration and a data document
//   - serve: run the refresh loop and the HTTP API
//   - layouts: list the available layouts
package cli

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/inkframe/inkframe"
	"github.com/inkframe/inkframe/config"
)

// Version is set at build time.
var Version = "dev"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:          "inkframe",
		Short:        "inkframe renders dashboards for e-ink panels",
		Long:         `inkframe composes plugin data (weather, calendar, news, custom) into fixed zone layouts and renders them as black and white or grayscale images sized for an e-ink panel.`,
		Version:      Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			inkframe.SetLogger(slog.New(c.Logger))
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.layoutsCommand())

	return root
}

// loadConfig loads and validates path, or returns the defaults when path
// is empty.
func loadConfig(path string) (*config.Config, error) {
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.LoadFile(path); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}
