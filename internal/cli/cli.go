// Package cli implements the styleable command-line interface.
//
// The CLI builds a figure bean, writes user values from flags, applies
// stylesheet documents and an inline style to it, and prints the resolved
// cascade. It is a thin layer over the styleable, stylesheet and openapi
// packages.
//
// # Commands
//
//   - resolve: print the styled value and winning origin of every key
//   - trace: print how each origin contributes to one key
//   - keys: list the figure keys with their types and defaults
//   - schema: print an OpenAPI document for the figure keys
//
// All commands support --verbose (-v) for debug-level logging.
package cli

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	styleable "github.com/goliatone/go-styleable"
)

const appName = "styleable"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a CLI whose logger writes to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: styleable.NewLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Resolve styleable property cascades",
		Long:         `styleable applies stylesheets, inline styles and user values to a figure and shows which origin wins for every property.`,
		SilenceUsage: true,
	}

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.traceCommand())
	root.AddCommand(c.keysCommand())
	root.AddCommand(c.schemaCommand())

	return root
}
