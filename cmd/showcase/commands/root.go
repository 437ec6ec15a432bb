// Package commands implements the showcase command line interface.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

// Version is set at build time
var Version = "dev"

// CLI represents the command line interface for showcase.
type CLI struct {
	rootCmd    *cobra.Command
	out        io.Writer
	configPath string
	output     string
}

// New creates a new CLI writing command output to out.
func New(out io.Writer) *CLI {
	c := &CLI{out: out}

	rootCmd := &cobra.Command{
		Use:           "showcase",
		Short:         "Catalog service for society projects and events",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       Version,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "",
		"Path to configuration file (SHOWCASE_* environment variables override it)")
	rootCmd.PersistentFlags().StringVarP(&c.output, "output", "o", "table", "Output format: table or json")

	rootCmd.AddCommand(c.newServeCmd())
	rootCmd.AddCommand(c.newProjectsCmd())
	rootCmd.AddCommand(c.newEventsCmd())
	rootCmd.AddCommand(c.newSyncCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	c.rootCmd = rootCmd
	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}
