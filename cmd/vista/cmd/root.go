// Package cmd implements the vista CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-vista/vista/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "vista",
	Short: "Vista - disposal-safe view components for Go",
	Long: `Vista is a view component toolkit built around one guarantee:
every binding a view takes out is released when the view is disposed.
Views form an ownership tree, carry their own lifecycle, and bind to
models, collections, a pub/sub mediator, and an in-memory document.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(c *cobra.Command, args []string) {
		errors.SetHandler(&errors.LogHandler{Verbose: verbose})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the vista version",
	Run: func(c *cobra.Command, args []string) {
		fmt.Printf("vista %s (built %s)\n", Version, BuildTime)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose error reporting")
	rootCmd.AddCommand(versionCmd)
}

// Execute runs the CLI.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "vista:", err)
		return err
	}
	return nil
}
