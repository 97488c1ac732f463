package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/agentic-research/strata/internal/bids"
	"github.com/agentic-research/strata/internal/convention"
	"github.com/agentic-research/strata/internal/load"
)

var (
	schemePath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "strata",
	Short: "Strata: convention-driven path codec",
	Long: `Strata maps named attributes to hierarchical paths and back, driven
by a declarative naming convention (BIDS by default). Schemes can be
supplied as JSON, YAML, or HCL files via --scheme.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&schemePath, "scheme", "s", "", "Path to a scheme file (default: built-in BIDS)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

// loadConvention resolves the --scheme flag into a compiled convention.
func loadConvention() (*convention.Convention, error) {
	if schemePath == "" {
		return bids.Convention()
	}
	return load.File(schemePath)
}

func newLogger() zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
