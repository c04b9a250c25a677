// Package cli implements the cobra commands of the vecbench binary.
//
// Each subcommand lives in its own file. This file defines the root command,
// the global flags and the logger shared by the subcommands.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Global flags, bound to persistent flags on the root command.
var (
	// jsonOutput switches command output from text tables to JSON.
	jsonOutput bool

	// verbose enables debug logging on stderr.
	verbose bool
)

// Build information, injected from main.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// NewRootCommand creates the root command with every subcommand registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "vecbench",
		Short: "Replay vector workloads under different storage strategies",
		Long: `vecbench drives a growable vector through a workload described in YAML
and reports timings, capacity changes and allocator statistics.

The same workload can be replayed with another growth policy or allocator
by overriding the config from the command line.`,

		SilenceUsage:  true,
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewPoliciesCommand())

	return rootCmd
}

// Execute runs the root command and exits non-zero on error.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}

// printError writes err as text or, with --json, as a JSON object.
func printError(w io.Writer, err error) {
	if jsonOutput {
		data, _ := json.MarshalIndent(map[string]any{
			"error": map[string]any{"message": err.Error()},
		}, "", "  ")
		fmt.Fprintln(w, string(data))
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// newLogger builds the command logger. Verbose mode uses zap's development
// config at debug level; otherwise a production logger that only reports
// warnings and errors.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
