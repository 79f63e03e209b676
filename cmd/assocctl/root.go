package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/joshuapare/userchoice/internal/logger"
	"github.com/joshuapare/userchoice/pkg/assoc"
)

var (
	// Global flags
	verbose bool
	quiet   bool
	jsonOut bool
	logDir  string
)

var rootCmd = &cobra.Command{
	Use:   "assocctl",
	Short: "Set and verify per-user default file and protocol handlers",
	Long: `assocctl writes the UserChoice records Windows 10 1703 and later use to
pick the default handler for a file extension or URI scheme, and checks
existing records the way the shell does.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogging(os.Stderr)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return logger.Close()
	},
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging to stderr")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "Also write JSON logs to this directory")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		printError("%v\n", err)
		os.Exit(1)
	}
}

func initLogging(console io.Writer) error {
	opts := logger.Options{Enabled: verbose || logDir != "", LogDir: logDir, Level: slog.LevelInfo}
	if verbose {
		opts.Console = console
		opts.Level = slog.LevelDebug
	}
	return logger.Init(opts)
}

// newOptions builds library options for a command. Tests replace it with an
// in-memory registry.
var newOptions = func() *assoc.Options {
	return &assoc.Options{Logger: logger.L}
}

// Helper functions for output

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printError prints an error message
func printError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format, args...)
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// resolveSID returns sid, or the current user's SID when sid is empty.
func resolveSID(sid string) (string, error) {
	if sid != "" {
		return sid, nil
	}
	cur, err := assoc.CurrentUserSID()
	if err != nil {
		return "", fmt.Errorf("cannot determine current user (use --sid): %w", err)
	}
	return cur, nil
}
