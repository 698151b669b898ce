// Calcpad is a four-function calculator for the terminal.
//
// Running without arguments opens the full-screen calculator. Subcommands
// evaluate key presses offline, serve the calculator as a remote keypad over
// websocket, and press keys on a keypad found on the local network.
//
// Usage:
//
//	calcpad [command] [flags]
//
// See 'calcpad --help' for available commands.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calcpad/calcpad/internal/calculator"
	"github.com/calcpad/calcpad/internal/config"
	"github.com/calcpad/calcpad/internal/logging"
	"github.com/calcpad/calcpad/internal/ui"
	"github.com/calcpad/calcpad/internal/version"
)

func main() {
	err := rootCmd.ExecuteContext(context.Background())
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Global flags
var (
	configPath   string
	logLevel     string
	repeatEquals string
	plainOutput  bool
)

var rootCmd = &cobra.Command{
	Use:   "calcpad",
	Short: "Four-function terminal calculator",
	Long: `A four-function calculator for the terminal.

The calculator evaluates immediately, like a pocket calculator: "2 + 3 × 4 ="
shows 20. It can also be served to other machines as a remote keypad over
websocket and discovered on the local network via mDNS.

If no command is specified, the full-screen calculator launches automatically.`,
	Version:           version.Full(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initLogging,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run the TUI when no subcommand is provided
		return runTUI(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default is the OS config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); overrides "+logging.LogLevelEnvVar)
	rootCmd.PersistentFlags().StringVar(&repeatEquals, "repeat-equals", "", "Repeated '=' behaviour (noop, repeat); overrides the config file")
	rootCmd.PersistentFlags().BoolVar(&plainOutput, "plain", false, "Print bare values without boxes or colors")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "calcpad %s\n", version.Full())
	},
}

// initLogging sets up logging from --log-level, falling back to the environment
func initLogging(cmd *cobra.Command, args []string) error {
	if err := logging.Initialize(logLevel); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	return nil
}

// loadConfig loads the config file and applies flag overrides
func loadConfig() (*config.Config, string, error) {
	path, err := config.ResolvePath(configPath)
	if err != nil {
		return nil, "", fmt.Errorf("failed to resolve config path: %w", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, path, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	if repeatEquals != "" {
		if _, err := calculator.ParseRepeatPolicy(repeatEquals); err != nil {
			return nil, path, fmt.Errorf("invalid --repeat-equals: %w", err)
		}
		cfg.Preferences.RepeatEquals = repeatEquals
	}

	return cfg, path, nil
}

// newPrinter returns a printer for the command output honoring --plain
func newPrinter(cmd *cobra.Command) *ui.Printer {
	return ui.NewPrinter(cmd.OutOrStdout()).SetPlain(plainOutput)
}

// commandContext returns the command context, or Background when the command
// was executed without one
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
