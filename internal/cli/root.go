// Package cli implements the cobra-based CLI commands for devport.
//
// Each subcommand (next, last, find, check, used, ephemeral, open) is
// defined in its own file within this package. This file defines the root
// command, the global flags, and the shared setup that every subcommand
// relies on: configuration loading, logger construction and the scanner
// factory.
package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devport/internal/config"
	"github.com/shinji-kodama/devport/internal/docker"
	"github.com/shinji-kodama/devport/internal/logger"
	"github.com/shinji-kodama/devport/internal/model"
	"github.com/shinji-kodama/devport/internal/port"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	jsonOutput bool

	// verbose lowers the log level to debug.
	verbose bool

	// configPath is an explicit config file; empty means ~/.devport.yaml.
	configPath string

	// withDocker adds Docker published ports to the used-port snapshot,
	// in addition to the config file's docker setting.
	withDocker bool
)

// Loaded once per invocation by the root command's PersistentPreRunE.
var (
	cfg = config.Default()
	log = zerolog.Nop()
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// newScanner builds the scanner for the current invocation. network is
// "tcp" or "udp" and applies to both the snapshot and the probe; empty
// snapshots every protocol and probes TCP. Tests replace it to inject fake
// probers and snapshots.
var newScanner = func(network string) *port.Scanner {
	sources := []port.Snapshotter{port.SystemSnapshot{Network: network}}
	if cfg.Docker || withDocker {
		sources = append(sources, docker.PublishedPorts{Protocol: network})
	}

	return port.NewScanner(
		port.WithProber(port.BindProber{Host: cfg.ProbeHost, Network: network}),
		port.WithSnapshotter(port.MultiSnapshot{Sources: sources, Log: log}),
		port.WithLogger(log),
	)
}

// NewRootCommand creates and configures the root cobra command.
//
// The root command itself does not perform any action; it only provides
// help text and global flags. Actual functionality is provided by
// subcommands.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "devport",
		Short: "Find free local ports and open URLs for local development",
		Long: `devport finds an available TCP port on this machine within a port range,
and opens URLs in the default browser.

A port is reported only after it was successfully bound on loopback and
released again. Another process may still take it before you do.`,

		// SilenceUsage prevents cobra from printing usage on every error.
		SilenceUsage: true,

		// SilenceErrors: errors are formatted by Execute (text or JSON).
		SilenceErrors: true,

		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setup()
		},
	}

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ~/.devport.yaml)")
	rootCmd.PersistentFlags().BoolVar(&withDocker, "docker", false, "Treat ports published by running Docker containers as used")

	rootCmd.AddCommand(NewNextCommand())
	rootCmd.AddCommand(NewLastCommand())
	rootCmd.AddCommand(NewFindCommand())
	rootCmd.AddCommand(NewCheckCommand())
	rootCmd.AddCommand(NewUsedCommand())
	rootCmd.AddCommand(NewEphemeralCommand())
	rootCmd.AddCommand(NewOpenCommand())

	return rootCmd
}

// setup loads the config file and builds the logger.
func setup() error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidInput, "failed to load configuration", err)
	}
	cfg = loaded

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return model.WrapCLIError(model.ExitInvalidInput, "invalid log level", err)
	}
	if verbose {
		level = zerolog.DebugLevel
	}

	log = logger.New(logger.Config{Level: level, Pretty: !jsonOutput})
	log.Debug().Str("config", configPath).Bool("docker", cfg.Docker || withDocker).Msg("configuration loaded")
	return nil
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// CLIError types carry their own exit codes; other errors default to
// exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message on stderr in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	if jsonOutput {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		data, _ := json.MarshalIndent(errObj, "", "  ")
		fmt.Fprintln(os.Stderr, string(data))
		return
	}

	prefix := color.New(color.FgRed, color.Bold).Sprint("Error:")
	if underlying != nil {
		fmt.Fprintf(os.Stderr, "%s %s: %v\n", prefix, message, underlying)
	} else {
		fmt.Fprintf(os.Stderr, "%s %s\n", prefix, message)
	}
}

// IsJSONOutput returns whether the --json flag is set.
// Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput
}
