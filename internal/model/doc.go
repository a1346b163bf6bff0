// Package model defines the domain types and value objects for the
// devport CLI.
//
// This package contains pure data structures with no external dependencies.
// PortRange, Direction and PortSet are transient, per-call values: nothing
// here is persisted or cached between scans.
//
// The package also defines the error taxonomy for range validation
// (OutOfRangeError, InvalidRangeError), exit codes (ExitCode) and a custom
// error type (CLIError) that carries exit codes for proper OS process exit
// handling.
package model
