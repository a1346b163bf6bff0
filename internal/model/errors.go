package model

import (
	"errors"
	"fmt"
)

// Bound names which end of a PortRange failed validation.
type Bound string

const (
	// BoundStart refers to the lower bound of a range.
	BoundStart Bound = "start"

	// BoundEnd refers to the upper bound of a range.
	BoundEnd Bound = "end"
)

var (
	// ErrOutOfRange matches any *OutOfRangeError via errors.Is.
	ErrOutOfRange = errors.New("port out of range")

	// ErrInvalidRange matches any *InvalidRangeError via errors.Is.
	ErrInvalidRange = errors.New("invalid port range")

	// ErrInvalidDirection is returned for a Direction other than Ascending
	// or Descending.
	ErrInvalidDirection = errors.New("invalid direction")
)

// OutOfRangeError reports a range bound outside 1-65535.
type OutOfRangeError struct {
	Bound Bound
	Value int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("%s port %d out of range (%d-%d)", e.Bound, e.Value, FirstPort, LastPort)
}

// Is lets errors.Is(err, ErrOutOfRange) match.
func (e *OutOfRangeError) Is(target error) bool {
	return target == ErrOutOfRange
}

// InvalidRangeError reports a range whose start is greater than its end.
type InvalidRangeError struct {
	Start int
	End   int
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid port range %d-%d: start must not be greater than end", e.Start, e.End)
}

// Is lets errors.Is(err, ErrInvalidRange) match.
func (e *InvalidRangeError) Is(target error) bool {
	return target == ErrInvalidRange
}

// ExitCode defines standard CLI exit codes. These codes allow scripts and CI
// systems to programmatically determine the outcome of a command.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitInvalidInput indicates a bad port, range or flag value.
	ExitInvalidInput ExitCode = 2

	// ExitPortNotFound indicates a scan exhausted its range without finding
	// an available port.
	ExitPortNotFound ExitCode = 3

	// ExitDockerNotRunning indicates the Docker daemon is not accessible.
	ExitDockerNotRunning ExitCode = 4

	// ExitBrowserFailed indicates the browser process could not be spawned.
	ExitBrowserFailed ExitCode = 5

	// ExitUnsupportedPlatform indicates the host OS has no known browser
	// launcher.
	ExitUnsupportedPlatform ExitCode = 6
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
