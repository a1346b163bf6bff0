package browser

import (
	"errors"
	"fmt"
)

// ErrUnsupportedPlatform matches any *UnsupportedPlatformError via errors.Is.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// UnsupportedPlatformError reports an OS with no known browser opener.
type UnsupportedPlatformError struct {
	GOOS string
}

func (e *UnsupportedPlatformError) Error() string {
	return fmt.Sprintf("cannot open a browser on unsupported platform %q", e.GOOS)
}

// Is lets errors.Is(err, ErrUnsupportedPlatform) match.
func (e *UnsupportedPlatformError) Is(target error) bool {
	return target == ErrUnsupportedPlatform
}

// LaunchError reports that the opener process could not be run.
type LaunchError struct {
	// Command is the opener executable, e.g. "xdg-open".
	Command string

	// URL is the address that was being opened.
	URL string

	// Err is the underlying exec error.
	Err error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to open %s with %s: %v", e.URL, e.Command, e.Err)
}

// Unwrap returns the underlying exec error.
func (e *LaunchError) Unwrap() error {
	return e.Err
}
