package browser

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"
	"strings"
)

// Launcher opens URLs in the default browser.
//
// The zero value is ready to use: it targets runtime.GOOS and logs nothing.
type Launcher struct {
	// GOOS overrides the detected operating system. Empty means runtime.GOOS.
	GOOS string

	// Log receives human-readable status and error lines. Nil is a no-op.
	Log func(msg string)

	// run executes the opener. Nil means runCommand.
	run func(name string, args ...string) error
}

// New returns a Launcher for the current OS that reports through log.
func New(log func(msg string)) *Launcher {
	return &Launcher{Log: log}
}

// Open opens target, prepending "http://" when it has no http(s) scheme.
func Open(target string) error {
	return (&Launcher{}).Open(target)
}

// Open normalizes target and opens it. Errors are *UnsupportedPlatformError
// or *LaunchError; both are logged before being returned.
func (l *Launcher) Open(target string) error {
	return l.open(Normalize(target))
}

// OpenURL opens an already parsed URL as is.
func (l *Launcher) OpenURL(u *url.URL) error {
	return l.open(u.String())
}

func (l *Launcher) open(target string) error {
	goos := l.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	name, args, ok := PlatformFor(goos).command(target)
	if !ok {
		err := &UnsupportedPlatformError{GOOS: goos}
		l.logf("Cannot open %s: %v", target, err)
		return err
	}

	run := l.run
	if run == nil {
		run = runCommand
	}

	l.logf("Opening %s in the default browser", target)
	if err := run(name, args...); err != nil {
		launchErr := &LaunchError{Command: name, URL: target, Err: err}
		l.logf("Error: %v", launchErr)
		return launchErr
	}
	return nil
}

func (l *Launcher) logf(format string, args ...any) {
	if l.Log != nil {
		l.Log(fmt.Sprintf(format, args...))
	}
}

// Normalize prepends "http://" unless target already starts with
// "http://" or "https://" (case-insensitive).
func Normalize(target string) string {
	target = strings.TrimSpace(target)
	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return target
	}
	return "http://" + target
}

// runCommand runs the opener and folds its stderr into the error.
func runCommand(name string, args ...string) error {
	// #nosec G204 -- name is one of the fixed openers chosen by Platform
	cmd := exec.Command(name, args...)

	var stderr strings.Builder
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("%w: %s", err, msg)
		}
		return err
	}
	return nil
}
