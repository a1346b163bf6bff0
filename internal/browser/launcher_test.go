package browser

import (
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder captures opener invocations instead of spawning processes.
type recorder struct {
	name string
	args []string
	err  error
}

func (r *recorder) run(name string, args ...string) error {
	r.name = name
	r.args = args
	return r.err
}

// TestNormalize verifies scheme handling.
func TestNormalize(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"localhost:3000", "http://localhost:3000"},
		{"example.com/path?q=1", "http://example.com/path?q=1"},
		{"http://localhost:8080", "http://localhost:8080"},
		{"https://example.com", "https://example.com"},
		{"HTTPS://Example.com", "HTTPS://Example.com"},
		{"  localhost  ", "http://localhost"},
		{"ftp://files.example.com", "http://ftp://files.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

// TestPlatformFor verifies the GOOS mapping, including the unsupported
// fallthrough.
func TestPlatformFor(t *testing.T) {
	assert.Equal(t, Windows, PlatformFor("windows"))
	assert.Equal(t, Linux, PlatformFor("linux"))
	assert.Equal(t, Linux, PlatformFor("freebsd"))
	assert.Equal(t, Mac, PlatformFor("darwin"))
	assert.Equal(t, Unsupported, PlatformFor("plan9"))
	assert.Equal(t, Unsupported, PlatformFor(""))
	assert.Equal(t, "unsupported", PlatformFor("js").String())
}

// TestOpen_Dispatch verifies the opener chosen per platform.
func TestOpen_Dispatch(t *testing.T) {
	tests := []struct {
		goos     string
		wantName string
		wantArgs []string
	}{
		{"windows", "rundll32", []string{"url.dll,FileProtocolHandler", "http://localhost:3000"}},
		{"linux", "xdg-open", []string{"http://localhost:3000"}},
		{"darwin", "open", []string{"http://localhost:3000"}},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			rec := &recorder{}
			l := &Launcher{GOOS: tt.goos, run: rec.run}

			require.NoError(t, l.Open("localhost:3000"))
			assert.Equal(t, tt.wantName, rec.name)
			assert.Equal(t, tt.wantArgs, rec.args)
		})
	}
}

// TestOpen_Unsupported verifies the distinct unsupported-platform failure
// and that nothing is spawned.
func TestOpen_Unsupported(t *testing.T) {
	rec := &recorder{}
	var logs []string
	l := &Launcher{GOOS: "plan9", run: rec.run, Log: func(m string) { logs = append(logs, m) }}

	err := l.Open("localhost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnsupportedPlatform))

	var upErr *UnsupportedPlatformError
	require.True(t, errors.As(err, &upErr))
	assert.Equal(t, "plan9", upErr.GOOS)

	assert.Empty(t, rec.name, "no process may be spawned")
	require.Len(t, logs, 1)
	assert.Contains(t, logs[0], "unsupported platform")
}

// TestOpen_LaunchFailure verifies that a spawn failure is logged and then
// returned to the caller with the cause intact.
func TestOpen_LaunchFailure(t *testing.T) {
	cause := errors.New("executable file not found in $PATH")
	rec := &recorder{err: cause}
	var logs []string
	l := &Launcher{GOOS: "linux", run: rec.run, Log: func(m string) { logs = append(logs, m) }}

	err := l.Open("https://example.com")
	require.Error(t, err)
	assert.True(t, errors.Is(err, cause))

	var launchErr *LaunchError
	require.True(t, errors.As(err, &launchErr))
	assert.Equal(t, "xdg-open", launchErr.Command)
	assert.Equal(t, "https://example.com", launchErr.URL)

	require.Len(t, logs, 2, "status line then error line")
	assert.Contains(t, logs[0], "Opening https://example.com")
	assert.Contains(t, logs[1], "Error:")
	assert.Contains(t, logs[1], "executable file not found")
}

// TestOpen_NilLogIsNoop verifies that an absent log callback is safe on
// both the success and failure paths.
func TestOpen_NilLogIsNoop(t *testing.T) {
	ok := &Launcher{GOOS: "darwin", run: (&recorder{}).run}
	assert.NotPanics(t, func() { _ = ok.Open("localhost") })

	failing := &Launcher{GOOS: "darwin", run: (&recorder{err: errors.New("boom")}).run}
	assert.NotPanics(t, func() { _ = failing.Open("localhost") })

	unsupported := &Launcher{GOOS: "aix"}
	assert.NotPanics(t, func() { _ = unsupported.Open("localhost") })
}

// TestOpenURL verifies that parsed URLs are passed through unchanged.
func TestOpenURL(t *testing.T) {
	u, err := url.Parse("https://example.com:8443/docs?x=1")
	require.NoError(t, err)

	rec := &recorder{}
	l := &Launcher{GOOS: "linux", run: rec.run}
	require.NoError(t, l.OpenURL(u))
	assert.Equal(t, []string{"https://example.com:8443/docs?x=1"}, rec.args)
}

// TestNew verifies the constructor wires the log callback.
func TestNew(t *testing.T) {
	var got string
	l := New(func(m string) { got = m })
	l.GOOS = "linux"
	l.run = (&recorder{}).run

	require.NoError(t, l.Open("localhost"))
	assert.Equal(t, "Opening http://localhost in the default browser", got)
}
