package browser

// Platform is the closed set of OS families the launcher knows about.
type Platform int

const (
	// Unsupported is any OS without a known opener.
	Unsupported Platform = iota

	// Windows opens URLs through the shell's URL protocol handler.
	Windows

	// Linux covers Linux and the BSDs, which share xdg-open.
	Linux

	// Mac opens URLs with open(1).
	Mac
)

// PlatformFor maps a GOOS value to its Platform.
func PlatformFor(goos string) Platform {
	switch goos {
	case "windows":
		return Windows
	case "linux", "freebsd", "openbsd", "netbsd", "dragonfly":
		return Linux
	case "darwin":
		return Mac
	default:
		return Unsupported
	}
}

// String returns a short lowercase name.
func (p Platform) String() string {
	switch p {
	case Windows:
		return "windows"
	case Linux:
		return "linux"
	case Mac:
		return "mac"
	default:
		return "unsupported"
	}
}

// command returns the opener invocation for url. ok is false for
// Unsupported.
func (p Platform) command(url string) (name string, args []string, ok bool) {
	switch p {
	case Windows:
		return "rundll32", []string{"url.dll,FileProtocolHandler", url}, true
	case Linux:
		return "xdg-open", []string{url}, true
	case Mac:
		return "open", []string{url}, true
	default:
		return "", nil, false
	}
}
