// Package browser opens URLs in the operating system's default web browser.
//
// Each supported OS family maps to its own opener:
//
//   - Windows: rundll32 url.dll,FileProtocolHandler (shell-execute style)
//   - Linux and the BSDs: xdg-open
//   - macOS: open
//
// Any other OS is reported as ErrUnsupportedPlatform rather than guessed at.
package browser
