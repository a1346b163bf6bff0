// Package cli — open.go implements "devport open", which launches the
// default browser.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devport/internal/browser"
	"github.com/shinji-kodama/devport/internal/model"
)

// opener is the part of browser.Launcher the command needs.
type opener interface {
	Open(target string) error
}

// newOpener is replaced in tests so no real browser is spawned.
var newOpener = func(logf func(string)) opener {
	return browser.New(logf)
}

// NewOpenCommand creates the "open" cobra command.
func NewOpenCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "open URL",
		Short: "Open a URL in the default browser",
		Long: `Open URL in the operating system's default browser. A bare host such as
localhost:3000 is opened as http://localhost:3000.

Examples:
  devport open localhost:3000
  devport open https://example.com`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// Status lines go to stderr so stdout stays clean for --json.
			o := newOpener(func(msg string) {
				if verbose {
					colorMuted.Fprintln(os.Stderr, msg)
				}
				log.Debug().Msg(msg)
			})

			if err := o.Open(args[0]); err != nil {
				return openError(err)
			}
			if IsJSONOutput() {
				data, _ := json.MarshalIndent(map[string]string{"opened": browser.Normalize(args[0])}, "", "  ")
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
			}
			return nil
		},
	}
}

// openError maps launcher failures to exit codes.
func openError(err error) error {
	if errors.Is(err, browser.ErrUnsupportedPlatform) {
		return model.WrapCLIError(model.ExitUnsupportedPlatform, "cannot open a browser here", err)
	}
	var launchErr *browser.LaunchError
	if errors.As(err, &launchErr) {
		return model.WrapCLIError(model.ExitBrowserFailed, "failed to launch browser", err)
	}
	return err
}
