// Package cli — find.go implements "devport find", the general range scan.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devport/internal/model"
)

// findFlags holds the flag values for the find command.
type findFlags struct {
	direction string // --direction: asc or desc; empty means the config value
}

// NewFindCommand creates the "find" cobra command.
func NewFindCommand() *cobra.Command {
	flags := &findFlags{}

	cmd := &cobra.Command{
		Use:   "find [START END]",
		Short: "Find the first available port in a range",
		Long: `Scan the closed range START..END in the given direction and print the first
port that could be bound on loopback. Without arguments the range and
direction come from the config file (default 1024..49151, ascending).

START must not be greater than END, whichever direction is scanned.
Exits with code 3 when every port in the range is taken.

Examples:
  devport find 30000 30010
  devport find 8000 8999 --direction desc
  devport find --json`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 0 && len(args) != 2 {
				return model.NewCLIError(model.ExitInvalidInput, "find takes either no arguments or START and END")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFind(cmd, args, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.direction, "direction", "d", "", "Scan direction: asc or desc (default from config)")

	return cmd
}

func runFind(cmd *cobra.Command, args []string, flags *findFlags) error {
	start, end := cfg.Start, cfg.End
	if len(args) == 2 {
		var err error
		if start, err = parsePortArg("START", args[0]); err != nil {
			return err
		}
		if end, err = parsePortArg("END", args[1]); err != nil {
			return err
		}
	}

	dir := cfg.ScanDirection()
	if flags.direction != "" {
		d, err := model.ParseDirection(flags.direction)
		if err != nil {
			return model.WrapCLIError(model.ExitInvalidInput, "invalid --direction", err)
		}
		dir = d
	}

	p, ok, err := newScanner("").FindFirstAvailable(start, end, dir)
	if err != nil {
		return inputError(err)
	}

	// NewPortRange cannot fail here: FindFirstAvailable already validated.
	r, _ := model.NewPortRange(start, end)
	res := scanResult{Range: r, Direction: dir, Found: ok}
	if ok {
		res.Ports = []int{p}
	}
	if err := writeScanResult(cmd.OutOrStdout(), res, IsJSONOutput()); err != nil {
		return err
	}
	if !ok {
		return notFoundError(r)
	}
	return nil
}
