// Package cli — next.go implements "devport next" and "devport last", the
// service-range shortcuts.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devport/internal/model"
)

// nextFlags holds the flag values for the next command.
type nextFlags struct {
	from  int // --from: first candidate
	count int // --count: number of distinct ports wanted
}

// NewNextCommand creates the "next" cobra command.
func NewNextCommand() *cobra.Command {
	flags := &nextFlags{}

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Print the first available port scanning upward",
		Long: `Scan upward from --from (default 1024) to 49151 and print the first
port that could be bound on loopback.

Examples:
  devport next
  devport next --from 3000
  devport next --from 8000 --count 3`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runNext(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.from, "from", model.FirstServicePort, "First port to try")
	cmd.Flags().IntVarP(&flags.count, "count", "n", 1, "Number of distinct ports to find")

	return cmd
}

func runNext(cmd *cobra.Command, flags *nextFlags) error {
	if flags.count < 1 {
		return model.NewCLIError(model.ExitInvalidInput, "--count must be at least 1")
	}
	r, err := model.NewPortRange(flags.from, model.LastServicePort)
	if err != nil {
		return inputError(err)
	}
	scanner := newScanner("")

	var ports []int
	if flags.count == 1 {
		p, ok, err := scanner.FindNextFrom(r.Start)
		if err != nil {
			return inputError(err)
		}
		if ok {
			ports = []int{p}
		}
	} else {
		ports, err = scanner.FindSeveral(r.Start, r.End, model.Ascending, flags.count)
		if err != nil {
			return inputError(err)
		}
	}

	res := scanResult{Range: r, Direction: model.Ascending, Found: len(ports) > 0, Ports: ports}
	if err := writeScanResult(cmd.OutOrStdout(), res, IsJSONOutput()); err != nil {
		return err
	}
	if !res.Found {
		return notFoundError(r)
	}
	return nil
}

// lastFlags holds the flag values for the last command.
type lastFlags struct {
	downTo int // --down-to: last candidate
}

// NewLastCommand creates the "last" cobra command.
func NewLastCommand() *cobra.Command {
	flags := &lastFlags{}

	cmd := &cobra.Command{
		Use:   "last",
		Short: "Print the first available port scanning downward from 49151",
		Long: `Scan downward from 49151 to --down-to (default 1024) and print the first
port that could be bound on loopback.

Examples:
  devport last
  devport last --down-to 40000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLast(cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.downTo, "down-to", model.FirstServicePort, "Lowest port to try")

	return cmd
}

func runLast(cmd *cobra.Command, flags *lastFlags) error {
	r, err := model.NewPortRange(flags.downTo, model.LastServicePort)
	if err != nil {
		return inputError(err)
	}

	p, ok, err := newScanner("").FindLastDownTo(r.Start)
	if err != nil {
		return inputError(err)
	}

	res := scanResult{Range: r, Direction: model.Descending, Found: ok}
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
