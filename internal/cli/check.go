// Package cli — check.go implements "devport check", a single-port report.
package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devport/internal/model"
)

// checkFlags holds the flag values for the check command.
type checkFlags struct {
	udp bool // --udp: probe UDP instead of TCP
}

// checkResult is the JSON shape of a check.
type checkResult struct {
	Port       int    `json:"port"`
	Network    string `json:"network"`
	Valid      bool   `json:"valid"`
	InSnapshot bool   `json:"inSnapshot"` // in the snapshot for Network only
	Available  bool   `json:"available"`
}

// NewCheckCommand creates the "check" cobra command.
func NewCheckCommand() *cobra.Command {
	flags := &checkFlags{}

	cmd := &cobra.Command{
		Use:   "check PORT",
		Short: "Report whether a single port is free",
		Long: `Report whether PORT is a valid port number, whether it appears in the
used-port snapshot for the probed protocol (TCP, or UDP with --udp), and
whether a loopback bind probe succeeds.

Exits with code 3 when the port is not available, so it can gate scripts:
  devport check 3000 && npm run dev`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd, args[0], flags)
		},
	}

	cmd.Flags().BoolVar(&flags.udp, "udp", false, "Probe UDP instead of TCP")

	return cmd
}

func runCheck(cmd *cobra.Command, arg string, flags *checkFlags) error {
	p, err := parsePortArg("PORT", arg)
	if err != nil {
		return err
	}

	res := checkResult{Port: p, Network: "tcp", Valid: model.IsValidPort(p)}
	if flags.udp {
		res.Network = "udp"
	}
	if !res.Valid {
		if err := writeCheckResult(cmd.OutOrStdout(), res, IsJSONOutput()); err != nil {
			return err
		}
		return model.NewCLIError(model.ExitInvalidInput,
			fmt.Sprintf("port %d out of range (%d-%d)", p, model.FirstPort, model.LastPort))
	}

	// Only sockets of the probed protocol count: a TCP listener does not
	// make the UDP port busy.
	scanner := newScanner(res.Network)
	res.InSnapshot = scanner.UsedPorts().Has(p)
	res.Available = scanner.IsAvailable(p)

	if err := writeCheckResult(cmd.OutOrStdout(), res, IsJSONOutput()); err != nil {
		return err
	}
	if !res.Available {
		return model.NewCLIError(model.ExitPortNotFound, fmt.Sprintf("port %d/%s is not available", p, res.Network))
	}
	return nil
}

// writeCheckResult prints res as JSON or as a short human summary.
func writeCheckResult(w io.Writer, res checkResult, asJSON bool) error {
	if asJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	label := fmt.Sprintf("%d/%s", res.Port, res.Network)
	switch {
	case !res.Valid:
		colorWarn.Fprintf(w, "%s invalid port number\n", label)
	case res.Available:
		colorPort.Fprintf(w, "%s available\n", label)
	default:
		colorWarn.Fprintf(w, "%s in use\n", label)
	}
	if res.Valid && res.InSnapshot {
		colorMuted.Fprintf(w, "  listed in the host %s connection table\n", res.Network)
	}
	return nil
}
