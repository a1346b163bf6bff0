package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/shinji-kodama/devport/internal/model"
)

var (
	colorPort  = color.New(color.FgGreen, color.Bold)
	colorMuted = color.New(color.FgHiBlack)
	colorWarn  = color.New(color.FgYellow)
)

// scanResult is what every scanning command reports.
type scanResult struct {
	Range     model.PortRange `json:"range"`
	Direction model.Direction `json:"direction"`
	Found     bool            `json:"found"`
	Ports     []int           `json:"ports"`
}

// writeScanResult prints res as JSON or as one port per line. In text mode
// a verbose run also prints the range that was scanned.
func writeScanResult(w io.Writer, res scanResult, asJSON bool) error {
	if res.Ports == nil {
		// Keep JSON output as [] rather than null.
		res.Ports = []int{}
	}

	if asJSON {
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	if verbose {
		colorMuted.Fprintf(w, "scanned %s (%s)\n", res.Range, res.Direction)
	}
	for _, p := range res.Ports {
		colorPort.Fprintln(w, p)
	}
	return nil
}

// notFoundError is the CLI outcome for an exhausted scan. Scripts can test
// the exit code instead of parsing output.
func notFoundError(r model.PortRange) error {
	return model.NewCLIError(model.ExitPortNotFound,
		fmt.Sprintf("no available port in range %s", r))
}

// inputError maps range and direction validation failures to
// ExitInvalidInput and passes anything else through.
func inputError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, model.ErrOutOfRange) || errors.Is(err, model.ErrInvalidRange) {
		return model.WrapCLIError(model.ExitInvalidInput, "invalid port range", err)
	}
	if errors.Is(err, model.ErrInvalidDirection) {
		return model.WrapCLIError(model.ExitInvalidInput, "invalid direction", err)
	}
	return err
}

// parsePortArg converts a positional argument to an int. Range checks are
// left to model.NewPortRange so the error names the bound.
func parsePortArg(name, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, model.WrapCLIError(model.ExitInvalidInput,
			fmt.Sprintf("%s must be a number, got %q", name, s), err)
	}
	return v, nil
}

// FormatPortsList renders sorted ports as a comma-separated list, or "-" when
// there are none. Consecutive ports are collapsed into "a-b" runs so a
// busy host's snapshot stays readable.
//
// Example:
//
//	[22, 80, 8080, 8081, 8082] → "22,80,8080-8082"
//	[]                         → "-"
func FormatPortsList(ports []int) string {
	if len(ports) == 0 {
		return "-"
	}

	var parts []string
	runStart := ports[0]
	prev := ports[0]

	flush := func() {
		if runStart == prev {
			parts = append(parts, strconv.Itoa(runStart))
		} else {
			parts = append(parts, fmt.Sprintf("%d-%d", runStart, prev))
		}
	}

	for _, p := range ports[1:] {
		if p == prev+1 {
			prev = p
			continue
		}
		flush()
		runStart, prev = p, p
	}
	flush()

	return strings.Join(parts, ",")
}
