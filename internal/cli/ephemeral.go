// Package cli — ephemeral.go implements "devport ephemeral", which lets the
// kernel pick any free port instead of scanning a range.
package cli

import (
	"encoding/json"
	"fmt"

	"github.com/phayes/freeport"
	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devport/internal/model"
)

// getFreePort is replaced in tests.
var getFreePort = freeport.GetFreePort

// NewEphemeralCommand creates the "ephemeral" cobra command.
func NewEphemeralCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ephemeral",
		Short: "Print a kernel-assigned free port",
		Long: `Bind port 0 and print the port the kernel assigned. The result usually
lies in the OS ephemeral range rather than the service range, and no
range or snapshot is involved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := getFreePort()
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "kernel did not assign a port", err)
			}
			log.Debug().Int("port", p).Msg("kernel assigned port")

			w := cmd.OutOrStdout()
			if IsJSONOutput() {
				data, _ := json.MarshalIndent(map[string]int{"port": p}, "", "  ")
				fmt.Fprintln(w, string(data))
				return nil
			}
			colorPort.Fprintln(w, p)
			return nil
		},
	}
}
