// Package cli — used.go implements "devport used", which prints the
// used-port snapshot the scanner works from.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devport/internal/docker"
	"github.com/shinji-kodama/devport/internal/model"
)

// usedFlags holds the flag values for the used command.
type usedFlags struct {
	start int
	end   int
}

// usedResult is the JSON shape of the used command.
type usedResult struct {
	Range     model.PortRange       `json:"range"`
	Ports     []int                 `json:"ports"`
	Published []model.PublishedPort `json:"published,omitempty"`
}

// NewUsedCommand creates the "used" cobra command.
func NewUsedCommand() *cobra.Command {
	flags := &usedFlags{}

	cmd := &cobra.Command{
		Use:   "used",
		Short: "List ports currently bound on this host",
		Long: `List the local ports of TCP listeners, TCP connections and UDP sockets,
as seen in the host connection table right now. With --docker, ports
published by running containers are listed too.

Examples:
  devport used
  devport used --start 3000 --end 9000
  devport used --docker --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUsed(cmd.Context(), cmd, flags)
		},
	}

	cmd.Flags().IntVar(&flags.start, "start", model.FirstPort, "Lowest port to list")
	cmd.Flags().IntVar(&flags.end, "end", model.LastPort, "Highest port to list")

	return cmd
}

func runUsed(ctx context.Context, cmd *cobra.Command, flags *usedFlags) error {
	r, err := model.NewPortRange(flags.start, flags.end)
	if err != nil {
		return inputError(err)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	res := usedResult{Range: r, Ports: newScanner("").UsedPorts().Within(r)}

	if cfg.Docker || withDocker {
		published, err := listPublished(ctx)
		if err != nil {
			// The snapshot above already skipped Docker; say why.
			log.Warn().Err(err).Msg("could not read Docker published ports")
		}
		for _, p := range published {
			if r.Contains(p.HostPort) {
				res.Published = append(res.Published, p)
			}
		}
	}

	return writeUsedResult(cmd.OutOrStdout(), res, IsJSONOutput())
}

// listPublished connects to Docker, checks the daemon answers, and lists
// published ports.
func listPublished(ctx context.Context) ([]model.PublishedPort, error) {
	cli, err := docker.NewClient()
	if err != nil {
		return nil, err
	}
	defer func() { _ = cli.Close() }()

	if err := cli.Ping(ctx); err != nil {
		return nil, err
	}
	return docker.ListPublishedPorts(ctx, cli)
}

// writeUsedResult prints res as JSON or as a compact port list.
func writeUsedResult(w io.Writer, res usedResult, asJSON bool) error {
	if res.Ports == nil {
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

	colorMuted.Fprintf(w, "%d used port(s) in %s\n", len(res.Ports), res.Range)
	fmt.Fprintln(w, FormatPortsList(res.Ports))

	if len(res.Published) > 0 {
		colorMuted.Fprintln(w, "published by Docker:")
		for _, p := range res.Published {
			fmt.Fprintf(w, "  %-12s %s\n", fmt.Sprintf("%d/%s", p.HostPort, p.Protocol), p.ContainerName)
		}
	}
	return nil
}
