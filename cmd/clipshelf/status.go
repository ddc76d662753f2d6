package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var errUnavailable = errors.New("cliphist is not available")

type statusReport struct {
	Cliphist  bool     `json:"cliphist_available"`
	Backend   string   `json:"backend"`
	Providers []string `json:"copy_providers,omitempty"`
}

func newStatusCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check that cliphist can be run",
		Long: `Reports whether cliphist can be launched, whether commands go through a
running daemon, and the clipboard provider order. Exits nonzero when cliphist
is unavailable.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runStatus(cmd, v) },
	}

	cmd.Flags().Bool("json", false, "output JSON")
	addClientFlags(cmd)

	return cmd
}

func runStatus(cmd *cobra.Command, v *viper.Viper) error {
	setupLogging(v, slog.LevelWarn)
	cmds, backend, err := commandsFor(v)
	if err != nil {
		return err
	}

	report := statusReport{
		Cliphist: cmds.IsCliphistAvailable(cmd.Context()),
		Backend:  backend,
	}
	// A daemon copies with its own provider order, which this process
	// cannot see.
	if backend == backendLocal {
		report.Providers = splitList(v.GetStringSlice("copy-providers"))
	}

	if err := writeStatus(cmd.OutOrStdout(), report, v.GetBool("json")); err != nil {
		return err
	}
	if !report.Cliphist {
		return errUnavailable
	}
	return nil
}

func writeStatus(out io.Writer, report statusReport, jsonOut bool) error {
	if jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	avail := "available"
	if !report.Cliphist {
		avail = "unavailable"
	}
	w := tabwriter.NewWriter(out, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Cliphist:\t%s\n", avail)
	_, _ = fmt.Fprintf(w, "Backend:\t%s\n", report.Backend)
	if len(report.Providers) > 0 {
		_, _ = fmt.Fprintf(w, "Providers:\t%s\n", strings.Join(report.Providers, ", "))
	}
	return w.Flush()
}
