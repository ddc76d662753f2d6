package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/viper"

	"go.klb.dev/clipshelf/internal/app"
	"go.klb.dev/clipshelf/internal/clip"
	"go.klb.dev/clipshelf/internal/cliphist"
	"go.klb.dev/clipshelf/internal/history"
	"go.klb.dev/clipshelf/internal/ipc"
	"go.klb.dev/clipshelf/internal/runner"
	"go.klb.dev/clipshelf/internal/server"
)

// envKeyReplacer maps flag names like copy-providers to CLIPSHELF_COPY_PROVIDERS.
var envKeyReplacer = strings.NewReplacer("-", "_")

// defaultSource identifies this CLI process in the daemon's log.
func defaultSource() string {
	h, err := os.Hostname()
	if err != nil {
		h = "unknown"
	}
	return fmt.Sprintf("cli@%s/%d", h, os.Getpid())
}

// newService builds the in-process command implementation from config.
func newService(v *viper.Viper) (*app.Service, clip.Chain, error) {
	target, err := app.ParseSearchTarget(v.GetString("search-target"))
	if err != nil {
		return nil, nil, err
	}

	r := runner.New()
	chain, err := clip.Lookup(splitList(v.GetStringSlice("copy-providers")), r)
	if err != nil {
		return nil, nil, err
	}

	hist := cliphist.New(v.GetString("cliphist"), r)
	return app.New(hist, chain, target), chain, nil
}

// splitList accepts both repeated values and comma-separated ones, since an
// env var like CLIPSHELF_COPY_PROVIDERS=xclip,wl-copy arrives as one string.
func splitList(vals []string) []string {
	var out []string
	for _, v := range vals {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// backendLocal names the in-process backend in status output.
const backendLocal = "local"

// commandsFor returns the daemon client when a daemon is listening, and an
// in-process service otherwise. The second value names the choice.
func commandsFor(v *viper.Viper) (app.Commands, string, error) {
	socket := v.GetString("socket")
	if !v.GetBool("local") && ipc.IsRunning(socket) {
		slog.Debug("using daemon", "socket", socket)
		return server.NewClient(socket, defaultSource()), fmt.Sprintf("daemon (%s)", socket), nil
	}
	svc, _, err := newService(v)
	if err != nil {
		return nil, "", err
	}
	return svc, backendLocal, nil
}

func printEntries(w io.Writer, entries []history.Entry, jsonOut bool) error {
	if jsonOut {
		if entries == nil {
			entries = []history.Entry{}
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	tw := tabwriter.NewWriter(w, 1, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(tw, "ID\tCONTENT\n")
	for _, e := range entries {
		_, _ = fmt.Fprintf(tw, "%s\t%s\n", e.ID, singleLine(e.Content))
	}
	return tw.Flush()
}

// singleLine keeps one entry per output row.
func singleLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ", "\t", " ").Replace(s)
}
