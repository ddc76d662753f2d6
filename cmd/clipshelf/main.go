// clipshelf: browse, search and restore cliphist clipboard history.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"go.klb.dev/clipshelf/internal/logging"
)

// Version is set at build time via -ldflags "-X main.Version=x.y.z".
var Version = "dev"

func main() {
	root := &cobra.Command{
		Use:   "clipshelf",
		Short: "Browse and restore cliphist clipboard history",
		Long: `clipshelf lists, searches, shows, deletes and restores entries from the
cliphist clipboard history. Restored entries are written back to the system
clipboard with wl-copy (Wayland), xclip (X11) or the native clipboard,
whichever is found first.

Run "clipshelf serve" to start a local daemon that GUI front-ends can talk to
over a Unix socket (line-delimited JSON, HTTP/JSON under /v1/, or gRPC health).
The other sub-commands use the daemon when it is running and otherwise call
cliphist directly.

Config file search order (first found wins):
  /etc/clipshelf/clipshelf.toml
  $HOME/.config/clipshelf/clipshelf.toml
  path supplied via --config

All flags can be set via CLIPSHELF_<FLAG> env vars or config-file keys.`,
		SilenceUsage: true,
	}

	root.AddCommand(
		newServeCmd(),
		newListCmd(),
		newSearchCmd(),
		newShowCmd(),
		newDeleteCmd(),
		newCopyCmd(),
		newStatusCmd(),
		newVersionCmd(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "clipshelf %s\n", Version)
		},
	}
}

// resolveLogging sets up the global slog logger after flags are parsed.
// An explicit level always wins; otherwise interactive runs get debug and
// everything else gets def.
func resolveLogging(interactive bool, formatStr, levelStr string, def slog.Level) {
	if interactive && levelStr == "" {
		def = slog.LevelDebug
	}
	logging.Setup(logging.ParseFormat(formatStr), logging.ParseLevel(levelStr, def))
}
