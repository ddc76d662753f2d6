package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCopyCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Copy an entry (or stdin) to the system clipboard",
		Long: `With --id, restores that history entry to the system clipboard.
Without it, reads stdin and copies that.

Providers are tried in --copy-providers order (default wl-copy, xclip,
native). A provider that is not installed is skipped; the first one that
starts decides whether the copy succeeded.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runCopy(cmd, v) },
	}

	cmd.Flags().String("id", "", "history entry to restore")
	addClientFlags(cmd)

	return cmd
}

func runCopy(cmd *cobra.Command, v *viper.Viper) error {
	setupLogging(v, slog.LevelWarn)
	cmds, _, err := commandsFor(v)
	if err != nil {
		return err
	}

	var content string
	if id := v.GetString("id"); id != "" {
		content, err = cmds.GetEntryContent(cmd.Context(), id)
		if err != nil {
			return err
		}
	} else {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		if len(data) == 0 {
			return nil
		}
		content = string(data)
	}

	return cmds.CopyToClipboard(cmd.Context(), content)
}
