package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newDeleteCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "delete <id>...",
		Short: "Delete entries from clipboard history",
		Long: `Deletes each listed entry. Stops at the first failure; entries before it
stay deleted.`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(v, slog.LevelWarn)
			cmds, _, err := commandsFor(v)
			if err != nil {
				return err
			}
			for _, id := range args {
				if err := cmds.DeleteEntry(cmd.Context(), id); err != nil {
					return fmt.Errorf("delete %s: %w", id, err)
				}
			}
			return nil
		},
	}

	addClientFlags(cmd)

	return cmd
}
