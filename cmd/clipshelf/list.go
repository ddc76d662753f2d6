package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newListCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List clipboard history, newest first",
		Long: `Prints every cliphist entry as "ID  CONTENT". Content is a preview of at
most 100 characters; use "clipshelf show <id>" for the full text.`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, _ []string) error {
			setupLogging(v, slog.LevelWarn)
			cmds, _, err := commandsFor(v)
			if err != nil {
				return err
			}
			entries, err := cmds.GetHistory(cmd.Context())
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), entries, v.GetBool("json"))
		},
	}

	cmd.Flags().Bool("json", false, "output JSON")
	addClientFlags(cmd)

	return cmd
}

func newSearchCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search clipboard history",
		Long: `Prints the entries matching the query, newest first.

Matching is case-insensitive. An entry matches when the whole query appears in
it, or when every word of the query appears inside some word of the entry:
"log err" matches "logging error: timeout".`,
		Args:    cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogging(v, slog.LevelWarn)
			cmds, _, err := commandsFor(v)
			if err != nil {
				return err
			}
			entries, err := cmds.SearchHistory(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			return printEntries(cmd.OutOrStdout(), entries, v.GetBool("json"))
		},
	}

	cmd.Flags().Bool("json", false, "output JSON")
	addClientFlags(cmd)

	return cmd
}
