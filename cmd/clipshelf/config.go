package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipshelf/internal/clip"
	"go.klb.dev/clipshelf/internal/cliphist"
	"go.klb.dev/clipshelf/internal/ipc"
	"go.klb.dev/clipshelf/internal/logging"
)

// bindViper wires a command's flags into a viper instance with the standard
// config file search order and CLIPSHELF_* env var prefix.
//
// Precedence (lowest → highest): defaults → config file → CLIPSHELF_* env vars → flags
func bindViper(cmd *cobra.Command, v *viper.Viper) error {
	configFlag, _ := cmd.Flags().GetString("config")
	if configFlag != "" {
		v.SetConfigFile(configFlag)
	} else {
		v.SetConfigName("clipshelf")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc/clipshelf/")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "clipshelf"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("config: %w", err)
		}
	}

	v.SetEnvPrefix("CLIPSHELF")
	v.SetEnvKeyReplacer(envKeyReplacer)
	v.AutomaticEnv()

	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return fmt.Errorf("binding flags: %w", err)
	}
	return nil
}

// addLoggingFlags adds the standard logging flags to a command.
func addLoggingFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-background", false, "run interactively: tinter logs + debug level")
	cmd.Flags().String("log-format", "auto", "log format: auto|text|json")
	cmd.Flags().String("log-level", "", "log level: debug|info|warn|error")
}

// addConfigFlag adds the --config flag to a command.
func addConfigFlag(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "path to config file (overrides auto-discovery)")
}

// addServiceFlags adds the flags that shape how commands reach cliphist and
// the clipboard.
func addServiceFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.String("cliphist", cliphist.DefaultBin, "cliphist binary name or path")
	f.StringSlice("copy-providers", clip.DefaultOrder, "clipboard providers in preference order")
	f.String("search-target", "list", "text searched: list (cliphist list line, cut at cliphist's -preview-width) | preview (clipshelf preview, cut at 97 runes)")
	f.String("socket", ipc.SocketPath(), "daemon socket path")
}

// addClientFlags adds the flags of the one-shot sub-commands.
func addClientFlags(cmd *cobra.Command) {
	addServiceFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)
	cmd.Flags().Bool("local", false, "run commands in-process even if a daemon is running")
}

// setupLogging reads logging flags from viper and configures slog.
func setupLogging(v *viper.Viper, def slog.Level) {
	interactive := v.GetBool("no-background")
	resolveLogging(interactive, v.GetString("log-format"), v.GetString("log-level"), def)
}

// setupServiceLogging is setupLogging for the daemon, where a terminal on
// stderr means someone is watching.
func setupServiceLogging(v *viper.Viper) {
	interactive := v.GetBool("no-background") || logging.IsTTY(os.Stderr)
	resolveLogging(interactive, v.GetString("log-format"), v.GetString("log-level"), slog.LevelInfo)
}
