package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"go.klb.dev/clipshelf/internal/ipc"
	"go.klb.dev/clipshelf/internal/server"
)

func newServeCmd() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local daemon for GUI front-ends",
		Long: `Starts the clipshelf daemon on a Unix socket. The socket speaks three
protocols, detected per connection:

  line-delimited JSON   {"type":"GET_HISTORY"}\n → {"type":"RESULT","entries":[...]}
  HTTP/JSON             GET /v1/history, GET /v1/history/search?q=,
                        GET|DELETE /v1/entries/{id}, POST /v1/clipboard, GET /v1/status
  gRPC                  grpc.health.v1.Health (service "" or "cliphist")

Socket path: --socket, $CLIPSHELF_SOCKET, $XDG_RUNTIME_DIR/clipshelf.sock, or
$TMPDIR/clipshelf.sock.

Precedence (lowest → highest): defaults → config file → CLIPSHELF_* env vars → flags`,
		Args:    cobra.NoArgs,
		PreRunE: func(cmd *cobra.Command, _ []string) error { return bindViper(cmd, v) },
		RunE:    func(cmd *cobra.Command, _ []string) error { return runServe(cmd.Context(), v) },
	}

	addServiceFlags(cmd)
	addLoggingFlags(cmd)
	addConfigFlag(cmd)

	return cmd
}

func runServe(ctx context.Context, v *viper.Viper) error {
	setupServiceLogging(v)

	svc, chain, err := newService(v)
	if err != nil {
		return err
	}
	socket := v.GetString("socket")

	slog.Info("clipshelf daemon starting",
		"version", Version,
		"socket", socket,
		"cliphist", v.GetString("cliphist"),
		"providers", chain.Names(),
		"search_target", v.GetString("search-target"),
	)

	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !svc.IsCliphistAvailable(ctx) {
		slog.Warn("cliphist not found; history commands will fail until it is installed",
			"cliphist", v.GetString("cliphist"))
	}

	ln, err := ipc.Listen(socket)
	if err != nil {
		return fmt.Errorf("listen %s: %w", socket, err)
	}
	defer os.Remove(socket)

	srv, err := server.New(svc)
	if err != nil {
		_ = ln.Close()
		return err
	}

	go func() {
		<-ctx.Done()
		slog.Info("shutting down")
		_ = srv.Close()
	}()

	return srv.Serve(ln)
}
