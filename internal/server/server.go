// Package server exposes app.Commands on the local daemon socket.
//
// A single listener is multiplexed three ways with cmux:
//
//	gRPC (HTTP/2, application/grpc)  grpc.health.v1 liveness of cliphist
//	HTTP/1                           JSON gateway under /v1/
//	anything else                    newline-delimited JSON (internal/wire)
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	gwruntime "github.com/grpc-ecosystem/grpc-gateway/v2/runtime"
	"github.com/soheilhy/cmux"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"go.klb.dev/clipshelf/internal/app"
)

// matchTimeout bounds how long a new connection may take to send enough
// bytes for protocol detection.
const matchTimeout = 5 * time.Second

// Server serves one app.Commands implementation to local front-ends.
type Server struct {
	cmds   app.Commands
	grpc   *grpc.Server
	gw     *gwruntime.ServeMux
	http   *http.Server
	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	root   net.Listener
	closed bool
}

// New returns a Server for cmds. Call Serve to start it.
func New(cmds app.Commands) (*Server, error) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Server{
		cmds:   cmds,
		grpc:   grpc.NewServer(),
		ctx:    ctx,
		cancel: cancel,
	}
	healthpb.RegisterHealthServer(s.grpc, &healthService{cmds: cmds})

	gw, err := s.newGateway()
	if err != nil {
		cancel()
		return nil, err
	}
	s.gw = gw
	s.http = &http.Server{Handler: gw, ReadHeaderTimeout: matchTimeout}
	return s, nil
}

// Serve accepts connections on ln until Close is called. It returns nil
// after Close and the accept error otherwise.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ln.Close()
	}
	s.root = ln
	s.mu.Unlock()

	m := cmux.New(ln)
	m.SetReadTimeout(matchTimeout)
	grpcL := m.MatchWithWriters(cmux.HTTP2MatchHeaderFieldSendSettings("content-type", "application/grpc"))
	httpL := m.Match(cmux.HTTP1Fast())
	lineL := m.Match(cmux.Any())

	go func() {
		if err := s.grpc.Serve(grpcL); err != nil && !s.isClosed() {
			slog.Error("grpc server stopped", "err", err)
		}
	}()
	go func() {
		if err := s.http.Serve(httpL); err != nil && !errors.Is(err, http.ErrServerClosed) && !s.isClosed() {
			slog.Error("http gateway stopped", "err", err)
		}
	}()
	go s.serveLines(lineL)

	slog.Info("daemon serving", "addr", ln.Addr().String())
	err := m.Serve()
	if s.isClosed() {
		return nil
	}
	return fmt.Errorf("serve: %w", err)
}

// Close stops the listener and all protocol servers.
func (s *Server) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	root := s.root
	s.mu.Unlock()

	s.cancel()
	var err error
	if root != nil {
		if cerr := root.Close(); cerr != nil && !errors.Is(cerr, net.ErrClosed) {
			err = cerr
		}
	}
	s.grpc.Stop()
	_ = s.http.Close()
	return err
}

func (s *Server) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
