package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"time"

	"go.klb.dev/clipshelf/internal/message"
	"go.klb.dev/clipshelf/internal/wire"
)

// idleTimeout drops line connections that stop sending requests.
const idleTimeout = 5 * time.Minute

func (s *Server) serveLines(ln net.Listener) {
	for {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		go s.handleLineConn(conn)
	}
}

// handleLineConn answers requests on conn until the peer hangs up. A
// malformed line gets an ERROR reply and the connection stays open.
func (s *Server) handleLineConn(conn net.Conn) {
	defer conn.Close()
	wc := wire.New(conn)

	for {
		wc.SetReadDeadline(idleTimeout)
		msg, err := wc.ReadMsg()
		if errors.Is(err, message.ErrMalformed) {
			if werr := wc.WriteMsg(message.Errorf(err)); werr != nil {
				return
			}
			continue
		}
		if err != nil {
			if !errors.Is(err, io.EOF) && !errors.Is(err, net.ErrClosed) {
				slog.Debug("ipc read failed", "err", err)
			}
			return
		}

		slog.Debug("ipc request", "type", msg.Type, "source", msg.Source)
		if err := wc.WriteMsg(s.dispatch(s.ctx, msg)); err != nil {
			slog.Debug("ipc write failed", "err", err)
			return
		}
	}
}

// dispatch runs one request and builds the reply envelope.
func (s *Server) dispatch(ctx context.Context, req *message.Message) *message.Message {
	if !req.Type.IsRequest() {
		return message.Errorf(fmt.Errorf("unknown request type %q", req.Type))
	}
	resp := message.Result()

	switch req.Type {
	case message.TypePing:

	case message.TypeGetHistory:
		entries, err := s.cmds.GetHistory(ctx)
		if err != nil {
			return message.Errorf(err)
		}
		resp.Entries = entries

	case message.TypeSearchHistory:
		entries, err := s.cmds.SearchHistory(ctx, req.Query)
		if err != nil {
			return message.Errorf(err)
		}
		resp.Entries = entries

	case message.TypeGetEntryContent:
		content, err := s.cmds.GetEntryContent(ctx, req.ID)
		if err != nil {
			return message.Errorf(err)
		}
		resp.Content = content

	case message.TypeDeleteEntry:
		if err := s.cmds.DeleteEntry(ctx, req.ID); err != nil {
			return message.Errorf(err)
		}

	case message.TypeCopyToClipboard:
		if err := s.cmds.CopyToClipboard(ctx, req.Content); err != nil {
			return message.Errorf(err)
		}

	case message.TypeIsCliphistAvailable:
		ok := s.cmds.IsCliphistAvailable(ctx)
		resp.Available = &ok
	}
	return resp
}
