package server

import (
	"context"
	"fmt"
	"log/slog"

	"go.klb.dev/clipshelf/internal/app"
	"go.klb.dev/clipshelf/internal/history"
	"go.klb.dev/clipshelf/internal/ipc"
	"go.klb.dev/clipshelf/internal/message"
	"go.klb.dev/clipshelf/internal/wire"
)

// Client implements app.Commands by forwarding each call to a running daemon
// over the line protocol. Every call uses its own connection.
type Client struct {
	path   string
	source string
}

// NewClient returns a Client for the daemon socket at path. source is a
// free-form name that shows up in the daemon's debug log.
func NewClient(path, source string) *Client {
	return &Client{path: path, source: source}
}

var _ app.Commands = (*Client)(nil)

// Ping checks that the daemon answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := c.call(ctx, &message.Message{Type: message.TypePing})
	return err
}

func (c *Client) GetHistory(ctx context.Context) ([]history.Entry, error) {
	resp, err := c.call(ctx, &message.Message{Type: message.TypeGetHistory})
	if err != nil {
		return nil, err
	}
	return nonNil(resp.Entries), nil
}

func (c *Client) GetEntryContent(ctx context.Context, id string) (string, error) {
	resp, err := c.call(ctx, &message.Message{Type: message.TypeGetEntryContent, ID: id})
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}

func (c *Client) DeleteEntry(ctx context.Context, id string) error {
	_, err := c.call(ctx, &message.Message{Type: message.TypeDeleteEntry, ID: id})
	return err
}

func (c *Client) SearchHistory(ctx context.Context, query string) ([]history.Entry, error) {
	resp, err := c.call(ctx, &message.Message{Type: message.TypeSearchHistory, Query: query})
	if err != nil {
		return nil, err
	}
	return nonNil(resp.Entries), nil
}

func (c *Client) CopyToClipboard(ctx context.Context, content string) error {
	_, err := c.call(ctx, &message.Message{Type: message.TypeCopyToClipboard, Content: content})
	return err
}

// IsCliphistAvailable reports false when the daemon itself cannot be reached.
func (c *Client) IsCliphistAvailable(ctx context.Context) bool {
	resp, err := c.call(ctx, &message.Message{Type: message.TypeIsCliphistAvailable})
	if err != nil {
		slog.Warn("daemon availability probe failed", "err", err)
		return false
	}
	return resp.Available != nil && *resp.Available
}

func (c *Client) call(ctx context.Context, req *message.Message) (*message.Message, error) {
	conn, err := ipc.Dial(c.path)
	if err != nil {
		return nil, fmt.Errorf("dial daemon: %w", err)
	}
	defer conn.Close()

	wc := wire.New(conn)
	if dl, ok := ctx.Deadline(); ok {
		_ = wc.SetDeadline(dl)
	}
	stop := context.AfterFunc(ctx, func() { _ = wc.Close() })
	defer stop()

	req.Source = c.source
	if err := wc.WriteMsg(req); err != nil {
		return nil, fmt.Errorf("send %s: %w", req.Type, err)
	}
	resp, err := wc.ReadMsg()
	if err != nil {
		return nil, fmt.Errorf("read %s reply: %w", req.Type, err)
	}
	if err := resp.Err(); err != nil {
		return nil, err
	}
	if resp.Type != message.TypeResult {
		return nil, fmt.Errorf("unexpected reply %s to %s", resp.Type, req.Type)
	}
	return resp, nil
}
