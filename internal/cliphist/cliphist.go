// Package cliphist drives the cliphist clipboard-history binary.
//
// cliphist speaks a line protocol: `list` prints "<id>\t<preview>" records
// newest first, `decode <id>` prints one entry in full, and `delete` reads an
// id from stdin and removes that entry.
package cliphist

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.klb.dev/clipshelf/internal/runner"
)

// DefaultBin is the program name looked up on $PATH.
const DefaultBin = "cliphist"

// ErrEmptyID is returned when an operation needs an entry id and got none.
var ErrEmptyID = errors.New("entry id is required")

// Client runs cliphist verbs through a runner.Runner.
type Client struct {
	bin string
	r   runner.Runner
}

// New returns a Client for bin. An empty bin means DefaultBin.
func New(bin string, r runner.Runner) *Client {
	if bin == "" {
		bin = DefaultBin
	}
	return &Client{bin: bin, r: r}
}

// List returns the raw output of `cliphist list`.
func (c *Client) List(ctx context.Context) (string, error) {
	return c.run(ctx, runner.Command{Name: c.bin, Args: []string{"list"}})
}

// Decode returns the full content of one entry.
func (c *Client) Decode(ctx context.Context, id string) (string, error) {
	if id == "" {
		return "", ErrEmptyID
	}
	return c.run(ctx, runner.Command{Name: c.bin, Args: []string{"decode", id}})
}

// Delete removes one entry. The id is written to cliphist's stdin.
func (c *Client) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	_, err := c.run(ctx, runner.Command{
		Name:  c.bin,
		Args:  []string{"delete"},
		Stdin: []byte(id + "\n"),
	})
	return err
}

// Available reports whether cliphist can be launched at all. A binary that
// starts but rejects the probe still counts as available.
func (c *Client) Available(ctx context.Context) bool {
	_, err := c.r.Run(ctx, runner.Command{Name: c.bin, Args: []string{"version"}})
	return !runner.IsLaunch(err)
}

func (c *Client) run(ctx context.Context, cmd runner.Command) (string, error) {
	res, err := c.r.Run(ctx, cmd)
	if runner.IsLaunch(err) {
		return "", fmt.Errorf("%w. Make sure %s is installed", err, c.bin)
	}
	if err != nil {
		return "", err
	}
	return lossy(res.Stdout), nil
}

// lossy decodes b as UTF-8, replacing invalid sequences.
func lossy(b []byte) string {
	return strings.ToValidUTF8(string(b), "�")
}
