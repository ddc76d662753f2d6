package clip

import (
	"context"
	"fmt"

	"go.klb.dev/clipshelf/internal/runner"
)

// Command is a Provider backed by an external program that reads the text
// from stdin.
type Command struct {
	name string
	bin  string
	args []string
	r    runner.Runner
}

// NewCommand returns a provider that runs bin with args.
func NewCommand(name, bin string, args []string, r runner.Runner) *Command {
	return &Command{name: name, bin: bin, args: args, r: r}
}

// WLCopy returns the wl-clipboard provider.
func WLCopy(r runner.Runner) *Command {
	return NewCommand("wl-copy", "wl-copy", nil, r)
}

// XClip returns the xclip provider targeting the CLIPBOARD selection.
func XClip(r runner.Runner) *Command {
	return NewCommand("xclip", "xclip", []string{"-selection", "clipboard"}, r)
}

func (c *Command) Name() string { return c.name }

func (c *Command) Copy(ctx context.Context, text string) error {
	_, err := c.r.Run(ctx, runner.Command{Name: c.bin, Args: c.args, Stdin: []byte(text)})
	if runner.IsLaunch(err) {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return err
}
