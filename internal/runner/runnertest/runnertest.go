// Package runnertest provides a scripted runner.Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"go.klb.dev/clipshelf/internal/runner"
)

// Response is what the fake returns for one command line.
type Response struct {
	Stdout  string
	Stderr  string
	Exit    int   // nonzero yields a KindExit error
	Missing bool  // yields a KindLaunch error
	PipeErr error // yields a KindPipe error
}

// Fake answers commands from a table keyed by "name arg1 arg2...". Unknown
// commands behave like a missing binary. Every call is recorded.
type Fake struct {
	mu        sync.Mutex
	responses map[string]Response
	calls     []runner.Command
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{responses: make(map[string]Response)}
}

// On scripts the response for a command line.
func (f *Fake) On(cmdline string, r Response) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.responses[cmdline] = r
	return f
}

// Calls returns a copy of the commands run so far.
func (f *Fake) Calls() []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]runner.Command(nil), f.calls...)
}

// CallLines returns Calls rendered as command lines.
func (f *Fake) CallLines() []string {
	calls := f.Calls()
	out := make([]string, len(calls))
	for i, c := range calls {
		out[i] = c.String()
	}
	return out
}

// Run implements runner.Runner.
func (f *Fake) Run(_ context.Context, c runner.Command) (*runner.Result, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	r, ok := f.responses[c.String()]
	f.mu.Unlock()

	if !ok || r.Missing {
		return nil, &runner.Error{
			Kind: runner.KindLaunch,
			Cmd:  c.Name,
			Err:  fmt.Errorf("exec: %q: executable file not found in $PATH", c.Name),
		}
	}
	if r.PipeErr != nil {
		return nil, &runner.Error{Kind: runner.KindPipe, Cmd: c.Name, Err: r.PipeErr}
	}

	res := &runner.Result{
		ExitCode: r.Exit,
		Stdout:   []byte(r.Stdout),
		Stderr:   []byte(r.Stderr),
	}
	if r.Exit != 0 {
		return res, &runner.Error{
			Kind:     runner.KindExit,
			Cmd:      c.Name,
			ExitCode: r.Exit,
			Stderr:   strings.TrimSpace(r.Stderr),
			Err:      fmt.Errorf("exit status %d", r.Exit),
		}
	}
	return res, nil
}
