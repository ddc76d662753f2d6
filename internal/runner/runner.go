// Package runner runs external programs and classifies how they fail.
//
// Every failure is a *Error whose Kind tells a launch failure (the binary is
// missing or not executable) apart from a nonzero exit and from an I/O
// failure while streaming stdin or stdout.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"
	"time"
)

// Kind classifies a failed invocation.
type Kind int

const (
	KindLaunch Kind = iota + 1
	KindExit
	KindPipe
)

func (k Kind) String() string {
	switch k {
	case KindLaunch:
		return "launch"
	case KindExit:
		return "exit"
	case KindPipe:
		return "pipe"
	default:
		return "unknown"
	}
}

// Error is the single error shape returned by Run.
type Error struct {
	Kind     Kind
	Cmd      string
	ExitCode int    // KindExit only
	Stderr   string // KindExit only, trimmed
	Err      error
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindLaunch:
		return fmt.Sprintf("failed to execute %s: %v", e.Cmd, e.Err)
	case KindExit:
		if e.Stderr != "" {
			return fmt.Sprintf("%s command failed: %s", e.Cmd, e.Stderr)
		}
		return fmt.Sprintf("%s command failed: exit status %d", e.Cmd, e.ExitCode)
	default:
		return fmt.Sprintf("%s: %s i/o: %v", e.Cmd, e.Kind, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the Kind of err, or 0 if err is not a *Error.
func KindOf(err error) Kind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return 0
}

// IsLaunch reports whether err means the program could not be started.
func IsLaunch(err error) bool { return KindOf(err) == KindLaunch }

// Command describes one invocation. Stdin is nil when the program reads no input.
type Command struct {
	Name  string
	Args  []string
	Stdin []byte
}

func (c Command) String() string {
	return strings.TrimSpace(c.Name + " " + strings.Join(c.Args, " "))
}

// Result is the outcome of a process that ran to completion.
type Result struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Runner launches external programs. Tests substitute runnertest.Fake.
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// Exec runs programs with os/exec.
type Exec struct{}

// New returns the os/exec backed Runner.
func New() Runner { return Exec{} }

// Run starts cmd, feeds it Stdin, and waits for it to exit. The stdin pipe is
// always closed before Wait so the child sees EOF.
func (Exec) Run(ctx context.Context, c Command) (*Result, error) {
	start := time.Now()
	cmd := exec.CommandContext(ctx, c.Name, c.Args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	var stdin io.WriteCloser
	if c.Stdin != nil {
		var err error
		stdin, err = cmd.StdinPipe()
		if err != nil {
			return nil, &Error{Kind: KindPipe, Cmd: c.Name, Err: err}
		}
	}

	if err := cmd.Start(); err != nil {
		if stdin != nil {
			_ = stdin.Close()
		}
		return nil, &Error{Kind: KindLaunch, Cmd: c.Name, Err: err}
	}

	var writeErr error
	if stdin != nil {
		writeErr = writeAndClose(stdin, c.Stdin)
	}

	err := cmd.Wait()
	res := &Result{
		Stdout:   stdout.Bytes(),
		Stderr:   stderr.Bytes(),
		Duration: time.Since(start),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil && writeErr != nil:
		return res, &Error{Kind: KindPipe, Cmd: c.Name, Err: fmt.Errorf("write stdin: %w", writeErr)}
	case err == nil:
		slog.Debug("command finished", "cmd", c.String(), "duration", res.Duration)
		return res, nil
	case errors.As(err, &exitErr):
		res.ExitCode = exitErr.ExitCode()
		slog.Debug("command failed", "cmd", c.String(), "exit_code", res.ExitCode, "duration", res.Duration)
		return res, &Error{
			Kind:     KindExit,
			Cmd:      c.Name,
			ExitCode: res.ExitCode,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
	default:
		res.ExitCode = -1
		return res, &Error{Kind: KindPipe, Cmd: c.Name, Err: err}
	}
}

func writeAndClose(w io.WriteCloser, data []byte) error {
	defer w.Close()
	_, err := w.Write(data)
	return err
}
