package runner

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireTools(t *testing.T, names ...string) {
	t.Helper()
	for _, n := range names {
		if _, err := exec.LookPath(n); err != nil {
			t.Skipf("%s not available", n)
		}
	}
}

func TestExecRunStdout(t *testing.T) {
	requireTools(t, "sh")

	res, err := New().Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "printf '1\\thello'"}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "1\thello", string(res.Stdout))
}

func TestExecRunStdinClosedBeforeWait(t *testing.T) {
	requireTools(t, "cat")

	// cat only exits once stdin reaches EOF.
	res, err := New().Run(context.Background(), Command{Name: "cat", Stdin: []byte("piped text")})
	require.NoError(t, err)
	assert.Equal(t, "piped text", string(res.Stdout))
}

func TestExecRunNonzeroExit(t *testing.T) {
	requireTools(t, "sh")

	res, err := New().Run(context.Background(), Command{Name: "sh", Args: []string{"-c", "echo 'no such entry' >&2; exit 3"}})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.ExitCode)

	var re *Error
	require.True(t, errors.As(err, &re))
	assert.Equal(t, KindExit, re.Kind)
	assert.Equal(t, "no such entry", re.Stderr)
	assert.Equal(t, "sh command failed: no such entry", err.Error())
	assert.False(t, IsLaunch(err))
}

func TestExecRunStdinRejectedCleanExit(t *testing.T) {
	requireTools(t, "sh", "sleep")

	// The child closes stdin without reading and still exits 0, so the
	// write fails with EPIPE once the pipe buffer is full.
	payload := bytes.Repeat([]byte("x"), 1<<20)
	res, err := New().Run(context.Background(), Command{
		Name:  "sh",
		Args:  []string{"-c", "exec 0<&-; sleep 0.1"},
		Stdin: payload,
	})
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, KindPipe, KindOf(err))
	assert.ErrorIs(t, err, syscall.EPIPE)
	assert.Contains(t, err.Error(), "sh: pipe i/o: write stdin")
}

func TestExecRunMissingBinary(t *testing.T) {
	_, err := New().Run(context.Background(), Command{Name: "clipshelf-definitely-not-installed"})
	require.Error(t, err)
	assert.True(t, IsLaunch(err))
	assert.Contains(t, err.Error(), "failed to execute clipshelf-definitely-not-installed")
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(0), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(0), KindOf(nil))

	wrapped := errors.Join(errors.New("context"), &Error{Kind: KindPipe, Cmd: "x", Err: errors.New("broken pipe")})
	assert.Equal(t, KindPipe, KindOf(wrapped))
	assert.Equal(t, "pipe", KindPipe.String())
}

func TestCommandString(t *testing.T) {
	assert.Equal(t, "cliphist decode 42", Command{Name: "cliphist", Args: []string{"decode", "42"}}.String())
	assert.Equal(t, "cliphist", Command{Name: "cliphist"}.String())
}
