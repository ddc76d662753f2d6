package cliphist

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipshelf/internal/runner"
	"go.klb.dev/clipshelf/internal/runner/runnertest"
)

func TestList(t *testing.T) {
	fake := runnertest.New().On("cliphist list", runnertest.Response{Stdout: "2\tsecond\n1\tfirst\n"})
	c := New("", fake)

	out, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2\tsecond\n1\tfirst\n", out)
	assert.Equal(t, []string{"cliphist list"}, fake.CallLines())
}

func TestListInvalidUTF8(t *testing.T) {
	fake := runnertest.New().On("cliphist list", runnertest.Response{Stdout: "1\tbad \xff byte"})
	out, err := New("", fake).List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "1\tbad � byte", out)
}

func TestDecode(t *testing.T) {
	fake := runnertest.New().On("cliphist decode 42", runnertest.Response{Stdout: "full\ncontent"})
	c := New("cliphist", fake)

	out, err := c.Decode(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "full\ncontent", out)

	_, err = c.Decode(context.Background(), "")
	assert.ErrorIs(t, err, ErrEmptyID)
	assert.Len(t, fake.Calls(), 1)
}

func TestDeleteWritesIDToStdin(t *testing.T) {
	fake := runnertest.New().On("cliphist delete", runnertest.Response{})
	c := New("", fake)

	require.NoError(t, c.Delete(context.Background(), "17"))
	calls := fake.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"delete"}, calls[0].Args)
	assert.Equal(t, "17\n", string(calls[0].Stdin))

	assert.ErrorIs(t, c.Delete(context.Background(), ""), ErrEmptyID)
}

func TestErrorKindsSurvive(t *testing.T) {
	fake := runnertest.New().
		On("cliphist decode 9", runnertest.Response{Exit: 1, Stderr: "input not prefixed with id\n"}).
		On("cliphist delete", runnertest.Response{PipeErr: errors.New("broken pipe")})
	c := New("", fake)

	_, err := c.Decode(context.Background(), "9")
	assert.Equal(t, runner.KindExit, runner.KindOf(err))
	assert.Equal(t, "cliphist command failed: input not prefixed with id", err.Error())

	err = c.Delete(context.Background(), "9")
	assert.Equal(t, runner.KindPipe, runner.KindOf(err))

	_, err = New("not-cliphist", fake).List(context.Background())
	assert.True(t, runner.IsLaunch(err))
	assert.Contains(t, err.Error(), "Make sure not-cliphist is installed")
}

func TestAvailable(t *testing.T) {
	fake := runnertest.New().On("cliphist version", runnertest.Response{Stdout: "v0.6.1\n"})
	assert.True(t, New("", fake).Available(context.Background()))

	rejecting := runnertest.New().On("cliphist version", runnertest.Response{Exit: 2})
	assert.True(t, New("", rejecting).Available(context.Background()))

	assert.False(t, New("", runnertest.New()).Available(context.Background()))
}
