package wire

import (
	"io"
	"net"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.klb.dev/clipshelf/internal/history"
	"go.klb.dev/clipshelf/internal/message"
)

func TestWriteReadMsg(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	sent := &message.Message{
		Type:    message.TypeResult,
		Entries: []history.Entry{{ID: "1", Content: "multi\nline\ttext", ContentType: "text"}},
	}

	go func() { _ = New(a).WriteMsg(sent) }()

	got, err := New(b).ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, sent, got)
}

func TestReadMsgLargeLine(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	big := strings.Repeat("x", 200*1024)
	go func() { _ = New(a).WriteMsg(&message.Message{Type: message.TypeCopyToClipboard, Content: big}) }()

	got, err := New(b).ReadMsg()
	require.NoError(t, err)
	assert.Equal(t, big, got.Content)
}

func TestReadMsgEOF(t *testing.T) {
	a, b := net.Pipe()
	go func() {
		_, _ = a.Write([]byte(`{"type":"PING"}`))
		_ = a.Close()
	}()

	_, err := New(b).ReadMsg()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadMsgGarbage(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()
	go func() { _, _ = a.Write([]byte("hello\n")) }()

	_, err := New(b).ReadMsg()
	assert.ErrorIs(t, err, message.ErrMalformed)
}

func TestWriteMsgKeepsConnDeadline(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	// Nobody reads b, so the write can only end at the deadline.
	c := New(a)
	require.NoError(t, c.SetDeadline(time.Now().Add(50*time.Millisecond)))

	start := time.Now()
	err := c.WriteMsg(&message.Message{Type: message.TypePing})
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
	assert.Less(t, time.Since(start), 2*time.Second)

	// The bound outlives the write: a read on the same conn still times out.
	_, err = c.ReadMsg()
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
}

func TestSetReadDeadline(t *testing.T) {
	a, b := net.Pipe()
	defer a.Close()
	defer b.Close()

	c := New(b)
	c.SetReadDeadline(20 * time.Millisecond)
	_, err := c.ReadMsg()
	assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
}

func TestClose(t *testing.T) {
	a, b := net.Pipe()
	defer b.Close()

	require.NoError(t, New(a).Close())
	_, err := New(b).ReadMsg()
	assert.ErrorIs(t, err, io.EOF)
}
