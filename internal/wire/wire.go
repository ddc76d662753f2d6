// Package wire handles reading and writing newline-delimited JSON messages
// over a net.Conn.
//
// Wire format:
//
//	<json>\n
//
// JSON string escaping guarantees the encoded message never contains a raw
// newline, so every line is exactly one message.
package wire

import (
	"bufio"
	"bytes"
	"fmt"
	"net"
	"time"

	"go.klb.dev/clipshelf/internal/message"
)

const (
	// MaxMessageSize is the largest message we will read (16 MiB).
	MaxMessageSize = 16 * 1024 * 1024

	writeDeadline = 5 * time.Second
)

// Conn wraps a net.Conn with buffered newline-delimited JSON framing.
type Conn struct {
	conn     net.Conn
	br       *bufio.Reader
	deadline time.Time
}

// New wraps conn.
func New(conn net.Conn) *Conn {
	return &Conn{
		conn: conn,
		br:   bufio.NewReaderSize(conn, 64*1024),
	}
}

// SetDeadline bounds every later read and write by t. The per-call timeouts
// below never extend past it. The zero time removes the bound.
func (c *Conn) SetDeadline(t time.Time) error {
	c.deadline = t
	return c.conn.SetDeadline(t)
}

// SetReadDeadline limits the next reads to d from now. Zero falls back to
// the SetDeadline bound.
func (c *Conn) SetReadDeadline(d time.Duration) {
	_ = c.conn.SetReadDeadline(c.within(d))
}

func (c *Conn) setWriteDeadline(d time.Duration) {
	_ = c.conn.SetWriteDeadline(c.within(d))
}

// within returns now+d capped by the connection deadline.
func (c *Conn) within(d time.Duration) time.Time {
	if d == 0 {
		return c.deadline
	}
	t := time.Now().Add(d)
	if !c.deadline.IsZero() && c.deadline.Before(t) {
		return c.deadline
	}
	return t
}

// Close closes the underlying connection.
func (c *Conn) Close() error { return c.conn.Close() }

// WriteMsg serialises msg to JSON and writes it followed by a newline.
func (c *Conn) WriteMsg(msg *message.Message) error {
	raw, err := msg.Encode()
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	line := append(raw, '\n')

	c.setWriteDeadline(writeDeadline)
	_, err = c.conn.Write(line)
	c.setWriteDeadline(0)
	return err
}

// ReadMsg reads one newline-terminated line and deserialises it into a
// Message. Lines longer than MaxMessageSize are rejected without being
// buffered in full.
func (c *Conn) ReadMsg() (*message.Message, error) {
	var line []byte
	for {
		chunk, err := c.br.ReadSlice('\n')
		if len(line)+len(chunk) > MaxMessageSize {
			return nil, fmt.Errorf("message too large (>%d bytes)", MaxMessageSize)
		}
		line = append(line, chunk...)
		if err == bufio.ErrBufferFull {
			continue
		}
		if err != nil {
			return nil, err
		}
		break
	}

	line = bytes.TrimSuffix(line[:len(line)-1], []byte("\r"))
	return message.Decode(line)
}
