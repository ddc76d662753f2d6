// Package message defines the clipshelf daemon protocol.
//
// All messages are newline-delimited JSON, one message per line:
//
//	<json>\n
//
// A client sends one request envelope per line and reads exactly one
// RESULT or ERROR envelope back before sending the next.
package message

import (
	"encoding/json"
	"errors"
	"fmt"

	"go.klb.dev/clipshelf/internal/history"
)

// Type identifies the kind of message.
type Type string

const (
	TypeGetHistory          Type = "GET_HISTORY"
	TypeGetEntryContent     Type = "GET_ENTRY_CONTENT"
	TypeDeleteEntry         Type = "DELETE_ENTRY"
	TypeSearchHistory       Type = "SEARCH_HISTORY"
	TypeCopyToClipboard     Type = "COPY_TO_CLIPBOARD"
	TypeIsCliphistAvailable Type = "IS_CLIPHIST_AVAILABLE"
	TypePing                Type = "PING"

	TypeResult Type = "RESULT"
	TypeError  Type = "ERROR"
)

// Message is the top-level wire envelope.
type Message struct {
	// Always present
	Type   Type   `json:"type"`
	Source string `json:"source,omitempty"`

	// Requests
	ID      string `json:"id,omitempty"`      // GET_ENTRY_CONTENT, DELETE_ENTRY
	Query   string `json:"query,omitempty"`   // SEARCH_HISTORY
	Content string `json:"content,omitempty"` // COPY_TO_CLIPBOARD; RESULT of GET_ENTRY_CONTENT

	// RESULT
	Entries   []history.Entry `json:"entries,omitempty"`
	Available *bool           `json:"available,omitempty"`

	// ERROR
	Error string `json:"error,omitempty"`
}

// Encode serialises the message to JSON without a trailing newline.
func (m *Message) Encode() ([]byte, error) {
	return json.Marshal(m)
}

// ErrMalformed is returned by Decode for a line that is not a valid message.
// The framing is intact, so a reader may answer and carry on.
var ErrMalformed = errors.New("malformed message")

// Decode deserialises a message from raw JSON bytes.
func Decode(b []byte) (*Message, error) {
	var m Message
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	return &m, nil
}

// IsRequest reports whether t is a request type a daemon answers.
func (t Type) IsRequest() bool {
	switch t {
	case TypeGetHistory, TypeGetEntryContent, TypeDeleteEntry, TypeSearchHistory,
		TypeCopyToClipboard, TypeIsCliphistAvailable, TypePing:
		return true
	}
	return false
}

// Result returns an empty RESULT envelope.
func Result() *Message { return &Message{Type: TypeResult} }

// Errorf returns an ERROR envelope carrying err's message.
func Errorf(err error) *Message {
	return &Message{Type: TypeError, Error: err.Error()}
}

// Err converts an ERROR envelope back into an error. It returns nil for any
// other type.
func (m *Message) Err() error {
	if m.Type != TypeError {
		return nil
	}
	return &RemoteError{Msg: m.Error}
}

// RemoteError is a failure reported by the daemon. Only the message crosses
// the socket.
type RemoteError struct {
	Msg string
}

func (e *RemoteError) Error() string { return e.Msg }
