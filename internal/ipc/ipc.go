// Package ipc locates and opens the Unix socket the clipshelf daemon serves
// on. CLI sub-commands probe it and fall back to running commands in-process
// when no daemon answers.
package ipc

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"
)

const socketName = "clipshelf.sock"

// SocketPath returns the socket path, in order of preference:
//
//   - $CLIPSHELF_SOCKET
//   - $XDG_RUNTIME_DIR/clipshelf.sock
//   - $TMPDIR/clipshelf.sock
func SocketPath() string {
	if s := os.Getenv("CLIPSHELF_SOCKET"); s != "" {
		return s
	}
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, socketName)
	}
	return filepath.Join(os.TempDir(), socketName)
}

// IsRunning reports whether a daemon appears to be listening on path. It does
// a cheap dial-and-close; no data is exchanged.
func IsRunning(path string) bool {
	c, err := net.DialTimeout("unix", path, time.Second)
	if err != nil {
		return false
	}
	_ = c.Close()
	return true
}

// Dial connects to the daemon socket at path.
func Dial(path string) (net.Conn, error) {
	return net.DialTimeout("unix", path, 2*time.Second)
}

// Listen creates a listener on path, removing a stale socket from a previous
// run first. The socket is restricted to the owner.
func Listen(path string) (net.Listener, error) {
	if IsRunning(path) {
		return nil, fmt.Errorf("daemon already listening on %s", path)
	}
	_ = os.Remove(path)

	ln, err := net.Listen("unix", path)
	if err != nil {
		return nil, err
	}
	if err := os.Chmod(path, 0o600); err != nil {
		_ = ln.Close()
		return nil, fmt.Errorf("chmod %s: %w", path, err)
	}
	return ln, nil
}
