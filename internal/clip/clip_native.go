//go:build linux || darwin || windows

package clip

import (
	"context"
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

// clipboard.Init talks to the display server; do it at most once and only
// when the native provider is actually reached.
var initNative = sync.OnceValue(clipboard.Init)

type nativeProvider struct{}

// Native returns the in-process clipboard provider. It is unavailable on
// headless systems and in builds without cgo.
func Native() Provider { return nativeProvider{} }

func (nativeProvider) Name() string { return "native" }

func (nativeProvider) Copy(_ context.Context, text string) error {
	if err := initNative(); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	clipboard.Write(clipboard.FmtText, []byte(text))
	return nil
}
