// Package clip writes text to the system clipboard through an ordered list of
// providers:
//
//	wl-copy  wl-clipboard, Wayland
//	xclip    X11
//	native   golang.design/x/clipboard (clip_native.go; stub in clip_headless.go)
//
// A Chain tries providers in order. A provider that cannot start passes to the
// next one; the first provider that starts decides the outcome.
package clip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.klb.dev/clipshelf/internal/runner"
)

// ErrUnavailable marks a provider that could not be started on this system.
var ErrUnavailable = errors.New("clipboard provider unavailable")

// ErrNoProvider is returned by Chain.Copy when no provider could be started.
var ErrNoProvider = errors.New("no clipboard tool available: install wl-clipboard (Wayland) or xclip (X11)")

// Provider writes text to the clipboard.
type Provider interface {
	// Name returns the name used in configuration and logs.
	Name() string

	// Copy places text on the clipboard. It returns an error wrapping
	// ErrUnavailable when the provider cannot run here at all.
	Copy(ctx context.Context, text string) error
}

// DefaultOrder is the provider preference used when none is configured.
var DefaultOrder = []string{"wl-copy", "xclip", "native"}

// Chain is an ordered list of providers.
type Chain []Provider

// Copy tries each provider until one starts.
func (c Chain) Copy(ctx context.Context, text string) error {
	for _, p := range c {
		err := p.Copy(ctx, text)
		if errors.Is(err, ErrUnavailable) {
			slog.Debug("clipboard provider unavailable", "provider", p.Name(), "err", err)
			continue
		}
		if err != nil {
			return fmt.Errorf("%s: %w", p.Name(), err)
		}
		slog.Debug("clipboard written", "provider", p.Name(), "bytes", len(text))
		return nil
	}
	return ErrNoProvider
}

// Names returns the provider names in order.
func (c Chain) Names() []string {
	out := make([]string, len(c))
	for i, p := range c {
		out[i] = p.Name()
	}
	return out
}

// Lookup builds a Chain from provider names. Empty names means DefaultOrder.
func Lookup(names []string, r runner.Runner) (Chain, error) {
	if len(names) == 0 {
		names = DefaultOrder
	}
	chain := make(Chain, 0, len(names))
	for _, n := range names {
		p, err := provider(strings.TrimSpace(n), r)
		if err != nil {
			return nil, err
		}
		chain = append(chain, p)
	}
	return chain, nil
}

func provider(name string, r runner.Runner) (Provider, error) {
	switch name {
	case "wl-copy":
		return WLCopy(r), nil
	case "xclip":
		return XClip(r), nil
	case "native":
		return Native(), nil
	default:
		return nil, fmt.Errorf("unknown clipboard provider %q (want one of %s)", name, strings.Join(DefaultOrder, ", "))
	}
}
