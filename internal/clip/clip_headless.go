//go:build !linux && !darwin && !windows

package clip

import "context"

type nativeProvider struct{}

// Native returns a provider that is never available on this platform.
func Native() Provider { return nativeProvider{} }

func (nativeProvider) Name() string { return "native" }

func (nativeProvider) Copy(context.Context, string) error { return ErrUnavailable }
