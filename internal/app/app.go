// Package app implements the clipboard-history commands shared by the CLI
// and the local daemon.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"go.klb.dev/clipshelf/internal/cliphist"
	"go.klb.dev/clipshelf/internal/fuzzy"
	"go.klb.dev/clipshelf/internal/history"
	"go.klb.dev/clipshelf/internal/logging"
)

// SearchTarget selects which text a search query is matched against.
type SearchTarget string

const (
	// SearchList matches the content as `cliphist list` printed it. cliphist
	// cuts that at its own -preview-width (default 100), so text past that
	// point is never searched.
	SearchList SearchTarget = "list"
	// SearchPreview matches the truncated preview shown to the user.
	SearchPreview SearchTarget = "preview"
)

// ParseSearchTarget converts a config value to a SearchTarget.
func ParseSearchTarget(s string) (SearchTarget, error) {
	switch SearchTarget(strings.ToLower(s)) {
	case "", SearchList:
		return SearchList, nil
	case SearchPreview:
		return SearchPreview, nil
	default:
		return "", fmt.Errorf("invalid search target %q (want list|preview)", s)
	}
}

// Commands is the operation set exposed to front-ends. Service implements it
// locally; server.Client implements it over the daemon socket.
type Commands interface {
	GetHistory(ctx context.Context) ([]history.Entry, error)
	GetEntryContent(ctx context.Context, id string) (string, error)
	DeleteEntry(ctx context.Context, id string) error
	SearchHistory(ctx context.Context, query string) ([]history.Entry, error)
	CopyToClipboard(ctx context.Context, content string) error
	IsCliphistAvailable(ctx context.Context) bool
}

// Copier writes text to the system clipboard. clip.Chain satisfies it.
type Copier interface {
	Copy(ctx context.Context, text string) error
}

// Service runs commands against cliphist and the clipboard providers.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	hist   *cliphist.Client
	copier Copier
	target SearchTarget
}

// New returns a Service.
func New(hist *cliphist.Client, copier Copier, target SearchTarget) *Service {
	if target == "" {
		target = SearchList
	}
	return &Service{hist: hist, copier: copier, target: target}
}

var _ Commands = (*Service)(nil)

// GetHistory lists every entry with preview content, newest first.
func (s *Service) GetHistory(ctx context.Context) ([]history.Entry, error) {
	out, err := s.hist.List(ctx)
	if err != nil {
		return nil, err
	}
	entries := history.ParsePreview(out)
	logging.LogEntries("history listed", entries)
	return entries, nil
}

// GetEntryContent returns the full text of one entry.
func (s *Service) GetEntryContent(ctx context.Context, id string) (string, error) {
	return s.hist.Decode(ctx, id)
}

// DeleteEntry removes one entry from the history.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	if err := s.hist.Delete(ctx, id); err != nil {
		return err
	}
	slog.Info("entry deleted", "id", id)
	return nil
}

// SearchHistory returns the preview entries matching query, in listing order.
func (s *Service) SearchHistory(ctx context.Context, query string) ([]history.Entry, error) {
	out, err := s.hist.List(ctx)
	if err != nil {
		return nil, err
	}

	var matched []history.Entry
	switch s.target {
	case SearchPreview:
		matched = fuzzy.Filter(history.ParsePreview(out), query, entryText)
	default:
		matched = history.Previews(fuzzy.Filter(history.Parse(out), query, entryText))
	}
	slog.Debug("history searched", "query", query, "target", s.target, "matches", len(matched))
	return matched, nil
}

// CopyToClipboard writes content to the system clipboard.
func (s *Service) CopyToClipboard(ctx context.Context, content string) error {
	return s.copier.Copy(ctx, content)
}

// IsCliphistAvailable reports whether cliphist can be launched.
func (s *Service) IsCliphistAvailable(ctx context.Context) bool {
	return s.hist.Available(ctx)
}

func entryText(e history.Entry) string { return e.Content }
