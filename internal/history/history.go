// Package history turns the line-oriented output of `cliphist list` into
// clipboard entries.
//
// Each line of the list output has the form
//
//	<id>\t<content>
//
// where content may itself contain tabs. Lines are emitted newest first and
// that order is preserved.
package history

import (
	"strings"
	"unicode/utf8"
)

const (
	// PreviewWidth is the maximum number of runes in a preview, marker included.
	PreviewWidth = 100

	// TruncationMarker is appended to previews that were cut short.
	TruncationMarker = "..."

	// ContentTypeText is the only content type cliphist list reports.
	ContentTypeText = "text"
)

// Entry is one clipboard-history record.
type Entry struct {
	ID          string `json:"id"`
	Content     string `json:"content"`
	ContentType string `json:"content_type"`
}

// Parse converts raw list output into entries with their full content.
// Lines without a tab are skipped. Empty input yields an empty slice.
func Parse(output string) []Entry {
	entries := make([]Entry, 0)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSuffix(line, "\r")
		id, content, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			ID:          id,
			Content:     content,
			ContentType: ContentTypeText,
		})
	}
	return entries
}

// ParsePreview is Parse with every entry's content shortened by Preview.
func ParsePreview(output string) []Entry {
	entries := Parse(output)
	for i := range entries {
		entries[i].Content = Preview(entries[i].Content)
	}
	return entries
}

// Preview shortens content to at most PreviewWidth runes. Truncated content
// ends in TruncationMarker.
func Preview(content string) string {
	if utf8.RuneCountInString(content) <= PreviewWidth {
		return content
	}
	keep := PreviewWidth - utf8.RuneCountInString(TruncationMarker)
	n := 0
	for i := range content {
		if n == keep {
			return content[:i] + TruncationMarker
		}
		n++
	}
	return content
}

// Previews returns a copy of entries with previewed content.
func Previews(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	for i, e := range entries {
		e.Content = Preview(e.Content)
		out[i] = e
	}
	return out
}
