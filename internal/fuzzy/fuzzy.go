// Package fuzzy implements the forgiving query match used to filter
// clipboard history.
//
// A query matches when its case-folded form is a substring of the content,
// or failing that, when every word of the query is contained in some word of
// the content. "log err" therefore matches "logging error: timeout".
package fuzzy

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Match reports whether query matches content. The empty query matches
// everything.
func Match(content, query string) bool {
	if query == "" {
		return true
	}

	c := fold(content)
	q := fold(query)
	if strings.Contains(c, q) {
		return true
	}

	words := tokens(c)
	for _, qw := range tokens(q) {
		if !containedIn(words, qw) {
			return false
		}
	}
	return true
}

// Filter returns the items whose text matches query, in their original order.
func Filter[T any](items []T, query string, text func(T) string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if Match(text(it), query) {
			out = append(out, it)
		}
	}
	return out
}

// fold composes s to NFC first so "e" + U+0301 and "é" compare equal.
// cases.Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(s))
}

func tokens(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
}

func containedIn(words []string, w string) bool {
	for _, cw := range words {
		if strings.Contains(cw, w) {
			return true
		}
	}
	return false
}
