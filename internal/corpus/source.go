// Package corpus holds the text the ribbon scrolls over: the immutable
// Source, the Store that publishes it together with the cursor, and the
// loaders for the default documents and user uploads.
package corpus

import "strings"

// Source is an immutable sequence of code points.
type Source struct {
	content []rune
	text    string
	origin  string
}

// New wraps text as a Source. origin names where it came from.
func New(text, origin string) *Source {
	return &Source{content: []rune(text), text: text, origin: origin}
}

// Join concatenates documents with a single space, in order. Leading and
// trailing whitespace of each document is dropped so files ending in a
// newline do not widen the seam.
func Join(origin string, documents ...string) *Source {
	trimmed := make([]string, len(documents))
	for i, doc := range documents {
		trimmed[i] = strings.TrimSpace(doc)
	}
	return New(strings.Join(trimmed, " "), origin)
}

// Len returns the number of code points.
func (s *Source) Len() int {
	if s == nil {
		return 0
	}
	return len(s.content)
}

// Runes exposes the content for read-only use. Callers must not modify it.
func (s *Source) Runes() []rune {
	if s == nil {
		return nil
	}
	return s.content
}

// Text returns the content as a string.
func (s *Source) Text() string {
	if s == nil {
		return ""
	}
	return s.text
}

func (s *Source) Origin() string {
	if s == nil {
		return ""
	}
	return s.origin
}
