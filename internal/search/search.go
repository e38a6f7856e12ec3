// Package search implements the hover and click lookups over the loaded
// corpus. Queries are always treated as literal text.
package search

import (
	"html"
	"regexp"
	"strings"
	"sync"
)

// Span is a half-open byte range [Start, End) inside a sentence.
type Span struct {
	Start int
	End   int
}

// Sentence is one matching sentence plus the ranges to highlight.
type Sentence struct {
	Text  string
	Spans []Span
}

// Result is produced fresh for every click search.
type Result struct {
	Query string
	// Occurrences counts matching sentences, not word hits.
	Occurrences int
	Sentences   []Sentence
}

// Empty reports whether nothing matched.
func (r Result) Empty() bool {
	return len(r.Sentences) == 0
}

// Render returns every sentence with each span passed through mark.
func (r Result) Render(mark func(string) string) []string {
	out := make([]string, 0, len(r.Sentences))
	for _, sentence := range r.Sentences {
		out = append(out, sentence.render(mark, identity))
	}
	return out
}

// HTML renders the sentences as highlight markup separated by blank lines.
func (r Result) HTML() string {
	parts := make([]string, 0, len(r.Sentences))
	for _, sentence := range r.Sentences {
		parts = append(parts, sentence.render(func(s string) string {
			return `<span class="highlight">` + s + `</span>`
		}, html.EscapeString))
	}
	return strings.Join(parts, "<br/><br/>")
}

func (s Sentence) render(mark, plain func(string) string) string {
	var b strings.Builder
	pos := 0
	for _, span := range s.Spans {
		if span.Start < pos || span.End > len(s.Text) {
			continue
		}
		b.WriteString(plain(s.Text[pos:span.Start]))
		b.WriteString(mark(plain(s.Text[span.Start:span.End])))
		pos = span.End
	}
	b.WriteString(plain(s.Text[pos:]))
	return b.String()
}

func identity(s string) string { return s }

// CountWholeWord counts case-insensitive occurrences of word bounded by word
// boundaries on both sides.
func CountWholeWord(content, word string) int {
	if content == "" || blank(word) {
		return 0
	}
	return len(patterns.wholeWord(word).FindAllStringIndex(content, -1))
}

// FindSentences returns the sentences whose lowercase form contains the
// lowercase query, with every case-insensitive occurrence marked.
func FindSentences(content, word string) Result {
	result := Result{Query: word}
	if content == "" || blank(word) {
		return result
	}
	needle := strings.ToLower(word)
	literal := patterns.literal(word)
	for sentence := range Sentences(content) {
		if !strings.Contains(strings.ToLower(sentence), needle) {
			continue
		}
		matches := literal.FindAllStringIndex(sentence, -1)
		spans := make([]Span, 0, len(matches))
		for _, m := range matches {
			spans = append(spans, Span{Start: m[0], End: m[1]})
		}
		result.Sentences = append(result.Sentences, Sentence{Text: sentence, Spans: spans})
	}
	result.Occurrences = len(result.Sentences)
	return result
}

func blank(word string) bool {
	return strings.TrimSpace(word) == ""
}

const maxCachedPatterns = 256

type patternCache struct {
	mu      sync.Mutex
	entries map[string]*regexp.Regexp
}

var patterns = &patternCache{entries: map[string]*regexp.Regexp{}}

func (c *patternCache) wholeWord(word string) *regexp.Regexp {
	return c.get(`(?i)\b`+regexp.QuoteMeta(word)+`\b`)
}

func (c *patternCache) literal(word string) *regexp.Regexp {
	return c.get(`(?i)` + regexp.QuoteMeta(word))
}

func (c *patternCache) get(expr string) *regexp.Regexp {
	c.mu.Lock()
	defer c.mu.Unlock()
	if re, ok := c.entries[expr]; ok {
		return re
	}
	if len(c.entries) >= maxCachedPatterns {
		clear(c.entries)
	}
	// The expression is built from QuoteMeta output, so it always compiles.
	re := regexp.MustCompile(expr)
	c.entries[expr] = re
	return re
}
