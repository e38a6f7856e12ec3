package search

import (
	"iter"
	"unicode"
	"unicode/utf8"
)

// Sentences yields the sentences of text in document order. A boundary is a
// '.', '!' or '?' followed by at least one whitespace rune; the punctuation
// stays with the sentence and the whitespace run is dropped. The sequence can
// be ranged over any number of times.
func Sentences(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		start := 0
		idx := 0
		for idx < len(text) {
			r, size := utf8.DecodeRuneInString(text[idx:])
			idx += size
			if !isTerminal(r) {
				continue
			}
			end := idx
			next := skipSpace(text, end)
			if next == end {
				continue
			}
			if end > start && !yield(text[start:end]) {
				return
			}
			start = next
			idx = next
		}
		if start < len(text) {
			yield(text[start:])
		}
	}
}

// SplitSentences collects Sentences into a slice.
func SplitSentences(text string) []string {
	var sentences []string
	for sentence := range Sentences(text) {
		sentences = append(sentences, sentence)
	}
	return sentences
}

func isTerminal(r rune) bool {
	return r == '.' || r == '!' || r == '?'
}

func skipSpace(text string, pos int) int {
	for pos < len(text) {
		r, size := utf8.DecodeRuneInString(text[pos:])
		if !unicode.IsSpace(r) {
			break
		}
		pos += size
	}
	return pos
}
