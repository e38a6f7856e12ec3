package summary

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"gonum.org/v1/gonum/graph/network"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/csheth/clueinletters/internal/search"
)

const (
	damping   = 0.85
	tolerance = 1e-6
)

// textRankClient ranks sentences locally: TF-IDF vectors, cosine similarity
// graph, PageRank. No network, so it is the default provider.
type textRankClient struct {
	sentences int
}

func (c *textRankClient) Name() string {
	return "TextRank (local)"
}

func (c *textRankClient) Summarize(ctx context.Context, text string) (string, error) {
	sentences := search.SplitSentences(strings.TrimSpace(text))
	if len(sentences) == 0 {
		return "", fmt.Errorf("text empty; cannot summarize")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	scores := rankSentences(sentences)

	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	n := c.sentences
	if n > len(order) {
		n = len(order)
	}
	picked := make([]string, 0, n)
	for _, idx := range order[:n] {
		picked = append(picked, sentences[idx])
	}
	return strings.Join(picked, " "), nil
}

// rankSentences returns one PageRank score per sentence.
func rankSentences(sentences []string) []float64 {
	scores := make([]float64, len(sentences))
	if len(sentences) == 1 {
		scores[0] = 1
		return scores
	}
	ranks := network.PageRank(similarityGraph(tfidf(sentences)), damping, tolerance)
	for id, rank := range ranks {
		scores[int(id)] = rank
	}
	return scores
}

// similarityGraph links every pair of sentences sharing a term, in both
// directions, weighted by their cosine similarity. Sentences with no shared
// terms stay in the graph as isolated nodes.
func similarityGraph(vectors []map[string]float64) *simple.WeightedDirectedGraph {
	g := simple.NewWeightedDirectedGraph(0, 0)
	for i := range vectors {
		g.AddNode(simple.Node(int64(i)))
	}
	for i := range vectors {
		for j := i + 1; j < len(vectors); j++ {
			w := dot(vectors[i], vectors[j])
			if w <= 0 {
				continue
			}
			from, to := simple.Node(int64(i)), simple.Node(int64(j))
			g.SetWeightedEdge(g.NewWeightedEdge(from, to, w))
			g.SetWeightedEdge(g.NewWeightedEdge(to, from, w))
		}
	}
	return g
}

// tokenize lowercases the sentence and keeps terms of two or more letters or
// digits that are not English stop words.
func tokenize(sentence string) []string {
	fields := strings.FieldsFunc(strings.ToLower(sentence), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	terms := fields[:0]
	for _, f := range fields {
		if utf8.RuneCountInString(f) < 2 || isStopWord(f) {
			continue
		}
		terms = append(terms, f)
	}
	return terms
}

// tfidf builds L2-normalised sparse vectors with smoothed idf.
func tfidf(sentences []string) []map[string]float64 {
	counts := make([]map[string]float64, len(sentences))
	df := make(map[string]int)
	for i, s := range sentences {
		counts[i] = make(map[string]float64)
		for _, tok := range tokenize(s) {
			counts[i][tok]++
		}
		for tok := range counts[i] {
			df[tok]++
		}
	}

	n := float64(len(sentences))
	for _, vec := range counts {
		var norm float64
		for tok, tf := range vec {
			w := tf * (math.Log((1+n)/(1+float64(df[tok]))) + 1)
			vec[tok] = w
			norm += w * w
		}
		if norm == 0 {
			continue
		}
		norm = math.Sqrt(norm)
		for tok := range vec {
			vec[tok] /= norm
		}
	}
	return counts
}

func dot(a, b map[string]float64) float64 {
	if len(b) < len(a) {
		a, b = b, a
	}
	var sum float64
	for tok, w := range a {
		sum += w * b[tok]
	}
	return sum
}
