package summary

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestTextRankPicksCentralSentence(t *testing.T) {
	text := "Cats chase mice. Cats and dogs chase mice in the garden. Dogs sleep in the garden."
	client := &textRankClient{sentences: 1}

	got, err := client.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if got != "Cats and dogs chase mice in the garden." {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestTextRankSentenceLimit(t *testing.T) {
	text := "One clue. Two clues. Three clues."
	client := &textRankClient{sentences: 5}

	got, err := client.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	for _, want := range []string{"One clue.", "Two clues.", "Three clues."} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary %q missing %q", got, want)
		}
	}
}

func TestTextRankEmptyText(t *testing.T) {
	client := &textRankClient{sentences: 1}
	if _, err := client.Summarize(context.Background(), " \n "); err == nil {
		t.Fatal("expected error for empty text")
	}
}

func TestTextRankHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	client := &textRankClient{sentences: 1}
	if _, err := client.Summarize(ctx, "A sentence."); err == nil {
		t.Fatal("expected context error")
	}
}

func TestTextRankIgnoresFunctionWords(t *testing.T) {
	text := "It is what it is, and it is so. Cats chase mice in the barn. It is the way it is for them. Mice fear cats."
	client := &textRankClient{sentences: 1}

	got, err := client.Summarize(context.Background(), text)
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if got != "Cats chase mice in the barn." && got != "Mice fear cats." {
		t.Fatalf("expected a cats/mice sentence, got %q", got)
	}
}

func TestTokenizeDropsStopWordsAndSingleLetters(t *testing.T) {
	got := tokenize("It is the way a Cat chases 2 mice, and 42 dogs!")
	want := []string{"way", "cat", "chases", "mice", "42", "dogs"}
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Fatalf("tokenize = %q, want %q", got, want)
	}
}

func TestRankSentencesFavoursHub(t *testing.T) {
	scores := rankSentences([]string{
		"Cats chase mice.",
		"Cats and dogs chase mice in the garden.",
		"Dogs sleep in the garden.",
		"Nothing else here.",
	})
	var sum float64
	for _, s := range scores {
		sum += s
	}
	if math.Abs(sum-1) > 1e-3 {
		t.Fatalf("ranks sum to %f", sum)
	}
	if scores[1] <= scores[0] || scores[1] <= scores[2] {
		t.Fatalf("hub should rank highest: %v", scores)
	}
	if scores[3] >= scores[0] {
		t.Fatalf("isolated sentence should rank below linked ones: %v", scores)
	}
}

func TestRankSentencesSingle(t *testing.T) {
	if scores := rankSentences([]string{"Only one."}); len(scores) != 1 || scores[0] != 1 {
		t.Fatalf("unexpected scores %v", scores)
	}
}
