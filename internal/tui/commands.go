package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"

	"github.com/csheth/clueinletters/internal/corpus"
	"github.com/csheth/clueinletters/internal/summary"
)

const summaryTimeout = 2 * time.Minute

// parseUploadPath accepts a path the way a shell would, so paths dropped into
// the terminal as '/tmp/my notes.txt' or /tmp/my\ notes.txt both work.
func parseUploadPath(input string) (string, error) {
	words, err := shellquote.Split(strings.TrimSpace(input))
	if err != nil {
		return "", fmt.Errorf("cannot read path %q: %w", input, err)
	}
	switch len(words) {
	case 0:
		return "", nil
	case 1:
		return words[0], nil
	default:
		return "", fmt.Errorf("expected one path, got %d", len(words))
	}
}

func uploadJob(path string, limit int64) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		src, err := corpus.ReadUpload(path, limit)
		if err != nil {
			return uploadResultMsg{name: filepath.Base(path), err: err}, err
		}
		return uploadResultMsg{name: filepath.Base(path), source: src}, nil
	}
}

func summaryJob(client summary.Client, text string) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, summaryTimeout)
		defer cancel()
		out, err := client.Summarize(ctx, text)
		return summaryResultMsg{summary: out, err: err}, err
	}
}
