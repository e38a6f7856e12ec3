// Package summary is the boundary to the summarization backends. Callers hand
// over the visible text and get one short summary back; how it is produced is
// the provider's business.
package summary

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"
)

// Provider names a summarization backend.
type Provider string

const (
	ProviderBackend  Provider = "backend"
	ProviderOllama   Provider = "ollama"
	ProviderOpenAI   Provider = "openai"
	ProviderTextRank Provider = "textrank"
)

const (
	defaultBackendURL  = "http://localhost:5000"
	defaultOllamaHost  = "http://localhost:11434"
	defaultOllamaModel = "ministral-3:latest"
	defaultOpenAIModel = "gpt-4o-mini"
	defaultSentences   = 1
	maxSummaryChars    = 60_000
	defaultHTTPTimeout = 2 * time.Minute
)

// Config describes how to build a summarization client.
type Config struct {
	Provider   Provider
	Endpoint   string
	Model      string
	APIKey     string
	Sentences  int
	HTTPClient *http.Client
}

// Client produces a summary for a block of text.
type Client interface {
	Summarize(ctx context.Context, text string) (string, error)
	Name() string
}

// New builds the client for cfg.Provider, filling gaps from the environment.
func New(cfg Config) (Client, error) {
	switch cfg.Provider {
	case "", ProviderTextRank:
		sentences := cfg.Sentences
		if sentences <= 0 {
			sentences = defaultSentences
		}
		return &textRankClient{sentences: sentences}, nil
	case ProviderBackend:
		endpoint := firstNonEmpty(cfg.Endpoint, os.Getenv("CLUE_BACKEND_URL"), defaultBackendURL)
		return &backendClient{
			endpoint: strings.TrimRight(endpoint, "/"),
			client:   pickHTTPClient(cfg.HTTPClient),
		}, nil
	case ProviderOllama:
		host := firstNonEmpty(cfg.Endpoint, os.Getenv("OLLAMA_HOST"), defaultOllamaHost)
		model := firstNonEmpty(cfg.Model, os.Getenv("OLLAMA_MODEL"), defaultOllamaModel)
		return &ollamaClient{
			host:   strings.TrimRight(host, "/"),
			model:  model,
			client: pickHTTPClient(cfg.HTTPClient),
		}, nil
	case ProviderOpenAI:
		key := firstNonEmpty(cfg.APIKey, os.Getenv("OPENAI_API_KEY"))
		if key == "" {
			return nil, fmt.Errorf("openai provider requires OPENAI_API_KEY")
		}
		model := firstNonEmpty(cfg.Model, os.Getenv("OPENAI_MODEL"), defaultOpenAIModel)
		return newOpenAIClient(key, model, cfg.Endpoint, pickHTTPClient(cfg.HTTPClient)), nil
	default:
		return nil, fmt.Errorf("unknown summary provider %q", cfg.Provider)
	}
}

func pickHTTPClient(custom *http.Client) *http.Client {
	if custom != nil {
		return custom
	}
	// Model backends can take well over a minute; the caller's context still bounds each call.
	return &http.Client{Timeout: defaultHTTPTimeout}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}

func clipText(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 || len(text) <= limit {
		return text
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}

func buildSummaryPrompt(text string) string {
	return "Extract the single most important sentence from the passage below. " +
		"Reply with that sentence only, in the passage's own language.\n\n" +
		"Passage:\n" + text
}
