package summary

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// backendClient talks to the standalone summarizer service:
// POST /run-script {"text": ...} -> {"output": ...} or {"error": ...}.
type backendClient struct {
	endpoint string
	client   *http.Client
}

func (c *backendClient) Name() string {
	return fmt.Sprintf("Backend (%s)", c.endpoint)
}

func (c *backendClient) Summarize(ctx context.Context, text string) (string, error) {
	text = clipText(text, maxSummaryChars)
	if text == "" {
		return "", fmt.Errorf("text empty; cannot summarize")
	}
	buf, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/run-script", bytes.NewReader(buf))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error connecting to the backend: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var parsed struct {
		Output string `json:"output"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		if resp.StatusCode >= 400 {
			return "", fmt.Errorf("backend error: %s", resp.Status)
		}
		return "", fmt.Errorf("backend returned malformed JSON: %w", err)
	}
	if resp.StatusCode >= 400 {
		if parsed.Error != "" {
			return "", fmt.Errorf("backend error: %s", parsed.Error)
		}
		return "", fmt.Errorf("backend error: %s", resp.Status)
	}
	output := strings.TrimSpace(parsed.Output)
	if output == "" {
		return "", fmt.Errorf("backend returned an empty summary")
	}
	return output, nil
}
