package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestResolveConfigPrecedence(t *testing.T) {
	t.Setenv("CLUE_WIDTH", "300")
	t.Setenv("CLUE_SPEED", "600")
	configPath := writeTemp(t, "clue.toml", "[scroll]\nwidth = 100\nposition = 700\n\n[summary]\nprovider = \"ollama\"\n")
	missingEnv := filepath.Join(t.TempDir(), "absent.env")

	cfg, opts, err := resolveConfig([]string{"-config", configPath, "-env-file", missingEnv, "-speed", "900", "-no-mouse"})
	if err != nil {
		t.Fatalf("resolveConfig: %v", err)
	}
	if cfg.Scroll.Width != 300 {
		t.Fatalf("env should beat the config file, width = %d", cfg.Scroll.Width)
	}
	if cfg.Scroll.Position != 900 {
		t.Fatalf("flag should beat env, position = %d", cfg.Scroll.Position)
	}
	if cfg.Summary.Provider != "ollama" {
		t.Fatalf("config file value lost, provider = %q", cfg.Summary.Provider)
	}
	if !opts.noMouse || opts.noAltScreen {
		t.Fatalf("unexpected options %+v", opts)
	}
}

func TestResolveConfigRejectsInvalidValues(t *testing.T) {
	missingEnv := filepath.Join(t.TempDir(), "absent.env")
	if _, _, err := resolveConfig([]string{"-env-file", missingEnv, "-width", "0"}); err == nil {
		t.Fatal("expected validation error for zero width")
	}
	if _, _, err := resolveConfig([]string{"-env-file", missingEnv, "-summary", "crystal-ball"}); err == nil {
		t.Fatal("expected validation error for unknown provider")
	}
}

func TestPrintSearchMode(t *testing.T) {
	corpusPath := writeTemp(t, "clues.txt", "A clue in <letters>. No match here! Clue again.")
	missingEnv := filepath.Join(t.TempDir(), "absent.env")

	var out bytes.Buffer
	err := run([]string{"-env-file", missingEnv, "-corpus", corpusPath, "-print-search", "clue"}, &out)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	got := out.String()
	for _, want := range []string{
		"hover count: 2\n",
		"sentences: 2\n",
		`A <span class="highlight">clue</span> in &lt;letters&gt;.<br/><br/><span class="highlight">Clue</span> again.`,
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("output missing %q:\n%s", want, got)
		}
	}
}

func TestPrintSearchUsesBuiltinCorpus(t *testing.T) {
	t.Setenv("CLUE_CORPUS", "")
	missingEnv := filepath.Join(t.TempDir(), "absent.env")
	var out bytes.Buffer
	if err := run([]string{"-env-file", missingEnv, "-print-search", "the"}, &out); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(out.String(), "hover count: ") || strings.HasPrefix(out.String(), "hover count: 0\n") {
		t.Fatalf("builtin corpus should contain \"the\":\n%s", out.String())
	}
}
