// Package config resolves runtime settings. Precedence, lowest first:
// Defaults, the TOML file, the environment (including .env), command-line flags.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/csheth/clueinletters/internal/corpus"
	"github.com/csheth/clueinletters/internal/scroll"
	"github.com/csheth/clueinletters/internal/summary"
)

type Corpus struct {
	Documents   []string `toml:"documents"`
	UploadLimit int64    `toml:"upload-limit"`
}

type Scroll struct {
	Width     int `toml:"width"`
	Position  int `toml:"position"`
	SpeedMin  int `toml:"speed-min"`
	SpeedMax  int `toml:"speed-max"`
	SpeedStep int `toml:"speed-step"`
	FloorMS   int `toml:"floor-ms"`
}

type Summary struct {
	Provider  string `toml:"provider"`
	Endpoint  string `toml:"endpoint"`
	Model     string `toml:"model"`
	Sentences int    `toml:"sentences"`
}

type Config struct {
	Corpus   Corpus  `toml:"corpus"`
	Scroll   Scroll  `toml:"scroll"`
	Summary  Summary `toml:"summary"`
	DebugLog string  `toml:"debug-log"`
}

func Defaults() Config {
	speed := scroll.DefaultSpeed()
	return Config{
		Corpus: Corpus{UploadLimit: corpus.DefaultUploadLimit},
		Scroll: Scroll{
			Width:     scroll.DefaultWidth,
			Position:  scroll.DefaultPosition,
			SpeedMin:  speed.Min,
			SpeedMax:  speed.Max,
			SpeedStep: speed.Step,
			FloorMS:   int(speed.Floor / time.Millisecond),
		},
		Summary: Summary{
			Provider:  string(summary.ProviderTextRank),
			Sentences: 1,
		},
	}
}

// Speed converts the slider settings into scroll.Speed.
func (s Scroll) Speed() scroll.Speed {
	return scroll.Speed{
		Min:   s.SpeedMin,
		Max:   s.SpeedMax,
		Step:  s.SpeedStep,
		Floor: time.Duration(s.FloorMS) * time.Millisecond,
	}
}

// SummaryConfig builds the summarizer settings. Provider specific secrets
// (OPENAI_API_KEY, OLLAMA_HOST) are picked up by the summary package itself.
func (c Config) SummaryConfig() summary.Config {
	return summary.Config{
		Provider:  summary.Provider(c.Summary.Provider),
		Endpoint:  c.Summary.Endpoint,
		Model:     c.Summary.Model,
		Sentences: c.Summary.Sentences,
	}
}

// LoadFile overlays the TOML file at path onto cfg. An empty path is a no-op;
// unknown keys are rejected so typos do not silently fall back to defaults.
func LoadFile(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			return fmt.Errorf("%s: %v\n%s", path, err, derr.String())
		}
		var serr *toml.StrictMissingError
		if errors.As(err, &serr) {
			return fmt.Errorf("%s: %v\n%s", path, err, serr.String())
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// LoadDotEnv loads .env files into the process environment. Missing files are
// fine; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overlays CLUE_* variables onto cfg.
func ApplyEnv(cfg *Config) error {
	if v := os.Getenv("CLUE_CORPUS"); v != "" {
		cfg.Corpus.Documents = SplitList(v)
	}
	ints := []struct {
		key string
		dst *int
	}{
		{"CLUE_WIDTH", &cfg.Scroll.Width},
		{"CLUE_SPEED", &cfg.Scroll.Position},
		{"CLUE_SUMMARY_SENTENCES", &cfg.Summary.Sentences},
	}
	for _, item := range ints {
		v := strings.TrimSpace(os.Getenv(item.key))
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", item.key, err)
		}
		*item.dst = n
	}
	if v := strings.TrimSpace(os.Getenv("CLUE_UPLOAD_LIMIT")); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("CLUE_UPLOAD_LIMIT: %w", err)
		}
		cfg.Corpus.UploadLimit = n
	}
	if v := os.Getenv("CLUE_SUMMARY_PROVIDER"); v != "" {
		cfg.Summary.Provider = strings.ToLower(strings.TrimSpace(v))
	}
	if v := os.Getenv("CLUE_SUMMARY_MODEL"); v != "" {
		cfg.Summary.Model = v
	}
	// The endpoint is shared by every provider; the backend URL only
	// applies when the backend is the one selected.
	if v := os.Getenv("CLUE_BACKEND_URL"); v != "" && cfg.Summary.Provider == string(summary.ProviderBackend) {
		cfg.Summary.Endpoint = v
	}
	if v := os.Getenv("CLUE_DEBUG_LOG"); v != "" {
		cfg.DebugLog = v
	}
	return nil
}

// SplitList splits a comma separated list, dropping blanks.
func SplitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func (c Config) Validate() error {
	if c.Scroll.Width <= 0 {
		return fmt.Errorf("scroll.width must be positive, got %d", c.Scroll.Width)
	}
	speed := c.Scroll.Speed()
	if err := speed.Validate(); err != nil {
		return err
	}
	if c.Scroll.Position < speed.Min || c.Scroll.Position > speed.Max {
		return fmt.Errorf("scroll.position %d outside [%d, %d]", c.Scroll.Position, speed.Min, speed.Max)
	}
	if c.Corpus.UploadLimit <= 0 {
		return fmt.Errorf("corpus.upload-limit must be positive, got %d", c.Corpus.UploadLimit)
	}
	switch summary.Provider(c.Summary.Provider) {
	case summary.ProviderTextRank, summary.ProviderBackend, summary.ProviderOllama, summary.ProviderOpenAI:
	default:
		return fmt.Errorf("summary.provider %q is not one of textrank, backend, ollama, openai", c.Summary.Provider)
	}
	if c.Summary.Sentences <= 0 {
		return fmt.Errorf("summary.sentences must be positive, got %d", c.Summary.Sentences)
	}
	return nil
}
