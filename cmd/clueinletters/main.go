package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/clueinletters/internal/config"
	"github.com/csheth/clueinletters/internal/corpus"
	"github.com/csheth/clueinletters/internal/search"
	"github.com/csheth/clueinletters/internal/summary"
	"github.com/csheth/clueinletters/internal/tui"
)

type options struct {
	configPath  string
	envFile     string
	noAltScreen bool
	noMouse     bool
	printSearch string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	cfg, opts, err := resolveConfig(args)
	if err != nil {
		return err
	}

	if cfg.DebugLog != "" {
		f, err := tea.LogToFile(cfg.DebugLog, "clueinletters")
		if err != nil {
			return fmt.Errorf("open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	src, err := corpus.Loader{}.Load(context.Background(), cfg.Corpus.Documents)
	if err != nil {
		return err
	}
	if opts.printSearch != "" {
		return printSearch(stdout, src.Text(), opts.printSearch)
	}

	client, err := summary.New(cfg.SummaryConfig())
	if err != nil {
		fmt.Fprintln(os.Stderr, "summaries disabled:", err)
	}

	programOpts := []tea.ProgramOption{}
	if !opts.noAltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if !opts.noMouse {
		programOpts = append(programOpts, tea.WithMouseAllMotion())
	}
	program := tea.NewProgram(
		tui.New(tui.Config{
			Store:       corpus.NewStore(src),
			Speed:       cfg.Scroll.Speed(),
			Position:    cfg.Scroll.Position,
			Width:       cfg.Scroll.Width,
			UploadLimit: cfg.Corpus.UploadLimit,
			Summarizer:  client,
		}),
		programOpts...,
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// resolveConfig layers defaults, the config file, the environment and then
// only the flags that were given explicitly.
func resolveConfig(args []string) (config.Config, options, error) {
	cfg := config.Defaults()
	var opts options

	fs := flag.NewFlagSet("clueinletters", flag.ContinueOnError)
	fs.StringVar(&opts.configPath, "config", "", "path to a TOML config file")
	fs.StringVar(&opts.envFile, "env-file", ".env", "dotenv file to load before reading CLUE_* variables")
	fs.BoolVar(&opts.noAltScreen, "no-alt-screen", false, "disable the alternate screen buffer")
	fs.BoolVar(&opts.noMouse, "no-mouse", false, "disable mouse hover and click")
	fs.StringVar(&opts.printSearch, "print-search", "", "print hover count, sentence count and HTML matches for a word, then exit")
	documents := fs.String("corpus", "", "comma separated .txt paths or http(s) URLs joined into the default text")
	width := fs.Int("width", cfg.Scroll.Width, "characters shown in the ribbon")
	speed := fs.Int("speed", cfg.Scroll.Position, "initial speed slider position")
	uploadLimit := fs.Int64("upload-limit", cfg.Corpus.UploadLimit, "largest accepted upload in bytes")
	provider := fs.String("summary", cfg.Summary.Provider, "summary provider: textrank, backend, ollama or openai")
	endpoint := fs.String("summary-endpoint", "", "summary backend URL (backend: http://localhost:5000)")
	model := fs.String("summary-model", "", "model name for ollama or openai")
	debugLog := fs.String("debug-log", "", "write debug logs to this file")
	if err := fs.Parse(args); err != nil {
		return cfg, opts, err
	}

	if err := config.LoadFile(opts.configPath, &cfg); err != nil {
		return cfg, opts, err
	}
	if err := config.LoadDotEnv(opts.envFile); err != nil {
		return cfg, opts, err
	}
	if err := config.ApplyEnv(&cfg); err != nil {
		return cfg, opts, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "corpus":
			cfg.Corpus.Documents = config.SplitList(*documents)
		case "width":
			cfg.Scroll.Width = *width
		case "speed":
			cfg.Scroll.Position = *speed
		case "upload-limit":
			cfg.Corpus.UploadLimit = *uploadLimit
		case "summary":
			cfg.Summary.Provider = *provider
		case "summary-endpoint":
			cfg.Summary.Endpoint = *endpoint
		case "summary-model":
			cfg.Summary.Model = *model
		case "debug-log":
			cfg.DebugLog = *debugLog
		}
	})
	return cfg, opts, cfg.Validate()
}

func printSearch(w io.Writer, text, word string) error {
	result := search.FindSentences(text, word)
	_, err := fmt.Fprintf(w, "hover count: %d\nsentences: %d\n%s\n",
		search.CountWholeWord(text, word), result.Occurrences, result.HTML())
	return err
}
