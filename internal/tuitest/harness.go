package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 120
	defaultHeight  = 32
	defaultTimeout = 5 * time.Second
)

// Step is one scripted interaction. The harness sleeps Delay, then, when
// WaitFor is set, blocks until a drawn frame contains that text, and finally
// writes Input to the terminal.
type Step struct {
	Delay   time.Duration
	WaitFor string
	Input   []byte
}

// Config describes the program to drive and the terminal it gets.
type Config struct {
	Command          []string
	Dir              string
	Env              []string
	Width            int
	Height           int
	Steps            []Step
	Timeout          time.Duration
	AllowedExitCodes []int
	AllowInterrupt   bool
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// session owns the PTY of one run and the bytes drawn on it so far.
type session struct {
	ptmx *os.File

	mu     sync.Mutex
	output bytes.Buffer

	// grew is nudged after every chunk; done closes when the PTY is drained.
	grew chan struct{}
	done chan struct{}
}

func newSession(ptmx *os.File) *session {
	return &session{ptmx: ptmx, grew: make(chan struct{}, 1), done: make(chan struct{})}
}

// pump copies the program's output into the buffer, answering terminal
// queries on the way, until the PTY closes.
func (s *session) pump() {
	defer close(s.done)
	responder := newTerminalResponder(s.ptmx)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			responder.Process(buf[:n])
			s.mu.Lock()
			s.output.Write(buf[:n])
			s.mu.Unlock()
			select {
			case s.grew <- struct{}{}:
			default:
			}
		}
		if err != nil {
			return
		}
	}
}

func (s *session) raw() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return bytes.Clone(s.output.Bytes())
}

func (s *session) recording() *Recording {
	raw := s.raw()
	return &Recording{Raw: raw, Frames: parseFrames(raw)}
}

// waitFor blocks until some frame drawn so far contains needle.
func (s *session) waitFor(ctx context.Context, needle string) error {
	for {
		if _, ok := s.recording().FindFrame(needle); ok {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("tuitest: waiting for %q: %w", needle, ctx.Err())
		case <-s.done:
			if _, ok := s.recording().FindFrame(needle); ok {
				return nil
			}
			return fmt.Errorf("tuitest: program stopped before drawing %q", needle)
		case <-s.grew:
		}
	}
}

func (s *session) play(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if step.Delay > 0 {
			select {
			case <-ctx.Done():
				return fmt.Errorf("tuitest: step %d: %w", i, ctx.Err())
			case <-time.After(step.Delay):
			}
		}
		if step.WaitFor != "" {
			if err := s.waitFor(ctx, step.WaitFor); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		}
		if len(step.Input) > 0 {
			if _, err := s.ptmx.Write(step.Input); err != nil {
				return fmt.Errorf("tuitest: step %d: write input: %w", i, err)
			}
		}
	}
	return nil
}

// Run starts cfg.Command inside a PTY, plays the steps and records every
// byte the program draws until it exits.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	width, height, timeout := cfg.Width, cfg.Height, cfg.Timeout
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(height), Cols: uint16(width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	defer func() { _ = ptmx.Close() }()

	s := newSession(ptmx)
	go s.pump()

	start := time.Now()
	if err := s.play(ctx, cfg.Steps); err != nil {
		if final, ok := s.recording().FinalFrame(); ok {
			return nil, fmt.Errorf("%w\nlast frame:\n%s", err, final.Plain)
		}
		return nil, err
	}

	waitErr := make(chan error, 1)
	go func() {
		waitErr <- cmd.Wait()
	}()
	select {
	case err := <-waitErr:
		if err != nil && !exitAllowed(err, cfg) {
			return nil, fmt.Errorf("tuitest: program exited with error: %w", err)
		}
	case <-ctx.Done():
		return nil, fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	}

	// Closing the PTY ends the pump once the remaining output is read.
	_ = ptmx.Close()
	<-s.done

	rec := s.recording()
	rec.Duration = time.Since(start)
	return rec, nil
}

func exitAllowed(err error, cfg Config) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		for _, code := range cfg.AllowedExitCodes {
			if exitErr.ExitCode() == code {
				return true
			}
		}
	}
	return cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt")
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	for _, entry := range env {
		if strings.HasPrefix(entry, "TERM=") {
			return env
		}
	}
	return append(env, "TERM=xterm-256color")
}
