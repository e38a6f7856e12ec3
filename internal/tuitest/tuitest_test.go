package tuitest

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"testing"
	"time"
)

func TestParseFramesStripsEscapes(t *testing.T) {
	raw := []byte("\x1b[2J\x1b[HFirst \x1b[1mframe\x1b[0m   \r\n\r\n\x1b[2J\x1b[H\x1b]0;title\x07Second frame\r\n")
	frames := parseFrames(raw)
	if len(frames) != 2 {
		t.Fatalf("got %d frames, want 2: %+v", len(frames), frames)
	}
	if frames[0].Plain != "First frame" {
		t.Fatalf("frame 0 = %q", frames[0].Plain)
	}
	if frames[1].Plain != "Second frame" || frames[1].Index != 1 {
		t.Fatalf("frame 1 = %+v", frames[1])
	}
}

func TestRecordingFindFrame(t *testing.T) {
	rec := &Recording{Frames: []Frame{
		{Index: 0, Plain: "RUNNING\nribbon"},
		{Index: 1, Plain: "PAUSED\nribbon"},
	}}
	frame, ok := rec.FindFrame("PAUSED")
	if !ok || frame.Index != 1 {
		t.Fatalf("FindFrame = %+v, %v", frame, ok)
	}
	if _, ok := rec.FindFrame("missing"); ok {
		t.Fatal("unexpected match")
	}
	last, ok := rec.FinalFrame()
	if !ok || len(last.Lines()) != 2 {
		t.Fatalf("FinalFrame = %+v", last)
	}
	var empty *Recording
	if _, ok := empty.FindFrame("x"); ok {
		t.Fatal("nil recording should not match")
	}
}

func TestResponderAnswersInOrder(t *testing.T) {
	var out bytes.Buffer
	tr := newTerminalResponder(&out)
	tr.Process([]byte("junk\x1b]11;?\x07more\x1b[6"))
	tr.Process([]byte("n"))

	want := "\x1b]11;rgb:0000/0000/0000\x07\x1b[1;1R"
	if out.String() != want {
		t.Fatalf("responses = %q, want %q", out.String(), want)
	}
	tr.Process([]byte("plain output"))
	if out.String() != want {
		t.Fatal("no query, no response expected")
	}
}

func TestMouseEncoding(t *testing.T) {
	if got := MouseMove(4, 2); !bytes.Equal(got, []byte{0x1b, '[', 'M', 32 + 35, 32 + 5, 32 + 3}) {
		t.Fatalf("MouseMove = %v", got)
	}
	click := MouseClick(0, 0)
	if len(click) != 12 || click[3] != 32 || click[9] != 35 {
		t.Fatalf("MouseClick = %v", click)
	}
	if got := MouseMove(500, -3); got[4] != 222+33 || got[5] != 33 {
		t.Fatalf("coordinates not clamped: %v", got)
	}
}

func requireShell(t *testing.T) string {
	t.Helper()
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}
	return sh
}

func TestRunWaitsForFrameBeforeTyping(t *testing.T) {
	sh := requireShell(t)
	rec, err := Run(context.Background(), Config{
		Command: []string{sh, "-c", `printf 'ready\n'; read line; printf 'got %s\n' "$line"`},
		Steps: []Step{
			{WaitFor: "ready", Input: Keys("clue")},
			{Input: KeyEnter},
		},
		Timeout: 5 * time.Second,
	})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if _, ok := rec.FindFrame("got clue"); !ok {
		t.Fatalf("program never saw the typed input:\n%s", rec.Raw)
	}
}

func TestRunReportsMissingFrame(t *testing.T) {
	sh := requireShell(t)
	_, err := Run(context.Background(), Config{
		Command: []string{sh, "-c", "printf 'bye\\n'"},
		Steps:   []Step{{WaitFor: "never drawn"}},
		Timeout: 5 * time.Second,
	})
	if err == nil || !strings.Contains(err.Error(), "never drawn") {
		t.Fatalf("expected a wait error naming the text, got %v", err)
	}
}

func TestRunRejectsUnexpectedExitCode(t *testing.T) {
	sh := requireShell(t)
	cfg := Config{Command: []string{sh, "-c", "exit 3"}, Timeout: 5 * time.Second}
	if _, err := Run(context.Background(), cfg); err == nil {
		t.Fatal("exit status 3 should fail the run")
	}
	cfg.AllowedExitCodes = []int{3}
	if _, err := Run(context.Background(), cfg); err != nil {
		t.Fatalf("allowed exit code still failed: %v", err)
	}
}
