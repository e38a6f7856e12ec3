package tui

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindUpload  jobKind = "upload"
	jobKindSummary jobKind = "summary"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID          string
	Kind        jobKind
	Status      jobStatus
	StartedAt   time.Time
	CompletedAt time.Time
	Err         string
	Duration    time.Duration
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus runs background work as tea.Cmds and keeps a table of what is in
// flight for the status bar. Only the update loop touches active.
type jobBus struct {
	counter int64
	active  map[string]jobSnapshot
}

func newJobBus() *jobBus {
	return &jobBus{active: map[string]jobSnapshot{}}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	id := b.nextID(kind)
	started := time.Now()
	startSnapshot := jobSnapshot{ID: id, Kind: kind, Status: jobStatusRunning, StartedAt: started}
	startCmd := func() tea.Msg {
		return jobSignalMsg{Snapshot: startSnapshot}
	}

	runCmd := func() tea.Msg {
		payload, err := runner(context.Background())
		snapshot := jobSnapshot{
			ID:          id,
			Kind:        kind,
			StartedAt:   started,
			CompletedAt: time.Now(),
		}
		if err != nil {
			snapshot.Status = jobStatusFailed
			snapshot.Err = err.Error()
		} else {
			snapshot.Status = jobStatusSucceeded
		}
		snapshot.Duration = snapshot.CompletedAt.Sub(started)
		log.Printf("[jobs] %s %s (duration=%s, err=%v)", kind, snapshot.Status, snapshot.Duration, err)
		return jobResultEnvelope{Snapshot: snapshot, Payload: payload}
	}

	return tea.Sequence(startCmd, runCmd)
}

func (b *jobBus) track(snapshot jobSnapshot) {
	if snapshot.Status == jobStatusRunning {
		b.active[snapshot.ID] = snapshot
		return
	}
	delete(b.active, snapshot.ID)
}

func (b *jobBus) running(kind jobKind) bool {
	for _, snap := range b.active {
		if snap.Kind == kind {
			return true
		}
	}
	return false
}

// badges lists running jobs oldest first, e.g. "summary 3s".
func (b *jobBus) badges(now time.Time) []string {
	snaps := make([]jobSnapshot, 0, len(b.active))
	for _, snap := range b.active {
		snaps = append(snaps, snap)
	}
	sort.Slice(snaps, func(i, j int) bool {
		return snaps[i].StartedAt.Before(snaps[j].StartedAt)
	})
	out := make([]string, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, fmt.Sprintf("%s %s", snap.Kind, now.Sub(snap.StartedAt).Truncate(time.Second)))
	}
	return out
}
