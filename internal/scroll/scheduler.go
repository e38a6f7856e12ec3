package scroll

import (
	"log"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// State is the RUNNING/PAUSED flag of the ribbon.
type State int

const (
	Running State = iota
	Paused
)

func (s State) String() string {
	if s == Paused {
		return "PAUSED"
	}
	return "RUNNING"
}

// TickMsg fires once per interval while the scheduler is running.
type TickMsg struct {
	Time time.Time
	// Generation is the corpus generation the tick was armed for.
	Generation uint64

	id  int
	tag int
}

var lastID int64

// Scheduler owns the repeating tick. Each arm is stamped with a tag; bumping
// the tag cancels whatever tick is already in flight.
type Scheduler struct {
	id         int
	tag        int
	state      State
	interval   time.Duration
	generation uint64
	stopped    bool
}

// NewScheduler returns a running scheduler with the given cadence.
func NewScheduler(interval time.Duration) *Scheduler {
	return &Scheduler{
		id:       int(atomic.AddInt64(&lastID, 1)),
		state:    Running,
		interval: interval,
	}
}

func (s *Scheduler) State() State { return s.state }

func (s *Scheduler) Interval() time.Duration { return s.interval }

// Start binds the scheduler to a corpus generation and arms the first tick.
func (s *Scheduler) Start(generation uint64) tea.Cmd {
	s.generation = generation
	s.stopped = false
	return s.rearm()
}

// Toggle flips between RUNNING and PAUSED.
func (s *Scheduler) Toggle() tea.Cmd {
	if s.state == Running {
		s.Pause()
		return nil
	}
	return s.Resume()
}

// Pause cancels the in-flight tick. Only an explicit Resume or Toggle restarts it.
func (s *Scheduler) Pause() {
	if s.state == Paused {
		return
	}
	s.state = Paused
	s.tag++
	log.Printf("[scroll] paused")
}

// Resume restarts ticking from PAUSED.
func (s *Scheduler) Resume() tea.Cmd {
	if s.state == Running {
		return nil
	}
	s.state = Running
	log.Printf("[scroll] resumed (interval=%s)", s.interval)
	return s.rearm()
}

// SetInterval replaces the cadence, cancelling the current timer.
func (s *Scheduler) SetInterval(d time.Duration) tea.Cmd {
	if d <= 0 || d == s.interval {
		return nil
	}
	s.interval = d
	log.Printf("[scroll] interval=%s", d)
	return s.rearm()
}

// Rebind follows a corpus replacement: stale ticks are dropped and, when
// running, a fresh timer starts for the new generation.
func (s *Scheduler) Rebind(generation uint64) tea.Cmd {
	s.generation = generation
	return s.rearm()
}

// Stop tears the scheduler down; no further ticks are accepted.
func (s *Scheduler) Stop() {
	s.stopped = true
	s.tag++
}

// Accept reports whether msg belongs to the live timer and, if so, returns
// the command arming the next tick.
func (s *Scheduler) Accept(msg TickMsg) (bool, tea.Cmd) {
	if s.stopped || s.state != Running {
		return false, nil
	}
	if msg.id != s.id || msg.tag != s.tag || msg.Generation != s.generation {
		return false, nil
	}
	return true, s.tick()
}

func (s *Scheduler) rearm() tea.Cmd {
	s.tag++
	if s.stopped || s.state != Running {
		return nil
	}
	return s.tick()
}

func (s *Scheduler) tick() tea.Cmd {
	id, tag, generation := s.id, s.tag, s.generation
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return TickMsg{Time: t, Generation: generation, id: id, tag: tag}
	})
}
