package scroll

import (
	"fmt"
	"time"
)

// Speed maps a bounded slider position to a tick interval. Raising the
// position shortens the interval, so the ribbon scrolls faster.
type Speed struct {
	Min   int
	Max   int
	Step  int
	Floor time.Duration
}

// DefaultPosition yields the 200ms cadence with DefaultSpeed.
const DefaultPosition = 800

// DefaultSpeed returns the stock slider bounds.
func DefaultSpeed() Speed {
	return Speed{Min: 100, Max: 1000, Step: 50, Floor: 20 * time.Millisecond}
}

// Validate rejects bounds that cannot produce a positive interval.
func (s Speed) Validate() error {
	if s.Max <= s.Min {
		return fmt.Errorf("speed: max (%d) must exceed min (%d)", s.Max, s.Min)
	}
	if s.Step <= 0 {
		return fmt.Errorf("speed: step must be positive, got %d", s.Step)
	}
	if s.Floor <= 0 {
		return fmt.Errorf("speed: floor must be positive, got %s", s.Floor)
	}
	return nil
}

// Clamp keeps pos within [Min, Max].
func (s Speed) Clamp(pos int) int {
	if pos < s.Min {
		return s.Min
	}
	if pos > s.Max {
		return s.Max
	}
	return pos
}

// Interval returns Max - pos milliseconds, never below Floor.
func (s Speed) Interval(pos int) time.Duration {
	d := time.Duration(s.Max-s.Clamp(pos)) * time.Millisecond
	if d < s.Floor {
		return s.Floor
	}
	return d
}

// Faster moves the slider one step up.
func (s Speed) Faster(pos int) int {
	return s.Clamp(pos + s.Step)
}

// Slower moves the slider one step down.
func (s Speed) Slower(pos int) int {
	return s.Clamp(pos - s.Step)
}

// Percent reports the slider position as 0-100 for the speed gauge.
func (s Speed) Percent(pos int) int {
	span := s.Max - s.Min
	if span <= 0 {
		return 0
	}
	return (s.Clamp(pos) - s.Min) * 100 / span
}
