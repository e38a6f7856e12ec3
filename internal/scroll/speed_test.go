package scroll

import (
	"testing"
	"time"
)

func TestSpeedIntervalInvertsPosition(t *testing.T) {
	speed := DefaultSpeed()
	if got := speed.Interval(DefaultPosition); got != 200*time.Millisecond {
		t.Fatalf("default position should give 200ms, got %s", got)
	}
	prev := speed.Interval(speed.Min)
	for pos := speed.Min + speed.Step; pos <= speed.Max; pos += speed.Step {
		cur := speed.Interval(pos)
		if cur > prev {
			t.Fatalf("interval grew from %s to %s at position %d", prev, cur, pos)
		}
		prev = cur
	}
}

func TestSpeedIntervalNeverBelowFloor(t *testing.T) {
	speed := DefaultSpeed()
	if got := speed.Interval(speed.Max); got != speed.Floor {
		t.Fatalf("max position should clamp to floor %s, got %s", speed.Floor, got)
	}
	if got := speed.Interval(speed.Max + 500); got != speed.Floor {
		t.Fatalf("out-of-range position should clamp, got %s", got)
	}
}

func TestSpeedStepsAreBounded(t *testing.T) {
	speed := DefaultSpeed()
	if got := speed.Faster(speed.Max - 10); got != speed.Max {
		t.Fatalf("faster should clamp at max, got %d", got)
	}
	if got := speed.Slower(speed.Min + 10); got != speed.Min {
		t.Fatalf("slower should clamp at min, got %d", got)
	}
	if got := speed.Faster(500); got != 550 {
		t.Fatalf("faster should add one step, got %d", got)
	}
}

func TestSpeedValidate(t *testing.T) {
	cases := []struct {
		name  string
		speed Speed
		ok    bool
	}{
		{name: "default", speed: DefaultSpeed(), ok: true},
		{name: "inverted bounds", speed: Speed{Min: 10, Max: 5, Step: 1, Floor: time.Millisecond}},
		{name: "zero step", speed: Speed{Min: 0, Max: 1000, Step: 0, Floor: time.Millisecond}},
		{name: "zero floor", speed: Speed{Min: 0, Max: 1000, Step: 50}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.speed.Validate()
			if tc.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}
