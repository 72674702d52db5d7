package tempo

import "testing"

func TestConstantTempoRoundTrip(t *testing.T) {
	m, err := NewMap([]Change{{Tick: 0, BPM: 120}})
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	// at 120 BPM, one quarter note (480 ticks) takes 0.5s.
	if got := m.TickToTime(480); got != 0.5 {
		t.Fatalf("TickToTime(480) = %v, want 0.5", got)
	}
	if got := m.TimeToTick(0.5); got != 480 {
		t.Fatalf("TimeToTick(0.5) = %v, want 480", got)
	}
}

func TestImplicitLeadingChange(t *testing.T) {
	m, err := NewMap([]Change{{Tick: 960, BPM: 60}})
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	// before tick 960, defaults to 120 BPM: 960 ticks = 2 quarter notes = 1s.
	if got := m.TickToTime(960); got != 1.0 {
		t.Fatalf("TickToTime(960) = %v, want 1.0", got)
	}
	// after tick 960, 60 BPM: one quarter note (480 ticks) takes 1s.
	if got := m.TickToTime(1440); got != 2.0 {
		t.Fatalf("TickToTime(1440) = %v, want 2.0", got)
	}
}

func TestMultipleChangesMonotonic(t *testing.T) {
	m, err := NewMap([]Change{
		{Tick: 0, BPM: 120},
		{Tick: 960, BPM: 90},
		{Tick: 2880, BPM: 150},
	})
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	prev := -1.0
	for tick := 0; tick <= 4800; tick += 120 {
		cur := m.TickToTime(tick)
		if cur < prev {
			t.Fatalf("TickToTime not monotonic at tick %d: %v < %v", tick, cur, prev)
		}
		prev = cur
	}
}

func TestTickTimeRoundTripAcrossChanges(t *testing.T) {
	m, err := NewMap([]Change{
		{Tick: 0, BPM: 100},
		{Tick: 1000, BPM: 200},
	})
	if err != nil {
		t.Fatalf("NewMap: %v", err)
	}
	for tick := 0; tick <= 2000; tick += 37 {
		s := m.TickToTime(tick)
		back := m.TimeToTick(s)
		if back != tick {
			t.Fatalf("round trip broke at tick %d: time=%v back=%d", tick, s, back)
		}
	}
}

func TestNonPositiveBPMRejected(t *testing.T) {
	if _, err := NewMap([]Change{{Tick: 0, BPM: 0}}); err == nil {
		t.Fatalf("expected error for zero BPM")
	}
	if _, err := NewMap([]Change{{Tick: 0, BPM: -10}}); err == nil {
		t.Fatalf("expected error for negative BPM")
	}
}

func TestDuplicateTickRejected(t *testing.T) {
	if _, err := NewMap([]Change{{Tick: 0, BPM: 120}, {Tick: 0, BPM: 90}}); err == nil {
		t.Fatalf("expected error for duplicate tick")
	}
}
