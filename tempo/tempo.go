// Package tempo implements notation.TempoMap as a piecewise-linear
// tick/second mapping driven by BPM change points, the concrete
// collaborator the core's unwinder treats as a black box.
package tempo

import (
	"fmt"
	"math"
	"sort"
)

// PPQ is the number of ticks per quarter note used throughout this
// repository, shared unchanged with the midiexport package's SMF output.
const PPQ = 480

// Change is a single tempo-change point: from tick onward, the piece plays
// at BPM quarter notes per minute, until superseded by the next Change.
type Change struct {
	Tick int
	BPM  float64
}

// segment is one constant-tempo span, precomputed at NewMap time so both
// TickToTime and TimeToTick can binary-search without recomputing the
// running integral on every call.
type segment struct {
	tick     int
	time     float64
	bpm      float64
	ticksSec float64 // ticks per second at this segment's tempo
}

// Map is a concrete TempoMap built from a list of Changes.
type Map struct {
	segments []segment
}

// NewMap builds a Map from changes. Changes are sorted by Tick; if the
// first entry's Tick is not 0, an implicit 120 BPM change at tick 0 is
// prepended. NewMap returns an
// error if any BPM is not strictly positive, or two changes share a tick.
func NewMap(changes []Change) (*Map, error) {
	cs := make([]Change, len(changes))
	copy(cs, changes)
	sort.Slice(cs, func(i, j int) bool { return cs[i].Tick < cs[j].Tick })

	if len(cs) == 0 || cs[0].Tick != 0 {
		cs = append([]Change{{Tick: 0, BPM: 120}}, cs...)
	}

	m := &Map{segments: make([]segment, len(cs))}
	t := 0.0
	for i, c := range cs {
		if c.BPM <= 0 {
			return nil, fmt.Errorf("tempo: change at tick %d has non-positive BPM %v", c.Tick, c.BPM)
		}
		if i > 0 {
			if c.Tick == cs[i-1].Tick {
				return nil, fmt.Errorf("tempo: duplicate change at tick %d", c.Tick)
			}
			prev := m.segments[i-1]
			t += float64(c.Tick-prev.tick) / prev.ticksSec
		}
		m.segments[i] = segment{
			tick:     c.Tick,
			time:     t,
			bpm:      c.BPM,
			ticksSec: c.BPM * float64(PPQ) / 60,
		}
	}
	return m, nil
}

// TickToTime implements notation.TempoMap.
func (m *Map) TickToTime(tick int) float64 {
	s := m.segmentForTick(tick)
	return s.time + float64(tick-s.tick)/s.ticksSec
}

// TimeToTick implements notation.TempoMap.
func (m *Map) TimeToTick(seconds float64) int {
	s := m.segmentForTime(seconds)
	return s.tick + int(math.Round((seconds-s.time)*s.ticksSec))
}

func (m *Map) segmentForTick(tick int) segment {
	i := sort.Search(len(m.segments), func(i int) bool { return m.segments[i].tick > tick })
	if i == 0 {
		i = 1
	}
	return m.segments[i-1]
}

func (m *Map) segmentForTime(seconds float64) segment {
	i := sort.Search(len(m.segments), func(i int) bool { return m.segments[i].time > seconds })
	if i == 0 {
		i = 1
	}
	return m.segments[i-1]
}
