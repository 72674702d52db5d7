package notation

// MeasureView is the read-only traversal and lookup surface the unwinder
// depends on. A Score is the only implementation in this repository, but
// the unwinder is coded against the interface so it never needs to know
// how a score was built (from a file, a test fixture, or otherwise).
type MeasureView interface {
	FirstMeasure() *Measure
	LastMeasure() *Measure
	Next(m *Measure) *Measure
	Prev(m *Measure) *Measure

	// SearchLabel returns the measure carrying a Marker whose label equals
	// s. The sentinel labels "start" and "end" short-circuit to
	// FirstMeasure/LastMeasure; an empty string always returns nil.
	SearchLabel(s string) *Measure

	// SearchVolta returns the volta whose span contains tick, or nil.
	SearchVolta(tick int) *Volta
}

// Score is a concrete, in-memory MeasureView: an ordered list of measures
// plus the voltas spanning them. It is the score-side collaborator the
// unwinder reads from; nothing in this package mutates it except the
// unwinder's own PlaybackCount resets and increments.
type Score struct {
	Measures []*Measure
	Voltas   []*Volta
}

// FirstMeasure implements MeasureView.
func (s *Score) FirstMeasure() *Measure {
	if len(s.Measures) == 0 {
		return nil
	}
	return s.Measures[0]
}

// LastMeasure implements MeasureView.
func (s *Score) LastMeasure() *Measure {
	if len(s.Measures) == 0 {
		return nil
	}
	return s.Measures[len(s.Measures)-1]
}

// Next implements MeasureView.
func (s *Score) Next(m *Measure) *Measure {
	if m == nil || m.Index+1 >= len(s.Measures) {
		return nil
	}
	return s.Measures[m.Index+1]
}

// Prev implements MeasureView.
func (s *Score) Prev(m *Measure) *Measure {
	if m == nil || m.Index <= 0 {
		return nil
	}
	return s.Measures[m.Index-1]
}

// SearchLabel implements MeasureView. It is O(n) in measure count, same as
// the source it is ported from; callers that need repeated lookups on a
// large score may build their own index on top of a Score.
func (s *Score) SearchLabel(label string) *Measure {
	switch label {
	case "start":
		return s.FirstMeasure()
	case "end":
		return s.LastMeasure()
	case "":
		return nil
	}
	for _, m := range s.Measures {
		if m.marker(label) != nil {
			return m
		}
	}
	return nil
}

// SearchVolta implements MeasureView. It returns the first volta (in score
// declaration order) whose span contains tick.
func (s *Score) SearchVolta(tick int) *Volta {
	for _, v := range s.Voltas {
		if v.Contains(tick) {
			return v
		}
	}
	return nil
}
