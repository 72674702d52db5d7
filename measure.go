package notation

// RepeatFlags is a bitset of the repeat-barline markings a Measure can
// carry. A measure can be a repeat start, a repeat end, or the carrier of a
// jump directive (or any combination, e.g. a single-measure repeat is both
// START and END on the same measure).
type RepeatFlags uint8

const (
	RepeatStart RepeatFlags = 1 << iota
	RepeatEnd
	RepeatJump
)

// Has reports whether f contains all the bits set in flag.
func (f RepeatFlags) Has(flag RepeatFlags) bool {
	return f&flag == flag
}

// Directive is either a Jump or a Marker attached to a Measure. It is
// modeled as a narrow interface over two otherwise unrelated structs
// rather than a shared base type.
type Directive interface {
	directive()
}

// Jump is a D.C./D.S.-style once-only jump directive. JumpTo names the
// measure to jump to; PlayUntil names the measure at which the jump's
// effect terminates; ContinueAt, if non-empty, names where playback
// resumes once PlayUntil is reached.
type Jump struct {
	JumpTo     string
	PlayUntil  string
	ContinueAt string
}

func (*Jump) directive() {}

// Marker attaches a named anchor to a measure (e.g. "segno", "coda",
// "fine", or a user-defined label). The sentinel labels "start" and "end"
// are resolved by MeasureView directly and never need a Marker.
type Marker struct {
	Label string
}

func (*Marker) directive() {}

// Measure is one bar of music: the unit the unwinder reasons about. Ticks
// and lengths are local to the score; Index is the measure's zero-based
// position in score order.
//
// PlaybackCount is mutated by the unwinder: reset to 0 at the start of
// every Unwind and incremented once per physical visit. It is the one
// deliberate exception to every other field here being read-only to the
// core.
type Measure struct {
	Index         int
	Tick          int
	Length        int
	Flags         RepeatFlags
	RepeatCount   int // how many times an END measure should replay; >= 2 when Flags has RepeatEnd and the repeat is meant to loop
	SectionBreak  bool
	Directives    []Directive
	PlaybackCount int
}

// EndTick returns the tick immediately after the measure.
func (m *Measure) EndTick() int {
	return m.Tick + m.Length
}

// Jump returns the first Jump directive attached to m, or nil if the
// measure carries none (even if it carries RepeatJump).
func (m *Measure) Jump() *Jump {
	for _, d := range m.Directives {
		if j, ok := d.(*Jump); ok {
			return j
		}
	}
	return nil
}

// marker returns the first Marker directive attached to m whose label
// equals s, or nil.
func (m *Measure) marker(s string) *Marker {
	for _, d := range m.Directives {
		if mk, ok := d.(*Marker); ok && mk.Label == s {
			return mk
		}
	}
	return nil
}
