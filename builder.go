package notation

// Builder assembles a Score one measure at a time, computing each
// measure's Tick from the running total of its predecessors' lengths.
// It is used both by the scorefile loader and by this package's own
// tests, so score fixtures never need to compute ticks by hand.
type Builder struct {
	score Score
	tick  int
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// MeasureOption configures a measure as it is added to a Builder.
type MeasureOption func(*Measure)

// Start marks the measure as a repeat start.
func Start() MeasureOption {
	return func(m *Measure) { m.Flags |= RepeatStart }
}

// End marks the measure as a repeat end that should play count times in
// total (count must be >= 2 for the repeat to actually loop; 1 behaves
// like a plain barline, per the unwinder's handling of RepeatCount).
func End(count int) MeasureOption {
	return func(m *Measure) {
		m.Flags |= RepeatEnd
		m.RepeatCount = count
	}
}

// WithJump attaches a jump directive and sets the jump flag.
func WithJump(j *Jump) MeasureOption {
	return func(m *Measure) {
		m.Flags |= RepeatJump
		m.Directives = append(m.Directives, j)
	}
}

// WithMarker attaches a named marker.
func WithMarker(label string) MeasureOption {
	return func(m *Measure) {
		m.Directives = append(m.Directives, &Marker{Label: label})
	}
}

// WithSectionBreak marks the measure as ending a section.
func WithSectionBreak() MeasureOption {
	return func(m *Measure) { m.SectionBreak = true }
}

// Measure appends a measure of the given length (in ticks) and returns it
// for further inspection if needed.
func (b *Builder) Measure(length int, opts ...MeasureOption) *Measure {
	m := &Measure{
		Index:  len(b.score.Measures),
		Tick:   b.tick,
		Length: length,
	}
	for _, opt := range opts {
		opt(m)
	}
	b.score.Measures = append(b.score.Measures, m)
	b.tick += length
	return m
}

// Volta adds a volta spanning the measures with indices [fromIdx, toIdx]
// inclusive (both already added via Measure), applying to the given
// 1-based repeat passes.
func (b *Builder) Volta(fromIdx, toIdx int, endings ...int) *Volta {
	from := b.score.Measures[fromIdx]
	to := b.score.Measures[toIdx]
	v := NewVolta(from.Tick, to.EndTick(), endings...)
	b.score.Voltas = append(b.score.Voltas, v)
	return v
}

// Score returns the assembled Score. The Builder remains usable
// afterwards; further Measure/Volta calls keep extending the same score.
func (b *Builder) Score() *Score {
	return &b.score
}
