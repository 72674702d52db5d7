package notation

// Volta is a bracketed alternate ending spanning a half-open tick range
// [Tick, Tick2). Endings lists the 1-based repeat passes it applies to; a
// measure inside the span on a pass not listed is skipped by the
// unwinder.
type Volta struct {
	Tick    int
	Tick2   int
	Endings map[int]bool
}

// NewVolta builds a Volta covering [tick, tick2) that applies to the given
// 1-based pass numbers.
func NewVolta(tick, tick2 int, endings ...int) *Volta {
	v := &Volta{Tick: tick, Tick2: tick2, Endings: make(map[int]bool, len(endings))}
	for _, e := range endings {
		v.Endings[e] = true
	}
	return v
}

// Contains reports whether tick falls inside the volta's half-open span.
func (v *Volta) Contains(tick int) bool {
	return tick >= v.Tick && tick < v.Tick2
}

// HasEnding reports whether the volta applies to the given 1-based repeat
// pass.
func (v *Volta) HasEnding(pass int) bool {
	return v.Endings[pass]
}
