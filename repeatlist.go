package notation

import "log"

// RepeatSegment is a contiguous run of original measures the unwinder
// decided to play once. Tick/Len describe its position in the original
// score; Utick/Utime/TimeOffset describe where it lands in the unwound
// playback timeline, filled in by RepeatList.update after the walk
// completes.
type RepeatSegment struct {
	Tick       int
	Len        int
	Utick      int
	Utime      float64
	TimeOffset float64
}

// EndTick returns the tick immediately after the segment, in original
// score ticks.
func (s *RepeatSegment) EndTick() int {
	return s.Tick + s.Len
}

// RepeatList is the unwinder's output: an ordered, append-only (except for
// Unwind rebuilding it from scratch) sequence of RepeatSegments, plus two
// cursor hints used to make the four time-coordinate queries O(1)
// amortized. The cursors are pure caches; resetting them to zero never
// changes the result of a query, only its cost. A RepeatList is not safe
// for concurrent query and Unwind calls.
type RepeatList struct {
	segments []*RepeatSegment
	idx1     int // hint for utick-keyed queries (UtickToTick, UtickToUtime)
	idx2     int // hint for utime-keyed queries (UtimeToUtick)
}

// Len returns the number of segments.
func (rl *RepeatList) Len() int {
	return len(rl.segments)
}

// At returns the i'th segment in emission order.
func (rl *RepeatList) At(i int) *RepeatSegment {
	return rl.segments[i]
}

// Segments returns a read-only snapshot of the segments in emission
// order.
func (rl *RepeatList) Segments() []*RepeatSegment {
	out := make([]*RepeatSegment, len(rl.segments))
	copy(out, rl.segments)
	return out
}

// Ticks returns the total length of the unwound timeline, in unwound
// ticks, or 0 if the list is empty.
func (rl *RepeatList) Ticks() int {
	last := rl.last()
	if last == nil {
		return 0
	}
	return last.Utick + last.Len
}

func (rl *RepeatList) last() *RepeatSegment {
	if len(rl.segments) == 0 {
		return nil
	}
	return rl.segments[len(rl.segments)-1]
}

func (rl *RepeatList) append(s *RepeatSegment) {
	rl.segments = append(rl.segments, s)
}

func (rl *RepeatList) clear() {
	rl.segments = nil
	rl.idx1 = 0
	rl.idx2 = 0
}

// unwindState is the transient state the unwinder carries across the
// measure walk. It is discarded once Unwind returns.
type unwindState struct {
	cur         *RepeatSegment
	endRepeat   *Measure
	continueAt  *Measure
	loop        int
	repeatCount int
	isGoto      bool
	takenJumps  map[*Jump]bool
}

// Unwind rebuilds rl to hold the flat playback timeline implied by mv's
// repeat barlines, voltas, and jump directives, with unwound-time
// coordinates computed from tm. It is idempotent given an unchanged score
// and tempo map: calling it again simply recomputes the same result.
//
// Unwind resets every measure's PlaybackCount to 0 before walking; that
// field is the only part of mv it mutates.
func (rl *RepeatList) Unwind(mv MeasureView, tm TempoMap) error {
	rl.clear()

	fm := mv.FirstMeasure()
	if fm == nil {
		return ErrEmptyScore
	}

	for m := fm; m != nil; m = mv.Next(m) {
		m.PlaybackCount = 0
	}

	st := &unwindState{
		cur:        &RepeatSegment{Tick: 0},
		takenJumps: make(map[*Jump]bool),
	}

	m := fm
	for m != nil {
		m.PlaybackCount++
		flags := m.Flags
		doJump := false

		// During any D.C./D.S. pass, internal repeats are taken only on
		// their final iteration.
		if st.isGoto && flags.Has(RepeatEnd) {
			st.loop = m.RepeatCount - 1
		}

		if st.endRepeat != nil {
			volta := mv.SearchVolta(m.Tick)
			if volta != nil && !volta.HasEnding(m.PlaybackCount) {
				if st.cur.Tick < m.Tick {
					st.cur.Len = m.Tick - st.cur.Tick
					rl.append(st.cur)
					st.cur = &RepeatSegment{}
				}
				st.cur.Tick = m.EndTick()
				// No continue here: a skipped measure still falls through to
				// the end-repeat/jump checks below, because the measure that
				// closes one repeat bracket can simultaneously be the one a
				// volta from another bracket is deciding to skip.
			} else if flags.Has(RepeatJump) {
				doJump = true
				st.isGoto = false
			}
		} else if flags.Has(RepeatJump) {
			// Jumps are only accepted outside of other repeat brackets.
			doJump = true
		}

		if st.isGoto && st.endRepeat == m {
			if st.continueAt == nil {
				st.cur.Len = m.EndTick() - st.cur.Tick
				if st.cur.Len > 0 {
					rl.append(st.cur)
				}
				rl.update(tm)
				return nil
			}
			st.cur.Len = m.EndTick() - st.cur.Tick
			rl.append(st.cur)
			st.cur = &RepeatSegment{Tick: st.continueAt.Tick}
			m = st.continueAt
			st.isGoto = false
			st.endRepeat = nil
			continue
		} else if flags.Has(RepeatEnd) {
			if st.endRepeat == m {
				st.loop++
				if st.loop >= st.repeatCount {
					st.endRepeat = nil
					st.loop = 0
				} else {
					m = rl.jumpToStartRepeat(mv, st, m)
					continue
				}
			} else if st.endRepeat == nil {
				if m.PlaybackCount >= m.RepeatCount {
					break
				}
				st.endRepeat = m
				st.repeatCount = m.RepeatCount
				st.loop = 1
				m = rl.jumpToStartRepeat(mv, st, m)
				continue
			}
		}

		if doJump && !st.isGoto {
			j := m.Jump()
			if j == nil {
				log.Printf("notation: measure %d carries the jump flag but no Jump directive", m.Index)
				m = mv.Next(m)
				continue
			}
			if st.takenJumps[j] {
				m = mv.Next(m)
				if st.endRepeat == mv.SearchLabel(j.PlayUntil) {
					st.endRepeat = nil
				}
				continue
			}
			st.takenJumps[j] = true
			nm := mv.SearchLabel(j.JumpTo)
			st.endRepeat = mv.SearchLabel(j.PlayUntil)
			st.continueAt = mv.SearchLabel(j.ContinueAt)
			if nm != nil && st.endRepeat != nil {
				st.isGoto = true
				st.cur.Len = m.EndTick() - st.cur.Tick
				rl.append(st.cur)
				st.cur = &RepeatSegment{Tick: nm.Tick}
				m = nm
				continue
			}
			if nm == nil {
				log.Printf("notation: jump target label %q not found", j.JumpTo)
			} else {
				log.Printf("notation: jump play-until label %q not found", j.PlayUntil)
			}
		}

		m = mv.Next(m)
	}

	lm := mv.LastMeasure()
	st.cur.Len = lm.EndTick() - st.cur.Tick
	if st.cur.Len > 0 {
		rl.append(st.cur)
	}
	rl.update(tm)
	return nil
}

// jumpToStartRepeat finalizes the in-progress segment at m's end, then
// walks backwards to find where the repeat that m closes should restart:
// a measure carrying RepeatStart, the first measure of the score, or a
// measure whose predecessor has a section break. It begins a fresh
// segment at that measure's tick and returns it as the next measure to
// visit.
func (rl *RepeatList) jumpToStartRepeat(mv MeasureView, st *unwindState, m *Measure) *Measure {
	st.cur.Len = m.EndTick() - st.cur.Tick
	if st.cur.Len > 0 {
		rl.append(st.cur)
	}

	for {
		if m.Flags.Has(RepeatStart) {
			break
		}
		if m == mv.FirstMeasure() {
			break
		}
		if mv.Prev(m).SectionBreak {
			break
		}
		m = mv.Prev(m)
	}

	st.cur = &RepeatSegment{Tick: m.Tick}
	return m
}

// update assigns Utick/Utime/TimeOffset to every segment by a single
// forward pass, consulting tm for the real-time length of each segment's
// original tick span.
func (rl *RepeatList) update(tm TempoMap) {
	utick := 0
	t := 0.0
	for _, s := range rl.segments {
		s.Utick = utick
		s.Utime = t
		ct := tm.TickToTime(s.Tick)
		s.TimeOffset = t - ct
		utick += s.Len
		t += tm.TickToTime(s.Tick+s.Len) - ct
	}
}

// UtickToTick maps an unwound tick back to its original score tick.
// Negative input clamps to 0; input past the end of the timeline clamps
// to an extrapolation from the last segment.
func (rl *RepeatList) UtickToTick(utick int) int {
	n := len(rl.segments)
	if n == 0 {
		return utick
	}
	if utick < 0 {
		return 0
	}
	ii := 0
	if rl.idx1 < n && utick >= rl.segments[rl.idx1].Utick {
		ii = rl.idx1
	}
	for i := ii; i < n; i++ {
		s := rl.segments[i]
		if utick >= s.Utick && (i+1 == n || utick < rl.segments[i+1].Utick) {
			rl.idx1 = i
			return utick - (s.Utick - s.Tick)
		}
	}
	return 0
}

// TickToUtick maps an original score tick to its (first) position in the
// unwound timeline. If tick falls outside every segment's original span,
// it is extrapolated from the last segment.
func (rl *RepeatList) TickToUtick(tick int) int {
	for _, s := range rl.segments {
		if tick >= s.Tick && tick < s.Tick+s.Len {
			return s.Utick + (tick - s.Tick)
		}
	}
	last := rl.last()
	if last == nil {
		return tick
	}
	return last.Utick + (tick - last.Tick)
}

// UtickToUtime maps an unwound tick to unwound-playback seconds, via tm.
func (rl *RepeatList) UtickToUtime(utick int, tm TempoMap) float64 {
	n := len(rl.segments)
	if n == 0 {
		return 0
	}
	ii := 0
	if rl.idx1 < n && utick >= rl.segments[rl.idx1].Utick {
		ii = rl.idx1
	}
	for i := ii; i < n; i++ {
		s := rl.segments[i]
		if utick >= s.Utick && (i+1 == n || utick < rl.segments[i+1].Utick) {
			t := utick - (s.Utick - s.Tick)
			return tm.TickToTime(t) + s.TimeOffset
		}
	}
	return 0
}

// UtimeToUtick maps unwound-playback seconds to an unwound tick, via tm.
func (rl *RepeatList) UtimeToUtick(t float64, tm TempoMap) int {
	n := len(rl.segments)
	if n == 0 {
		return 0
	}
	ii := 0
	if rl.idx2 < n && t >= rl.segments[rl.idx2].Utime {
		ii = rl.idx2
	}
	for i := ii; i < n; i++ {
		s := rl.segments[i]
		if t >= s.Utime && (i+1 == n || t < rl.segments[i+1].Utime) {
			rl.idx2 = i
			return tm.TimeToTick(t-s.TimeOffset) + (s.Utick - s.Tick)
		}
	}
	return 0
}
