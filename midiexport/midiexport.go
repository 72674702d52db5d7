// Package midiexport renders an unwound RepeatList to a Standard MIDI
// File: one percussion note per measure downbeat, in the order the
// unwinder decided to play them. It gives an audible, independently
// inspectable rendering of the unwound timeline without pulling layout,
// chords, or real instrument synthesis into the core's dependency graph.
package midiexport

import (
	"fmt"
	"io"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/resonatelabs/scoreplay"
	"github.com/resonatelabs/scoreplay/tempo"
)

const (
	channel       = 9  // GM percussion channel
	downbeatKey   = 37 // side stick
	noteVelocity  = 100
	noteDuration  = 60 // ticks the downbeat note rings for
)

// Write walks every segment of rl in emission order and emits a downbeat
// note for each measure it crosses, writing the resulting file to w.
func Write(w io.Writer, score *notation.Score, rl *notation.RepeatList, tm *tempo.Map) error {
	downbeats := downbeatUticks(score, rl)

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(tempo.PPQ)

	var track smf.Track
	track.Add(0, smf.MetaTrackSequenceName("downbeats"))
	bpm := 60 / (tm.TickToTime(tempo.PPQ) - tm.TickToTime(0))
	track.Add(0, smf.MetaTempo(bpm))

	prev := uint32(0)
	for _, u := range downbeats {
		if u < 0 {
			return fmt.Errorf("midiexport: negative unwound tick %d", u)
		}
		delta := uint32(u) - prev
		track.Add(delta, midi.NoteOn(channel, downbeatKey, noteVelocity))
		track.Add(noteDuration, midi.NoteOff(channel, downbeatKey))
		prev = uint32(u) + noteDuration
	}
	track.Close(0)
	sm.Add(track)

	if _, err := sm.WriteTo(w); err != nil {
		return fmt.Errorf("midiexport: could not write SMF: %w", err)
	}
	return nil
}

// downbeatUticks returns the unwound tick of every measure downbeat
// crossed by rl, in playback order, derived purely from the segments and
// the score's measure boundaries (never from re-walking MeasureView's
// jump graph, which is the unwinder's job alone).
func downbeatUticks(score *notation.Score, rl *notation.RepeatList) []int {
	var out []int
	for i := 0; i < rl.Len(); i++ {
		seg := rl.At(i)
		for _, m := range score.Measures {
			if m.Tick >= seg.Tick && m.Tick < seg.EndTick() {
				out = append(out, seg.Utick+(m.Tick-seg.Tick))
			}
		}
	}
	return out
}
