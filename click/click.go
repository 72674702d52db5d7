// Package click plays a metronome preview of an unwound RepeatList
// through ebitengine/oto, the audio library the teacher wraps for its
// own playback. It never touches chord or note data, only RepeatList and
// TempoMap, giving a cheap audible proof that the unwound order is
// correct without a real synthesizer.
package click

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"time"

	"github.com/ebitengine/oto/v3"

	"github.com/resonatelabs/scoreplay"
	"github.com/resonatelabs/scoreplay/tempo"
)

const (
	sampleRate  = 44100
	channels    = 2
	clickFreqHz = 1000.0
	clickLenSec = 0.03
)

// clickSamples holds a single short click waveform, rendered once and
// reused for every downbeat.
var clickSamples = renderClick()

func renderClick() []byte {
	n := int(sampleRate * clickLenSec)
	buf := make([]byte, n*channels*2) // 16-bit stereo
	for i := 0; i < n; i++ {
		// exponential decay envelope so consecutive clicks don't smear
		// into each other at fast tempos.
		env := math.Exp(-6 * float64(i) / float64(n))
		v := math.Sin(2*math.Pi*clickFreqHz*float64(i)/sampleRate) * env
		sample := int16(v * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(sample))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(sample))
	}
	return buf
}

// NewContext creates an oto playback context at the sample rate and
// channel layout the click waveform is rendered for, blocking until the
// underlying audio device is ready.
func NewContext() (*oto.Context, error) {
	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       oto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("click: cannot create oto context: %w", err)
	}
	<-ready
	return ctx, nil
}

// Preview walks score's measures via rl's unwound timeline and plays a
// click at each downbeat, in playback order, until ctx is done or the
// timeline ends.
func Preview(ctx context.Context, audio *oto.Context, score *notation.Score, rl *notation.RepeatList, tm *tempo.Map) error {
	downbeats := downbeatUtimes(score, rl, tm)

	// Players must stay referenced while they play; oto does not copy the
	// underlying buffer into its own goroutine.
	players := make([]*oto.Player, 0, len(downbeats))

	started := time.Now()
	for _, utime := range downbeats {
		target := started.Add(time.Duration(utime * float64(time.Second)))
		if d := time.Until(target); d > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(d):
			}
		}
		player := audio.NewPlayer(bytes.NewReader(clickSamples))
		player.Play()
		players = append(players, player)
	}
	for _, p := range players {
		for p.IsPlaying() {
			time.Sleep(5 * time.Millisecond)
		}
		p.Close()
	}
	return nil
}

// downbeatUtimes returns the unwound playback time, in seconds, of every
// measure downbeat crossed by rl, in playback order.
func downbeatUtimes(score *notation.Score, rl *notation.RepeatList, tm *tempo.Map) []float64 {
	var out []float64
	for i := 0; i < rl.Len(); i++ {
		seg := rl.At(i)
		for _, m := range score.Measures {
			if m.Tick >= seg.Tick && m.Tick < seg.EndTick() {
				utick := seg.Utick + (m.Tick - seg.Tick)
				out = append(out, rl.UtickToUtime(utick, tm))
			}
		}
	}
	return out
}
