package click

import (
	"testing"

	"github.com/resonatelabs/scoreplay"
	"github.com/resonatelabs/scoreplay/tempo"
)

func TestRenderClickProducesNonSilentBuffer(t *testing.T) {
	if len(clickSamples) == 0 {
		t.Fatalf("expected non-empty click waveform")
	}
	if len(clickSamples)%4 != 0 {
		t.Fatalf("expected a whole number of 16-bit stereo frames, got %d bytes", len(clickSamples))
	}
	allZero := true
	for _, b := range clickSamples {
		if b != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		t.Fatalf("expected the click waveform to contain non-zero samples")
	}
}

func TestDownbeatUtimesOrderedAndMonotonic(t *testing.T) {
	b := notation.NewBuilder()
	b.Measure(480)
	b.Measure(480, notation.Start())
	b.Measure(480, notation.End(2))
	b.Measure(480)
	score := b.Score()

	tm, err := tempo.NewMap([]tempo.Change{{Tick: 0, BPM: 120}})
	if err != nil {
		t.Fatalf("tempo.NewMap: %v", err)
	}
	rl := &notation.RepeatList{}
	if err := rl.Unwind(score, tm); err != nil {
		t.Fatalf("Unwind: %v", err)
	}

	times := downbeatUtimes(score, rl, tm)
	if len(times) == 0 {
		t.Fatalf("expected at least one downbeat")
	}
	for i := 1; i < len(times); i++ {
		if times[i] < times[i-1] {
			t.Fatalf("downbeat times not monotonic at index %d: %v < %v", i, times[i], times[i-1])
		}
	}
}

func TestDownbeatUtimesEmptyScore(t *testing.T) {
	score := &notation.Score{}
	rl := &notation.RepeatList{}
	tm, _ := tempo.NewMap(nil)
	if times := downbeatUtimes(score, rl, tm); len(times) != 0 {
		t.Fatalf("expected no downbeats for an empty score, got %v", times)
	}
}
