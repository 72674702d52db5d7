package midiexport

import (
	"bytes"
	"testing"

	"github.com/resonatelabs/scoreplay"
	"github.com/resonatelabs/scoreplay/tempo"
)

func TestWriteSimpleRepeat(t *testing.T) {
	b := notation.NewBuilder()
	b.Measure(480)
	b.Measure(480, notation.Start())
	b.Measure(480, notation.End(2))
	b.Measure(480)
	score := b.Score()

	rl := &notation.RepeatList{}
	tm, err := tempo.NewMap([]tempo.Change{{Tick: 0, BPM: 120}})
	if err != nil {
		t.Fatalf("tempo.NewMap: %v", err)
	}
	if err := rl.Unwind(score, tm); err != nil {
		t.Fatalf("Unwind: %v", err)
	}

	var buf bytes.Buffer
	if err := Write(&buf, score, rl, tm); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected non-empty SMF output")
	}
	// a well-formed SMF starts with the "MThd" chunk header.
	if got := buf.Bytes()[:4]; string(got) != "MThd" {
		t.Fatalf("output does not start with MThd header, got %q", got)
	}
}

func TestWriteEmptyRepeatListProducesValidHeader(t *testing.T) {
	score := &notation.Score{}
	rl := &notation.RepeatList{}
	tm, _ := tempo.NewMap(nil)

	var buf bytes.Buffer
	if err := Write(&buf, score, rl, tm); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("expected non-empty SMF output even with no segments")
	}
}
