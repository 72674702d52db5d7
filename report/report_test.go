package report

import (
	"bytes"
	"strings"
	"testing"

	"github.com/resonatelabs/scoreplay"
	"github.com/resonatelabs/scoreplay/tempo"
)

func TestWriteItinerary(t *testing.T) {
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

	var buf bytes.Buffer
	if err := Write(&buf, rl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	out := buf.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != rl.Len() {
		t.Fatalf("got %d lines, want %d (one per segment)", len(lines), rl.Len())
	}
	if !strings.HasPrefix(lines[0], "1: ") {
		t.Fatalf("expected first line to be 1-indexed, got %q", lines[0])
	}
}

func TestWriteEmptyItinerary(t *testing.T) {
	rl := &notation.RepeatList{}
	var buf bytes.Buffer
	if err := Write(&buf, rl); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "" {
		t.Fatalf("expected empty output for empty RepeatList, got %q", buf.String())
	}
}
