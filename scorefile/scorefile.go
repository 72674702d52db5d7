// Package scorefile loads the declarative YAML score format into a
// notation.Score and a tempo.Map, the same way the teacher loads songs
// from YAML in its cmd/sointu-play entry point.
package scorefile

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/resonatelabs/scoreplay"
	"github.com/resonatelabs/scoreplay/tempo"
)

// Jump mirrors notation.Jump in the file format's vocabulary.
type Jump struct {
	To         string `yaml:"to"`
	PlayUntil  string `yaml:"playUntil"`
	ContinueAt string `yaml:"continueAt"`
}

// Measure is one entry in a file's flat measure list.
type Measure struct {
	Ticks        int      `yaml:"ticks"`
	Repeat       string   `yaml:"repeat"` // "", "start", or "end"
	RepeatCount  int      `yaml:"repeatCount"`
	SectionBreak bool     `yaml:"sectionBreak"`
	Markers      []string `yaml:"markers"`
	Jump         *Jump    `yaml:"jump"`
}

// VoltaEntry describes a bracketed alternate ending in measure-index terms.
type VoltaEntry struct {
	StartMeasure int   `yaml:"startMeasure"`
	EndMeasure   int   `yaml:"endMeasure"`
	Endings      []int `yaml:"endings"`
}

// TempoChange mirrors tempo.Change in the file format's vocabulary.
type TempoChange struct {
	Tick int     `yaml:"tick"`
	BPM  float64 `yaml:"bpm"`
}

// File is the root of the YAML document.
type File struct {
	Measures []Measure     `yaml:"measures"`
	Voltas   []VoltaEntry  `yaml:"voltas"`
	Tempo    []TempoChange `yaml:"tempo"`
}

// Load parses r as a score file and returns the resulting Score and tempo
// Map. It never panics on malformed input; every failure is a wrapped
// error.
func Load(r io.Reader) (*notation.Score, *tempo.Map, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("scorefile: could not read input: %w", err)
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, nil, fmt.Errorf("scorefile: could not parse yaml: %w", err)
	}
	return f.build()
}

func (f *File) build() (*notation.Score, *tempo.Map, error) {
	if len(f.Measures) == 0 {
		return nil, nil, fmt.Errorf("scorefile: score has no measures")
	}

	b := notation.NewBuilder()
	for i, me := range f.Measures {
		if me.Ticks <= 0 {
			return nil, nil, fmt.Errorf("scorefile: measure %d has non-positive ticks %d", i, me.Ticks)
		}
		var opts []notation.MeasureOption
		switch me.Repeat {
		case "start":
			opts = append(opts, notation.Start())
		case "end":
			if me.RepeatCount < 1 {
				return nil, nil, fmt.Errorf("scorefile: measure %d is a repeat end with repeatCount %d", i, me.RepeatCount)
			}
			opts = append(opts, notation.End(me.RepeatCount))
		case "":
			// no repeat barline
		default:
			return nil, nil, fmt.Errorf("scorefile: measure %d has unknown repeat kind %q", i, me.Repeat)
		}
		if me.SectionBreak {
			opts = append(opts, notation.WithSectionBreak())
		}
		for _, label := range me.Markers {
			opts = append(opts, notation.WithMarker(label))
		}
		if me.Jump != nil {
			opts = append(opts, notation.WithJump(&notation.Jump{
				JumpTo:     me.Jump.To,
				PlayUntil:  me.Jump.PlayUntil,
				ContinueAt: me.Jump.ContinueAt,
			}))
		}
		b.Measure(me.Ticks, opts...)
	}

	n := len(f.Measures)
	for i, ve := range f.Voltas {
		if ve.StartMeasure < 0 || ve.EndMeasure < ve.StartMeasure || ve.EndMeasure >= n {
			return nil, nil, fmt.Errorf("scorefile: volta %d has out-of-range measure span [%d,%d]", i, ve.StartMeasure, ve.EndMeasure)
		}
		b.Volta(ve.StartMeasure, ve.EndMeasure, ve.Endings...)
	}

	changes := make([]tempo.Change, len(f.Tempo))
	for i, c := range f.Tempo {
		changes[i] = tempo.Change{Tick: c.Tick, BPM: c.BPM}
	}
	tm, err := tempo.NewMap(changes)
	if err != nil {
		return nil, nil, fmt.Errorf("scorefile: %w", err)
	}

	return b.Score(), tm, nil
}
