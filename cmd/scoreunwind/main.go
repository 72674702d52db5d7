package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/resonatelabs/scoreplay"
	"github.com/resonatelabs/scoreplay/click"
	"github.com/resonatelabs/scoreplay/midiexport"
	"github.com/resonatelabs/scoreplay/report"
	"github.com/resonatelabs/scoreplay/scorefile"
	"github.com/resonatelabs/scoreplay/version"
)

func main() {
	seq := flag.Bool("seq", false, "Print the semicolon-joined measure sequence the unwound timeline plays.")
	midiOut := flag.String("midi", "", "Write a Standard MIDI File of the unwound timeline to this path.")
	reportOut := flag.Bool("report", false, "Print a plain-text itinerary of the unwound timeline.")
	preview := flag.Bool("preview", false, "Play a metronome click track of the unwound timeline.")
	versionFlag := flag.Bool("v", false, "Print build version.")
	help := flag.Bool("h", false, "Show help.")
	flag.Usage = printUsage
	flag.Parse()

	if *versionFlag {
		fmt.Println(version.VersionOrHash)
		os.Exit(0)
	}
	if flag.NArg() == 0 || *help {
		flag.Usage()
		os.Exit(0)
	}

	retval := 0
	for _, path := range flag.Args() {
		if err := process(path, *seq, *midiOut, *reportOut, *preview); err != nil {
			fmt.Fprintf(os.Stderr, "could not process file %v: %v\n", path, err)
			retval = 1
		}
	}
	os.Exit(retval)
}

func process(path string, seq bool, midiOut string, doReport bool, preview bool) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("could not open file %v: %w", path, err)
	}
	defer f.Close()

	score, tm, err := scorefile.Load(f)
	if err != nil {
		return fmt.Errorf("could not load score file: %w", err)
	}

	rl := &notation.RepeatList{}
	if err := rl.Unwind(score, tm); err != nil {
		return fmt.Errorf("could not unwind score: %w", err)
	}

	if seq {
		fmt.Println(sequence(score, rl))
	}

	if midiOut != "" {
		out, err := os.Create(midiOut)
		if err != nil {
			return fmt.Errorf("could not create %v: %w", midiOut, err)
		}
		defer out.Close()
		if err := midiexport.Write(out, score, rl, tm); err != nil {
			return fmt.Errorf("could not write midi file: %w", err)
		}
	}

	if doReport {
		if err := report.Write(os.Stdout, rl); err != nil {
			return fmt.Errorf("could not write report: %w", err)
		}
	}

	if preview {
		audio, err := click.NewContext()
		if err != nil {
			return fmt.Errorf("could not acquire audio context: %w", err)
		}
		if err := click.Preview(context.Background(), audio, score, rl, tm); err != nil {
			return fmt.Errorf("could not play preview: %w", err)
		}
	}

	return nil
}

// sequence reconstructs the measure-number sequence a performer would
// read out, walking each RepeatSegment's original tick range across the
// score's measures.
func sequence(score *notation.Score, rl *notation.RepeatList) string {
	var nums []string
	for i := 0; i < rl.Len(); i++ {
		seg := rl.At(i)
		m := measureAtTick(score, seg.Tick)
		for m != nil {
			nums = append(nums, strconv.Itoa(m.Index+1))
			if m.EndTick() >= seg.EndTick() {
				break
			}
			m = score.Next(m)
		}
	}
	return strings.Join(nums, ";")
}

func measureAtTick(score *notation.Score, tick int) *notation.Measure {
	for _, m := range score.Measures {
		if tick >= m.Tick && tick < m.EndTick() {
			return m
		}
	}
	return nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "scoreunwind: unwind a score's repeats/voltas/jumps into a flat playback timeline.\nUsage: %s [flags] [path ...]\n", os.Args[0])
	flag.PrintDefaults()
}
