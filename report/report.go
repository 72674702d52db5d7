// Package report renders a human-readable itinerary of a RepeatList
// through a text/template populated with Masterminds/sprig's function
// map, the same code-generation technique the teacher uses for its
// player templates.
package report

import (
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig"

	"github.com/resonatelabs/scoreplay"
)

const itineraryTemplate = `{{- range $i, $s := .Segments }}` +
	`{{ $i | add1 }}: score[{{ $s.Tick }},{{ $s.EndTick }}) -> ` +
	`unwound[{{ $s.Utick }},{{ add $s.Utick $s.Len }}) ` +
	`@ {{ $s.Utime | printf "%.3f" }}s
{{ end -}}`

var tmpl = template.Must(template.New("itinerary").Funcs(sprig.TxtFuncMap()).Parse(itineraryTemplate))

// itineraryData is the shape handed to the template; Segments is exported
// so the template's range/index access works without reflecting into an
// unexported field.
type itineraryData struct {
	Segments []*notation.RepeatSegment
}

// Write renders rl's itinerary to w.
func Write(w io.Writer, rl *notation.RepeatList) error {
	data := itineraryData{Segments: rl.Segments()}
	if err := tmpl.Execute(w, data); err != nil {
		return fmt.Errorf("report: could not render itinerary: %w", err)
	}
	return nil
}
