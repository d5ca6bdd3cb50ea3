// Package parse turns the raw shared data file into typed entities.
//
// Parsing happens in two stages. The section splitter scans for marker lines
// (one marker rune repeated five times, nothing else) and cuts the file into
// per-application sections. The record parser then splits each section body
// into records, extracts the declared fields, and collects reference tokens.
//
// The grammar is a fixed external contract:
//
//	=====                     <- marker line opening the Cross-Roads section
//	id: HUB1                  <- record field line (id is required)
//	title: Welcome            <- further fields; [QX] tokens are references
//	                          <- blank line separates records
//	id: HUB2
//	...
package parse

import (
	"strings"
	"unicode/utf8"

	"github.com/fortuna-events/crosslink/pkg/app"
	"github.com/fortuna-events/crosslink/pkg/errors"
)

// Section is one application's portion of the data file.
type Section struct {
	App   app.App
	Lines []string // body lines between this marker and the next
	Line  int      // 1-based line number of the marker line
}

// Split cuts raw file text into sections along marker lines.
//
// A marker line is a line that is exactly one marker rune repeated five times
// (a trailing carriage return is tolerated). A line that merely starts with a
// marker rune is a malformed marker and fails with INVALID_FORMAT, as does a
// file with no markers at all or non-blank content before the first marker.
func Split(raw string) ([]Section, error) {
	lines := strings.Split(strings.TrimSuffix(raw, "\n"), "\n")

	var sections []Section
	for i, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		lineNo := i + 1

		r, _ := utf8.DecodeRuneInString(line)
		if !app.IsMarkerRune(r) {
			if len(sections) == 0 && strings.TrimSpace(line) != "" {
				return nil, errors.New(errors.ErrCodeInvalidFormat,
					"line %d: content before first marker: %q", lineNo, line)
			}
			if len(sections) > 0 {
				s := &sections[len(sections)-1]
				s.Lines = append(s.Lines, line)
			}
			continue
		}

		a, ok := app.ByMarker(line)
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidFormat,
				"line %d: malformed marker %q (want one of %s)", lineNo, line, markerList())
		}
		sections = append(sections, Section{App: a, Line: lineNo})
	}

	if len(sections) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "no section markers found")
	}
	return sections, nil
}

func markerList() string {
	markers := make([]string, 0, len(app.All()))
	for _, a := range app.All() {
		markers = append(markers, a.Marker())
	}
	return strings.Join(markers, " ")
}
