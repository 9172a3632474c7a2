package cue

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/handiism/cue-splitter/internal/model"
)

// ErrSyntax marks a recognized directive with an unusable value.
var ErrSyntax = errors.New("cue syntax error")

// Options controls how cue files are read.
type Options struct {
	// Lossy drops undecodable byte sequences instead of failing.
	Lossy bool
}

// Directive is one non-empty cue sheet line split into keyword and value.
type Directive struct {
	// Line is the 1-based line number.
	Line int

	// Keyword is the upper-cased first word, e.g. "TRACK".
	Keyword string

	// Value is everything after the first space, untrimmed of quotes.
	Value string
}

// ParseFile reads, decodes and parses the cue file at path.
//
// The returned sheet has CueFilePath set and AudioFilePath pointing at the
// FILE reference next to the cue file. Any read or decode failure is
// returned as an error and no partial sheet is produced.
func ParseFile(path string, opts Options) (*model.CueSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read cue file %s: %w", path, err)
	}

	text, err := Decode(data, opts.Lossy)
	if err != nil {
		return nil, fmt.Errorf("decode cue file %s: %w", path, err)
	}

	sheet, err := Parse(text)
	if err != nil {
		return nil, fmt.Errorf("parse cue file %s: %w", path, err)
	}

	sheet.CueFilePath = path
	sheet.AudioFilePath = sheet.DefaultAudioPath()
	return sheet, nil
}

// Lex splits cue text into directives. Blank lines and lines without a
// value are skipped.
func Lex(text string) []Directive {
	var directives []Directive
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		keyword, value, found := strings.Cut(line, " ")
		if !found || keyword == "" {
			continue
		}
		directives = append(directives, Directive{
			Line:    i + 1,
			Keyword: strings.ToUpper(keyword),
			Value:   value,
		})
	}
	return directives
}

// Parse folds cue text into a CueSheet without touching the filesystem.
//
// A TRACK directive closes the track in progress and opens a new one.
// TITLE applies to the open track, or to the album before the first track.
// PERFORMER before the first track is kept as the album performer. Only
// INDEX 01 sets a start time.
func Parse(text string) (*model.CueSheet, error) {
	sheet := &model.CueSheet{}
	var current *model.Track

	for _, d := range Lex(text) {
		switch d.Keyword {
		case "FILE":
			sheet.AudioFileName = parseFileName(d.Value)

		case "TRACK":
			number, err := parseTrackNumber(d.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", d.Line, err)
			}
			if current != nil {
				sheet.Tracks = append(sheet.Tracks, *current)
			}
			current = &model.Track{Number: number}

		case "TITLE":
			if current != nil {
				current.Title = unquote(d.Value)
			} else {
				sheet.Title = unquote(d.Value)
			}

		case "PERFORMER":
			if current != nil {
				current.Artist = unquote(d.Value)
			} else {
				sheet.Performer = unquote(d.Value)
			}

		case "INDEX":
			if current == nil {
				continue
			}
			start, ok, err := parseIndex(d.Value)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", d.Line, err)
			}
			if ok {
				current.StartTime = &start
			}
		}
	}

	if current != nil {
		sheet.Tracks = append(sheet.Tracks, *current)
	}

	return sheet, nil
}

// parseFileName takes the text between the first and last quote. Unquoted
// references drop the trailing format token.
func parseFileName(value string) string {
	first := strings.Index(value, `"`)
	last := strings.LastIndex(value, `"`)
	if first >= 0 && last > first {
		return value[first+1 : last]
	}

	fields := strings.Fields(value)
	switch len(fields) {
	case 0:
		return ""
	case 1:
		return fields[0]
	default:
		return strings.Join(fields[:len(fields)-1], " ")
	}
}

func parseTrackNumber(value string) (int, error) {
	fields := strings.Fields(value)
	if len(fields) == 0 {
		return 0, fmt.Errorf("%w: TRACK without number", ErrSyntax)
	}
	number, err := strconv.Atoi(fields[0])
	if err != nil || number <= 0 {
		return 0, fmt.Errorf("%w: invalid track number %q", ErrSyntax, fields[0])
	}
	return number, nil
}

// parseIndex returns the timestamp of an INDEX directive and whether it is
// INDEX 01.
func parseIndex(value string) (model.CueDuration, bool, error) {
	fields := strings.Fields(value)
	if len(fields) < 2 {
		return model.CueDuration{}, false, fmt.Errorf("%w: INDEX needs a number and a timestamp", ErrSyntax)
	}

	number, err := strconv.Atoi(fields[0])
	if err != nil {
		return model.CueDuration{}, false, fmt.Errorf("%w: invalid index number %q", ErrSyntax, fields[0])
	}
	if number != 1 {
		return model.CueDuration{}, false, nil
	}

	start, err := model.ParseCueDuration(fields[len(fields)-1])
	if err != nil {
		return model.CueDuration{}, false, fmt.Errorf("%w: %v", ErrSyntax, err)
	}
	return start, true, nil
}

func unquote(value string) string {
	return strings.TrimSpace(strings.ReplaceAll(value, `"`, ""))
}
