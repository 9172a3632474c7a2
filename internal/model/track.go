package model

import (
	"fmt"
	"strings"
)

// Track represents a single TRACK block of a cue sheet.
//
// Number, Title, Artist and StartTime come from the cue sheet. OutputFile,
// FFmpegArgs and FFmpegCommand are assigned during command synthesis.
//
// Example:
//
//	start := CueDuration{Minutes: 3, Seconds: 45}
//	track := Track{Number: 2, Title: "Song", Artist: "Band", StartTime: &start}
//	track.DisplayName() // "Band - Song"
type Track struct {
	// Number is the cue sheet's own track number. Numbers need not be
	// contiguous.
	Number int

	// Title is the track title. Empty string means absent.
	Title string

	// Artist is the track performer. Empty string means absent.
	Artist string

	// StartTime is the INDEX 01 position. Nil until an INDEX 01 is seen.
	StartTime *CueDuration

	// OutputFile is the full path of the split track.
	OutputFile string

	// FFmpegArgs is the argument vector passed to the ffmpeg binary.
	FFmpegArgs []string

	// FFmpegCommand is the same invocation rendered as a shell command line,
	// used for dry runs and failure reports.
	FFmpegCommand string
}

// DisplayName returns "Artist - Title", "Title" or "Unknown" depending on
// which fields are present.
func (t Track) DisplayName() string {
	switch {
	case t.Title != "" && t.Artist != "":
		return t.Artist + " - " + t.Title
	case t.Title != "":
		return t.Title
	default:
		return "Unknown"
	}
}

// HasStartTime reports whether the track has an INDEX 01 position.
func (t Track) HasStartTime() bool {
	return t.StartTime != nil
}

// WithCommand returns a copy of the track with its synthesized output file
// and command set. The receiver is not modified.
func (t Track) WithCommand(outputFile string, args []string, commandLine string) Track {
	t.OutputFile = outputFile
	t.FFmpegArgs = append([]string(nil), args...)
	t.FFmpegCommand = commandLine
	return t
}

func (t Track) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "track %02d", t.Number)
	if t.StartTime != nil {
		fmt.Fprintf(&b, " @ %s", t.StartTime)
	}
	return b.String()
}
