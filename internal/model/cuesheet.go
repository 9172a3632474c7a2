package model

import (
	"path/filepath"
)

// CueSheet represents one parsed cue file and the audio file it describes.
//
// A CueSheet is created once per discovered cue file, validated (which may
// repoint AudioFilePath), augmented with split commands and finally consumed
// by the split orchestrator. It owns its Tracks; command synthesis replaces
// the slice wholesale instead of mutating tracks in place.
type CueSheet struct {
	// CueFilePath is the location of the cue file on disk.
	CueFilePath string

	// AudioFilePath is the resolved audio file. It starts as the FILE
	// reference joined to the cue directory and may be corrected during
	// validation.
	AudioFilePath string

	// AudioFileName is the raw quoted name from the FILE directive.
	AudioFileName string

	// Title is the album title (TITLE before the first TRACK).
	// Empty string means the cue sheet has no album title.
	Title string

	// Performer is the album performer (PERFORMER before the first TRACK).
	// It is only used for the album artist tag.
	Performer string

	// Tracks in cue sheet order.
	Tracks []Track

	// OutputDir is the directory the split tracks are written to.
	// Set after command synthesis.
	OutputDir string

	// DiscNumber is the disc this sheet describes in a multi-disc release,
	// or zero for a single-disc release. Set after command synthesis.
	DiscNumber int

	// CoverArt holds JPEG bytes to embed into every track, if any.
	CoverArt []byte
}

// TrackSeconds returns the length of the i-th track in seconds, measured up
// to the next track's start. The last track has no known end and reports
// false.
func (s *CueSheet) TrackSeconds(i int) (float64, bool) {
	if i < 0 || i+1 >= len(s.Tracks) {
		return 0, false
	}
	start, next := s.Tracks[i].StartTime, s.Tracks[i+1].StartTime
	if start == nil || next == nil {
		return 0, false
	}
	return float64(next.TotalFrames()-start.TotalFrames()) / FramesPerSecond, true
}

// Dir returns the directory containing the cue file.
func (s *CueSheet) Dir() string {
	return filepath.Dir(s.CueFilePath)
}

// DefaultAudioPath returns the audio path implied by the FILE directive:
// the referenced name relative to the cue file's directory.
func (s *CueSheet) DefaultAudioPath() string {
	return filepath.Join(s.Dir(), s.AudioFileName)
}

// LastTrack returns the final track, or nil when the sheet has no tracks.
func (s *CueSheet) LastTrack() *Track {
	if len(s.Tracks) == 0 {
		return nil
	}
	return &s.Tracks[len(s.Tracks)-1]
}

// FixAction is the outcome of an attempt to repair a cue sheet.
type FixAction int

const (
	// FixNone means nothing further is needed; any correction was applied
	// to the sheet in memory.
	FixNone FixAction = iota

	// FixModified means the cue file may have changed on disk and the sheet
	// must be validated again.
	FixModified

	// FixDeleted means the cue file was removed and the sheet is abandoned.
	FixDeleted
)

func (a FixAction) String() string {
	switch a {
	case FixNone:
		return "none"
	case FixModified:
		return "modified"
	case FixDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}
