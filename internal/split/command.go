package split

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/handiism/cue-splitter/internal/disc"
	ioutils "github.com/handiism/cue-splitter/internal/io"
	"github.com/handiism/cue-splitter/internal/model"
)

var (
	// ErrMissingStart is returned when a track reaches synthesis without an
	// INDEX 01 position.
	ErrMissingStart = errors.New("track has no start time")

	// ErrNoExtension is returned when the audio file's extension cannot be
	// determined.
	ErrNoExtension = errors.New("audio file has no extension")
)

// Layout places a sheet's tracks on disk. Multi-disc releases get a
// CD<Disc> subdirectory below the audio file's directory.
type Layout struct {
	MultiDisc bool
	Disc      int
}

// SubDir returns the subdirectory segment for the layout, or "".
func (l Layout) SubDir() string {
	if !l.MultiDisc {
		return ""
	}
	return fmt.Sprintf("CD%d", l.Disc)
}

// LayoutFor detects whether cuePath belongs to a multi-disc release and,
// if so, which disc it describes.
func LayoutFor(cuePath string) (Layout, error) {
	multi, err := disc.IsMultiDisc(cuePath)
	if err != nil {
		return Layout{}, fmt.Errorf("scan %s: %w", filepath.Dir(cuePath), err)
	}
	if !multi {
		return Layout{}, nil
	}
	return Layout{MultiDisc: true, Disc: disc.NumberFromPath(cuePath)}, nil
}

// Synthesize replaces sheet.Tracks with copies carrying an output file and
// an ffmpeg invocation, and records the sheet's output directory. binary
// is the executable named in the rendered command line.
func Synthesize(sheet *model.CueSheet, layout Layout, binary string) error {
	if binary == "" {
		binary = "ffmpeg"
	}
	ext := audioExtension(sheet)
	if ext == "" {
		return fmt.Errorf("%s: %w", sheet.AudioFilePath, ErrNoExtension)
	}
	outDir := filepath.Join(filepath.Dir(sheet.AudioFilePath), layout.SubDir())

	tracks := make([]model.Track, 0, len(sheet.Tracks))
	for i, track := range sheet.Tracks {
		if track.StartTime == nil {
			return fmt.Errorf("%s: %w", track, ErrMissingStart)
		}

		var end *model.CueDuration
		if i+1 < len(sheet.Tracks) {
			end = sheet.Tracks[i+1].StartTime
			if end == nil {
				return fmt.Errorf("%s: %w", sheet.Tracks[i+1], ErrMissingStart)
			}
		}

		output := filepath.Join(outDir, OutputName(track)+"."+ext)
		args := Args(sheet.AudioFilePath, *track.StartTime, end, output)
		tracks = append(tracks, track.WithCommand(output, args, CommandLine(binary, args)))
	}

	sheet.Tracks = tracks
	sheet.OutputDir = outDir
	if layout.MultiDisc {
		sheet.DiscNumber = layout.Disc
	}
	return nil
}

// OutputName returns "<NN> <Artist - Title|Title|Unknown>" with the track
// naming rules applied.
func OutputName(track model.Track) string {
	return fmt.Sprintf("%02d %s", track.Number, ioutils.TrackFileName(track.DisplayName()))
}

// Args builds the ffmpeg argument list for a lossless time-bounded copy.
// A nil end runs to the end of the stream.
func Args(input string, start model.CueDuration, end *model.CueDuration, output string) []string {
	args := []string{
		"-y",
		"-i", input,
		"-map_metadata", "-1",
		"-acodec", "copy",
		"-ss", start.Timestamp(),
	}
	if end != nil {
		args = append(args, "-to", end.Timestamp())
	}
	return append(args, output)
}

// CommandLine renders binary and args as a POSIX shell line that
// reproduces the argument vector when pasted. Arguments with shell
// metacharacters are single quoted.
func CommandLine(binary string, args []string) string {
	return shellescape.QuoteCommand(append([]string{binary}, args...))
}

func audioExtension(sheet *model.CueSheet) string {
	for _, name := range []string{sheet.AudioFilePath, sheet.AudioFileName} {
		if ext := strings.TrimPrefix(filepath.Ext(name), "."); ext != "" {
			return ext
		}
	}
	return ""
}
