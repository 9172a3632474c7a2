package audio

import (
	"fmt"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/cue-splitter/internal/io"
	"github.com/handiism/cue-splitter/internal/model"
)

// PlaylistFormat represents supported playlist file formats.
type PlaylistFormat int

const (
	// FormatM3U creates .m3u files (most compatible).
	// Can be extended with EXTINF lines for duration/title info.
	FormatM3U PlaylistFormat = iota

	// FormatPLS creates .pls files (Winamp/SHOUTcast format).
	FormatPLS
)

// ParsePlaylistFormat maps a configured name to a format. Anything other
// than "pls" yields M3U.
func ParsePlaylistFormat(name string) PlaylistFormat {
	if strings.EqualFold(strings.TrimSpace(name), "pls") {
		return FormatPLS
	}
	return FormatM3U
}

// Extension returns the file extension for the format, including the dot.
func (f PlaylistFormat) Extension() string {
	if f == FormatPLS {
		return ".pls"
	}
	return ".m3u"
}

// PlaylistCreator generates a playlist for the tracks split from one cue
// sheet.
//
// Track lengths come from the distance between consecutive INDEX 01
// positions. The last track has no known end and is written with length -1.
//
// Example:
//
//	creator := NewPlaylistCreator(FormatM3U, true)
//	content := creator.CreatePlaylist(sheet)
//
//	// Result:
//	// #EXTM3U
//	// #EXTINF:210,Artist - Song Title
//	// 01 Artist - Song Title.flac
type PlaylistCreator struct {
	format   PlaylistFormat
	extended bool // For M3U: include EXTINF lines with duration/title
}

// NewPlaylistCreator creates a new PlaylistCreator.
func NewPlaylistCreator(format PlaylistFormat, extended bool) *PlaylistCreator {
	return &PlaylistCreator{
		format:   format,
		extended: extended,
	}
}

// PlaylistPath returns where the playlist for sheet is written: the output
// directory, named after the album title or, failing that, the audio file.
func (p *PlaylistCreator) PlaylistPath(sheet *model.CueSheet) string {
	name := ioutils.SanitizeFileName(sheet.Title)
	if name == "" {
		base := filepath.Base(sheet.AudioFilePath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(sheet.OutputDir, name+p.format.Extension())
}

// CreatePlaylist generates playlist content for a synthesized sheet. Entries
// are relative to the output directory.
func (p *PlaylistCreator) CreatePlaylist(sheet *model.CueSheet) string {
	switch p.format {
	case FormatPLS:
		return p.createPLS(sheet)
	default:
		return p.createM3U(sheet)
	}
}

func trackLength(sheet *model.CueSheet, i int) int {
	seconds, ok := sheet.TrackSeconds(i)
	if !ok {
		return -1
	}
	return int(seconds)
}

// createM3U generates an M3U playlist.
//
// Extended M3U format (when extended=true):
//
//	#EXTM3U
//	#EXTINF:210,Artist - Title
//	01 Artist - Title.flac
func (p *PlaylistCreator) createM3U(sheet *model.CueSheet) string {
	var sb strings.Builder

	if p.extended {
		sb.WriteString("#EXTM3U\n")
	}

	for i, track := range sheet.Tracks {
		if p.extended {
			fmt.Fprintf(&sb, "#EXTINF:%d,%s\n", trackLength(sheet, i), track.DisplayName())
		}
		sb.WriteString(filepath.Base(track.OutputFile) + "\n")
	}

	return sb.String()
}

// createPLS generates a PLS playlist.
//
//	[playlist]
//	File1=01 Artist - Title.flac
//	Title1=Artist - Title
//	Length1=210
//	NumberOfEntries=1
//	Version=2
func (p *PlaylistCreator) createPLS(sheet *model.CueSheet) string {
	var sb strings.Builder

	sb.WriteString("[playlist]\n")

	for i, track := range sheet.Tracks {
		idx := i + 1
		fmt.Fprintf(&sb, "File%d=%s\n", idx, filepath.Base(track.OutputFile))
		fmt.Fprintf(&sb, "Title%d=%s\n", idx, track.DisplayName())
		fmt.Fprintf(&sb, "Length%d=%d\n", idx, trackLength(sheet, i))
	}

	fmt.Fprintf(&sb, "NumberOfEntries=%d\n", len(sheet.Tracks))
	sb.WriteString("Version=2\n")

	return sb.String()
}
