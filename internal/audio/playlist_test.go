package audio

import (
	"strings"
	"testing"

	"github.com/handiism/cue-splitter/internal/model"
)

func createTestSheet() *model.CueSheet {
	return &model.CueSheet{
		Title:         "Test Album",
		AudioFilePath: "/music/Test/album.flac",
		OutputDir:     "/music/Test",
		Tracks: []model.Track{
			{Number: 1, Title: "Song One", Artist: "Test Artist", StartTime: &model.CueDuration{}, OutputFile: "/music/Test/01 Test Artist - Song One.flac"},
			{Number: 2, Title: "Song Two", StartTime: &model.CueDuration{Minutes: 3, Seconds: 30}, OutputFile: "/music/Test/02 Song Two.flac"},
		},
	}
}

func TestPlaylistCreator_M3U(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, false).CreatePlaylist(createTestSheet())

	want := "01 Test Artist - Song One.flac\n02 Song Two.flac\n"
	if content != want {
		t.Errorf("M3U = %q, want %q", content, want)
	}
}

func TestPlaylistCreator_M3UExtended(t *testing.T) {
	content := NewPlaylistCreator(FormatM3U, true).CreatePlaylist(createTestSheet())

	if !strings.HasPrefix(content, "#EXTM3U\n") {
		t.Error("Extended M3U should start with #EXTM3U")
	}
	if !strings.Contains(content, "#EXTINF:210,Test Artist - Song One\n") {
		t.Errorf("Extended M3U missing first EXTINF: %q", content)
	}
	if !strings.Contains(content, "#EXTINF:-1,Song Two\n") {
		t.Errorf("last track should have unknown length: %q", content)
	}
}

func TestPlaylistCreator_PLS(t *testing.T) {
	content := NewPlaylistCreator(FormatPLS, false).CreatePlaylist(createTestSheet())

	for _, want := range []string{
		"[playlist]\n",
		"File1=01 Test Artist - Song One.flac\n",
		"Title2=Song Two\n",
		"Length1=210\n",
		"Length2=-1\n",
		"NumberOfEntries=2\n",
		"Version=2\n",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("PLS should contain %q, got %q", want, content)
		}
	}
}

func TestPlaylistCreator_PlaylistPath(t *testing.T) {
	sheet := createTestSheet()
	if got := NewPlaylistCreator(FormatM3U, false).PlaylistPath(sheet); got != "/music/Test/Test Album.m3u" {
		t.Errorf("PlaylistPath() = %q", got)
	}

	sheet.Title = ""
	if got := NewPlaylistCreator(FormatPLS, false).PlaylistPath(sheet); got != "/music/Test/album.pls" {
		t.Errorf("PlaylistPath() without title = %q", got)
	}
}

func TestParsePlaylistFormat(t *testing.T) {
	tests := map[string]PlaylistFormat{
		"pls": FormatPLS,
		"PLS": FormatPLS,
		"m3u": FormatM3U,
		"":    FormatM3U,
		"wpl": FormatM3U,
	}
	for input, want := range tests {
		if got := ParsePlaylistFormat(input); got != want {
			t.Errorf("ParsePlaylistFormat(%q) = %v, want %v", input, got, want)
		}
	}
}
