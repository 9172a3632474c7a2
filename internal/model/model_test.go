package model

import (
	"path/filepath"
	"testing"
)

func TestCueDuration_Ordering(t *testing.T) {
	tests := []struct {
		name  string
		later CueDuration
		early CueDuration
	}{
		{"second beats 74 frames", CueDuration{0, 1, 0}, CueDuration{0, 0, 74}},
		{"minute beats 59:74", CueDuration{1, 0, 0}, CueDuration{0, 59, 74}},
		{"frames break tie", CueDuration{3, 45, 1}, CueDuration{3, 45, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.early.Before(tt.later) {
				t.Errorf("%v should be before %v", tt.early, tt.later)
			}
			if tt.later.Before(tt.early) {
				t.Errorf("%v should not be before %v", tt.later, tt.early)
			}
			if tt.later.Compare(tt.early) != 1 {
				t.Errorf("Compare() = %d, want 1", tt.later.Compare(tt.early))
			}
		})
	}
}

func TestCueDuration_OrderingMatchesFrameCount(t *testing.T) {
	values := []CueDuration{
		{0, 0, 0}, {0, 0, 74}, {0, 1, 0}, {0, 59, 74}, {1, 0, 0}, {12, 30, 37}, {99, 59, 74},
	}
	for _, a := range values {
		for _, b := range values {
			want := 0
			fa := a.Minutes*60*75 + a.Seconds*75 + a.Frames
			fb := b.Minutes*60*75 + b.Seconds*75 + b.Frames
			if fa < fb {
				want = -1
			} else if fa > fb {
				want = 1
			}
			if got := a.Compare(b); got != want {
				t.Errorf("Compare(%v, %v) = %d, want %d", a, b, got, want)
			}
		}
	}
}

func TestParseCueDuration(t *testing.T) {
	tests := []struct {
		input   string
		want    CueDuration
		wantErr bool
	}{
		{"00:00:00", CueDuration{}, false},
		{"07:10:30", CueDuration{7, 10, 30}, false},
		{"123:04:05", CueDuration{123, 4, 5}, false},
		{" 03:45:00 ", CueDuration{3, 45, 0}, false},
		{"03:45", CueDuration{}, true},
		{"aa:00:00", CueDuration{}, true},
		{"", CueDuration{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCueDuration(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCueDuration(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseCueDuration(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCueDuration_Timestamp(t *testing.T) {
	tests := []struct {
		d    CueDuration
		want string
	}{
		{CueDuration{0, 0, 0}, "00:00:00.000"},
		{CueDuration{3, 30, 0}, "00:03:30.000"},
		{CueDuration{7, 10, 30}, "00:07:10.400"},
		{CueDuration{63, 5, 15}, "01:03:05.200"},
		{CueDuration{0, 0, 74}, "00:00:00.986"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.d.Timestamp(); got != tt.want {
				t.Errorf("Timestamp() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrack_DisplayName(t *testing.T) {
	tests := []struct {
		track Track
		want  string
	}{
		{Track{Title: "Song", Artist: "Band"}, "Band - Song"},
		{Track{Title: "Song"}, "Song"},
		{Track{Artist: "Band"}, "Unknown"},
		{Track{}, "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.track.DisplayName(); got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTrack_WithCommandLeavesOriginal(t *testing.T) {
	args := []string{"-y", "-i", "in.flac"}
	original := Track{Number: 1, Title: "Song"}

	augmented := original.WithCommand("/out/01 Song.flac", args, "ffmpeg -y")
	args[0] = "changed"

	if original.OutputFile != "" || original.FFmpegCommand != "" {
		t.Error("WithCommand should not modify the receiver")
	}
	if augmented.FFmpegArgs[0] != "-y" {
		t.Error("WithCommand should copy the argument slice")
	}
	if augmented.OutputFile != "/out/01 Song.flac" {
		t.Errorf("OutputFile = %q", augmented.OutputFile)
	}
}

func TestCueSheet_DefaultAudioPath(t *testing.T) {
	sheet := &CueSheet{
		CueFilePath:   filepath.Join("music", "album", "album.cue"),
		AudioFileName: "Album.flac",
	}

	want := filepath.Join("music", "album", "Album.flac")
	if got := sheet.DefaultAudioPath(); got != want {
		t.Errorf("DefaultAudioPath() = %q, want %q", got, want)
	}
	if sheet.LastTrack() != nil {
		t.Error("LastTrack() should be nil without tracks")
	}
}

func TestCueSheet_TrackSeconds(t *testing.T) {
	sheet := &CueSheet{Tracks: []Track{
		{Number: 1, StartTime: &CueDuration{}},
		{Number: 2, StartTime: &CueDuration{Minutes: 3, Seconds: 30, Frames: 15}},
		{Number: 3, StartTime: &CueDuration{Minutes: 7}},
	}}

	if got, ok := sheet.TrackSeconds(0); !ok || got != 210.2 {
		t.Errorf("TrackSeconds(0) = %v, %v, want 210.2", got, ok)
	}
	if _, ok := sheet.TrackSeconds(2); ok {
		t.Error("last track should have no known length")
	}
	if _, ok := sheet.TrackSeconds(-1); ok {
		t.Error("negative index should report false")
	}
}
