package split

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/handiism/cue-splitter/internal/model"
)

func at(m, s, f int) *model.CueDuration {
	return &model.CueDuration{Minutes: m, Seconds: s, Frames: f}
}

func twoTrackSheet() *model.CueSheet {
	return &model.CueSheet{
		CueFilePath:   "/music/Album/album.cue",
		AudioFilePath: "/music/Album/album.flac",
		AudioFileName: "album.flac",
		Tracks: []model.Track{
			{Number: 1, Title: "One", Artist: "Artist", StartTime: at(0, 0, 0)},
			{Number: 2, Title: "Two: Reprise", StartTime: at(3, 30, 0)},
		},
	}
}

func TestSynthesize(t *testing.T) {
	sheet := twoTrackSheet()
	original := sheet.Tracks

	if err := Synthesize(sheet, Layout{}, "ffmpeg"); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}

	first, second := sheet.Tracks[0], sheet.Tracks[1]
	wantFirst := []string{
		"-y", "-i", "/music/Album/album.flac", "-map_metadata", "-1", "-acodec", "copy",
		"-ss", "00:00:00.000", "-to", "00:03:30.000", "/music/Album/01 Artist - One.flac",
	}
	if !reflect.DeepEqual(first.FFmpegArgs, wantFirst) {
		t.Errorf("track 1 args = %q, want %q", first.FFmpegArgs, wantFirst)
	}
	wantSecond := []string{
		"-y", "-i", "/music/Album/album.flac", "-map_metadata", "-1", "-acodec", "copy",
		"-ss", "00:03:30.000", "/music/Album/02 Two- Reprise.flac",
	}
	if !reflect.DeepEqual(second.FFmpegArgs, wantSecond) {
		t.Errorf("track 2 args = %q, want %q", second.FFmpegArgs, wantSecond)
	}

	wantLine := `ffmpeg -y -i /music/Album/album.flac -map_metadata -1 -acodec copy -ss 00:00:00.000 -to 00:03:30.000 '/music/Album/01 Artist - One.flac'`
	if first.FFmpegCommand != wantLine {
		t.Errorf("track 1 command =\n%s\nwant\n%s", first.FFmpegCommand, wantLine)
	}
	if first.OutputFile != "/music/Album/01 Artist - One.flac" {
		t.Errorf("track 1 output = %q", first.OutputFile)
	}
	if sheet.OutputDir != "/music/Album" {
		t.Errorf("OutputDir = %q, want /music/Album", sheet.OutputDir)
	}
	if original[0].OutputFile != "" || original[0].FFmpegArgs != nil {
		t.Error("Synthesize mutated the original track slice")
	}
}

func TestSynthesize_MultiDisc(t *testing.T) {
	sheet := twoTrackSheet()
	if err := Synthesize(sheet, Layout{MultiDisc: true, Disc: 2}, ""); err != nil {
		t.Fatalf("Synthesize() error = %v", err)
	}
	want := "/music/Album/CD2/01 Artist - One.flac"
	if sheet.Tracks[0].OutputFile != want {
		t.Errorf("output = %q, want %q", sheet.Tracks[0].OutputFile, want)
	}
	if sheet.OutputDir != "/music/Album/CD2" {
		t.Errorf("OutputDir = %q", sheet.OutputDir)
	}
	if sheet.DiscNumber != 2 {
		t.Errorf("DiscNumber = %d, want 2", sheet.DiscNumber)
	}
}

func TestSynthesize_Errors(t *testing.T) {
	t.Run("missing start", func(t *testing.T) {
		sheet := twoTrackSheet()
		sheet.Tracks[1].StartTime = nil
		if err := Synthesize(sheet, Layout{}, "ffmpeg"); !errors.Is(err, ErrMissingStart) {
			t.Errorf("error = %v, want ErrMissingStart", err)
		}
	})

	t.Run("no extension", func(t *testing.T) {
		sheet := twoTrackSheet()
		sheet.AudioFilePath = "/music/Album/album"
		sheet.AudioFileName = "album"
		if err := Synthesize(sheet, Layout{}, "ffmpeg"); !errors.Is(err, ErrNoExtension) {
			t.Errorf("error = %v, want ErrNoExtension", err)
		}
	})
}

func TestOutputName(t *testing.T) {
	tests := []struct {
		track model.Track
		want  string
	}{
		{model.Track{Number: 1, Title: "Title", Artist: "Artist"}, "01 Artist - Title"},
		{model.Track{Number: 12, Title: "Only Title"}, "12 Only Title"},
		{model.Track{Number: 3, Artist: "No Title"}, "03 Unknown"},
		{model.Track{Number: 4, Title: "A/B\\C:D `E`"}, "04 A-B-C-D 'E'"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := OutputName(tt.track); got != tt.want {
				t.Errorf("OutputName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCommandLine_ShellRoundTrip(t *testing.T) {
	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	args := []string{
		"/music/Cost $HOME `id`/album.flac",
		`say "hi".flac`,
		"it's; rm -rf *",
		"tab\there",
		"ctrl\x01char",
		"Björk - Début.flac",
		"",
		"-map_metadata",
	}
	line := CommandLine("printf", append([]string{`%s\n`}, args...))

	out, err := exec.Command(sh, "-c", line).Output()
	if err != nil {
		t.Fatalf("sh -c %s: %v", line, err)
	}
	got := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
	if !reflect.DeepEqual(got, args) {
		t.Errorf("shell received %q, want %q\nline: %s", got, args, line)
	}
}

func TestCommandLine_LeavesSafeWordsBare(t *testing.T) {
	got := CommandLine("ffmpeg", []string{"-ss", "00:03:30.000", "/music/a.flac", "/music/A B.flac"})
	want := `ffmpeg -ss 00:03:30.000 /music/a.flac '/music/A B.flac'`
	if got != want {
		t.Errorf("CommandLine() = %s, want %s", got, want)
	}
}

func TestLayoutFor(t *testing.T) {
	dir := t.TempDir()
	cue := filepath.Join(dir, "Album CD3.cue")
	if err := os.WriteFile(cue, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	layout, err := LayoutFor(cue)
	if err != nil {
		t.Fatalf("LayoutFor() error = %v", err)
	}
	if layout.MultiDisc || layout.SubDir() != "" {
		t.Errorf("single cue layout = %+v", layout)
	}

	if err := os.WriteFile(filepath.Join(dir, "Album CD4.cue"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	layout, err = LayoutFor(cue)
	if err != nil {
		t.Fatalf("LayoutFor() error = %v", err)
	}
	if layout.SubDir() != "CD3" {
		t.Errorf("SubDir() = %q, want CD3", layout.SubDir())
	}
}
