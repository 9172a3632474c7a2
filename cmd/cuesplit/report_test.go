package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/handiism/cue-splitter/internal/app"
	"github.com/handiism/cue-splitter/internal/model"
	"github.com/handiism/cue-splitter/internal/prompt"
	"github.com/handiism/cue-splitter/internal/split"
)

func TestPrintReport(t *testing.T) {
	sheet := &model.CueSheet{Title: "Album"}
	failed := model.Track{
		Number:        2,
		Title:         "Two",
		OutputFile:    "/music/02 Two.flac",
		FFmpegCommand: `ffmpeg -y -i /music/album.flac`,
	}

	tests := []struct {
		name    string
		report  *app.Report
		want    []string
		notWant []string
	}{
		{
			name:    "declined",
			report:  &app.Report{Declined: true},
			want:    []string{"Exiting ..."},
			notWant: []string{"bye bye"},
		},
		{
			name:   "success",
			report: &app.Report{Sheets: []*model.CueSheet{sheet}, Tracks: 3, Bytes: 2_000_000, Moved: []string{"/music/CD1/album.flac"}},
			want:   []string{"All 3 tracks have been split (2.0 MB)", "Moved audio file to: /music/CD1/album.flac", "bye bye"},
		},
		{
			name: "failures",
			report: &app.Report{
				Sheets:   []*model.CueSheet{sheet},
				Tracks:   3,
				Failures: []split.Failure{{Sheet: sheet, Track: failed, Message: "stdout\nstderr"}},
			},
			want:    []string{"Failed to split the following tracks:", "02 Two.flac", "[1] Output file: /music/02 Two.flac", "Command: ffmpeg -y -i", "Error message: stdout\nstderr"},
			notWant: []string{"have been split"},
		},
		{
			name: "same file name on two discs",
			report: &app.Report{
				Sheets: []*model.CueSheet{sheet},
				Failures: []split.Failure{
					{Sheet: sheet, Track: model.Track{Title: "One", OutputFile: "/music/CD1/01 One.flac"}, Message: "a"},
					{Sheet: sheet, Track: model.Track{Title: "One", OutputFile: "/music/CD2/01 One.flac"}, Message: "b"},
				},
			},
			want: []string{"[1] Output file: /music/CD1/01 One.flac", "[2] Output file: /music/CD2/01 One.flac"},
		},
		{
			name:    "dry run",
			report:  &app.Report{DryRun: true, Sheets: []*model.CueSheet{sheet}},
			notWant: []string{"bye bye"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			printReport(&out, prompt.NewConsole(strings.NewReader(""), &out), tt.report)
			got := out.String()
			for _, w := range tt.want {
				if !strings.Contains(got, w) {
					t.Errorf("output missing %q:\n%s", w, got)
				}
			}
			for _, w := range tt.notWant {
				if strings.Contains(got, w) {
					t.Errorf("output should not contain %q:\n%s", w, got)
				}
			}
		})
	}
}

func TestRenderFailures(t *testing.T) {
	rendered := renderFailures([]split.Failure{
		{Track: model.Track{Title: "One", Artist: "Band", OutputFile: "/x/01 Band - One.flac"}},
		{Track: model.Track{OutputFile: "/x/02 Unknown.flac"}},
	})
	for _, want := range []string{"Artist", "Band", "01 Band - One.flac", "02 Unknown.flac", "-"} {
		if !strings.Contains(rendered, want) {
			t.Errorf("table missing %q:\n%s", want, rendered)
		}
	}
}

func TestRootCommandFlags(t *testing.T) {
	cmd := newRootCommand()
	for _, name := range []string{"dry-run", "transfer", "jobs", "config", "yes", "log-level", "no-progress", "verbose", "save-config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("flag --%s not registered", name)
		}
	}
	if f := cmd.Flags().ShorthandLookup("j"); f == nil || f.Name != "jobs" {
		t.Error("-j should be the jobs shorthand")
	}
}
