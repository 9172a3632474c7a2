package main

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/handiism/cue-splitter/internal/app"
	"github.com/handiism/cue-splitter/internal/prompt"
	"github.com/handiism/cue-splitter/internal/split"
)

func printReport(out io.Writer, console *prompt.Console, report *app.Report) {
	switch {
	case report.Declined:
		console.Notify("Exiting ...")
		return
	case report.DryRun:
		return
	case len(report.Sheets) == 0:
		return
	}

	if len(report.Failures) > 0 {
		console.Warn("Failed to split the following tracks:")
		fmt.Fprintln(out, renderFailures(report.Failures))
		fmt.Fprintln(out)
		for i, f := range report.Failures {
			fmt.Fprintf(out, "[%d] Output file: %s\n", i+1, f.Track.OutputFile)
			fmt.Fprintf(out, "[%d] Command: %s\n", i+1, f.Track.FFmpegCommand)
			fmt.Fprintf(out, "[%d] Error message: %s\n\n", i+1, f.Message)
		}
	} else {
		console.Success(fmt.Sprintf("All %d tracks have been split (%s)",
			report.Tracks, humanize.Bytes(uint64(max(report.Bytes, 0)))))
	}

	for _, path := range report.Playlists {
		console.Notify("Playlist written: " + path)
	}
	for _, path := range report.Moved {
		console.Notify("Moved audio file to: " + path)
	}
	console.Notify("Everything is done, bye bye")
}

func renderFailures(failures []split.Failure) string {
	rows := make([][]string, 0, len(failures))
	for i, f := range failures {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			orDash(f.Track.Artist),
			orDash(f.Track.Title),
			filepath.Base(f.Track.OutputFile),
		})
	}
	return renderTable(
		[]string{"#", "Artist", "Title", "Output file"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
