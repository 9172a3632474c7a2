// Package app wires the cue-splitting pipeline together: discovery,
// parsing, validation, command synthesis and either a dry run or the
// parallel split followed by playlists and audio transfer.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/handiism/cue-splitter/internal/audio"
	"github.com/handiism/cue-splitter/internal/config"
	"github.com/handiism/cue-splitter/internal/cue"
	ioutils "github.com/handiism/cue-splitter/internal/io"
	"github.com/handiism/cue-splitter/internal/logging"
	"github.com/handiism/cue-splitter/internal/media"
	"github.com/handiism/cue-splitter/internal/model"
	"github.com/handiism/cue-splitter/internal/prompt"
	"github.com/handiism/cue-splitter/internal/resolve"
	"github.com/handiism/cue-splitter/internal/split"
	"github.com/handiism/cue-splitter/internal/tui"
	"github.com/handiism/cue-splitter/internal/validate"
)

// Options configures an App.
type Options struct {
	Settings *config.Settings

	// DryRun prints the synthesized commands and writes nothing.
	DryRun bool

	// Transfer moves each source audio file into its output directory
	// after a fully successful split.
	Transfer bool

	// AssumeYes skips the cue file list confirmation.
	AssumeYes bool

	// Verbose shows per-track progress lines.
	Verbose bool

	Out     io.Writer
	Console *prompt.Console
	Prober  media.Prober
	Runner  split.Runner
	Actions resolve.Actions

	// Progress draws the split phase. Nil prints events as plain lines.
	Progress *tui.Progress

	Logger *slog.Logger
}

// Report summarises one run.
type Report struct {
	// Declined is set when the user declined the cue file list.
	Declined bool
	DryRun   bool

	Sheets    []*model.CueSheet
	Failures  []split.Failure
	Tracks    int
	Bytes     int64
	Playlists []string
	Moved     []string
}

// App runs the pipeline.
type App struct {
	opts      Options
	settings  *config.Settings
	logger    *slog.Logger
	validator *validate.Validator

	outMu sync.Mutex
}

// New creates an App. Settings default to config.DefaultSettings().
func New(opts Options) *App {
	settings := opts.Settings
	if settings == nil {
		settings = config.DefaultSettings()
	}
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	logger := logging.OrNop(opts.Logger)

	a := &App{opts: opts, settings: settings, logger: logger}

	var repairer validate.Repairer
	if opts.Console != nil {
		repairer = resolve.New(opts.Prober, opts.Console, opts.Actions, resolve.Options{
			Jobs:   settings.MaxConcurrentSplits,
			Logger: logger,
		})
	}
	a.validator = validate.New(opts.Prober, repairer, a.parse, logger)
	return a
}

// Run executes the whole pipeline over the given files and directories.
func (a *App) Run(ctx context.Context, paths []string) (*Report, error) {
	cuePaths, err := a.Discover(paths)
	if err != nil {
		return nil, err
	}
	if len(cuePaths) == 0 {
		a.notify("No cue files found")
		return &Report{DryRun: a.opts.DryRun}, nil
	}

	if !a.opts.AssumeYes && a.opts.Console != nil {
		ok, err := a.opts.Console.ConfirmCueFiles(cuePaths)
		if err != nil {
			return nil, err
		}
		if !ok {
			return &Report{Declined: true}, nil
		}
	}

	sheets, err := a.Prepare(ctx, cuePaths)
	if err != nil {
		return nil, err
	}

	report := &Report{Sheets: sheets, DryRun: a.opts.DryRun}
	for _, sheet := range sheets {
		report.Tracks += len(sheet.Tracks)
	}

	if a.opts.DryRun {
		a.PrintCommands(sheets)
		return report, nil
	}

	failures, err := a.Split(ctx, sheets)
	report.Failures = failures
	if err != nil {
		return report, err
	}
	report.Bytes = outputBytes(sheets, failures)

	failed := split.FailedSheets(failures)
	if report.Playlists, err = a.WritePlaylists(ctx, sheets, failed); err != nil {
		return report, err
	}

	if a.opts.Transfer && len(failures) == 0 {
		if report.Moved, err = TransferAudioFiles(ctx, sheets); err != nil {
			return report, err
		}
	}
	return report, nil
}

// Discover expands files and directories into a sorted list of cue files.
func (a *App) Discover(paths []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}
	found, err := ioutils.FindCueFiles(paths)
	if err != nil {
		return nil, fmt.Errorf("discover cue files: %w", err)
	}
	a.logger.Debug("cue files discovered", slog.Int("count", len(found)))
	return found, nil
}

// Prepare parses, validates and synthesizes every cue file. Sheets deleted
// during repair are left out. The first hard failure stops preparation.
func (a *App) Prepare(ctx context.Context, cuePaths []string) ([]*model.CueSheet, error) {
	var images *ioutils.ImageService
	if a.settings.EmbedCoverArt && !a.opts.DryRun {
		images = ioutils.NewImageService(a.settings.CoverArtMaxSize)
	}

	sheets := make([]*model.CueSheet, 0, len(cuePaths))
	for _, path := range cuePaths {
		sheet, err := a.parse(path)
		if err != nil {
			return nil, err
		}

		result, err := a.validator.Validate(ctx, sheet)
		if err != nil {
			return nil, err
		}
		if result.Abandoned {
			a.logger.Info("cue sheet abandoned", slog.String("cue_file", path))
			continue
		}
		sheet = result.Sheet

		layout, err := split.LayoutFor(sheet.CueFilePath)
		if err != nil {
			return nil, err
		}
		if err := split.Synthesize(sheet, layout, a.settings.FFmpegBinary); err != nil {
			return nil, fmt.Errorf("%s: %w", sheet.CueFilePath, err)
		}

		if images != nil {
			a.attachCoverArt(ctx, images, sheet)
		}
		sheets = append(sheets, sheet)
	}
	return sheets, nil
}

func (a *App) parse(path string) (*model.CueSheet, error) {
	return cue.ParseFile(path, cue.Options{Lossy: a.settings.LossyDecode})
}

func (a *App) attachCoverArt(ctx context.Context, images *ioutils.ImageService, sheet *model.CueSheet) {
	dir := filepath.Dir(sheet.AudioFilePath)
	data, err := images.LoadCoverArt(ctx, dir)
	switch {
	case errors.Is(err, ioutils.ErrNoCoverArt):
		a.logger.Debug("no cover art", slog.String("dir", dir))
	case err != nil:
		a.logger.Warn("cover art unusable", slog.String("dir", dir), logging.Error(err))
	default:
		sheet.CoverArt = data
	}
}

// PrintCommands writes every synthesized command line, one per track, in
// sheet and track order.
func (a *App) PrintCommands(sheets []*model.CueSheet) {
	for _, sheet := range sheets {
		for _, track := range sheet.Tracks {
			fmt.Fprintln(a.opts.Out, track.FFmpegCommand)
		}
	}
}

// Split runs every track through the orchestrator and returns the
// per-track failures. The error is non-nil only when the progress view
// fails or the user cancels it.
func (a *App) Split(ctx context.Context, sheets []*model.CueSheet) ([]split.Failure, error) {
	opts := split.Options{
		Jobs:   a.settings.MaxConcurrentSplits,
		Tagger: audio.NewTagger(a.settings.ToTagConfig(), a.logger),
	}
	if a.opts.Progress != nil {
		opts.OnProgress = a.opts.Progress.Emit
	} else {
		opts.OnProgress = a.printEvent
	}

	orch := split.NewOrchestrator(a.opts.Runner, opts)
	if a.opts.Progress != nil {
		return a.opts.Progress.Run(ctx, orch, sheets)
	}
	return orch.Run(ctx, sheets), nil
}

// WritePlaylists writes a playlist next to the tracks of every sheet that
// split without failures. It returns the written paths.
func (a *App) WritePlaylists(ctx context.Context, sheets []*model.CueSheet, failed map[*model.CueSheet]bool) ([]string, error) {
	creator := a.settings.ToPlaylistCreator()
	if creator == nil {
		return nil, nil
	}

	var written []string
	for _, sheet := range sheets {
		if failed[sheet] {
			continue
		}
		path := creator.PlaylistPath(sheet)
		if err := ioutils.WriteFile(ctx, path, []byte(creator.CreatePlaylist(sheet))); err != nil {
			return written, fmt.Errorf("write playlist: %w", err)
		}
		written = append(written, path)
	}
	return written, nil
}

// TransferAudioFiles moves each sheet's audio file into its output
// directory. Sheets whose output directory is the audio directory are left
// alone. It returns the new paths of the moved files.
func TransferAudioFiles(ctx context.Context, sheets []*model.CueSheet) ([]string, error) {
	var moved []string
	for _, sheet := range sheets {
		if sheet.OutputDir == "" || ioutils.SameDir(filepath.Dir(sheet.AudioFilePath), sheet.OutputDir) {
			continue
		}
		dst := filepath.Join(sheet.OutputDir, filepath.Base(sheet.AudioFilePath))
		if err := ioutils.MoveFile(ctx, sheet.AudioFilePath, dst); err != nil {
			return moved, fmt.Errorf("move %s: %w", sheet.AudioFilePath, err)
		}
		sheet.AudioFilePath = dst
		moved = append(moved, dst)
	}
	return moved, nil
}

func (a *App) notify(message string) {
	if a.opts.Console != nil {
		a.opts.Console.Notify(message)
		return
	}
	fmt.Fprintln(a.opts.Out, message)
}

func (a *App) printEvent(event split.Event) {
	if event.Level == split.LevelVerbose && !a.opts.Verbose {
		return
	}

	prefix := ""
	switch event.Level {
	case split.LevelError:
		prefix = "✗ "
	case split.LevelWarning:
		prefix = "! "
	case split.LevelSuccess:
		prefix = "✓ "
	case split.LevelInfo:
		prefix = "› "
	default:
		prefix = "  "
	}

	a.outMu.Lock()
	defer a.outMu.Unlock()
	fmt.Fprintln(a.opts.Out, prefix+event.Message)
}

func outputBytes(sheets []*model.CueSheet, failures []split.Failure) int64 {
	failed := make(map[string]bool, len(failures))
	for _, f := range failures {
		failed[f.Track.OutputFile] = true
	}

	var total int64
	for _, sheet := range sheets {
		for _, track := range sheet.Tracks {
			if !failed[track.OutputFile] {
				total += ioutils.FileSize(track.OutputFile)
			}
		}
	}
	return total
}
