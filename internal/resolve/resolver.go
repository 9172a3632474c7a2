package resolve

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"

	ioutils "github.com/handiism/cue-splitter/internal/io"
	"github.com/handiism/cue-splitter/internal/logging"
	"github.com/handiism/cue-splitter/internal/media"
	"github.com/handiism/cue-splitter/internal/model"
	"golang.org/x/sync/errgroup"
)

var (
	// ErrNoCandidates is returned when no file in the directory is long
	// enough to contain the sheet's last track.
	ErrNoCandidates = errors.New("no playtime-consistent audio file found")

	// ErrUserQuit is returned when the user quits from the repair menu.
	ErrUserQuit = errors.New("quit by user")
)

// Prompter is the terminal surface the resolver talks to.
type Prompter interface {
	// ConfirmMatch asks whether candidate should replace broken.
	ConfirmMatch(broken, candidate string, score int) (bool, error)

	// RepairChoice reads one raw answer for the repair menu.
	RepairChoice(cueFile string) (string, error)

	// ShowFiles lists the files of dir.
	ShowFiles(dir string, names []string)

	// Notify prints a single status line.
	Notify(message string)
}

// Resolver implements validate.Repairer.
type Resolver struct {
	prober   media.Prober
	prompter Prompter
	actions  Actions
	jobs     int
	logger   *slog.Logger
}

// Options configures a Resolver.
type Options struct {
	// Jobs bounds concurrent ffprobe calls; zero means runtime.NumCPU().
	Jobs   int
	Logger *slog.Logger
}

// New creates a Resolver.
func New(prober media.Prober, prompter Prompter, actions Actions, opts Options) *Resolver {
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	return &Resolver{
		prober:   prober,
		prompter: prompter,
		actions:  actions,
		jobs:     jobs,
		logger:   logging.OrNop(opts.Logger),
	}
}

// Repair tries to point sheet at an existing audio file. An accepted match
// updates sheet.AudioFilePath and reports model.FixNone. A rejected or
// missing match opens the repair menu.
func (r *Resolver) Repair(ctx context.Context, sheet *model.CueSheet) (model.FixAction, error) {
	match, found, err := r.FindMatch(ctx, sheet)
	if err != nil {
		return model.FixNone, err
	}

	if found {
		broken := filepath.Base(sheet.AudioFilePath)
		candidate := filepath.Base(match.Path)
		accepted, err := r.prompter.ConfirmMatch(broken, candidate, match.Score)
		if err != nil {
			return model.FixNone, err
		}
		if accepted {
			r.logger.Info("audio reference fixed",
				slog.String("from", broken),
				slog.String("to", candidate),
				slog.Int("score", match.Score))
			r.prompter.Notify(fmt.Sprintf("Fixed audio file reference: %s -> %s", broken, candidate))
			sheet.AudioFilePath = match.Path
			return model.FixNone, nil
		}
		r.prompter.Notify("The referenced audio file could not be fixed automatically")
	} else {
		r.prompter.Notify(fmt.Sprintf("Could not find a good match for %s", filepath.Base(sheet.AudioFilePath)))
	}

	return r.menu(ctx, sheet)
}

// FindMatch probes the files next to the broken reference and returns the
// best fuzzy match among the playtime-consistent ones.
func (r *Resolver) FindMatch(ctx context.Context, sheet *model.CueSheet) (Match, bool, error) {
	dir := searchDir(sheet)
	candidates, err := r.Candidates(ctx, dir, minimumSeconds(sheet))
	if err != nil {
		return Match{}, false, err
	}
	if len(candidates) == 0 {
		return Match{}, false, fmt.Errorf("%s: %w", sheet.AudioFilePath, ErrNoCandidates)
	}

	match, ok := BestMatch(filepath.Base(sheet.AudioFilePath), candidates)
	r.logger.Debug("fuzzy match",
		slog.Int("candidates", len(candidates)),
		slog.Bool("found", ok),
		slog.String("match", match.Path),
		slog.Int("score", match.Score))
	return match, ok, nil
}

// Candidates returns the files in dir whose probed playtime in whole seconds
// is at least minSeconds. Directories, cue files and unprobeable files are
// skipped. The order follows the directory listing.
func (r *Resolver) Candidates(ctx context.Context, dir string, minSeconds int) ([]string, error) {
	names, err := ioutils.ListFiles(dir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	keep := make([]bool, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.jobs)
	for i, name := range names {
		if ioutils.IsCueFile(name) {
			continue
		}
		path := filepath.Join(dir, name)
		g.Go(func() error {
			seconds, err := r.prober.Duration(gctx, path)
			if err != nil {
				r.logger.Debug("candidate skipped", slog.String("file", name), logging.Error(err))
				return nil
			}
			keep[i] = int(seconds) >= minSeconds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var candidates []string
	for i, name := range names {
		if keep[i] {
			candidates = append(candidates, filepath.Join(dir, name))
		}
	}
	return candidates, nil
}

// searchDir is the directory of the broken reference, or the cue file's
// directory when that does not exist.
func searchDir(sheet *model.CueSheet) string {
	dir := filepath.Dir(sheet.AudioFilePath)
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir
	}
	return sheet.Dir()
}

func minimumSeconds(sheet *model.CueSheet) int {
	last := sheet.LastTrack()
	if last == nil || last.StartTime == nil {
		return 0
	}
	return last.StartTime.WholeSeconds()
}
