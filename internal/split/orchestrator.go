package split

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"sync"
	"sync/atomic"

	ioutils "github.com/handiism/cue-splitter/internal/io"
	"github.com/handiism/cue-splitter/internal/media"
	"github.com/handiism/cue-splitter/internal/model"
	"golang.org/x/sync/errgroup"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// Event represents a split progress update.
type Event struct {
	Message string
	Level   ProgressLevel
}

// Runner executes one ffmpeg invocation.
type Runner interface {
	Run(ctx context.Context, args []string) (media.Output, error)
}

// Tagger writes metadata to a freshly split track.
type Tagger interface {
	Tag(sheet *model.CueSheet, track model.Track) error
}

// Failure is a track whose split or tag write failed.
type Failure struct {
	Sheet   *model.CueSheet
	Track   model.Track
	Message string
}

// Options configures an Orchestrator.
type Options struct {
	// Jobs bounds the number of concurrent splits; values below 1 mean 1.
	Jobs int

	// Tagger is called after every successful split. Nil skips tagging.
	Tagger Tagger

	OnProgress func(Event)
}

// Orchestrator runs the synthesized commands of many cue sheets through a
// bounded worker pool.
type Orchestrator struct {
	runner     Runner
	tagger     Tagger
	jobs       int
	onProgress func(Event)

	total int32
	done  int32

	mu       sync.Mutex
	failures []indexedFailure
}

type indexedFailure struct {
	index int
	Failure
}

type unit struct {
	index int
	sheet *model.CueSheet
	track model.Track
}

// NewOrchestrator creates an Orchestrator that executes commands with runner.
func NewOrchestrator(runner Runner, opts Options) *Orchestrator {
	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}
	return &Orchestrator{
		runner:     runner,
		tagger:     opts.Tagger,
		jobs:       jobs,
		onProgress: opts.OnProgress,
	}
}

// Run splits every track of every sheet and returns the failures in
// sheet/track order. An empty result means every track succeeded. A failing
// track never stops its siblings.
func (o *Orchestrator) Run(ctx context.Context, sheets []*model.CueSheet) []Failure {
	units := flatten(sheets)
	atomic.StoreInt32(&o.total, int32(len(units)))
	atomic.StoreInt32(&o.done, 0)

	o.mu.Lock()
	o.failures = nil
	o.mu.Unlock()

	var g errgroup.Group
	g.SetLimit(o.jobs)

	for _, u := range units {
		g.Go(func() error {
			if err := o.splitTrack(ctx, u); err != nil {
				o.progress(Event{Message: fmt.Sprintf("Failed: %s", filepath.Base(u.track.OutputFile)), Level: LevelError})
				o.record(u, err)
			} else {
				o.progress(Event{Message: fmt.Sprintf("Split: %s", filepath.Base(u.track.OutputFile)), Level: LevelVerbose})
			}
			atomic.AddInt32(&o.done, 1)
			return nil // Continue with other tracks
		})
	}
	_ = g.Wait()

	return o.collect()
}

// Progress returns how many tracks have finished out of the current batch.
func (o *Orchestrator) Progress() (done, total int32) {
	return atomic.LoadInt32(&o.done), atomic.LoadInt32(&o.total)
}

func (o *Orchestrator) splitTrack(ctx context.Context, u unit) error {
	if len(u.track.FFmpegArgs) == 0 {
		return fmt.Errorf("%s: no command synthesized", u.track)
	}
	if err := ioutils.EnsureDir(filepath.Dir(u.track.OutputFile)); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	if _, err := o.runner.Run(ctx, u.track.FFmpegArgs); err != nil {
		return err
	}

	if o.tagger != nil {
		if err := o.tagger.Tag(u.sheet, u.track); err != nil {
			return fmt.Errorf("write tags: %w", err)
		}
	}
	return nil
}

func (o *Orchestrator) record(u unit, err error) {
	message := err.Error()
	var procErr *media.ProcessError
	if errors.As(err, &procErr) {
		message = procErr.Diagnostic()
	}

	o.mu.Lock()
	o.failures = append(o.failures, indexedFailure{
		index:   u.index,
		Failure: Failure{Sheet: u.sheet, Track: u.track, Message: message},
	})
	o.mu.Unlock()
}

func (o *Orchestrator) collect() []Failure {
	o.mu.Lock()
	defer o.mu.Unlock()

	sort.Slice(o.failures, func(i, j int) bool {
		return o.failures[i].index < o.failures[j].index
	})
	out := make([]Failure, len(o.failures))
	for i, f := range o.failures {
		out[i] = f.Failure
	}
	return out
}

func (o *Orchestrator) progress(event Event) {
	if o.onProgress != nil {
		o.onProgress(event)
	}
}

func flatten(sheets []*model.CueSheet) []unit {
	var units []unit
	for _, sheet := range sheets {
		for _, track := range sheet.Tracks {
			units = append(units, unit{index: len(units), sheet: sheet, track: track})
		}
	}
	return units
}

// FailedSheets returns the set of sheets that had at least one failure.
func FailedSheets(failures []Failure) map[*model.CueSheet]bool {
	failed := make(map[*model.CueSheet]bool, len(failures))
	for _, f := range failures {
		failed[f.Sheet] = true
	}
	return failed
}
