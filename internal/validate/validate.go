// Package validate enforces the structural rules a cue sheet must satisfy
// before it can be split.
//
// Validation runs as a small state machine: Validating moves to Repairing
// when the referenced audio file is missing, and Repairing returns to
// Validating or ends in Abandoned depending on the repair outcome.
package validate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/handiism/cue-splitter/internal/logging"
	"github.com/handiism/cue-splitter/internal/media"
	"github.com/handiism/cue-splitter/internal/model"
)

var (
	ErrCueMissing   = errors.New("cue file does not exist")
	ErrAudioMissing = errors.New("audio file does not exist")
	ErrNoTracks     = errors.New("no tracks")
	ErrUnprobeable  = errors.New("audio stream cannot be probed")
	ErrMissingStart = errors.New("track has no INDEX 01")
	ErrNotMonotonic = errors.New("start times are not strictly increasing")
)

// Error is a hard validation failure for one cue sheet.
type Error struct {
	CueFile string
	Reason  error
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.CueFile, e.Reason)
	}
	return fmt.Sprintf("%s: %v: %s", e.CueFile, e.Reason, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Reason
}

// Repairer attempts to fix a sheet whose audio file is missing.
type Repairer interface {
	Repair(ctx context.Context, sheet *model.CueSheet) (model.FixAction, error)
}

// Reloader re-reads a cue sheet from disk after it was edited.
type Reloader func(cuePath string) (*model.CueSheet, error)

// Result is the outcome of validating one sheet. Abandoned sheets were
// deleted during repair and must not be processed further.
type Result struct {
	Sheet     *model.CueSheet
	Abandoned bool
}

// Validator checks cue sheets and drives repairs.
type Validator struct {
	prober   media.Prober
	repairer Repairer
	reload   Reloader
	logger   *slog.Logger
}

// New creates a Validator. A nil repairer turns a missing audio file into a
// hard failure. A nil logger discards.
func New(prober media.Prober, repairer Repairer, reload Reloader, logger *slog.Logger) *Validator {
	return &Validator{
		prober:   prober,
		repairer: repairer,
		reload:   reload,
		logger:   logging.OrNop(logger),
	}
}

type state int

const (
	stateValidating state = iota
	stateRepairing
)

// Validate checks sheet and returns it, possibly replaced by a reloaded copy
// or with a corrected audio path.
func (v *Validator) Validate(ctx context.Context, sheet *model.CueSheet) (Result, error) {
	current := stateValidating
	for {
		switch current {
		case stateValidating:
			if !exists(sheet.CueFilePath) {
				return Result{}, &Error{CueFile: sheet.CueFilePath, Reason: ErrCueMissing}
			}
			if !exists(sheet.AudioFilePath) {
				v.logger.Info("audio file missing, attempting repair",
					slog.String("cue", sheet.CueFilePath),
					slog.String("audio", sheet.AudioFilePath))
				current = stateRepairing
				continue
			}
			if err := v.checkContent(ctx, sheet); err != nil {
				return Result{}, err
			}
			v.logger.Debug("cue sheet valid",
				slog.String("cue", sheet.CueFilePath),
				slog.Int("tracks", len(sheet.Tracks)))
			return Result{Sheet: sheet}, nil

		case stateRepairing:
			if v.repairer == nil {
				return Result{}, &Error{CueFile: sheet.CueFilePath, Reason: ErrAudioMissing, Detail: sheet.AudioFilePath}
			}
			action, err := v.repairer.Repair(ctx, sheet)
			if err != nil {
				return Result{}, fmt.Errorf("repair %s: %w", sheet.CueFilePath, err)
			}
			v.logger.Debug("repair finished",
				slog.String("cue", sheet.CueFilePath),
				slog.String("action", action.String()))

			switch action {
			case model.FixDeleted:
				return Result{Abandoned: true}, nil
			case model.FixModified:
				reloaded, err := v.reloadSheet(sheet)
				if err != nil {
					return Result{}, err
				}
				sheet = reloaded
			default:
				if !exists(sheet.AudioFilePath) {
					return Result{}, &Error{CueFile: sheet.CueFilePath, Reason: ErrAudioMissing, Detail: sheet.AudioFilePath}
				}
			}
			current = stateValidating
		}
	}
}

func (v *Validator) reloadSheet(sheet *model.CueSheet) (*model.CueSheet, error) {
	if v.reload == nil {
		return sheet, nil
	}
	reloaded, err := v.reload(sheet.CueFilePath)
	if err != nil {
		return nil, fmt.Errorf("reload %s: %w", sheet.CueFilePath, err)
	}
	return reloaded, nil
}

func (v *Validator) checkContent(ctx context.Context, sheet *model.CueSheet) error {
	if len(sheet.Tracks) == 0 {
		return &Error{CueFile: sheet.CueFilePath, Reason: ErrNoTracks}
	}

	info, err := v.prober.AudioStream(ctx, sheet.AudioFilePath)
	if err != nil {
		return &Error{CueFile: sheet.CueFilePath, Reason: ErrUnprobeable, Detail: err.Error()}
	}
	v.logger.Debug("audio stream probed",
		slog.String("audio", sheet.AudioFilePath),
		slog.String("codec", info.CodecName))

	for _, track := range sheet.Tracks {
		if !track.HasStartTime() {
			return &Error{CueFile: sheet.CueFilePath, Reason: ErrMissingStart, Detail: fmt.Sprintf("track %02d", track.Number)}
		}
	}

	return CheckMonotonic(sheet)
}

// CheckMonotonic verifies that start times strictly increase in list order.
// The error names the offending track, its predecessor and both times.
func CheckMonotonic(sheet *model.CueSheet) error {
	for i := 1; i < len(sheet.Tracks); i++ {
		prev, cur := sheet.Tracks[i-1], sheet.Tracks[i]
		if prev.StartTime == nil || cur.StartTime == nil {
			continue
		}
		if !prev.StartTime.Before(*cur.StartTime) {
			return &Error{
				CueFile: sheet.CueFilePath,
				Reason:  ErrNotMonotonic,
				Detail: fmt.Sprintf("track %02d starts at %s, not after track %02d at %s",
					cur.Number, cur.StartTime, prev.Number, prev.StartTime),
			}
		}
	}
	return nil
}

func exists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
