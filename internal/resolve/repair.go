package resolve

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ioutils "github.com/handiism/cue-splitter/internal/io"
	"github.com/handiism/cue-splitter/internal/model"
)

// Choice is a repair menu entry.
type Choice rune

const (
	ChoiceEdit   Choice = 'e'
	ChoiceDelete Choice = 'd'
	ChoiceList   Choice = 'l'
	ChoiceView   Choice = 'v'
	ChoiceRetry  Choice = 'r'
	ChoiceQuit   Choice = 'q'
)

// ParseChoice maps a raw answer to a menu choice, ignoring case and
// surrounding whitespace.
func ParseChoice(input string) (Choice, bool) {
	answer := strings.ToLower(strings.TrimSpace(input))
	if len(answer) != 1 {
		return 0, false
	}
	switch c := Choice(answer[0]); c {
	case ChoiceEdit, ChoiceDelete, ChoiceList, ChoiceView, ChoiceRetry, ChoiceQuit:
		return c, true
	}
	return 0, false
}

// Actions performs the side effects of the repair menu.
type Actions interface {
	Edit(ctx context.Context, path string) error
	View(ctx context.Context, path string) error
	Delete(path string) error
}

// ExternalActions opens files with external programs attached to the
// terminal.
type ExternalActions struct {
	Editor string
	Viewer string
}

// Edit opens path in the configured editor, $EDITOR, or nano.
func (a ExternalActions) Edit(ctx context.Context, path string) error {
	editor := firstNonEmpty(a.Editor, os.Getenv("EDITOR"), "nano")
	return runAttached(ctx, editor, path)
}

// View opens path with the configured viewer or the platform opener.
func (a ExternalActions) View(ctx context.Context, path string) error {
	return runAttached(ctx, firstNonEmpty(a.Viewer, DefaultViewer()), path)
}

// Delete removes the cue file.
func (a ExternalActions) Delete(path string) error {
	return os.Remove(path)
}

// DefaultViewer returns the platform's generic file opener.
func DefaultViewer() string {
	if _, err := exec.LookPath("xdg-open"); err == nil {
		return "xdg-open"
	}
	return "open"
}

func runAttached(ctx context.Context, program, path string) error {
	fields := strings.Fields(program)
	if len(fields) == 0 {
		return fmt.Errorf("no program configured to open %s", path)
	}
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// menu loops until the user picks an option that ends the repair.
func (r *Resolver) menu(ctx context.Context, sheet *model.CueSheet) (model.FixAction, error) {
	for {
		answer, err := r.prompter.RepairChoice(sheet.CueFilePath)
		if err != nil {
			return model.FixNone, err
		}

		choice, ok := ParseChoice(answer)
		if !ok {
			r.prompter.Notify("Invalid input, please try again")
			continue
		}

		switch choice {
		case ChoiceEdit:
			if err := r.actions.Edit(ctx, sheet.CueFilePath); err != nil {
				r.prompter.Notify(fmt.Sprintf("Could not open editor: %v", err))
			}
		case ChoiceView:
			if err := r.actions.View(ctx, sheet.CueFilePath); err != nil {
				r.prompter.Notify(fmt.Sprintf("Could not open viewer: %v", err))
			}
		case ChoiceList:
			dir := searchDir(sheet)
			names, err := ioutils.ListFiles(dir)
			if err != nil {
				r.prompter.Notify(fmt.Sprintf("Could not list %s: %v", dir, err))
				continue
			}
			paths := make([]string, len(names))
			for i, name := range names {
				paths[i] = filepath.Join(dir, name)
			}
			r.prompter.ShowFiles(dir, paths)
		case ChoiceDelete:
			if err := r.actions.Delete(sheet.CueFilePath); err != nil {
				return model.FixNone, fmt.Errorf("delete %s: %w", sheet.CueFilePath, err)
			}
			r.prompter.Notify(fmt.Sprintf("Deleted cue file: %s", sheet.CueFilePath))
			return model.FixDeleted, nil
		case ChoiceRetry:
			return model.FixModified, nil
		case ChoiceQuit:
			return model.FixNone, ErrUserQuit
		}
	}
}
