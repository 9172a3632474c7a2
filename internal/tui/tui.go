// Package tui provides a Bubble Tea progress view for the split phase.
package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/handiism/cue-splitter/internal/model"
	"github.com/handiism/cue-splitter/internal/split"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))
)

// maxLogs is how many progress lines stay on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateSplitting State = iota
	StateComplete
	StateCancelled
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   split.ProgressLevel
}

// Splitter is the work the view tracks. *split.Orchestrator satisfies it.
type Splitter interface {
	Run(ctx context.Context, sheets []*model.CueSheet) []split.Failure
	Progress() (done, total int32)
}

// Model is the Bubble Tea model for the progress view.
type Model struct {
	state    State
	spinner  spinner.Model
	progress progress.Model
	logs     []LogEntry
	verbose  bool

	ctx      context.Context
	cancel   context.CancelFunc
	splitter Splitter
	sheets   []*model.CueSheet
	failures []split.Failure

	done  int32
	total int32
}

// Message types
type (
	// ProgressMsg carries an orchestrator event.
	ProgressMsg struct {
		Event split.Event
	}

	// DoneMsg is sent when the splitter returns.
	DoneMsg struct {
		Failures []split.Failure
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// NewModel creates a progress model for splitting sheets.
func NewModel(ctx context.Context, splitter Splitter, sheets []*model.CueSheet, verbose bool) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(ctx)

	return Model{
		state:    StateSplitting,
		spinner:  sp,
		progress: prog,
		verbose:  verbose,
		ctx:      ctx,
		cancel:   cancel,
		splitter: splitter,
		sheets:   sheets,
	}
}

// Init starts the split and the progress ticker.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startSplit(), m.tickProgress())
}

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			// Running ffmpeg processes are killed through the context; the
			// view quits once the splitter returns.
			m.cancel()
			m.state = StateCancelled
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level == split.LevelVerbose && !m.verbose {
			return m, nil
		}
		m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
		if len(m.logs) > maxLogs {
			m.logs = m.logs[len(m.logs)-maxLogs:]
		}

	case DoneMsg:
		m.failures = msg.Failures
		m.done, m.total = m.splitter.Progress()
		if m.state != StateCancelled {
			m.state = StateComplete
		}
		m.cancel()
		return m, tea.Quit

	case TickMsg:
		if m.state == StateSplitting {
			m.done, m.total = m.splitter.Progress()
			cmds = append(cmds, m.progress.SetPercent(m.percent()), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// Failures returns what the splitter reported once it has finished.
func (m Model) Failures() []split.Failure {
	return m.failures
}

// State returns the current UI state.
func (m Model) State() State {
	return m.state
}

func (m Model) percent() float64 {
	if m.total == 0 {
		return 0
	}
	return float64(m.done) / float64(m.total)
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

func (m Model) startSplit() tea.Cmd {
	return func() tea.Msg {
		return DoneMsg{Failures: m.splitter.Run(m.ctx, m.sheets)}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Splitting tracks"))
	b.WriteString("\n")

	switch m.state {
	case StateSplitting:
		b.WriteString(m.spinner.View())
		b.WriteString(" ")
		b.WriteString(m.progress.ViewAs(m.percent()))
	case StateCancelled:
		b.WriteString(warningStyle.Render("Cancelling, waiting for running splits..."))
	case StateComplete:
		if len(m.failures) == 0 {
			b.WriteString(successStyle.Render("All tracks split"))
		} else {
			b.WriteString(errorStyle.Render(fmt.Sprintf("%d track(s) failed", len(m.failures))))
		}
	}
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Tracks: %d/%d", m.done, m.total)))
	b.WriteString("\n\n")

	b.WriteString(m.renderLogs())

	if m.state == StateSplitting {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("esc: cancel"))
	}
	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case split.LevelError:
			style = errorStyle
			prefix = "✗"
		case split.LevelWarning:
			style = warningStyle
			prefix = "!"
		case split.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case split.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

// Progress drives a Model in a tea.Program and forwards orchestrator events
// to it.
//
//	ui := tui.NewProgress(os.Stdin, os.Stdout, verbose)
//	orch := split.NewOrchestrator(ffmpeg, split.Options{OnProgress: ui.Emit})
//	failures, err := ui.Run(ctx, orch, sheets)
type Progress struct {
	in      io.Reader
	out     io.Writer
	verbose bool
	options []tea.ProgramOption

	program *tea.Program
}

// NewProgress creates a progress view reading keys from in and drawing to out.
func NewProgress(in io.Reader, out io.Writer, verbose bool, opts ...tea.ProgramOption) *Progress {
	return &Progress{in: in, out: out, verbose: verbose, options: opts}
}

// Emit forwards an event to the running view. Events arriving while no view
// is running are dropped.
func (p *Progress) Emit(event split.Event) {
	if p.program != nil {
		p.program.Send(ProgressMsg{Event: event})
	}
}

// Run shows the view while splitter processes sheets and returns the
// splitter's failures.
func (p *Progress) Run(ctx context.Context, splitter Splitter, sheets []*model.CueSheet) ([]split.Failure, error) {
	opts := append([]tea.ProgramOption{tea.WithInput(p.in), tea.WithOutput(p.out)}, p.options...)
	p.program = tea.NewProgram(NewModel(ctx, splitter, sheets, p.verbose), opts...)
	defer func() { p.program = nil }()

	final, err := p.program.Run()
	if err != nil {
		return nil, fmt.Errorf("progress view: %w", err)
	}
	m := final.(Model)
	if m.State() == StateCancelled {
		return m.Failures(), context.Canceled
	}
	return m.Failures(), nil
}

// Enabled reports whether f is an interactive terminal the view can draw on.
func Enabled(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
