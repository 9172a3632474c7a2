// Package prompt implements the line-oriented terminal dialogue: the cue
// file confirmation, the fuzzy match confirmation and the repair menu.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Tier is the confidence band of a fuzzy match score.
type Tier int

const (
	// TierConfident is a score above 85; accepted by default.
	TierConfident Tier = iota
	// TierUncertain is a score in (70, 85]; accepted by default but flagged.
	TierUncertain
	// TierDoubtful is a score of 70 or less; rejected by default.
	TierDoubtful
)

// TierFor returns the confidence tier of score.
func TierFor(score int) Tier {
	switch {
	case score > 85:
		return TierConfident
	case score > 70:
		return TierUncertain
	default:
		return TierDoubtful
	}
}

// DefaultAccept reports whether a blank answer accepts the match.
func (t Tier) DefaultAccept() bool {
	return t != TierDoubtful
}

// Decide applies an explicit y/n answer, falling back to def for anything
// else.
func Decide(input string, def bool) bool {
	switch strings.TrimSpace(input) {
	case "y", "Y":
		return true
	case "n", "N":
		return false
	default:
		return def
	}
}

// Console talks to the user over a reader and a writer. Colours are only
// emitted when out is a terminal.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	info    lipgloss.Style
	success lipgloss.Style
	warning lipgloss.Style
	danger  lipgloss.Style
	dim     lipgloss.Style
}

// NewConsole creates a Console reading answers from in and writing to out.
func NewConsole(in io.Reader, out io.Writer) *Console {
	r := lipgloss.NewRenderer(out)
	return &Console{
		in:      bufio.NewReader(in),
		out:     out,
		info:    r.NewStyle().Foreground(lipgloss.Color("#4ECDC4")),
		success: r.NewStyle().Foreground(lipgloss.Color("#95E1A3")),
		warning: r.NewStyle().Foreground(lipgloss.Color("#FFE66D")),
		danger:  r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		dim:     r.NewStyle().Foreground(lipgloss.Color("#6C757D")),
	}
}

// ConfirmCueFiles lists the discovered cue files and asks whether to
// proceed. A blank answer or "y" proceeds. End of input declines.
func (c *Console) ConfirmCueFiles(paths []string) (bool, error) {
	fmt.Fprintf(c.out, "Found %d cue file(s):\n", len(paths))
	for _, p := range paths {
		fmt.Fprintf(c.out, "\t%s\n", p)
	}
	fmt.Fprintln(c.out)
	fmt.Fprint(c.out, c.info.Render("Proceed with splitting? (Y/n): "))

	answer, err := c.readLine()
	if errors.Is(err, io.EOF) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	answer = strings.TrimSpace(answer)
	return answer == "" || strings.EqualFold(answer, "y"), nil
}

// ConfirmMatch offers candidate as a replacement for broken. The prompt
// colour and the default follow the score's tier.
func (c *Console) ConfirmMatch(broken, candidate string, score int) (bool, error) {
	tier := TierFor(score)
	fmt.Fprintln(c.out, "Found a similar audio file in the same directory:")
	fmt.Fprintf(c.out, "\t%q -> %q (%d%%)\n", broken, candidate, score)

	question := "Do you want to use this file instead? (Y/n): "
	style := c.success
	switch tier {
	case TierUncertain:
		style = c.warning
	case TierDoubtful:
		question = "Do you want to use this file instead? (y/N): "
		style = c.danger
	}
	fmt.Fprint(c.out, style.Render(question))

	answer, err := c.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	return Decide(answer, tier.DefaultAccept()), nil
}

// RepairChoice shows the repair menu and returns the raw answer. End of
// input is answered with "q".
func (c *Console) RepairChoice(cueFile string) (string, error) {
	fmt.Fprintln(c.out, c.dim.Render(cueFile))
	fmt.Fprint(c.out, c.info.Render("What do you want to do with the cue file? (e)dit, (d)elete, (l)ist files, (v)iew, (r)etry, (q)uit: "))

	answer, err := c.readLine()
	if errors.Is(err, io.EOF) {
		return "q", nil
	}
	return answer, err
}

// ShowFiles prints one path per line.
func (c *Console) ShowFiles(_ string, names []string) {
	for _, name := range names {
		fmt.Fprintf(c.out, "\t - %s\n", name)
	}
}

// Notify prints a status line.
func (c *Console) Notify(message string) {
	fmt.Fprintln(c.out, message)
}

// Warn prints a highlighted warning line.
func (c *Console) Warn(message string) {
	fmt.Fprintln(c.out, c.warning.Render(message))
}

// Success prints a highlighted success line.
func (c *Console) Success(message string) {
	fmt.Fprintln(c.out, c.success.Render(message))
}

// readLine returns one line without its terminator. A final line without a
// newline is returned with a nil error.
func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
