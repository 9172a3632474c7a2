package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Output holds the captured streams of a finished process.
type Output struct {
	Stdout []byte
	Stderr []byte
}

// ProcessError describes a process that could not start or exited non-zero.
type ProcessError struct {
	Command string
	Output  Output
	Err     error
}

func (e *ProcessError) Error() string {
	detail := strings.TrimSpace(string(e.Output.Stderr))
	if detail == "" {
		return fmt.Sprintf("%s: %v", e.Command, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Command, e.Err, detail)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}

// Diagnostic returns stdout and stderr joined by a newline, the form used
// in failure reports. A process that printed nothing, or never started,
// is described by its error instead.
func (e *ProcessError) Diagnostic() string {
	if len(bytes.TrimSpace(e.Output.Stdout)) == 0 && len(bytes.TrimSpace(e.Output.Stderr)) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s\n%s", e.Output.Stdout, e.Output.Stderr)
}

func run(ctx context.Context, binary string, args []string) (Output, error) {
	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	out := Output{Stdout: stdout.Bytes(), Stderr: stderr.Bytes()}
	if err != nil {
		return out, &ProcessError{Command: binary, Output: out, Err: err}
	}
	return out, nil
}

func binaryOrDefault(binary, fallback string) string {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return fallback
	}
	return binary
}
