package media

import (
	"context"
)

// FFmpeg runs split invocations.
type FFmpeg struct {
	// Binary is the ffmpeg executable; empty means "ffmpeg" from PATH.
	Binary string
}

// NewFFmpeg creates an FFmpeg for the given binary.
func NewFFmpeg(binary string) *FFmpeg {
	return &FFmpeg{Binary: binary}
}

// Name returns the executable that Run will start.
func (f *FFmpeg) Name() string {
	return binaryOrDefault(f.Binary, "ffmpeg")
}

// Run executes ffmpeg with args. A failure is returned as *ProcessError
// carrying the captured output.
func (f *FFmpeg) Run(ctx context.Context, args []string) (Output, error) {
	return run(ctx, f.Name(), args)
}
