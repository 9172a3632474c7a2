// Package media wraps the ffprobe and ffmpeg processes cue-splitter relies on.
//
// Key types:
//   - FFprobe: stream and duration probes used during validation and
//     audio reference resolution
//   - FFmpeg: runs a synthesized split invocation and captures its output
//   - ProcessError: a failed invocation with its captured stdout/stderr
//
// Both wrappers execute the binary directly (no shell) and honour context
// cancellation.
package media
