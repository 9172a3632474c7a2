package media

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrNoAudioStream is returned when ffprobe succeeds but reports no audio
// stream.
var ErrNoAudioStream = errors.New("no audio stream")

// StreamInfo is the codec summary of the first audio stream.
type StreamInfo struct {
	CodecName string
	CodecType string
}

// Prober answers the two questions validation and resolution ask about an
// audio file.
type Prober interface {
	// AudioStream probes the first audio stream's codec.
	AudioStream(ctx context.Context, path string) (StreamInfo, error)

	// Duration returns the container playtime in seconds.
	Duration(ctx context.Context, path string) (float64, error)
}

// FFprobe implements Prober by running the ffprobe binary.
type FFprobe struct {
	// Binary is the ffprobe executable; empty means "ffprobe" from PATH.
	Binary string
}

// NewFFprobe creates an FFprobe for the given binary.
func NewFFprobe(binary string) *FFprobe {
	return &FFprobe{Binary: binary}
}

// AudioStream runs
//
//	ffprobe -v error -select_streams a:0 -count_packets -show_entries stream=codec_type,codec_name -of csv=p=0 <path>
//
// A non-zero exit means the container is corrupt or unsupported.
func (f *FFprobe) AudioStream(ctx context.Context, path string) (StreamInfo, error) {
	args := []string{
		"-v", "error",
		"-select_streams", "a:0",
		"-count_packets",
		"-show_entries", "stream=codec_type,codec_name",
		"-of", "csv=p=0",
		path,
	}
	out, err := run(ctx, binaryOrDefault(f.Binary, "ffprobe"), args)
	if err != nil {
		return StreamInfo{}, fmt.Errorf("ffprobe stream %s: %w", path, err)
	}
	return parseStreamInfo(string(out.Stdout))
}

// Duration runs
//
//	ffprobe -v error -show_entries format=duration -of default=noprint_wrappers=1:nokey=1 <path>
func (f *FFprobe) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := run(ctx, binaryOrDefault(f.Binary, "ffprobe"), args)
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration %s: %w", path, err)
	}
	return parseDuration(string(out.Stdout))
}

func parseStreamInfo(output string) (StreamInfo, error) {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		name, kind, _ := strings.Cut(line, ",")
		info := StreamInfo{CodecName: strings.TrimSpace(name), CodecType: strings.TrimSpace(kind)}
		if info.CodecName == "" {
			break
		}
		return info, nil
	}
	return StreamInfo{}, ErrNoAudioStream
}

func parseDuration(output string) (float64, error) {
	cleaned := strings.TrimSpace(output)
	seconds, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", cleaned, err)
	}
	if seconds < 0 {
		return 0, fmt.Errorf("parse duration %q: negative", cleaned)
	}
	return seconds, nil
}
