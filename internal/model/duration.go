package model

import (
	"fmt"
	"strconv"
	"strings"
)

// FramesPerSecond is the CDDA frame rate used by cue sheet timestamps.
const FramesPerSecond = 75

// CueDuration is an INDEX timestamp in mm:ss:ff form.
//
// Frames are nominally 0-74 but are not range-checked; ordering always goes
// through the absolute frame count, so (0,0,80) sorts after (0,1,0).
type CueDuration struct {
	Minutes int
	Seconds int
	Frames  int
}

// ParseCueDuration parses a "mm:ss:ff" timestamp.
//
// Minutes may exceed two digits (long single-file rips), so only the
// number of fields is checked.
//
// Example:
//
//	d, err := ParseCueDuration("07:10:30")
//	// d = CueDuration{Minutes: 7, Seconds: 10, Frames: 30}
func ParseCueDuration(value string) (CueDuration, error) {
	parts := strings.Split(strings.TrimSpace(value), ":")
	if len(parts) != 3 {
		return CueDuration{}, fmt.Errorf("invalid cue timestamp %q: want mm:ss:ff", value)
	}

	var fields [3]int
	for i, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return CueDuration{}, fmt.Errorf("invalid cue timestamp %q: field %q is not a number", value, part)
		}
		fields[i] = n
	}

	return CueDuration{Minutes: fields[0], Seconds: fields[1], Frames: fields[2]}, nil
}

// TotalFrames returns the absolute frame count used for ordering.
func (d CueDuration) TotalFrames() int {
	return d.Minutes*60*FramesPerSecond + d.Seconds*FramesPerSecond + d.Frames
}

// Compare returns -1, 0 or +1 depending on whether d is before, equal to
// or after other.
func (d CueDuration) Compare(other CueDuration) int {
	a, b := d.TotalFrames(), other.TotalFrames()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d starts strictly earlier than other.
func (d CueDuration) Before(other CueDuration) bool {
	return d.Compare(other) < 0
}

// WholeSeconds returns the offset in whole seconds, ignoring frames.
// This is the granularity used for playtime consistency checks.
func (d CueDuration) WholeSeconds() int {
	return d.Minutes*60 + d.Seconds
}

// Milliseconds converts the frame part to milliseconds (frames*1000/75).
func (d CueDuration) Milliseconds() int {
	return d.Frames * 1000 / FramesPerSecond
}

// Timestamp formats the offset as hh:mm:ss.mmm for ffmpeg -ss/-to.
//
// Example:
//
//	CueDuration{Minutes: 63, Seconds: 5, Frames: 15}.Timestamp() // "01:03:05.200"
func (d CueDuration) Timestamp() string {
	return fmt.Sprintf("%02d:%02d:%02d.%03d", d.Minutes/60, d.Minutes%60, d.Seconds, d.Milliseconds())
}

// String returns the cue sheet form mm:ss:ff.
func (d CueDuration) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", d.Minutes, d.Seconds, d.Frames)
}
