package ioutils

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
)

var (
	invalidChars  = regexp.MustCompile(`[<>:"/\\|?*\x00-\x1f]`)
	trailingDots  = regexp.MustCompile(`\.+$`)
	repeatedSpace = regexp.MustCompile(`\s+`)
	trackReplacer = strings.NewReplacer("/", "-", "\\", "-", ":", "-", "`", "'")
)

// CopyFile copies a file from source to destination, preserving the source
// permission bits.
//
// The destination is truncated if it exists. A partial destination is
// removed when the copy fails.
func CopyFile(ctx context.Context, src, dst string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	info, err := sourceFile.Stat()
	if err != nil {
		return err
	}

	destFile, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		destFile.Close()
		os.Remove(dst)
		return err
	}
	return destFile.Close()
}

// MoveFile renames src to dst, falling back to copy and remove when the two
// paths live on different devices.
//
// Example:
//
//	err := MoveFile(ctx, "/rips/album.flac", "/rips/CD2/album.flac")
func MoveFile(ctx context.Context, src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	} else if !errors.Is(err, syscall.EXDEV) {
		return err
	}

	if err := CopyFile(ctx, src, dst); err != nil {
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return os.Remove(src)
}

// WriteFile writes data to a file with mode 0644, truncating any existing
// content.
func WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// TrackFileName applies the track naming rules to a display name.
//
// The following transformations are applied:
//   - '/', '\' and ':' → '-'
//   - '`' → '\''
//   - surrounding whitespace → removed
//
// Example:
//
//	TrackFileName("AC/DC - T.N.T.")   // Returns "AC-DC - T.N.T."
//	TrackFileName(" Rock `n` Roll ")  // Returns "Rock 'n' Roll"
func TrackFileName(name string) string {
	return strings.TrimSpace(trackReplacer.Replace(name))
}

// SanitizeFileName removes or replaces characters that are invalid in
// file names on any common platform. It is used for names derived from
// album titles, such as playlist files.
//
// The following transformations are applied:
//   - Invalid characters (<>:"/\|?* and control chars 0x00-0x1f) → underscore
//   - Trailing dots → removed
//   - Multiple whitespace → single space
//   - Surrounding whitespace → removed
//
// Example:
//
//	SanitizeFileName("Live: 1977/1978") // Returns "Live_ 1977_1978"
func SanitizeFileName(name string) string {
	name = invalidChars.ReplaceAllString(name, "_")
	name = trailingDots.ReplaceAllString(name, "")
	name = repeatedSpace.ReplaceAllString(name, " ")
	return strings.TrimSpace(name)
}

// EnsureDir creates a directory and all parents with mode 0755.
//
// An already existing directory is not an error, so concurrent callers may
// race on the same path.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0o755)
}

// FileSize returns the size of path in bytes, or 0 when it cannot be
// stat'ed.
func FileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

// SameDir reports whether a and b name the same directory after cleaning.
func SameDir(a, b string) bool {
	return filepath.Clean(a) == filepath.Clean(b)
}
