// Package disc detects multi-disc releases and derives a disc number from a
// cue file's name.
package disc

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode/utf8"
)

// delimiters in priority order; the earliest wins a frequency tie.
var delimiters = []string{"-", "_", " ", "."}

// IsMultiDisc reports whether the directory holding cuePath contains more
// than one cue file.
func IsMultiDisc(cuePath string) (bool, error) {
	entries, err := os.ReadDir(filepath.Dir(cuePath))
	if err != nil {
		return false, err
	}

	count := 0
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".cue") {
			count++
		}
	}
	return count > 1, nil
}

// Number derives the disc number from a cue file name such as
// "Album CD2.cue" or "Album_Disc_3.cue". It returns 1 when no heuristic
// yields a number.
func Number(fileName string) int {
	delim := bestDelimiter(fileName)
	tokens := []string{fileName}
	if delim != "" {
		tokens = strings.Split(fileName, delim)
	}

	if n, ok := prefixedNumber(tokens, "cd"); ok {
		return n
	}
	if n, ok := prefixedNumber(tokens, "disc"); ok {
		return n
	}
	if n, ok := leadingDigit(tokens[0]); ok {
		return n
	}
	if n, ok := allDigits(fileName); ok {
		return n
	}
	return 1
}

// NumberFromPath is Number applied to the base name of path.
func NumberFromPath(path string) int {
	return Number(filepath.Base(path))
}

func bestDelimiter(fileName string) string {
	best, bestCount := "", 0
	for _, d := range delimiters {
		if n := strings.Count(fileName, d); n > bestCount {
			best, bestCount = d, n
		}
	}
	return best
}

func prefixedNumber(tokens []string, prefix string) (int, bool) {
	for _, token := range tokens {
		rest, ok := strings.CutPrefix(strings.ToLower(strings.TrimSpace(token)), prefix)
		if !ok || rest == "" || rest[0] < '0' || rest[0] > '9' {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil {
			return n, true
		}
	}
	return 0, false
}

// leadingDigit strips every '0' from token and parses the first remaining
// character.
func leadingDigit(token string) (int, bool) {
	stripped := strings.TrimSpace(strings.ReplaceAll(token, "0", ""))
	if stripped == "" {
		return 0, false
	}
	r, _ := utf8.DecodeRuneInString(stripped)
	n, err := strconv.Atoi(string(r))
	if err != nil {
		return 0, false
	}
	return n, true
}

func allDigits(fileName string) (int, bool) {
	var b strings.Builder
	for _, r := range fileName {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0, false
	}
	return n, true
}
