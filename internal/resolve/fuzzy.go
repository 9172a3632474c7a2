package resolve

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Match is a candidate file and its similarity score in percent.
type Match struct {
	Path  string
	Score int
}

// metric computes a raw distance and derives a 0-100 score from it.
type metric struct {
	distance func(a, b string) int
	score    func(a, b string, distance int) int
}

var (
	levenshteinMetric = metric{distance: levenshtein.ComputeDistance, score: levenshteinScore}
	hammingMetric     = metric{distance: hammingDistance, score: hammingScore}
)

// stem strips everything from the first '.' of a base name, so
// "Album.CD1.flac" compares as "Album".
func stem(name string) string {
	base := filepath.Base(name)
	if i := strings.IndexByte(base, '.'); i >= 0 {
		return base[:i]
	}
	return base
}

// levenshteinScore is 100 - distance*100/max(len(a), len(b)), counted in
// runes.
func levenshteinScore(a, b string, distance int) int {
	longest := max(utf8.RuneCountInString(a), utf8.RuneCountInString(b))
	if longest == 0 {
		return 100
	}
	return 100 - distance*100/longest
}

// hammingDistance counts mismatching bytes over the overlapping prefix.
func hammingDistance(a, b string) int {
	n := min(len(a), len(b))
	d := 0
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			d++
		}
	}
	return d
}

// hammingScore is 100 - distance*100/min(len(a), len(b)). Two names
// without any overlap score zero.
func hammingScore(a, b string, distance int) int {
	shortest := min(len(a), len(b))
	if shortest == 0 {
		return 0
	}
	return 100 - distance*100/shortest
}

// LevenshteinScore returns the Levenshtein similarity of two file names
// with their extensions stripped.
func LevenshteinScore(a, b string) int {
	return levenshteinMetric.apply(stem(a), stem(b))
}

// HammingScore returns the Hamming similarity of two file names with their
// extensions stripped.
func HammingScore(a, b string) int {
	return hammingMetric.apply(stem(a), stem(b))
}

func (m metric) apply(a, b string) int {
	return m.score(a, b, m.distance(a, b))
}

// best returns the candidate with the lowest distance to broken. The metric
// abstains when two or more candidates share that lowest distance.
func (m metric) best(broken string, candidates []string) (Match, bool) {
	if len(candidates) == 0 {
		return Match{}, false
	}

	target := stem(broken)
	bestIdx, bestDist, ties := -1, 0, 0
	for i, candidate := range candidates {
		d := m.distance(target, stem(candidate))
		switch {
		case bestIdx < 0 || d < bestDist:
			bestIdx, bestDist, ties = i, d, 1
		case d == bestDist:
			ties++
		}
	}
	if ties > 1 {
		return Match{}, false
	}

	winner := candidates[bestIdx]
	return Match{Path: winner, Score: m.score(target, stem(winner), bestDist)}, true
}

// BestMatch picks the candidate most similar to broken using both metrics.
//
// When both metrics agree the Levenshtein result is used. When they
// disagree the higher score wins, with Levenshtein winning an exact tie.
// A single surviving metric is used as is. It reports false when both
// metrics abstain.
func BestMatch(broken string, candidates []string) (Match, bool) {
	lev, levOK := levenshteinMetric.best(broken, candidates)
	ham, hamOK := hammingMetric.best(broken, candidates)
	return combine(lev, levOK, ham, hamOK)
}

func combine(lev Match, levOK bool, ham Match, hamOK bool) (Match, bool) {
	switch {
	case levOK && hamOK:
		if lev.Path == ham.Path || lev.Score >= ham.Score {
			return lev, true
		}
		return ham, true
	case levOK:
		return lev, true
	case hamOK:
		return ham, true
	default:
		return Match{}, false
	}
}
