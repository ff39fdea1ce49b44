// Package filler scores a transcript for verbal filler ("um", "like", ...).
//
// Analyze is a pure function from transcript text to a frequency report; it
// holds no state and touches no I/O, so it can run at entry-save time and the
// result stored immutably alongside the entry.
package filler

import (
	"math"
	"regexp"
	"strings"
	"sync"
)

// DefaultVocabulary is the fixed set of filler words and short phrases
// counted by Analyze. Matching is case-insensitive and whole-word, so "like"
// never matches inside "likely". Multi-word phrases match across any run of
// whitespace.
var DefaultVocabulary = []string{
	"um", "uh", "er", "ah", "hmm",
	"like", "so", "well", "actually", "basically", "literally",
	"okay", "right", "anyway",
	"you know", "i mean", "kind of", "sort of",
}

// Report is the result of scoring one transcript. Counts are not mutually
// exclusive: each vocabulary entry is scanned independently, so a word that
// is itself a filler and also part of a filler phrase contributes to both.
type Report struct {
	CountsByWord       map[string]int `json:"countsByWord"`
	TotalFillerCount   int            `json:"totalFillerCount"`
	TotalWordCount     int            `json:"totalWordCount"`
	FillerRatioPercent float64        `json:"fillerRatioPercent"`
}

var (
	defaultPatternsOnce sync.Once
	defaultPatterns     []vocabPattern
)

type vocabPattern struct {
	word string
	re   *regexp.Regexp
}

// compilePattern builds the whole-word matcher for one vocabulary entry.
// Interior spaces become \s+ so phrases tolerate uneven spacing.
func compilePattern(word string) vocabPattern {
	parts := strings.Fields(word)
	for i, p := range parts {
		parts[i] = regexp.QuoteMeta(p)
	}
	expr := `(?i)\b` + strings.Join(parts, `\s+`) + `\b`
	return vocabPattern{word: word, re: regexp.MustCompile(expr)}
}

func compileVocabulary(words []string) []vocabPattern {
	patterns := make([]vocabPattern, 0, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		patterns = append(patterns, compilePattern(w))
	}
	return patterns
}

// Analyze scores transcript against the default vocabulary.
func Analyze(transcript string) Report {
	defaultPatternsOnce.Do(func() {
		defaultPatterns = compileVocabulary(DefaultVocabulary)
	})
	return analyze(transcript, defaultPatterns)
}

// AnalyzeWith scores transcript against the default vocabulary plus extra
// user-configured entries. Duplicates of default entries are ignored.
func AnalyzeWith(transcript string, extra []string) Report {
	if len(extra) == 0 {
		return Analyze(transcript)
	}
	seen := make(map[string]bool, len(DefaultVocabulary)+len(extra))
	words := make([]string, 0, len(DefaultVocabulary)+len(extra))
	for _, w := range DefaultVocabulary {
		seen[w] = true
		words = append(words, w)
	}
	for _, w := range extra {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		words = append(words, w)
	}
	return analyze(transcript, compileVocabulary(words))
}

func analyze(transcript string, patterns []vocabPattern) Report {
	report := Report{
		CountsByWord:   map[string]int{},
		TotalWordCount: len(strings.Fields(transcript)),
	}

	for _, p := range patterns {
		n := len(p.re.FindAllStringIndex(transcript, -1))
		if n == 0 {
			continue
		}
		report.CountsByWord[p.word] = n
		report.TotalFillerCount += n
	}

	if report.TotalWordCount > 0 {
		ratio := float64(report.TotalFillerCount) / float64(report.TotalWordCount) * 100
		report.FillerRatioPercent = math.Round(ratio*10) / 10
	}

	return report
}
