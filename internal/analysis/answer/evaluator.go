package answer

import (
	"strings"
	"unicode"
)

// Pace classifies a speaking rate in words per minute.
type Pace string

const (
	PaceUnknown  Pace = "unknown"
	PaceSlow     Pace = "slow"
	PaceAdequate Pace = "adequate"
	PaceFast     Pace = "fast"
)

const (
	minTranscriptRunes = 20
	maxRepeatedRun     = 6
	minDiversityRatio  = 0.20
	minLetterCount     = 10
	slowPaceThreshold  = 120.0
	fastPaceThreshold  = 170.0
)

// ComputeRate derives the word count and the speaking rate from a raw
// transcript and the elapsed answer time. It is total: an empty transcript or
// a non-positive duration yields zeros rather than an error.
func ComputeRate(transcript string, seconds float64) (int, float64) {
	words := len(strings.Fields(transcript))
	if words == 0 || seconds <= 0 {
		return words, 0
	}
	return words, float64(words) / (seconds / 60)
}

// IsReliable judges whether a transcript is meaningful enough to base
// generated feedback on. Silence, noise and recognizer failures tend to leave
// short, repetitive or letter-poor transcripts; any single heuristic firing
// marks the transcript unreliable.
func IsReliable(transcript string) bool {
	trimmed := strings.TrimSpace(transcript)
	runes := []rune(trimmed)
	if len(runes) < minTranscriptRunes {
		return false
	}

	if hasRepeatedRun(runes, maxRepeatedRun) {
		return false
	}

	distinct := make(map[rune]struct{}, len(runes))
	letters := 0
	for _, r := range runes {
		distinct[r] = struct{}{}
		if unicode.IsLetter(r) {
			letters++
		}
	}
	if float64(len(distinct))/float64(len(runes)) < minDiversityRatio {
		return false
	}
	if letters < minLetterCount {
		return false
	}

	return true
}

// PaceLabel maps a speaking rate to its coaching label.
func PaceLabel(wpm float64) Pace {
	switch {
	case wpm <= 0:
		return PaceUnknown
	case wpm < slowPaceThreshold:
		return PaceSlow
	case wpm <= fastPaceThreshold:
		return PaceAdequate
	default:
		return PaceFast
	}
}

func hasRepeatedRun(runes []rune, limit int) bool {
	run := 0
	var prev rune
	for i, r := range runes {
		if i > 0 && r == prev {
			run++
		} else {
			run = 1
			prev = r
		}
		if run >= limit {
			return true
		}
	}
	return false
}
