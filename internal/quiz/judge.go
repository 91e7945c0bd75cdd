package quiz

import (
	"regexp"
	"strings"
)

// Judgment is the three-valued outcome of comparing a candidate answer
// against the stored reference answer.
type Judgment int

const (
	// Incorrect means the candidate does not match the reference.
	Incorrect Judgment = iota
	// Correct means the candidate matches the reference.
	Correct
	// Indeterminate means no verdict: the caller must re-prompt without
	// recording any score change.
	Indeterminate
)

func (j Judgment) String() string {
	switch j {
	case Correct:
		return "correct"
	case Incorrect:
		return "incorrect"
	case Indeterminate:
		return "indeterminate"
	}
	return "unknown"
}

var (
	refNoiseRe = regexp.MustCompile(`[."\n]`)
	parenRe    = regexp.MustCompile(` \([^)]*\)`)
	bracketRe  = regexp.MustCompile(` \[[^\]]*\]`)
)

// Judge compares a free-text candidate against the reference answer.
// Exact case-insensitive matches win immediately; otherwise both sides are
// normalized: dots, quotes and newlines are stripped from the reference along
// with parenthesized and bracketed clarifications, and dots are stripped from
// the candidate.
func Judge(reference, candidate string) Judgment {
	if strings.EqualFold(reference, candidate) {
		return Correct
	}
	if strings.TrimSpace(candidate) == "" {
		return Indeterminate
	}

	ref := refNoiseRe.ReplaceAllString(strings.ToLower(reference), "")
	ref = parenRe.ReplaceAllString(ref, "")
	ref = bracketRe.ReplaceAllString(ref, "")

	cand := strings.ToLower(strings.ReplaceAll(candidate, ".", ""))

	if ref == cand {
		return Correct
	}
	return Incorrect
}
