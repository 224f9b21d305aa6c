package adapter

import (
	"regexp"
	"strings"
)

// LineKind classifies a line of a plain-text chord chart.
type LineKind int

const (
	LineEmpty LineKind = iota
	LineHeader
	LineChords
	LineLyric
)

// String returns the kind name.
func (k LineKind) String() string {
	switch k {
	case LineEmpty:
		return "empty"
	case LineHeader:
		return "header"
	case LineChords:
		return "chords"
	default:
		return "lyric"
	}
}

var (
	chordTokenRe = regexp.MustCompile(`(?i)^[A-G][#b]?((m|maj|min|dim|aug|sus\d?|add\d?|maj7|m7|dim7|aug7|7|9|11|13|2|4|6)?)?(/[A-G][#b]?)?$`)
	noChordRe    = regexp.MustCompile(`(?i)^N\.C\.$`)
	tokenSepRe   = regexp.MustCompile(`[\s|/]+`)
	punctRe      = regexp.MustCompile(`[^\w/#b.]`)
)

// chordLineRatio is the share of chord tokens that makes a chord line.
const chordLineRatio = 0.5

// Classify decides what a chart line holds. A line is a chord line when at
// least half of its tokens are chord symbols or "N.C.".
func Classify(line string) LineKind {
	t := strings.TrimSpace(line)
	if t == "" {
		return LineEmpty
	}
	if IsSectionHeader(t) {
		return LineHeader
	}

	chords, total := 0, 0
	for _, tok := range tokenSepRe.Split(t, -1) {
		tok = punctRe.ReplaceAllString(tok, "")
		if tok == "" {
			continue
		}
		if chordTokenRe.MatchString(tok) || noChordRe.MatchString(tok) {
			chords++
		}
		total++
	}
	if total > 0 && float64(chords)/float64(total) >= chordLineRatio {
		return LineChords
	}
	return LineLyric
}
