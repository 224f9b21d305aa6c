package adapter

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/chordsheet/pkg/song"
)

// UltimateGuitar reads tabs.ultimate-guitar.com chord pages, whose song is a
// preformatted block of chord lines aligned over lyric lines.
type UltimateGuitar struct{}

var (
	chordTokRe   = regexp.MustCompile(`(\S+)([\s|\\]*)`)
	leadingSepRe = regexp.MustCompile(`^[\s|\\]+`)
)

func (UltimateGuitar) Name() string { return "ultimateguitar" }

func (UltimateGuitar) Detect(doc *html.Node) bool {
	return find(doc, byClass("CthJm")) != nil
}

func (a UltimateGuitar) Parse(doc *html.Node) (song.Input, error) {
	root := find(doc, byClass("CthJm"))
	var in song.Input
	if header := find(root, byTag(atom.Header)); header != nil {
		in.Title = trimmedText(find(header, byTag(atom.H1)))
		in.Artist = trimmedText(find(header, byTag(atom.Span)))
	}
	pre := find(root, byTag(atom.Pre))
	if pre == nil {
		return song.Input{}, missing(a.Name(), "chord chart")
	}
	in.Sections = ParseChart(text(pre))
	if len(in.Sections) == 0 {
		return song.Input{}, missing(a.Name(), "section headers")
	}
	return in, nil
}

// ParseChart splits a plain-text chord chart into sections.
//
// A chord line followed by a lyric line is merged with it: each chord is
// paired with the lyric text under it and its trailing separators. A chord
// line followed by another chord line, a blank line or the end of the chart
// becomes chord-only pairs padded with spaces. Lines before the first
// section header are skipped.
func ParseChart(chart string) []song.SectionInput {
	lines := strings.Split(strings.ReplaceAll(chart, "\r", ""), "\n")
	kinds := make([]LineKind, len(lines))
	for i, l := range lines {
		kinds[i] = Classify(l)
	}

	var (
		sections []song.SectionInput
		cur      *song.SectionInput
	)
	for i := 0; i < len(lines); i++ {
		line := lines[i]
		switch kinds[i] {
		case LineHeader:
			sections = append(sections, song.SectionInput{Header: cleanHeader(line)})
			cur = &sections[len(sections)-1]
		case LineChords:
			if cur == nil {
				continue
			}
			if i+1 < len(lines) && kinds[i+1] == LineLyric {
				cur.Lines = append(cur.Lines, alignChords(line, lines[i+1]))
				i++
			} else {
				cur.Lines = append(cur.Lines, chordOnly(line))
			}
		case LineLyric:
			if cur == nil {
				continue
			}
			cur.Lines = append(cur.Lines, []song.Pair{{Lyric: line}})
		}
	}
	return sections
}

func chordOnly(line string) []song.Pair {
	var pairs []song.Pair
	if lead := leadingSepRe.FindString(line); lead != "" {
		pairs = append(pairs, song.Pair{Lyric: spaces(runeLen(lead))})
	}
	for _, m := range chordTokRe.FindAllStringSubmatch(line, -1) {
		pairs = append(pairs, song.Pair{Chord: m[1], Lyric: spaces(runeLen(m[0]))})
	}
	return pairs
}

// alignChords pairs each chord with the lyric runes under the chord and its
// separators, padding the lyric when it is shorter than the chord line.
func alignChords(chords, lyric string) []song.Pair {
	lyr := []rune(lyric)
	idx := 0
	take := func(n int) string {
		lo, hi := min(idx, len(lyr)), min(idx+n, len(lyr))
		s := string(lyr[lo:hi])
		idx += n
		return s + spaces(n-(hi-lo))
	}

	var pairs []song.Pair
	if lead := leadingSepRe.FindString(chords); lead != "" {
		pairs = append(pairs, song.Pair{Lyric: take(runeLen(lead))})
	}
	for _, m := range chordTokRe.FindAllStringSubmatch(chords, -1) {
		pairs = append(pairs, song.Pair{Chord: m[1], Lyric: take(runeLen(m[0]))})
	}
	if idx < len(lyr) {
		pairs = append(pairs, song.Pair{Lyric: string(lyr[idx:])})
	}
	return pairs
}

func spaces(n int) string {
	return strings.Repeat(" ", max(n, 0))
}

func runeLen(s string) int {
	return len([]rune(s))
}
