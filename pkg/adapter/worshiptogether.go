package adapter

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/chordsheet/pkg/song"
)

// WorshipTogether reads worshiptogether.com ChordPro displays. Section
// headers are lines without chords that name a song part.
type WorshipTogether struct{}

func (WorshipTogether) Name() string { return "worshiptogether" }

func (WorshipTogether) Detect(doc *html.Node) bool {
	return find(doc, byClass("chordProContainer")) != nil
}

func (a WorshipTogether) Parse(doc *html.Node) (song.Input, error) {
	var in song.Input
	if details := find(doc, byClass("t-song-details__marquee")); details != nil {
		in.Title = trimmedText(find(details, byTagClass(atom.H1, "t-song-details__marquee__headline")))
		in.Artist = trimmedText(find(details, byTagClass(atom.P, "large")))
	}

	disp := find(doc, byClass("chord-pro-disp"))
	if disp == nil {
		return song.Input{}, missing(a.Name(), "chord-pro display")
	}

	var cur song.SectionInput
	flush := func() {
		if len(cur.Lines) > 0 || cur.Header != "" {
			in.Sections = append(in.Sections, cur)
		}
	}
	for _, line := range findAll(disp, byClass("chord-pro-line")) {
		chords := joinText(findAll(line, byClass("chord-pro-note")))
		lyrics := joinText(findAll(line, byClass("chord-pro-lyric")))
		if chords == "" && IsSectionHeader(lyrics) {
			flush()
			cur = song.SectionInput{Header: cleanHeader(lyrics)}
			continue
		}
		cur.Lines = append(cur.Lines, segmentPairs(line))
	}
	flush()
	return in, nil
}

// segmentPairs turns each ChordPro segment into its chord over its lyric,
// followed by chord-only pairs for any further chords in the segment.
func segmentPairs(line *html.Node) []song.Pair {
	var pairs []song.Pair
	for _, seg := range findAll(line, byClass("chord-pro-segment")) {
		chords := strings.Fields(trimmedText(find(seg, byClass("chord-pro-note"))))
		lyric := strings.ReplaceAll(text(find(seg, byClass("chord-pro-lyric"))), "\n", "")

		first := ""
		if len(chords) > 0 {
			first = chords[0] + " "
		}
		pairs = append(pairs, song.Pair{Chord: first, Lyric: lyric})
		for _, c := range chords[min(1, len(chords)):] {
			pairs = append(pairs, song.Pair{Chord: c + " "})
		}
	}
	return pairs
}

func joinText(nodes []*html.Node) string {
	var b strings.Builder
	for _, n := range nodes {
		b.WriteString(text(n))
	}
	return strings.TrimSpace(b.String())
}
