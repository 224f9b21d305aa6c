package adapter

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/matzehuels/chordsheet/pkg/song"
)

// WorshipInitiative reads theworshipinitiative.com chord charts, where each
// line is a table with a row of chord cells over a row of lyric cells.
type WorshipInitiative struct{}

var doubleSpaceRe = regexp.MustCompile(`\s\s`)

func (WorshipInitiative) Name() string { return "worshipinitiative" }

func (WorshipInitiative) Detect(doc *html.Node) bool {
	return find(doc, byClass("song-part-pages")) != nil
}

func (a WorshipInitiative) Parse(doc *html.Node) (song.Input, error) {
	header := find(doc, byClass("song-part-header-content"))
	if header == nil {
		return song.Input{}, missing(a.Name(), "song header")
	}
	in := song.Input{
		Title:  trimmedText(find(header, byTag(atom.H1))),
		Artist: trimmedText(find(header, byTag(atom.H4))),
	}

	for _, sec := range findAll(doc, byClass("chord-chart-section")) {
		out := song.SectionInput{Header: trimmedText(find(sec, byTag(atom.H4)))}
		for _, table := range findAll(sec, byTag(atom.Table)) {
			out.Lines = append(out.Lines, tablePairs(table))
		}
		in.Sections = append(in.Sections, out)
	}
	if len(in.Sections) == 0 {
		return song.Input{}, missing(a.Name(), "chord chart sections")
	}
	return in, nil
}

// tablePairs pairs the nth chord cell with the nth lyric cell.
func tablePairs(table *html.Node) []song.Pair {
	chords := findAll(table, byTagClass(atom.Td, "chord"))
	lyrics := findAll(table, byTagClass(atom.Td, "lyrics"))

	var pairs []song.Pair
	for i, c := range chords {
		p := song.Pair{Chord: trimmedText(c) + " "}
		if i < len(lyrics) {
			p.Lyric = doubleSpaceRe.ReplaceAllString(text(lyrics[i]), " ")
		}
		if strings.TrimSpace(p.Chord) == "" && strings.TrimSpace(p.Lyric) == "" {
			continue
		}
		pairs = append(pairs, p)
	}
	return pairs
}
