package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/chordsheet/pkg/song"
)

// Inline markup tags carried by rendered rows.
const (
	BoldOpen   = "[b]"
	BoldClose  = "[/b]"
	ChordOpen  = "[ch]"
	ChordClose = "[/ch]"
)

const (
	columnSep = "|"
	ruleChar  = "_"
)

// Sheet is a song rendered to marked-up text rows.
//
// Every row has the same visible width once markup tags are removed, and
// len(Lines) == Height.
type Sheet struct {
	Lines   []string `json:"textLines"`
	Width   int      `json:"width"`
	Height  int      `json:"height"`
	Columns int      `json:"columns"`
	Title   string   `json:"title"`
	Artist  string   `json:"artist"`
	Key     string   `json:"key"`
}

// Render lays the sections of s out in up to columns side-by-side columns.
//
// The sheet opens with a title row, a key row and a horizontal rule, followed
// by the column grid and a trailing blank row. Each column is as wide as its
// widest section; columns are joined with "|" and short columns are padded
// with blank rows. Lines are not wrapped here: call [WrapSong] first to bound
// the column width. An unset key is detected from the chords.
func Render(s *song.Song, columns int) Sheet {
	key := song.ResolveKey(s)
	groups := Allocate(s.Heights(), columns)

	widths := make([]int, len(groups))
	cols := make([][]string, len(groups))
	for c, group := range groups {
		for _, i := range group {
			widths[c] = max(widths[c], s.Sections[i].Width())
		}
		for _, i := range group {
			cols[c] = append(cols[c], sectionRows(s.Sections[i], widths[c])...)
		}
	}

	gridWidth := max(len(groups)-1, 0)
	rows := 0
	for c := range groups {
		gridWidth += widths[c]
		rows = max(rows, len(cols[c]))
	}

	title := tag(BoldOpen, s.Title, BoldClose) + " - " + s.Artist
	keyLine := "Key: " + tag(ChordOpen, key, ChordClose)
	width := max(gridWidth, VisibleLen(title), VisibleLen(keyLine))

	lines := make([]string, 0, rows+4)
	lines = append(lines,
		pad(title, width),
		pad(keyLine, width),
		strings.Repeat(ruleChar, width),
	)
	for r := range rows {
		var b strings.Builder
		for c := range groups {
			if c > 0 {
				b.WriteString(columnSep)
			}
			if r < len(cols[c]) {
				b.WriteString(cols[c][r])
			} else {
				b.WriteString(strings.Repeat(" ", widths[c]))
			}
		}
		lines = append(lines, pad(b.String(), width))
	}
	lines = append(lines, strings.Repeat(" ", width))

	return Sheet{
		Lines:   lines,
		Width:   width,
		Height:  len(lines),
		Columns: len(groups),
		Title:   s.Title,
		Artist:  s.Artist,
		Key:     key,
	}
}

// sectionRows renders a section as a header row, a chord row and a lyric
// row per line, and a closing rule, each width cells wide.
func sectionRows(sec song.Section, width int) []string {
	rows := make([]string, 0, sec.Height())
	rows = append(rows, pad(tag(BoldOpen, sec.Header, BoldClose), width))
	for _, l := range sec.Lines {
		var chords, lyrics strings.Builder
		for _, p := range l.Pairs {
			w := p.Width()
			chords.WriteString(pad(tag(ChordOpen, p.Chord, ChordClose), w))
			lyrics.WriteString(pad(p.Lyric, w))
		}
		rows = append(rows, pad(chords.String(), width), pad(lyrics.String(), width))
	}
	return append(rows, strings.Repeat(ruleChar, width))
}

func tag(open, s, close string) string {
	if s == "" {
		return ""
	}
	return open + s + close
}

// pad right-pads s with spaces to width visible cells.
func pad(s string, width int) string {
	if n := width - VisibleLen(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

var tags = strings.NewReplacer(BoldOpen, "", BoldClose, "", ChordOpen, "", ChordClose, "")

// StripMarkup removes the inline markup tags from a rendered row.
func StripMarkup(s string) string {
	return tags.Replace(s)
}

// VisibleLen returns the number of cells a rendered row occupies.
func VisibleLen(s string) int {
	return utf8.RuneCountInString(StripMarkup(s))
}
