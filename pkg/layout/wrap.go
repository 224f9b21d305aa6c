package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/chordsheet/pkg/song"
)

// cut is a legal place to break a line.
//
// A cut at (pair, 0) falls before the pair; a cut at (pair, offset > 0) falls
// inside the pair's lyric, with the chord staying on the left fragment.
// start is where the right fragment begins and end is the right edge of the
// left fragment, both in cells from the start of the line.
type cut struct {
	pair, offset int
	start, end   int
}

// breakpoints lists the cuts of l in increasing position, including the
// synthetic cuts at the start and the end of the line.
func breakpoints(l song.Line) []cut {
	cuts := []cut{{}}
	add := func(c cut) {
		last := cuts[len(cuts)-1]
		if last.pair == c.pair && last.offset == c.offset {
			return
		}
		cuts = append(cuts, c)
	}

	pos := 0
	for i, p := range l.Pairs {
		chordLen := utf8.RuneCountInString(p.Chord)
		trimmed := utf8.RuneCountInString(strings.TrimRight(p.Chord, " "))
		width := p.Width()
		if p.Lyric == "" {
			add(cut{pair: i + 1, start: pos + width, end: pos + width})
		} else {
			for j, r := range []rune(p.Lyric) {
				if r != ' ' || j < trimmed {
					continue
				}
				if j == 0 {
					add(cut{pair: i, start: pos, end: pos})
					continue
				}
				add(cut{pair: i, offset: j, start: pos + j, end: pos + max(j, chordLen)})
			}
		}
		pos += width
	}
	add(cut{pair: len(l.Pairs), start: pos, end: pos})
	return cuts
}

// slice returns the part of l between cuts a and b.
func slice(l song.Line, a, b cut) song.Line {
	var out song.Line
	for i := a.pair; i <= b.pair && i < len(l.Pairs); i++ {
		if i == b.pair && b.offset == 0 {
			break
		}
		p := l.Pairs[i]
		lyric := []rune(p.Lyric)
		lo, hi := 0, len(lyric)
		if i == a.pair {
			lo = a.offset
		}
		if i == b.pair {
			hi = b.offset
		}
		frag := song.Pair{Lyric: string(lyric[lo:hi])}
		if lo == 0 {
			frag.Chord = p.Chord
		}
		out.Add(frag)
	}
	return out
}

// SplitLine reflows l into lines no wider than maxWidth.
//
// Cuts are only made after a pair with an empty lyric, or at a lyric space at
// or past the end of the chord above it, so no chord glyph is truncated.
// Chords stay with the first fragment of a split pair. Concatenating the
// returned lines' pairs reproduces the chords and lyrics of l exactly. A run
// between two adjacent cuts that is itself wider than maxWidth is kept whole,
// so such a line may exceed maxWidth. maxWidth below one is treated as one.
func SplitLine(l song.Line, maxWidth int) []song.Line {
	if len(l.Pairs) == 0 {
		return []song.Line{{}}
	}
	maxWidth = max(maxWidth, 1)
	cuts := breakpoints(l)

	var lines []song.Line
	emit := func(a, b cut) {
		if frag := slice(l, a, b); len(frag.Pairs) > 0 {
			lines = append(lines, frag)
		}
	}

	last := 0
	for i := 1; i < len(cuts); i++ {
		if cuts[i].end-cuts[last].start > maxWidth && i-1 > last {
			emit(cuts[last], cuts[i-1])
			last = i - 1
		}
	}
	emit(cuts[last], cuts[len(cuts)-1])
	return lines
}

// WrapSection returns a copy of sec with every line reflowed to maxWidth and
// the header truncated to maxWidth runes.
func WrapSection(sec song.Section, maxWidth int) song.Section {
	maxWidth = max(maxWidth, 1)
	out := song.Section{Header: truncate(sec.Header, maxWidth)}
	for _, l := range sec.Lines {
		out.Lines = append(out.Lines, SplitLine(l, maxWidth)...)
	}
	if out.Lines == nil {
		out.Lines = []song.Line{}
	}
	return out
}

// WrapSong returns a copy of s with every section wrapped to maxWidth.
// s is not modified.
func WrapSong(s *song.Song, maxWidth int) *song.Song {
	out := s.Clone()
	for i, sec := range out.Sections {
		out.Sections[i] = WrapSection(sec, maxWidth)
	}
	return out
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
