package song

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/chordsheet/pkg/chord"
)

// Defaults applied by New when the source leaves a field blank.
const (
	DefaultTitle  = "Untitled"
	DefaultArtist = "Unknown"
)

// Pair is a chord placed over the lyric fragment it is played on.
type Pair struct {
	Chord string `json:"chord"`
	Lyric string `json:"lyric"`
}

// Width returns the number of cells the pair occupies.
func (p Pair) Width() int {
	return max(utf8.RuneCountInString(p.Chord), utf8.RuneCountInString(p.Lyric))
}

// Empty reports whether both the chord and the lyric are empty strings.
func (p Pair) Empty() bool {
	return p.Chord == "" && p.Lyric == ""
}

// Line is one row of music: chords over lyrics, left to right.
type Line struct {
	Pairs []Pair `json:"pairs"`
}

// NewLine builds a line from pairs, dropping pairs that are entirely empty.
func NewLine(pairs ...Pair) Line {
	var l Line
	for _, p := range pairs {
		l.Add(p)
	}
	return l
}

// Add appends p unless both of its fields are empty.
func (l *Line) Add(p Pair) {
	if p.Empty() {
		return
	}
	l.Pairs = append(l.Pairs, p)
}

// Width returns the sum of the pair widths.
func (l Line) Width() int {
	w := 0
	for _, p := range l.Pairs {
		w += p.Width()
	}
	return w
}

// Chords returns the line's chord symbols with surrounding blanks trimmed,
// skipping pairs without a chord.
func (l Line) Chords() []string {
	var out []string
	for _, p := range l.Pairs {
		if c := strings.TrimSpace(p.Chord); c != "" {
			out = append(out, c)
		}
	}
	return out
}

func (l Line) clone() Line {
	if l.Pairs == nil {
		return Line{}
	}
	return Line{Pairs: append([]Pair(nil), l.Pairs...)}
}

// Section is a labelled block of lines such as "Verse 1" or "Chorus".
type Section struct {
	Header string `json:"header"`
	Lines  []Line `json:"lines"`
}

// Width returns the longer of the header and the widest line.
func (s Section) Width() int {
	w := utf8.RuneCountInString(s.Header)
	for _, l := range s.Lines {
		w = max(w, l.Width())
	}
	return w
}

// Height returns the rendered row count: a chord row and a lyric row per
// line, plus the header row and the trailing separator.
func (s Section) Height() int {
	return 2*len(s.Lines) + 2
}

func (s Section) clone() Section {
	out := Section{Header: s.Header, Lines: make([]Line, len(s.Lines))}
	for i, l := range s.Lines {
		out.Lines[i] = l.clone()
	}
	return out
}

// Song is a complete chord sheet.
type Song struct {
	Title    string    `json:"title"`
	Artist   string    `json:"artist"`
	Key      Key       `json:"key"`
	Sections []Section `json:"sections"`
}

// Width returns the width of the widest section.
func (s *Song) Width() int {
	w := 0
	for _, sec := range s.Sections {
		w = max(w, sec.Width())
	}
	return w
}

// Heights returns the height of each section in order.
func (s *Song) Heights() []int {
	h := make([]int, len(s.Sections))
	for i, sec := range s.Sections {
		h[i] = sec.Height()
	}
	return h
}

// Occurrences counts every non-blank chord symbol in the song.
func (s *Song) Occurrences() map[string]int {
	occ := make(map[string]int)
	for _, sec := range s.Sections {
		for _, l := range sec.Lines {
			for _, p := range l.Pairs {
				if strings.TrimSpace(p.Chord) != "" {
					occ[p.Chord]++
				}
			}
		}
	}
	return occ
}

// Clone returns a deep copy of the song.
func (s *Song) Clone() *Song {
	out := &Song{Title: s.Title, Artist: s.Artist, Key: s.Key}
	if s.Sections != nil {
		out.Sections = make([]Section, len(s.Sections))
		for i, sec := range s.Sections {
			out.Sections[i] = sec.clone()
		}
	}
	return out
}

// Transpose returns a copy of the song with every chord shifted by delta
// semitones. An explicit key moves with the chords; an unset key stays unset.
// Lyrics, headers and ordering are untouched.
func (s *Song) Transpose(delta int) *Song {
	out := s.Clone()
	if k, ok := out.Key.Value(); ok {
		out.Key = Explicit(chord.Transpose(k, delta))
	}
	for i := range out.Sections {
		for j := range out.Sections[i].Lines {
			pairs := out.Sections[i].Lines[j].Pairs
			for k := range pairs {
				pairs[k].Chord = chord.Transpose(pairs[k].Chord, delta)
			}
		}
	}
	return out
}

// WithResolvedKey returns a copy of the song whose key is explicit, detecting
// it from the chords if it was unset.
func (s *Song) WithResolvedKey() *Song {
	out := s.Clone()
	out.Key = Explicit(ResolveKey(s))
	return out
}

// ResolveKey returns the explicit key, or detects one from chord frequencies.
func ResolveKey(s *Song) string {
	if k, ok := s.Key.Value(); ok {
		return k
	}
	return chord.DetectKey(s.Occurrences())
}
