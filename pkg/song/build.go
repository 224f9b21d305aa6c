package song

import (
	"strings"

	errs "github.com/matzehuels/chordsheet/pkg/errors"
)

// Input is the song-shaped value produced by site adapters and the JSON
// importer, before defaults and structural checks are applied.
type Input struct {
	Title    string
	Artist   string
	Key      string
	Sections []SectionInput
}

// SectionInput is a section header with its lines of raw pairs.
type SectionInput struct {
	Header string
	Lines  [][]Pair
}

// New validates in and builds a Song from it.
//
// Blank titles and artists get DefaultTitle and DefaultArtist, an empty key
// becomes Unset, and pairs whose chord and lyric are both empty are dropped.
// A song without sections is rejected with an INVALID_SONG error.
func New(in Input) (*Song, error) {
	if len(in.Sections) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidSong, "song %q has no sections", in.Title)
	}

	s := &Song{
		Title:    orDefault(in.Title, DefaultTitle),
		Artist:   orDefault(in.Artist, DefaultArtist),
		Key:      Explicit(strings.TrimSpace(in.Key)),
		Sections: make([]Section, 0, len(in.Sections)),
	}
	for _, sec := range in.Sections {
		out := Section{Header: sec.Header, Lines: make([]Line, 0, len(sec.Lines))}
		for _, pairs := range sec.Lines {
			out.Lines = append(out.Lines, NewLine(pairs...))
		}
		s.Sections = append(s.Sections, out)
	}
	return s, nil
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
