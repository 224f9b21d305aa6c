package io

import (
	"encoding/json"
	"io"
	"os"

	errs "github.com/matzehuels/chordsheet/pkg/errors"
	"github.com/matzehuels/chordsheet/pkg/song"
)

type document struct {
	Title    string    `json:"title"`
	Artist   string    `json:"artist"`
	Key      *string   `json:"key"`
	Sections []section `json:"sections"`
}

type section struct {
	Header string              `json:"header"`
	Lines  [][]json.RawMessage `json:"lines"`
}

// ReadSong decodes a JSON song from r.
//
// ReadSong returns an INVALID_SONG error if:
//   - The JSON is malformed
//   - A pair is not a two-element array of strings
//   - The song has no sections
//
// Blank titles and artists are replaced by [song.DefaultTitle] and
// [song.DefaultArtist]. ReadSong does not close r.
func ReadSong(r io.Reader) (*song.Song, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidSong, err, "decode song")
	}
	in, err := doc.input()
	if err != nil {
		return nil, err
	}
	return song.New(in)
}

// ImportSong reads a JSON file at path and returns the decoded song.
func ImportSong(path string) (*song.Song, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.Wrap(errs.ErrCodeNotFound, err, "open %s", path)
		}
		return nil, errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadSong(f)
}

func (d document) input() (song.Input, error) {
	in := song.Input{
		Title:    d.Title,
		Artist:   d.Artist,
		Sections: make([]song.SectionInput, len(d.Sections)),
	}
	if d.Key != nil {
		in.Key = *d.Key
	}
	for i, sec := range d.Sections {
		out := song.SectionInput{Header: sec.Header, Lines: make([][]song.Pair, len(sec.Lines))}
		for j, line := range sec.Lines {
			pairs := make([]song.Pair, len(line))
			for k, raw := range line {
				p, err := decodePair(raw)
				if err != nil {
					return song.Input{}, errs.Wrap(errs.ErrCodeInvalidSong, err,
						"section %d (%q) line %d pair %d", i, sec.Header, j, k)
				}
				pairs[k] = p
			}
			out.Lines[j] = pairs
		}
		in.Sections[i] = out
	}
	return in, nil
}

func decodePair(raw json.RawMessage) (song.Pair, error) {
	var tuple []string
	if err := json.Unmarshal(raw, &tuple); err != nil {
		return song.Pair{}, err
	}
	if len(tuple) != 2 {
		return song.Pair{}, errs.New(errs.ErrCodeInvalidSong, "pair has %d fields, want 2", len(tuple))
	}
	return song.Pair{Chord: tuple[0], Lyric: tuple[1]}, nil
}
