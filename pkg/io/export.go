package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/chordsheet/pkg/song"
)

// WriteSong encodes s as JSON and writes it to w.
// The output can be re-imported with [ReadSong] for round-trip processing.
func WriteSong(s *song.Song, w io.Writer) error {
	out := document{
		Title:    s.Title,
		Artist:   s.Artist,
		Sections: make([]section, len(s.Sections)),
	}
	if k, ok := s.Key.Value(); ok {
		out.Key = &k
	}
	for i, sec := range s.Sections {
		lines := make([][]json.RawMessage, len(sec.Lines))
		for j, l := range sec.Lines {
			lines[j] = make([]json.RawMessage, len(l.Pairs))
			for k, p := range l.Pairs {
				raw, err := json.Marshal([2]string{p.Chord, p.Lyric})
				if err != nil {
					return fmt.Errorf("encode pair: %w", err)
				}
				lines[j][k] = raw
			}
		}
		out.Sections[i] = section{Header: sec.Header, Lines: lines}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportSong writes a song to a JSON file at path.
// This is a convenience wrapper around [WriteSong] for file-based output.
func ExportSong(s *song.Song, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteSong(s, f)
}
