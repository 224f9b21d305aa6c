// Package io provides JSON import and export for songs.
//
// # Overview
//
// This package reads and writes the song-shaped JSON value that site
// adapters produce and that the CLI and HTTP API accept as input. The format
// is designed for:
//
//   - Hand-written chord sheets that never came from a web page
//   - Caching parsed pages so a re-render does not refetch them
//   - Round-trip preservation: import, transpose, export, and re-import identically
//
// # JSON Format
//
//	{
//	  "title": "Amazing Grace",
//	  "artist": "John Newton",
//	  "key": "G",
//	  "sections": [
//	    {
//	      "header": "Verse 1",
//	      "lines": [
//	        [["G ", "Amazing "], ["C ", "grace"]],
//	        [["", "how sweet the sound"]]
//	      ]
//	    }
//	  ]
//	}
//
// Each line is an ordered list of [chord, lyric] tuples. "key" is optional;
// null or a missing key means the key is detected from the chords when the
// song is rendered. Tuples where both strings are empty are dropped.
//
// # Import
//
// Use [ImportSong] to read a song from a file path, or [ReadSong] to read
// from any io.Reader:
//
//	s, err := io.ImportSong("grace.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Structural problems (a tuple that is not two strings, a song without
// sections) fail fast with an INVALID_SONG error naming the offending
// section and line.
//
// # Export
//
// Use [ExportSong] to write a song to a file, or [WriteSong] to write to any
// io.Writer. An unset key is written as null.
package io
