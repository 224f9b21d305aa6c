// Package pkg provides the core libraries for Chordsheet chord-sheet layout.
//
// # Overview
//
// Chordsheet turns chord/lyric songs scraped from chord sites into compact,
// multi-column sheets. The pkg directory is organized into three areas:
//
//  1. Domain logic ([chord], [song], [layout]) - transposition, key
//     detection, the song model, line wrapping and column allocation
//  2. Input and output ([adapter], [fetch], [io], [render]) - site scrapers,
//     HTTP fetching, JSON song files and SVG/PDF/PNG/text output
//  3. Orchestration ([pipeline], [cache], [config], [server]) - the
//     parse → layout → render flow shared by the CLI and the HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	Chord site page / song JSON
//	         ↓
//	    [adapter] package (scrape sections, chords and lyrics)
//	         ↓
//	    [song] package (validated song, transposed, key resolved)
//	         ↓
//	    [layout] package (wrap lines, allocate columns, markup rows)
//	         ↓
//	    [render] package (text, SVG, PDF, PNG, JSON)
//
// # Quick Start
//
// Fetch a page and render it through the cached pipeline:
//
//	import (
//	    "context"
//	    "github.com/matzehuels/chordsheet/pkg/cache"
//	    "github.com/matzehuels/chordsheet/pkg/pipeline"
//	)
//
//	runner := pipeline.NewRunner(cache.NewNullCache(), nil, nil)
//	defer runner.Close()
//
//	result, err := runner.Execute(context.Background(), pipeline.Options{
//	    Source:    "https://tabs.ultimate-guitar.com/tab/...",
//	    Columns:   2,
//	    Transpose: -2,
//	    Formats:   []string{pipeline.FormatSVG},
//	})
//	svg := result.Artifacts[pipeline.FormatSVG]
//
// Transpose or detect keys without the pipeline:
//
//	chord.Transpose("F#m7", 2)                       // "G#m7"
//	chord.DetectKey(map[string]int{"G": 4, "D": 2}) // "G"
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/layout/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [chord]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/chord
// [song]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/song
// [layout]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/layout
// [adapter]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/adapter
// [fetch]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/fetch
// [io]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/io
// [render]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/cache
// [config]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/config
// [server]: https://pkg.go.dev/github.com/matzehuels/chordsheet/pkg/server
package pkg
