// Package song defines the chord sheet tree: a [Song] holds ordered
// [Section]s, a section holds ordered [Line]s, and a line holds ordered
// chord/lyric [Pair]s.
//
// # Geometry
//
// Widths and heights are measured in character cells:
//
//   - Pair width is the longer of its chord and lyric.
//   - Line width is the sum of its pair widths.
//   - Section width is the longer of its header and its widest line.
//   - Section height is two rows per line (chords, then lyrics) plus a header
//     row and a trailing separator row.
//
// # Keys
//
// A song's [Key] is either explicit (set by the source) or unset. [ResolveKey]
// derives the key from chord frequencies without touching the song;
// [Song.WithResolvedKey] stores the result in a copy.
//
// # Immutability
//
// Operations that change a song ([Song.Transpose], [Song.WithResolvedKey])
// return new trees and never alias the receiver's slices.
package song
