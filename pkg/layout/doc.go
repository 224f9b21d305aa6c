// Package layout arranges a song into fixed-width, marked-up text.
//
// # Overview
//
// Laying out a chord sheet happens in three steps, each a pure function:
//
//  1. [WrapSong] reflows every line wider than a maximum width, cutting only
//     at lyric spaces that do not truncate the chord above them.
//  2. [Allocate] partitions the section heights into at most K contiguous
//     columns, minimizing the tallest column.
//  3. [Render] serializes the allocated song into text rows of identical
//     visible width, marked up with bold and chord spans.
//
// # Markup
//
// Rendered rows carry two inline span types: [BoldOpen]/[BoldClose] around
// the title and section headers, and [ChordOpen]/[ChordClose] around chord
// symbols. Everything else is lyric text. Markup tags do not count towards
// row width.
//
// # Widths
//
// All widths are measured in runes, one cell per rune. A monospace renderer
// draws every row of a [Sheet] at the same length.
package layout
