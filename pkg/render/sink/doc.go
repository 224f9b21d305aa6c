// Package sink provides output format renderers for chord sheets.
//
// # Overview
//
// A "sink" transforms a rendered [layout.Sheet] into a final output format.
// This package provides renderers for:
//
//   - Text: the marked-up rows, or plain rows with markup removed
//   - SVG: a monospace grid coloured by a [render.Theme]
//   - PDF: Print-ready output (requires rsvg-convert)
//   - PNG: Raster image output (requires rsvg-convert)
//   - JSON: textLines, width and height plus song metadata
//
// # SVG Output
//
// [RenderSVG] draws every row on a fixed grid: 12pt Courier, 0.6em per
// cell and 20pt margins. Chords are drawn 2pt larger, bold, in the theme's
// chord colour; bold spans use the text colour. Characters outside
// printable ASCII are drawn as spaces.
//
//	svg := sink.RenderSVG(sheet,
//	    sink.WithTheme(theme),
//	    sink.WithSource("https://example.com/song"),
//	)
//
// # SVG Options
//
//   - [WithTheme]: Background, text and chord colours
//   - [WithSource]: Adds a "Generated by chordsheet from <url>" footer
//   - [WithFontSize]: Base font size in points (default 12)
//
// # PDF and PNG Output
//
// [RenderPDF] and [RenderPNG] render SVG first and convert it with
// rsvg-convert. Pass SVG options through [WithPDFSVGOptions] and
// [WithPNGSVGOptions].
//
// [layout.Sheet]: github.com/matzehuels/chordsheet/pkg/layout.Sheet
// [render.Theme]: github.com/matzehuels/chordsheet/pkg/render.Theme
package sink
