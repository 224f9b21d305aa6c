// Package render turns laid-out chord sheets into styled output.
//
// # Overview
//
// [layout.Render] produces plain text rows carrying two inline span types.
// This package interprets that markup for the output sinks:
//
//   - [ParseMarkup] splits a row into styled [Span] values
//   - [Theme] holds the background, text and chord colours
//   - [ToPDF] and [ToPNG] convert SVG into other formats
//
// The sinks themselves live in the [sink] subpackage.
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := sink.RenderSVG(sheet, sink.WithTheme(theme))
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [layout.Render]: github.com/matzehuels/chordsheet/pkg/layout.Render
// [sink]: github.com/matzehuels/chordsheet/pkg/render/sink
package render
