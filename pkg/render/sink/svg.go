package sink

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/render"
)

const (
	defaultFontSize = 12.0
	cellRatio       = 0.6
	margin          = 20.0
	baseline        = 0.7
	footerFontSize  = 8.0
	monoFont        = "Courier, 'Courier New', monospace"
	chordFont       = "Helvetica, Arial, sans-serif"
	generatedBy     = "Generated by chordsheet from "
)

// SVGOption configures SVG rendering.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	theme    render.Theme
	source   string
	fontSize float64
}

// WithTheme sets the sheet colours.
func WithTheme(t render.Theme) SVGOption { return func(r *svgRenderer) { r.theme = t } }

// WithSource adds a footer crediting the page the song was taken from.
func WithSource(url string) SVGOption { return func(r *svgRenderer) { r.source = url } }

// WithFontSize sets the base font size in points.
func WithFontSize(pt float64) SVGOption {
	return func(r *svgRenderer) {
		if pt > 0 {
			r.fontSize = pt
		}
	}
}

func newSVGRenderer(opts ...SVGOption) svgRenderer {
	r := svgRenderer{theme: render.DefaultTheme, fontSize: defaultFontSize}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

// RenderSVG draws the sheet on a monospace grid.
func RenderSVG(s layout.Sheet, opts ...SVGOption) []byte {
	r := newSVGRenderer(opts...)
	cell := r.fontSize * cellRatio
	lineHeight := r.fontSize
	width := float64(s.Width)*cell + 2*margin
	height := float64(s.Height)*lineHeight + 2*margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		width, height, width, height)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="%s"/>`+"\n",
		width, height, r.theme.Background.Hex())

	for i, row := range s.Lines {
		y := margin + (float64(i)+baseline)*lineHeight
		for _, sp := range render.ParseMarkup(row) {
			text := render.Printable(sp.Text)
			if strings.TrimSpace(text) == "" {
				continue
			}
			x := margin + float64(sp.Col)*cell
			r.renderSpan(&buf, sp.Kind, text, x, y)
		}
	}

	if r.source != "" {
		r.renderFooter(&buf, height)
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *svgRenderer) renderSpan(buf *bytes.Buffer, kind render.SpanKind, text string, x, y float64) {
	switch kind {
	case render.SpanChord:
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" font-weight="bold" fill="%s" xml:space="preserve">%s</text>`+"\n",
			x, y+1, chordFont, r.fontSize+2, r.theme.Chord.Hex(), escapeXML(text))
	case render.SpanBold:
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" font-weight="bold" fill="%s" xml:space="preserve">%s</text>`+"\n",
			x, y, monoFont, r.fontSize, r.theme.Text.Hex(), escapeXML(text))
	default:
		fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="%s" xml:space="preserve">%s</text>`+"\n",
			x, y, monoFont, r.fontSize, r.theme.Text.Hex(), escapeXML(text))
	}
}

func (r *svgRenderer) renderFooter(buf *bytes.Buffer, height float64) {
	cell := footerFontSize * cellRatio
	y := height - margin
	linkX := margin + float64(len(generatedBy))*cell
	src := render.Printable(r.source)

	fmt.Fprintf(buf, `  <text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="%s" xml:space="preserve">%s</text>`+"\n",
		margin, y, monoFont, footerFontSize, r.theme.Text.Hex(), generatedBy)
	fmt.Fprintf(buf, `  <a href="%s"><text x="%.1f" y="%.1f" font-family="%s" font-size="%.0f" fill="%s">%s</text></a>`+"\n",
		escapeXML(src), linkX, y, monoFont, footerFontSize, r.theme.Chord.Hex(), escapeXML(src))
	underline := y + cell*0.2
	fmt.Fprintf(buf, `  <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="0.5"/>`+"\n",
		linkX, underline, linkX+float64(len(src))*cell, underline, r.theme.Chord.Hex())
}

func escapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
