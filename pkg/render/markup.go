package render

import (
	"strings"

	"github.com/matzehuels/chordsheet/pkg/layout"
)

// SpanKind classifies a run of text within a rendered row.
type SpanKind int

const (
	SpanText SpanKind = iota
	SpanBold
	SpanChord
)

// String returns the span kind name.
func (k SpanKind) String() string {
	switch k {
	case SpanBold:
		return "bold"
	case SpanChord:
		return "chord"
	default:
		return "text"
	}
}

// Span is a styled run of text starting at column Col.
type Span struct {
	Kind SpanKind
	Text string
	Col  int
}

// ParseMarkup splits a rendered row into spans, in order. Tags are not
// nested; an opening tag without its closing tag is kept as plain text.
// Col counts visible cells from the start of the row.
func ParseMarkup(row string) []Span {
	var (
		spans []Span
		col   int
	)
	emit := func(kind SpanKind, text string) {
		if text == "" {
			return
		}
		spans = append(spans, Span{Kind: kind, Text: text, Col: col})
		col += len([]rune(text))
	}

	for row != "" {
		kind, open, close := nextTag(row)
		if open < 0 {
			emit(SpanText, row)
			break
		}
		end := strings.Index(row[open:], close)
		if end < 0 {
			emit(SpanText, row)
			break
		}
		end += open
		tagLen := len(openTag(kind))
		emit(SpanText, row[:open])
		emit(kind, row[open+tagLen:end])
		row = row[end+len(close):]
	}
	return spans
}

// nextTag finds the earliest opening tag in s.
func nextTag(s string) (SpanKind, int, string) {
	b := strings.Index(s, layout.BoldOpen)
	c := strings.Index(s, layout.ChordOpen)
	switch {
	case b < 0 && c < 0:
		return SpanText, -1, ""
	case c < 0 || (b >= 0 && b < c):
		return SpanBold, b, layout.BoldClose
	default:
		return SpanChord, c, layout.ChordClose
	}
}

func openTag(k SpanKind) string {
	if k == SpanBold {
		return layout.BoldOpen
	}
	return layout.ChordOpen
}

// Printable replaces whitespace with a plain space and every rune outside
// printable 7-bit ASCII with a space, keeping the cell count unchanged.
func Printable(s string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r > 0x7e {
			return ' '
		}
		return r
	}, s)
}
