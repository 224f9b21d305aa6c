package sink

import (
	"strings"

	"github.com/matzehuels/chordsheet/pkg/layout"
)

// TextOption configures text rendering.
type TextOption func(*textRenderer)

type textRenderer struct {
	plain bool
	trim  bool
}

// WithPlain removes markup tags from every row.
func WithPlain() TextOption { return func(r *textRenderer) { r.plain = true } }

// WithTrim strips trailing padding from every row.
func WithTrim() TextOption { return func(r *textRenderer) { r.trim = true } }

// RenderText writes the sheet rows, one per line.
func RenderText(s layout.Sheet, opts ...TextOption) []byte {
	r := textRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	var b strings.Builder
	for _, row := range s.Lines {
		if r.plain {
			row = layout.StripMarkup(row)
		}
		if r.trim {
			row = strings.TrimRight(row, " ")
		}
		b.WriteString(row)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}
