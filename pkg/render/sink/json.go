package sink

import (
	"encoding/json"

	"github.com/matzehuels/chordsheet/pkg/layout"
)

// JSONOption configures JSON rendering via [RenderJSON].
type JSONOption func(*jsonRenderer)

type jsonRenderer struct {
	source  string
	maxW    int
	compact bool
}

// WithJSONSource records the page the song was taken from.
func WithJSONSource(url string) JSONOption { return func(r *jsonRenderer) { r.source = url } }

// WithJSONMaxWidth records the wrap width the sheet was laid out with.
func WithJSONMaxWidth(w int) JSONOption { return func(r *jsonRenderer) { r.maxW = w } }

// WithJSONCompact disables indentation.
func WithJSONCompact() JSONOption { return func(r *jsonRenderer) { r.compact = true } }

type jsonOutput struct {
	TextLines []string `json:"textLines"`
	Width     int      `json:"width"`
	Height    int      `json:"height"`
	Columns   int      `json:"columns"`
	MaxWidth  int      `json:"maxWidth,omitempty"`
	Title     string   `json:"title"`
	Artist    string   `json:"artist"`
	Key       string   `json:"key"`
	Source    string   `json:"source,omitempty"`
}

// RenderJSON exports the sheet rows, their dimensions and the song metadata
// as a JSON document. It does not modify s and is safe to call concurrently.
func RenderJSON(s layout.Sheet, opts ...JSONOption) ([]byte, error) {
	r := jsonRenderer{}
	for _, opt := range opts {
		opt(&r)
	}

	out := jsonOutput{
		TextLines: s.Lines,
		Width:     s.Width,
		Height:    s.Height,
		Columns:   s.Columns,
		MaxWidth:  r.maxW,
		Title:     s.Title,
		Artist:    s.Artist,
		Key:       s.Key,
		Source:    r.source,
	}
	if out.TextLines == nil {
		out.TextLines = []string{}
	}

	if r.compact {
		return json.Marshal(out)
	}
	return json.MarshalIndent(out, "", "  ")
}
