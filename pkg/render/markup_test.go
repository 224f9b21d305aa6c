package render

import (
	"reflect"
	"testing"
)

func TestParseMarkup(t *testing.T) {
	tests := []struct {
		name string
		row  string
		want []Span
	}{
		{
			name: "title",
			row:  "[b]Grace[/b] - Newton",
			want: []Span{
				{Kind: SpanBold, Text: "Grace", Col: 0},
				{Kind: SpanText, Text: " - Newton", Col: 5},
			},
		},
		{
			name: "chords",
			row:  "[ch]G [/ch]   [ch]D/F#[/ch]|x",
			want: []Span{
				{Kind: SpanChord, Text: "G ", Col: 0},
				{Kind: SpanText, Text: "   ", Col: 2},
				{Kind: SpanChord, Text: "D/F#", Col: 5},
				{Kind: SpanText, Text: "|x", Col: 9},
			},
		},
		{
			name: "unterminated tag",
			row:  "[ch]G  ",
			want: []Span{{Kind: SpanText, Text: "[ch]G  ", Col: 0}},
		},
		{
			name: "plain",
			row:  "Amazing grace",
			want: []Span{{Kind: SpanText, Text: "Amazing grace", Col: 0}},
		},
		{
			name: "empty",
			row:  "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseMarkup(tt.row); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseMarkup(%q) = %+v, want %+v", tt.row, got, tt.want)
			}
		})
	}
}

func TestPrintable(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain text", "plain text"},
		{"tab\there", "tab here"},
		{"café", "caf "},
		{"“quoted”", " quoted "},
	}
	for _, tt := range tests {
		if got := Printable(tt.in); got != tt.want {
			t.Errorf("Printable(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
