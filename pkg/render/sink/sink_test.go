package sink

import (
	"bytes"
	"context"
	"encoding/json"
	"os/exec"
	"strings"
	"testing"

	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/render"
)

func testSheet() layout.Sheet {
	return layout.Sheet{
		Lines: []string{
			"[b]Grace[/b] - Newton",
			"Key: [ch]G[/ch]       ",
			"_____________________",
			"[ch]G [/ch]  [ch]C[/ch]  |[b]Tag & Co[/b]",
			"Amazing grace<3      ",
		},
		Width:   21,
		Height:  5,
		Columns: 2,
		Title:   "Grace",
		Artist:  "Newton",
		Key:     "G",
	}
}

func TestRenderText(t *testing.T) {
	s := testSheet()

	got := string(RenderText(s))
	if !strings.HasPrefix(got, "[b]Grace[/b] - Newton\n") {
		t.Errorf("marked-up output = %q", got)
	}
	if n := strings.Count(got, "\n"); n != s.Height {
		t.Errorf("rows = %d, want %d", n, s.Height)
	}

	plain := string(RenderText(s, WithPlain(), WithTrim()))
	if strings.Contains(plain, "[ch]") || strings.Contains(plain, "[b]") {
		t.Errorf("plain output carries markup: %q", plain)
	}
	if !strings.Contains(plain, "\nKey: G\n") {
		t.Errorf("plain output not trimmed: %q", plain)
	}
}

func TestRenderSVG(t *testing.T) {
	theme := render.Theme{
		Background: render.Color{R: 0x10, G: 0x20, B: 0x30},
		Text:       render.Color{R: 0xee, G: 0xee, B: 0xee},
		Chord:      render.Color{R: 0x00, G: 0xcc, B: 0x66},
	}
	svg := string(RenderSVG(testSheet(), WithTheme(theme)))

	checks := []string{
		`<svg xmlns="http://www.w3.org/2000/svg"`,
		`viewBox="0 0 191.2 100.0"`,
		`fill="#102030"`,
		`fill="#00cc66" xml:space="preserve">G </text>`,
		`font-weight="bold" fill="#eeeeee" xml:space="preserve">Grace</text>`,
		`Tag &amp; Co`,
		`Amazing grace&lt;3`,
		"</svg>",
	}
	for _, want := range checks {
		if !strings.Contains(svg, want) {
			t.Errorf("SVG missing %q", want)
		}
	}
	if strings.Contains(svg, "Generated by") {
		t.Error("footer rendered without a source")
	}
}

func TestRenderSVGColumns(t *testing.T) {
	svg := string(RenderSVG(testSheet()))
	// "C" sits at cell 4 of row 3, one point below the text baseline.
	if !strings.Contains(svg, `x="48.8" y="65.4"`) {
		t.Errorf("chord C not placed on the grid:\n%s", svg)
	}
}

func TestRenderSVGFooter(t *testing.T) {
	svg := string(RenderSVG(testSheet(), WithSource("https://example.com/a?b=1&c=2")))
	if !strings.Contains(svg, "Generated by chordsheet from </text>") {
		t.Error("missing footer text")
	}
	if !strings.Contains(svg, `<a href="https://example.com/a?b=1&amp;c=2">`) {
		t.Errorf("missing escaped footer link:\n%s", svg)
	}
}

func TestRenderJSON(t *testing.T) {
	data, err := RenderJSON(testSheet(), WithJSONSource("https://example.com"), WithJSONMaxWidth(50))
	if err != nil {
		t.Fatalf("RenderJSON() error: %v", err)
	}

	var out jsonOutput
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if out.Width != 21 || out.Height != 5 {
		t.Errorf("dimensions = %dx%d, want 21x5", out.Width, out.Height)
	}
	if len(out.TextLines) != 5 {
		t.Errorf("textLines = %d, want 5", len(out.TextLines))
	}
	if out.Key != "G" || out.Title != "Grace" || out.Artist != "Newton" {
		t.Errorf("metadata = %+v", out)
	}
	if out.Source != "https://example.com" || out.MaxWidth != 50 {
		t.Errorf("options not recorded: %+v", out)
	}
}

func TestRenderJSONCompact(t *testing.T) {
	data, err := RenderJSON(layout.Sheet{}, WithJSONCompact())
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Contains(data, []byte("\n")) {
		t.Errorf("compact output is indented: %s", data)
	}
	if !bytes.Contains(data, []byte(`"textLines":[]`)) {
		t.Errorf("empty sheet should encode textLines as []: %s", data)
	}
}

func TestRenderPDF(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	pdf, err := RenderPDF(context.Background(), testSheet())
	if err != nil {
		t.Fatalf("RenderPDF() error: %v", err)
	}
	if !bytes.HasPrefix(pdf, []byte("%PDF")) {
		t.Errorf("output is not a PDF: %q", pdf[:min(len(pdf), 8)])
	}
}

func TestRenderPNG(t *testing.T) {
	if _, err := exec.LookPath("rsvg-convert"); err != nil {
		t.Skip("rsvg-convert not installed")
	}
	png, err := RenderPNG(context.Background(), testSheet(), WithScale(1))
	if err != nil {
		t.Fatalf("RenderPNG() error: %v", err)
	}
	if !bytes.HasPrefix(png, []byte("\x89PNG")) {
		t.Errorf("output is not a PNG")
	}
}
