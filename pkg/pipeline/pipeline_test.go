package pipeline

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chordsheet/pkg/cache"
	errs "github.com/matzehuels/chordsheet/pkg/errors"
	"github.com/matzehuels/chordsheet/pkg/fetch"
)

const graceJSON = `{
  "title": "Amazing Grace",
  "artist": "John Newton",
  "key": "G",
  "sections": [
    {
      "header": "Verse 1",
      "lines": [
        [["G ", "Amazing "], ["C ", "grace, how "], ["G ", "sweet the sound"]],
        [["", "That saved a "], ["D ", "wretch like me"]]
      ]
    },
    {
      "header": "Chorus",
      "lines": [
        [["Em ", "I once was lost"]]
      ]
    }
  ]
}`

func quietLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{Level: log.ErrorLevel})
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"text", false},
		{"svg", false},
		{"png", false},
		{"pdf", false},
		{"json", false},
		{"invalid", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestParseFormats(t *testing.T) {
	got := ParseFormats(" SVG, pdf,,svg ,json")
	want := []string{"svg", "pdf", "json"}
	if !slices.Equal(got, want) {
		t.Errorf("ParseFormats() = %v, want %v", got, want)
	}
}

func TestValidateAndSetDefaults(t *testing.T) {
	opts := Options{Source: "song.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatalf("ValidateAndSetDefaults: %v", err)
	}
	if opts.Columns != DefaultColumns || opts.MaxWidth != DefaultMaxWidth {
		t.Errorf("layout defaults = %d/%d", opts.Columns, opts.MaxWidth)
	}
	if !slices.Equal(opts.Formats, []string{FormatText}) {
		t.Errorf("Formats = %v", opts.Formats)
	}
	if opts.Theme().Chord.Hex() != "#ff0000" {
		t.Errorf("Theme().Chord = %s", opts.Theme().Chord.Hex())
	}
	if opts.Logger == nil {
		t.Error("Logger should default to a discard logger")
	}
	if opts.PageURL != "" {
		t.Errorf("PageURL = %q, want empty for a file source", opts.PageURL)
	}

	web := Options{Source: "https://example.com/tab"}
	if err := web.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if web.PageURL != web.Source {
		t.Errorf("PageURL = %q, want source URL", web.PageURL)
	}
}

func TestValidateAndSetDefaultsErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		code errs.Code
	}{
		{"no source", Options{}, errs.ErrCodeInvalidInput},
		{"bad url", Options{Source: "https://"}, errs.ErrCodeInvalidInput},
		{"negative columns", Options{Source: "a.json", Columns: -1}, errs.ErrCodeInvalidOptions},
		{"too many columns", Options{Source: "a.json", Columns: MaxColumns + 1}, errs.ErrCodeInvalidOptions},
		{"negative width", Options{Source: "a.json", MaxWidth: -5}, errs.ErrCodeInvalidOptions},
		{"bad format", Options{Source: "a.json", Formats: []string{"docx"}}, errs.ErrCodeInvalidOptions},
		{"bad colour", Options{Source: "a.json", Colors: ThemeColors{Chord: "red"}}, errs.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if !errs.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestLayoutTransposes(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	s, err := r.Parse(context.Background(), Options{Song: json.RawMessage(graceJSON)})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	sheet := Layout(s, Options{Transpose: 2})
	if sheet.Key != "A" {
		t.Errorf("Key = %q, want A", sheet.Key)
	}
	if !strings.Contains(strings.Join(sheet.Lines, "\n"), "[ch]A [/ch]") {
		t.Error("transposed chord A missing from sheet")
	}
	if k, _ := s.Key.Value(); k != "G" {
		t.Errorf("source song key changed to %q", k)
	}
}

func TestLayoutWraps(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	s, err := r.Parse(context.Background(), Options{Song: json.RawMessage(graceJSON)})
	if err != nil {
		t.Fatal(err)
	}
	wide := Layout(s, Options{Columns: 1, MaxWidth: 100})
	narrow := Layout(s, Options{Columns: 1, MaxWidth: 12})
	if narrow.Height <= wide.Height {
		t.Errorf("narrow height %d should exceed wide height %d", narrow.Height, wide.Height)
	}
}

func TestExecuteSongJSON(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	result, err := r.Execute(context.Background(), Options{
		Song:      json.RawMessage(graceJSON),
		Transpose: 2,
		Formats:   []string{FormatText, FormatSVG, FormatJSON},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Adapter != AdapterJSON {
		t.Errorf("Adapter = %q", result.Adapter)
	}
	if result.Stats.Sections != 2 || result.Stats.Lines != 3 {
		t.Errorf("Stats = %+v", result.Stats)
	}
	if len(result.Artifacts) != 3 {
		t.Fatalf("Artifacts = %d, want 3", len(result.Artifacts))
	}
	if !strings.Contains(string(result.Artifacts[FormatText]), "Key: [ch]A[/ch]") {
		t.Errorf("text artifact missing transposed key:\n%s", result.Artifacts[FormatText])
	}
	if !strings.HasPrefix(string(result.Artifacts[FormatSVG]), "<svg") {
		t.Error("svg artifact should start with <svg")
	}
	var out struct {
		Width int    `json:"width"`
		Key   string `json:"key"`
	}
	if err := json.Unmarshal(result.Artifacts[FormatJSON], &out); err != nil {
		t.Fatalf("json artifact: %v", err)
	}
	if out.Key != "A" || out.Width != result.Sheet.Width {
		t.Errorf("json artifact = %+v", out)
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	defer r.Close()
	opts := Options{Song: json.RawMessage(graceJSON), Formats: []string{FormatText}}

	first, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.SheetHit || first.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v", first.CacheInfo)
	}

	second, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.SheetHit || !second.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v", second.CacheInfo)
	}
	if string(first.Artifacts[FormatText]) != string(second.Artifacts[FormatText]) {
		t.Error("cached artifact differs")
	}

	opts.Columns = 1
	third, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.SheetHit {
		t.Error("changed columns should miss the sheet cache")
	}

	opts.Refresh = true
	opts.Columns = 2
	fourth, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if fourth.CacheInfo.SheetHit || fourth.CacheInfo.RenderHit {
		t.Error("refresh should bypass the cache")
	}
}

func TestExecuteURL(t *testing.T) {
	page, err := os.ReadFile(filepath.Join("..", "adapter", "testdata", "ultimateguitar.html"))
	if err != nil {
		t.Fatal(err)
	}
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write(page)
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	r := NewRunner(fc, nil, quietLogger())
	r.Fetcher = fetch.NewClient(fetch.WithHTTPClient(srv.Client()), fetch.WithCache(fc, r.Keyer))

	opts := Options{Source: srv.URL + "/tab/oasis/wonderwall", Formats: []string{FormatJSON}}
	result, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Adapter != "ultimateguitar" {
		t.Errorf("Adapter = %q", result.Adapter)
	}
	if result.Sheet.Title != "Wonderwall Chords" {
		t.Errorf("Title = %q", result.Sheet.Title)
	}
	if !strings.Contains(string(result.Artifacts[FormatJSON]), srv.URL) {
		t.Error("json artifact should carry the source URL")
	}

	again, err := r.Execute(context.Background(), opts)
	if err != nil {
		t.Fatal(err)
	}
	if !again.CacheInfo.PageHit {
		t.Error("second run should hit the page cache")
	}
	if n := calls.Load(); n != 1 {
		t.Errorf("server calls = %d, want 1", n)
	}
}

func TestParseFile(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	ctx := context.Background()

	s, err := r.Parse(ctx, Options{Source: filepath.Join("..", "adapter", "testdata", "worshipinitiative.html")})
	if err != nil {
		t.Fatalf("Parse(html): %v", err)
	}
	if s.Title != "Amazing Grace" {
		t.Errorf("Title = %q", s.Title)
	}

	path := filepath.Join(t.TempDir(), "grace.json")
	if err := os.WriteFile(path, []byte(graceJSON), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Parse(ctx, Options{Source: path}); err != nil {
		t.Errorf("Parse(json): %v", err)
	}

	_, err = r.Parse(ctx, Options{Source: filepath.Join(t.TempDir(), "missing.html")})
	if !errs.Is(err, errs.ErrCodeNotFound) {
		t.Errorf("Parse(missing) = %v, want NOT_FOUND", err)
	}

	_, err = r.Parse(ctx, Options{Source: filepath.Join("..", "adapter", "testdata", "unsupported.html")})
	if !errs.Is(err, errs.ErrCodeUnsupportedSource) {
		t.Errorf("Parse(unsupported) = %v, want UNSUPPORTED_SOURCE", err)
	}
}

func TestSongHashStable(t *testing.T) {
	r := NewRunner(nil, nil, quietLogger())
	s, err := r.Parse(context.Background(), Options{Song: json.RawMessage(graceJSON)})
	if err != nil {
		t.Fatal(err)
	}
	if SongHash(s) != SongHash(s.Clone()) {
		t.Error("SongHash should depend only on content")
	}
	if SongHash(s) == SongHash(s.Transpose(1)) {
		t.Error("SongHash should change with chords")
	}
}
