// Package pipeline provides the parse → layout → render pipeline for chordsheet.
//
// The CLI and the HTTP API both drive sheets through a [Runner], so that
// fetching, caching and format selection behave the same everywhere.
//
// # Stages
//
//  1. Parse: load a song from a chord site URL, a saved HTML page, or a song JSON file
//  2. Layout: transpose, wrap lines to the maximum width and allocate sections to columns
//  3. Render: produce text, SVG, PDF, PNG or JSON output from the sheet
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:    "https://tabs.ultimate-guitar.com/tab/oasis/wonderwall-chords-39144",
//	    Columns:   2,
//	    Transpose: -2,
//	    Formats:   []string{"pdf"},
//	})
//	pdf := result.Artifacts["pdf"]
package pipeline

import (
	"encoding/json"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chordsheet/pkg/cache"
	errs "github.com/matzehuels/chordsheet/pkg/errors"
	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/render"
	"github.com/matzehuels/chordsheet/pkg/song"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultColumns is the number of side-by-side columns on a sheet.
	DefaultColumns = 2

	// DefaultMaxWidth is the widest a line may be before it is wrapped.
	DefaultMaxWidth = 50

	// DefaultScale is the PNG rasterisation factor.
	DefaultScale = 2.0

	// MaxColumns bounds the column count accepted from API callers.
	MaxColumns = 8
)

// Format constants for output formats.
const (
	FormatText = "text"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatText: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// Extensions maps each format to its output file extension.
var Extensions = map[string]string{
	FormatText: ".txt",
	FormatSVG:  ".svg",
	FormatPNG:  ".png",
	FormatPDF:  ".pdf",
	FormatJSON: ".json",
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the sheet pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Parse options. Exactly one of Source, HTML or Song is used, in that order
	// of preference: Song, then HTML, then Source.
	Source  string          `json:"source,omitempty"`   // URL, .html page or .json song file
	HTML    string          `json:"html,omitempty"`     // raw page markup
	Song    json.RawMessage `json:"song,omitempty"`     // song JSON document
	PageURL string          `json:"page_url,omitempty"` // footer link; defaults to Source when it is a URL
	Refresh bool            `json:"refresh,omitempty"`

	// Layout options
	Columns   int `json:"columns,omitempty"`
	MaxWidth  int `json:"max_width,omitempty"`
	Transpose int `json:"transpose,omitempty"`

	// Render options
	Formats []string    `json:"formats,omitempty"`
	Colors  ThemeColors `json:"theme,omitempty"`
	Scale   float64     `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	theme     render.Theme
	validated bool
}

// ThemeColors holds sheet colours as hex strings. Empty fields use
// [render.DefaultTheme].
type ThemeColors struct {
	Background string `json:"background,omitempty"`
	Text       string `json:"text,omitempty"`
	Chord      string `json:"chord,omitempty"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Song is the parsed song, before transposition.
	Song *song.Song

	// Adapter names the site adapter that parsed the page, or "json".
	Adapter string

	// SongHash is the content hash of the parsed song.
	SongHash string

	// Sheet is the laid-out sheet.
	Sheet layout.Sheet

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	Sections   int
	Lines      int
	ParseTime  time.Duration
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	PageHit   bool // Whether the fetched page came from cache
	SheetHit  bool // Whether the laid-out sheet came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidOptions, "invalid format: %q (must be one of: text, svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ParseFormats splits a comma-separated format list, dropping blanks
// and duplicates.
func ParseFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" && !slices.Contains(out, f) {
			out = append(out, f)
		}
	}
	return out
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForParse(); err != nil {
		return err
	}
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForParse checks that a song source is present.
func (o *Options) ValidateForParse() error {
	if len(o.Song) == 0 && o.HTML == "" && o.Source == "" {
		return errs.New(errs.ErrCodeInvalidInput, "source, html or song is required")
	}
	if len(o.Song) == 0 && o.HTML == "" && errs.IsURL(o.Source) {
		if err := errs.ValidateURL(o.Source); err != nil {
			return err
		}
	}
	o.setLogger()
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.Columns == 0 {
		o.Columns = DefaultColumns
	}
	if o.MaxWidth == 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	o.setLogger()
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if err := errs.ValidatePositive("columns", o.Columns); err != nil {
		return err
	}
	if o.Columns > MaxColumns {
		return errs.New(errs.ErrCodeInvalidOptions, "columns must be at most %d, got %d", MaxColumns, o.Columns)
	}
	return errs.ValidatePositive("max_width", o.MaxWidth)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatText}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.PageURL == "" && errs.IsURL(o.Source) {
		o.PageURL = o.Source
	}
	o.setLogger()
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidOptions, "scale must be positive, got %g", o.Scale)
	}
	theme, err := o.Colors.resolve()
	if err != nil {
		return err
	}
	o.theme = theme
	return nil
}

// Theme returns the resolved render theme. It is only meaningful after
// [Options.ValidateForRender].
func (o *Options) Theme() render.Theme {
	return o.theme
}

// SheetKeyOpts returns cache key options for layout computation.
func (o *Options) SheetKeyOpts() cache.SheetKeyOpts {
	return cache.SheetKeyOpts{
		Columns:   o.Columns,
		MaxWidth:  o.MaxWidth,
		Transpose: o.Transpose,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	opts := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatPDF, FormatPNG:
		opts.Theme = o.theme.Background.Hex() + o.theme.Text.Hex() + o.theme.Chord.Hex()
		opts.Source = o.PageURL
	case FormatJSON:
		opts.Source = o.PageURL
		opts.MaxWidth = o.MaxWidth
	}
	if format == FormatPNG {
		opts.Scale = o.Scale
	}
	return opts
}

func (o *Options) setLogger() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

func (c ThemeColors) resolve() (render.Theme, error) {
	def := render.DefaultTheme
	return render.ParseTheme(
		orDefault(c.Background, def.Background.Hex()),
		orDefault(c.Text, def.Text.Hex()),
		orDefault(c.Chord, def.Chord.Hex()),
	)
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
