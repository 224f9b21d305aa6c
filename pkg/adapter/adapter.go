package adapter

import (
	"io"
	"strings"

	"golang.org/x/net/html"

	errs "github.com/matzehuels/chordsheet/pkg/errors"
	"github.com/matzehuels/chordsheet/pkg/song"
)

// Adapter reads songs from one site's pages.
type Adapter interface {
	// Name identifies the adapter in logs and cache keys.
	Name() string
	// Detect reports whether doc is a page this adapter understands.
	Detect(doc *html.Node) bool
	// Parse extracts the song-shaped value from doc.
	Parse(doc *html.Node) (song.Input, error)
}

var registry = []Adapter{
	WorshipInitiative{},
	WorshipTogether{},
	UltimateGuitar{},
}

// All returns the registered adapters in detection order.
func All() []Adapter {
	return append([]Adapter(nil), registry...)
}

// Names returns the names of the registered adapters.
func Names() []string {
	names := make([]string, len(registry))
	for i, a := range registry {
		names[i] = a.Name()
	}
	return names
}

// Detect returns the first adapter that recognizes doc.
func Detect(doc *html.Node) (Adapter, bool) {
	for _, a := range registry {
		if a.Detect(doc) {
			return a, true
		}
	}
	return nil, false
}

// Parse reads an HTML page from r and builds a song with the first adapter
// that recognizes it. It returns the adapter name alongside the song.
//
// A page no adapter recognizes yields an UNSUPPORTED_SOURCE error; a page
// that is recognized but structurally incomplete yields INVALID_SONG.
func Parse(r io.Reader) (*song.Song, string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, "", errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse html")
	}
	a, ok := Detect(doc)
	if !ok {
		return nil, "", errs.New(errs.ErrCodeUnsupportedSource,
			"page not recognized (supported: %s)", strings.Join(Names(), ", "))
	}
	in, err := a.Parse(doc)
	if err != nil {
		return nil, a.Name(), err
	}
	s, err := song.New(in)
	if err != nil {
		return nil, a.Name(), err
	}
	return s, a.Name(), nil
}

// ParseString is [Parse] over an in-memory page.
func ParseString(page string) (*song.Song, string, error) {
	return Parse(strings.NewReader(page))
}

func missing(adapter, what string) error {
	return errs.New(errs.ErrCodeInvalidSong, "%s: page has no %s", adapter, what)
}
