package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/chordsheet/pkg/adapter"
	errs "github.com/matzehuels/chordsheet/pkg/errors"
	"github.com/matzehuels/chordsheet/pkg/fetch"
	pkgio "github.com/matzehuels/chordsheet/pkg/io"
	"github.com/matzehuels/chordsheet/pkg/song"
)

// AdapterJSON is reported as the adapter name for songs read from JSON.
const AdapterJSON = "json"

// Parse loads a song from opts. URLs are fetched through client; files ending
// in .json are read as song documents and anything else as a saved page.
// pageHit reports whether a fetched page came from the cache.
func Parse(ctx context.Context, client *fetch.Client, opts Options) (s *song.Song, adapterName string, pageHit bool, err error) {
	switch {
	case len(opts.Song) > 0:
		s, err = pkgio.ReadSong(bytes.NewReader(opts.Song))
		return s, AdapterJSON, false, err
	case opts.HTML != "":
		s, adapterName, err = adapter.ParseString(opts.HTML)
		return s, adapterName, false, err
	case errs.IsURL(opts.Source):
		page, hit, err := client.Page(ctx, opts.Source, opts.Refresh)
		if err != nil {
			return nil, "", false, err
		}
		s, adapterName, err = adapter.ParseString(page)
		return s, adapterName, hit, err
	default:
		s, adapterName, err = parseFile(opts.Source)
		return s, adapterName, false, err
	}
}

func parseFile(path string) (*song.Song, string, error) {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		s, err := pkgio.ImportSong(path)
		return s, AdapterJSON, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", errs.Wrap(errs.ErrCodeNotFound, err, "source %s", path)
		}
		return nil, "", errs.Wrap(errs.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return adapter.Parse(f)
}
