package pipeline

import (
	"context"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/render/sink"
)

// Render generates output artifacts in the requested formats.
// Formats are rendered concurrently; the first failure cancels the rest.
func Render(ctx context.Context, sheet layout.Sheet, opts Options) (map[string][]byte, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, err
	}

	var (
		mu        sync.Mutex
		artifacts = make(map[string][]byte, len(opts.Formats))
	)
	g, gctx := errgroup.WithContext(ctx)
	for _, format := range opts.Formats {
		g.Go(func() error {
			data, err := renderFormat(gctx, sheet, format, opts)
			if err != nil {
				return fmt.Errorf("render %s: %w", format, err)
			}
			mu.Lock()
			artifacts[format] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return artifacts, nil
}

func renderFormat(ctx context.Context, sheet layout.Sheet, format string, opts Options) ([]byte, error) {
	svgOpts := buildSVGOptions(opts)
	switch format {
	case FormatText:
		return sink.RenderText(sheet), nil
	case FormatSVG:
		return sink.RenderSVG(sheet, svgOpts...), nil
	case FormatPDF:
		return sink.RenderPDF(ctx, sheet, sink.WithPDFSVGOptions(svgOpts...))
	case FormatPNG:
		return sink.RenderPNG(ctx, sheet, sink.WithPNGSVGOptions(svgOpts...), sink.WithScale(opts.Scale))
	case FormatJSON:
		return sink.RenderJSON(sheet, sink.WithJSONSource(opts.PageURL), sink.WithJSONMaxWidth(opts.MaxWidth))
	default:
		return nil, ValidateFormat(format)
	}
}

func buildSVGOptions(opts Options) []sink.SVGOption {
	svgOpts := []sink.SVGOption{sink.WithTheme(opts.Theme())}
	if opts.PageURL != "" {
		svgOpts = append(svgOpts, sink.WithSource(opts.PageURL))
	}
	return svgOpts
}
