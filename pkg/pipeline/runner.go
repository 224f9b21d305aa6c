package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chordsheet/pkg/cache"
	"github.com/matzehuels/chordsheet/pkg/fetch"
	pkgio "github.com/matzehuels/chordsheet/pkg/io"
	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/observability"
	"github.com/matzehuels/chordsheet/pkg/song"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache, fetcher and logger - it
// doesn't store pipeline results. Multiple goroutines can safely use the
// same Runner with different options.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher *fetch.Client
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Pages are fetched through a client sharing the same cache; replace
// Runner.Fetcher to change timeouts or retry policy.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Fetcher: fetch.NewClient(fetch.WithCache(c, keyer)),
		Logger:  logger,
	}
}

// Execute runs the complete parse → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{}

	// Stage 1: Parse
	parseStart := time.Now()
	s, adapterName, pageHit, err := r.ParseWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	result.Song = s
	result.Adapter = adapterName
	result.SongHash = SongHash(s)
	result.Stats.ParseTime = time.Since(parseStart)
	result.Stats.Sections = len(s.Sections)
	result.Stats.Lines = lineCount(s)
	result.CacheInfo.PageHit = pageHit

	r.Logger.Info("parsed song",
		"title", s.Title,
		"adapter", adapterName,
		"sections", result.Stats.Sections,
		"duration", result.Stats.ParseTime)

	// Stage 2: Layout
	layoutStart := time.Now()
	sheet, sheetHit, err := r.LayoutWithCacheInfo(ctx, s, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Sheet = sheet
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.CacheInfo.SheetHit = sheetHit

	r.Logger.Info("laid out sheet",
		"key", sheet.Key,
		"columns", sheet.Columns,
		"width", sheet.Width,
		"height", sheet.Height,
		"duration", result.Stats.LayoutTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, sheet, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// ParseWithCacheInfo loads the song and reports whether its page came from cache.
func (r *Runner) ParseWithCacheInfo(ctx context.Context, opts Options) (*song.Song, string, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForParse(); err != nil {
		return nil, "", false, err
	}

	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, observability.StageParse, opts.Source)
	start := time.Now()

	s, adapterName, hit, err := Parse(ctx, r.Fetcher, opts)
	ev := observability.StageEvent{Stage: observability.StageParse, Subject: opts.Source, Adapter: adapterName, Err: err}
	if s != nil {
		ev.Lines = lineCount(s)
	}
	ev.Duration = time.Since(start)
	hooks.OnStageDone(ctx, ev)
	if err != nil {
		return nil, "", false, err
	}
	return s, adapterName, hit, nil
}

// Parse is a convenience wrapper that calls ParseWithCacheInfo and discards the cache hit info.
func (r *Runner) Parse(ctx context.Context, opts Options) (*song.Song, error) {
	s, _, _, err := r.ParseWithCacheInfo(ctx, opts)
	return s, err
}

// LayoutWithCacheInfo lays out a sheet with caching and returns cache hit info.
func (r *Runner) LayoutWithCacheInfo(ctx context.Context, s *song.Song, opts Options) (layout.Sheet, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return layout.Sheet{}, false, err
	}

	cacheKey := r.Keyer.SheetKey(SongHash(s), opts.SheetKeyOpts())

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var cached layout.Sheet
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCache(ctx, observability.CacheHit, "sheet", 0)
				return cached, true, nil
			}
			// If deserialization fails, fall through to recompute
		}
		observability.Cache().OnCache(ctx, observability.CacheMiss, "sheet", 0)
	}

	hooks := observability.Pipeline()
	hooks.OnStageStart(ctx, observability.StageLayout, s.Title)
	start := time.Now()
	sheet := Layout(s, opts)
	hooks.OnStageDone(ctx, observability.StageEvent{
		Stage:    observability.StageLayout,
		Subject:  s.Title,
		Columns:  sheet.Columns,
		Duration: time.Since(start),
	})

	if data, err := json.Marshal(sheet); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLSheet); err == nil {
			observability.Cache().OnCache(ctx, observability.CacheStore, "sheet", len(data))
		}
	}

	return sheet, false, nil
}

// Layout is a convenience wrapper that calls LayoutWithCacheInfo and discards the cache hit info.
func (r *Runner) Layout(ctx context.Context, s *song.Song, opts Options) (layout.Sheet, error) {
	sheet, _, err := r.LayoutWithCacheInfo(ctx, s, opts)
	return sheet, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, sheet layout.Sheet, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	sheetData, err := json.Marshal(sheet)
	if err != nil {
		return nil, false, fmt.Errorf("serialize sheet for cache key: %w", err)
	}
	sheetHash := cache.Hash(sheetData)

	// Try to get all formats from cache
	artifacts := make(map[string][]byte, len(opts.Formats))
	if !opts.Refresh {
		for _, format := range opts.Formats {
			cacheKey := r.Keyer.ArtifactKey(sheetHash, opts.ArtifactKeyOpts(format))
			data, hit, err := r.Cache.Get(ctx, cacheKey)
			if err != nil || !hit {
				break
			}
			artifacts[format] = data
		}
		if len(artifacts) == len(opts.Formats) {
			observability.Cache().OnCache(ctx, observability.CacheHit, "artifact", 0)
			return artifacts, true, nil
		}
		observability.Cache().OnCache(ctx, observability.CacheMiss, "artifact", 0)
	}

	hooks := observability.Pipeline()
	formats := strings.Join(opts.Formats, ",")
	hooks.OnStageStart(ctx, observability.StageRender, formats)
	start := time.Now()
	rendered, err := Render(ctx, sheet, opts)
	hooks.OnStageDone(ctx, observability.StageEvent{
		Stage:    observability.StageRender,
		Subject:  formats,
		Duration: time.Since(start),
		Err:      err,
	})
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(sheetHash, opts.ArtifactKeyOpts(format))
		if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCache(ctx, observability.CacheStore, "artifact", len(data))
		}
	}

	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, sheet layout.Sheet, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, sheet, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

// SongHash returns the content hash of s's JSON encoding.
func SongHash(s *song.Song) string {
	var buf bytes.Buffer
	if err := pkgio.WriteSong(s, &buf); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}

func lineCount(s *song.Song) int {
	n := 0
	for _, sec := range s.Sections {
		n += len(sec.Lines)
	}
	return n
}
