// Package cli implements the chordsheet command-line interface.
//
// The commands mirror the pipeline stages: fetch and parse a chord chart,
// lay it out into columns, and render the sheet to text, SVG, PNG, PDF or
// JSON. Settings come from the config file (see [config.Load]) and are
// overridden by flags.
//
// # Commands
//
//   - render: Parse, lay out and write the sheet in one or more formats
//   - layout: Print the laid-out sheet to stdout
//   - fetch: Download a chord page and write the parsed song as JSON
//   - transpose: Transpose chord symbols
//   - key: Detect the key of a song or a list of chords
//   - view: Browse a sheet interactively, transposing on the fly
//   - serve: Run the HTTP API
//   - cache: Manage the page and sheet cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// installs logging observability hooks for parse, layout, render, cache and
// HTTP events.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordsheet/pkg/buildinfo"
	"github.com/matzehuels/chordsheet/pkg/cache"
	"github.com/matzehuels/chordsheet/pkg/config"
	"github.com/matzehuels/chordsheet/pkg/fetch"
	"github.com/matzehuels/chordsheet/pkg/observability"
	"github.com/matzehuels/chordsheet/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display and default file names.
const appName = "chordsheet"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// InstallHooks routes pipeline, cache and HTTP events to the debug log.
func (c *CLI) InstallHooks() {
	observability.NewLogHooks(c.Logger).Install()
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Chordsheet lays out chord charts as printable multi-column sheets",
		Long:         `Chordsheet turns chord charts from supported websites or song JSON files into compact multi-column sheets, transposed to any key.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/chordsheet/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.transposeCommand())
	root.AddCommand(c.keyCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the --config file, or the default config file if present.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, cfg config.Config, noCache bool) (*pipeline.Runner, error) {
	ch, err := newCache(ctx, cfg.Cache, noCache)
	if err != nil {
		return nil, err
	}
	ttl, err := cfg.PageTTL()
	if err != nil {
		ch.Close()
		return nil, err
	}
	var keyer cache.Keyer
	if cfg.Cache.Scope != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.Cache.Scope+":")
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	runner.Fetcher = fetch.NewClient(fetch.WithCache(ch, runner.Keyer), fetch.WithTTL(ttl))
	return runner, nil
}

// newCache picks the cache backend: none, Redis when a URL is configured,
// otherwise the file cache.
func newCache(ctx context.Context, cfg config.CacheConfig, noCache bool) (cache.Cache, error) {
	switch {
	case noCache || cfg.Disabled:
		return cache.NewNullCache(), nil
	case cfg.RedisURL != "":
		rc, err := cache.NewRedisCache(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	fc, err := cache.NewFileCache(cfg.Dir)
	if err != nil {
		return nil, err
	}
	return fc, nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// sheetFlags holds the layout and theme flags shared by several commands.
type sheetFlags struct {
	columns    int
	maxWidth   int
	transpose  int
	background string
	text       string
	chord      string
	noCache    bool
	refresh    bool
}

// register binds the flags to cmd.
func (f *sheetFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&f.columns, "columns", "c", config.DefaultColumns, "number of columns")
	cmd.Flags().IntVarP(&f.maxWidth, "max-width", "w", config.DefaultMaxWidth, "maximum line width in characters")
	cmd.Flags().IntVarP(&f.transpose, "transpose", "t", 0, "transpose by this many semitones")
	cmd.Flags().StringVar(&f.background, "background", "", "background colour (hex)")
	cmd.Flags().StringVar(&f.text, "text-color", "", "lyric colour (hex)")
	cmd.Flags().StringVar(&f.chord, "chord-color", "", "chord colour (hex)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&f.refresh, "refresh", false, "refetch pages even when cached")
}

// options merges cfg and the flags into pipeline options for source.
// Flags win over the config file only when set explicitly.
func (f *sheetFlags) options(cmd *cobra.Command, cfg config.Config, source string) pipeline.Options {
	opts := pipeline.Options{
		Source:    source,
		Refresh:   f.refresh,
		Columns:   cfg.Columns,
		MaxWidth:  cfg.MaxWidth,
		Transpose: f.transpose,
		Colors: pipeline.ThemeColors{
			Background: cfg.Theme.Background,
			Text:       cfg.Theme.Text,
			Chord:      cfg.Theme.Chord,
		},
	}
	flags := cmd.Flags()
	if flags.Changed("columns") {
		opts.Columns = f.columns
	}
	if flags.Changed("max-width") {
		opts.MaxWidth = f.maxWidth
	}
	if f.background != "" {
		opts.Colors.Background = f.background
	}
	if f.text != "" {
		opts.Colors.Text = f.text
	}
	if f.chord != "" {
		opts.Colors.Chord = f.chord
	}
	return opts
}
