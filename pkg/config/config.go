// Package config loads chordsheet settings from a TOML or YAML file.
//
// The file format is chosen by extension: .toml, or .yaml/.yml. Keys that
// are absent keep their [Default] values; unknown keys are rejected.
//
//	columns = 3
//	max_width = 40
//
//	[theme]
//	chord = "#0055aa"
//
//	[cache]
//	redis_url = "redis://localhost:6379/0"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-yaml"

	"github.com/matzehuels/chordsheet/pkg/cache"
	errs "github.com/matzehuels/chordsheet/pkg/errors"
	"github.com/matzehuels/chordsheet/pkg/render"
)

// MaxFileSize limits config input.
const MaxFileSize = 1 << 20

// Layout defaults.
const (
	DefaultColumns  = 2
	DefaultMaxWidth = 50
	DefaultAddr     = ":8080"
)

// Config holds user settings. Command-line flags override it.
type Config struct {
	Columns  int          `toml:"columns" yaml:"columns"`
	MaxWidth int          `toml:"max_width" yaml:"max_width"`
	Theme    ThemeConfig  `toml:"theme" yaml:"theme"`
	Cache    CacheConfig  `toml:"cache" yaml:"cache"`
	Server   ServerConfig `toml:"server" yaml:"server"`
}

// ThemeConfig holds the three sheet colours as hex strings.
type ThemeConfig struct {
	Background string `toml:"background" yaml:"background"`
	Text       string `toml:"text" yaml:"text"`
	Chord      string `toml:"chord" yaml:"chord"`
}

// CacheConfig selects and tunes the cache backend.
type CacheConfig struct {
	Dir      string `toml:"dir" yaml:"dir"`             // file cache directory (empty = user cache dir)
	RedisURL string `toml:"redis_url" yaml:"redis_url"` // when set, Redis replaces the file cache
	TTL      string `toml:"ttl" yaml:"ttl"`             // page TTL, e.g. "24h"
	Scope    string `toml:"scope" yaml:"scope"`         // key prefix for deployments sharing one Redis
	Disabled bool   `toml:"disabled" yaml:"disabled"`
}

// ServerConfig holds API server settings.
type ServerConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
}

// Default returns the built-in settings.
func Default() Config {
	def := render.DefaultTheme
	return Config{
		Columns:  DefaultColumns,
		MaxWidth: DefaultMaxWidth,
		Theme: ThemeConfig{
			Background: def.Background.Hex(),
			Text:       def.Text.Hex(),
			Chord:      def.Chord.Hex(),
		},
		Cache:  CacheConfig{TTL: cache.TTLPage.String()},
		Server: ServerConfig{Addr: DefaultAddr},
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/chordsheet/config.toml or the
// platform equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "chordsheet", "config.toml"), nil
}

// Load reads the config at path on top of [Default] and validates it.
// An empty path loads [DefaultPath] and tolerates its absence.
func Load(path string) (Config, error) {
	cfg := Default()
	optional := path == ""
	if optional {
		p, err := DefaultPath()
		if err != nil {
			return cfg, nil
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			if optional {
				return cfg, nil
			}
			return cfg, errs.Wrap(errs.ErrCodeNotFound, err, "config file %s", path)
		}
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if err := Decode(data, filepath.Ext(path), &cfg); err != nil {
		return cfg, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Decode parses data in the format named by ext into cfg.
func Decode(data []byte, ext string, cfg *Config) error {
	if len(data) > MaxFileSize {
		return errs.New(errs.ErrCodeInvalidConfig, "config exceeds %d bytes", MaxFileSize)
	}
	switch strings.ToLower(ext) {
	case ".toml":
		md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return errs.New(errs.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
		}
		return nil
	case ".yaml", ".yml":
		if len(bytes.TrimSpace(data)) == 0 {
			return nil
		}
		return yaml.UnmarshalWithOptions(data, cfg, yaml.Strict())
	default:
		return errs.New(errs.ErrCodeInvalidConfig, "unsupported config format %q (use .toml, .yaml or .yml)", ext)
	}
}

// Validate rejects non-positive layout sizes, malformed colours and
// unparseable TTLs.
func (c Config) Validate() error {
	if err := errs.ValidatePositive("columns", c.Columns); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "columns")
	}
	if err := errs.ValidatePositive("max_width", c.MaxWidth); err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "max_width")
	}
	if _, err := c.RenderTheme(); err != nil {
		return err
	}
	if _, err := c.PageTTL(); err != nil {
		return err
	}
	if c.Cache.RedisURL != "" && !strings.HasPrefix(c.Cache.RedisURL, "redis://") && !strings.HasPrefix(c.Cache.RedisURL, "rediss://") {
		return errs.New(errs.ErrCodeInvalidConfig, "cache.redis_url must start with redis:// or rediss://")
	}
	return nil
}

// RenderTheme parses the configured colours.
func (c Config) RenderTheme() (render.Theme, error) {
	return render.ParseTheme(c.Theme.Background, c.Theme.Text, c.Theme.Chord)
}

// PageTTL parses the cache TTL. An empty value means [cache.TTLPage].
func (c Config) PageTTL() (time.Duration, error) {
	if c.Cache.TTL == "" {
		return cache.TTLPage, nil
	}
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil || d < 0 {
		return 0, errs.New(errs.ErrCodeInvalidConfig, "cache.ttl %q is not a valid duration", c.Cache.TTL)
	}
	return d, nil
}
