package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/chordsheet/pkg/cache"
	"github.com/matzehuels/chordsheet/pkg/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCachePath(t *testing.T) {
	t.Run("configured dir", func(t *testing.T) {
		dir := t.TempDir()
		out, err := runCLIWithConfig(t, writeConfig(t, fmt.Sprintf("[cache]\ndir = %q\n", dir)), "cache", "path")
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(out); got != dir {
			t.Errorf("cache path = %q, want %q", got, dir)
		}
	})

	t.Run("redis", func(t *testing.T) {
		url := "redis://localhost:6379/2"
		out, err := runCLIWithConfig(t, writeConfig(t, fmt.Sprintf("[cache]\nredis_url = %q\n", url)), "cache", "path")
		if err != nil {
			t.Fatal(err)
		}
		if got := strings.TrimSpace(out); got != url {
			t.Errorf("cache path = %q, want %q", got, url)
		}
	})

	t.Run("default", func(t *testing.T) {
		xdg := t.TempDir()
		t.Setenv("XDG_CACHE_HOME", xdg)
		got, err := cachePath(config.CacheConfig{})
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(xdg, "chordsheet"); got != want {
			t.Errorf("cachePath() = %q, want %q", got, want)
		}
	})
}

func TestCacheClear(t *testing.T) {
	dir := t.TempDir()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	for _, key := range []string{"page:a", "sheet:b"} {
		if err := fc.Set(ctx, key, []byte("x"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := runCLIWithConfig(t, writeConfig(t, fmt.Sprintf("[cache]\ndir = %q\n", dir)), "cache", "clear"); err != nil {
		t.Fatal(err)
	}

	for _, key := range []string{"page:a", "sheet:b"} {
		if _, hit, _ := fc.Get(ctx, key); hit {
			t.Errorf("%s still cached after clear", key)
		}
	}
}

func TestCacheClearDisabled(t *testing.T) {
	if _, err := runCLIWithConfig(t, writeConfig(t, "[cache]\ndisabled = true\n"), "cache", "clear"); err != nil {
		t.Errorf("clearing a disabled cache should succeed, got %v", err)
	}
}

func TestNewCache(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	tests := []struct {
		name    string
		cfg     config.CacheConfig
		noCache bool
		check   func(cache.Cache) bool
	}{
		{"no-cache flag", config.CacheConfig{Dir: dir}, true, isNull},
		{"disabled", config.CacheConfig{Dir: dir, Disabled: true}, false, isNull},
		{"file", config.CacheConfig{Dir: dir}, false, func(c cache.Cache) bool {
			fc, ok := c.(*cache.FileCache)
			return ok && fc.Dir() == dir
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCache(ctx, tt.cfg, tt.noCache)
			if err != nil {
				t.Fatal(err)
			}
			defer c.Close()
			if !tt.check(c) {
				t.Errorf("newCache() = %T", c)
			}
		})
	}

	t.Run("unreachable redis", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if _, err := newCache(ctx, config.CacheConfig{RedisURL: "redis://127.0.0.1:1/0"}, false); err == nil {
			t.Error("expected error connecting to a closed port")
		}
	})
}

func isNull(c cache.Cache) bool {
	_, ok := c.(*cache.NullCache)
	return ok
}

func TestNewRunnerScopesKeys(t *testing.T) {
	c := New(io.Discard, LogInfo)
	ctx := context.Background()

	tests := []struct {
		scope      string
		wantPrefix string
	}{
		{"", "page:"},
		{"staging", "staging:page:"},
	}
	for _, tt := range tests {
		cfg := config.Default()
		cfg.Cache.Disabled = true
		cfg.Cache.Scope = tt.scope

		runner, err := c.newRunner(ctx, cfg, false)
		if err != nil {
			t.Fatal(err)
		}
		if key := runner.Keyer.PageKey("https://example.com"); !strings.HasPrefix(key, tt.wantPrefix) {
			t.Errorf("scope %q: PageKey() = %q, want prefix %q", tt.scope, key, tt.wantPrefix)
		}
		runner.Close()
	}
}
