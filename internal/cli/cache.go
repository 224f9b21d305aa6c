package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordsheet/pkg/cache"
	"github.com/matzehuels/chordsheet/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the page and sheet cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached pages, sheets and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Cache.Disabled {
				printInfo("Cache is disabled")
				return nil
			}

			ch, err := newCache(cmd.Context(), cfg.Cache, false)
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer ch.Close()

			clearer, ok := ch.(cache.Clearer)
			if !ok {
				printWarning("This cache backend cannot be cleared")
				return nil
			}
			if err := clearer.Clear(cmd.Context()); err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			printSuccess("Cache cleared")
			printDetail("%s", cacheLocation(ch, cfg.Cache))
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			loc, err := cachePath(cfg.Cache)
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), loc)
			return nil
		},
	}
}

// cachePath returns the Redis URL or the file cache directory without
// opening the cache.
func cachePath(cfg config.CacheConfig) (string, error) {
	switch {
	case cfg.RedisURL != "":
		return cfg.RedisURL, nil
	case cfg.Dir != "":
		return cfg.Dir, nil
	}
	return cache.DefaultDir()
}

func cacheLocation(ch cache.Cache, cfg config.CacheConfig) string {
	if fc, ok := ch.(*cache.FileCache); ok {
		return "Directory: " + fc.Dir()
	}
	return "Redis: " + cfg.RedisURL
}
