package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordsheet/pkg/adapter"
	errs "github.com/matzehuels/chordsheet/pkg/errors"
	pkgio "github.com/matzehuels/chordsheet/pkg/io"
)

// fetchOpts holds the command-line flags for the fetch command.
type fetchOpts struct {
	output  string // output file path (stdout if empty)
	raw     bool   // write the page markup instead of the parsed song
	refresh bool   // bypass the page cache
	noCache bool
}

// fetchCommand creates the fetch command, which saves a chord page as song JSON.
func (c *CLI) fetchCommand() *cobra.Command {
	var opts fetchOpts

	cmd := &cobra.Command{
		Use:   "fetch <url>",
		Short: "Download a chord chart and save it as song JSON",
		Long: `Download a chord chart from a supported site and write it as song JSON.

The JSON can be edited by hand and passed back to 'render', 'layout' or
'view'. Pages are cached; use --refresh to download again.

Supported sites: ` + fmt.Sprint(adapter.Names()),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errs.ValidateURL(args[0]); err != nil {
				return err
			}
			return c.runFetch(cmd.Context(), cmd.OutOrStdout(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "write the page HTML instead of the parsed song")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "bypass cache")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runFetch(ctx context.Context, stdout io.Writer, url string, opts fetchOpts) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	prog := newProgress(c.Logger)

	page, hit, err := runner.Fetcher.Page(ctx, url, opts.refresh)
	if err != nil {
		return err
	}
	c.Logger.Debug("fetched page", "url", url, "bytes", len(page), "cached", hit)

	w, closeFn, err := openOutput(stdout, opts.output)
	if err != nil {
		return err
	}
	defer closeFn()

	if opts.raw {
		_, err := io.WriteString(w, page)
		return err
	}

	s, name, err := adapter.ParseString(page)
	if err != nil {
		return err
	}
	if err := pkgio.WriteSong(s, w); err != nil {
		return err
	}
	prog.done("parsed page", "title", s.Title, "adapter", name, "sections", len(s.Sections))

	if opts.output != "" {
		printFile(opts.output)
		printNextStep("Render", fmt.Sprintf("%s render %s", appName, opts.output))
	}
	return nil
}

// openOutput returns the file at path, or stdout when path is empty.
func openOutput(stdout io.Writer, path string) (io.Writer, func() error, error) {
	if path == "" {
		return stdout, func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("create %s: %w", path, err)
	}
	return f, f.Close, nil
}
