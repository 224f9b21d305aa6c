package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordsheet/pkg/config"
	"github.com/matzehuels/chordsheet/pkg/pipeline"
)

// renderCommand creates the render command: source to sheet files in one step.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags      sheetFlags
		formatsStr string
		output     string
		scale      float64
	)

	cmd := &cobra.Command{
		Use:   "render <url|file>",
		Short: "Render a chord chart to text, SVG, PNG, PDF or JSON",
		Long: `Render a chord chart to one or more output formats.

The source is a page URL from a supported site, a saved .html page, or a
song .json file. The sheet is transposed, wrapped to --max-width and laid out
in --columns columns before rendering.

PNG and PDF output require rsvg-convert on the PATH.

Examples:
  chordsheet render https://tabs.ultimate-guitar.com/tab/... -f pdf
  chordsheet render song.json -f svg,png -t -2 -c 3
  chordsheet render page.html -f text -o -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg, args[0])
			opts.Formats = parseFormats(formatsStr)
			opts.Scale = scale
			if err := pipeline.ValidateFormats(opts.Formats); err != nil {
				return err
			}
			if output == "-" && len(opts.Formats) != 1 {
				return fmt.Errorf("output to stdout needs exactly one format, got %d", len(opts.Formats))
			}
			return c.runRender(cmd.Context(), cmd.OutOrStdout(), cfg, opts, output, flags.noCache)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), text, png, pdf, json (comma-separated)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format), base path (multiple), or - for stdout")
	cmd.Flags().Float64Var(&scale, "scale", pipeline.DefaultScale, "PNG scale factor")

	return cmd
}

// runRender executes the full pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, stdout io.Writer, cfg config.Config, opts pipeline.Options, output string, noCache bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger

	spinner := startSpinner(ctx, "Rendering "+displaySource(opts.Source)+"...")

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if output == "-" {
		_, err := stdout.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	base := basePath(output, result.Song.Title)
	printSuccess("Rendered %s", styleHighlight.Render(result.Song.Title))
	for _, format := range opts.Formats {
		path := outputPath(base, output, format, len(opts.Formats))
		if err := writeFile(path, result.Artifacts[format]); err != nil {
			return err
		}
		printFile(path)
	}
	printStats(result.Stats.Sections, result.Stats.Lines, result.Sheet.Key,
		result.CacheInfo.SheetHit && result.CacheInfo.RenderHit)

	if opts.Transpose == 0 {
		printNewline()
		printNextStep("Try another key", fmt.Sprintf("%s view %s", appName, opts.Source))
	}
	return nil
}

// parseFormats parses the --format flag. An empty flag means svg.
func parseFormats(s string) []string {
	formats := pipeline.ParseFormats(s)
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}
	}
	return formats
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// basePath derives the output path without extension. An explicit output has
// its format extension stripped; otherwise the song title names the file.
func basePath(output, title string) string {
	if output != "" {
		ext := filepath.Ext(output)
		for _, known := range pipeline.Extensions {
			if strings.EqualFold(ext, known) {
				return strings.TrimSuffix(output, ext)
			}
		}
		return output
	}
	name := strings.Trim(unsafeName.ReplaceAllString(strings.TrimSpace(title), "_"), "_.")
	if name == "" {
		return appName
	}
	return name
}

// outputPath returns the file for one format. A single format with an
// explicit output keeps the path the user gave.
func outputPath(base, output, format string, count int) string {
	if count == 1 && output != "" && filepath.Ext(output) != "" {
		return output
	}
	return base + pipeline.Extensions[format]
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// displaySource shortens a source for status messages.
func displaySource(src string) string {
	if strings.Contains(src, "://") {
		if i := strings.Index(src, "?"); i > 0 {
			src = src[:i]
		}
		return src
	}
	return filepath.Base(src)
}
