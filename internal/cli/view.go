package cli

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordsheet/pkg/config"
	"github.com/matzehuels/chordsheet/pkg/layout"
	"github.com/matzehuels/chordsheet/pkg/pipeline"
)

// viewCommand creates the interactive sheet viewer.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		flags      sheetFlags
		saveFormat string
		saveDir    string
	)

	cmd := &cobra.Command{
		Use:   "view <url|file>",
		Short: "Browse a sheet interactively",
		Long: `Browse a sheet in the terminal.

Keys:
  + / ↑    transpose up one semitone
  - / ↓    transpose down one semitone
  [ / ]    fewer / more columns
  d        save the current sheet (--save-format)
  q        quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := pipeline.ValidateFormat(saveFormat); err != nil {
				return err
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg, args[0])
			return c.runView(cmd.Context(), flags.noCache, cfg, opts, saveFormat, saveDir)
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVar(&saveFormat, "save-format", pipeline.FormatPDF, "format written by d: pdf, svg, png, text or json")
	cmd.Flags().StringVar(&saveDir, "save-dir", ".", "directory for saved sheets")

	return cmd
}

func (c *CLI) runView(ctx context.Context, noCache bool, cfg config.Config, opts pipeline.Options, saveFormat, saveDir string) error {
	runner, err := c.newRunner(ctx, cfg, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	opts.Formats = []string{saveFormat}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := startSpinner(ctx, "Loading "+displaySource(opts.Source)+"...")
	s, err := runner.Parse(ctx, opts)
	if err != nil {
		spinner.StopWithError("Parse failed")
		return err
	}
	spinner.Stop()

	save := func(sheet layout.Sheet) (string, error) {
		artifacts, err := runner.Render(ctx, sheet, opts)
		if err != nil {
			return "", err
		}
		path := filepath.Join(saveDir, basePath("", sheet.Title)+pipeline.Extensions[saveFormat])
		return path, writeFile(path, artifacts[saveFormat])
	}

	model := NewSheetModel(s, opts, opts.Theme(), save)
	_, err = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	return err
}
