package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordsheet/pkg/render/sink"
)

// layoutCommand creates the layout command, which prints the sheet rows.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		flags  sheetFlags
		plain  bool
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "layout <url|file>",
		Short: "Print the laid-out sheet to stdout",
		Long: `Print the laid-out sheet to stdout.

Rows carry [b]...[/b] and [ch]...[/ch] markup for the title and chords;
--plain strips it. --json prints the sheet document that 'render -f json'
writes, for use by other renderers.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			opts := flags.options(cmd, cfg, args[0])
			opts.Logger = c.Logger

			runner, err := c.newRunner(cmd.Context(), cfg, flags.noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			s, err := runner.Parse(cmd.Context(), opts)
			if err != nil {
				return err
			}
			sheet, err := runner.Layout(cmd.Context(), s, opts)
			if err != nil {
				return err
			}

			var out []byte
			switch {
			case asJSON:
				out, err = sink.RenderJSON(sheet, sink.WithJSONMaxWidth(opts.MaxWidth))
				if err != nil {
					return err
				}
				out = append(out, '\n')
			case plain:
				out = sink.RenderText(sheet, sink.WithPlain(), sink.WithTrim())
			default:
				out = sink.RenderText(sheet, sink.WithTrim())
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVar(&plain, "plain", false, "strip markup tags")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the sheet as JSON")

	return cmd
}
