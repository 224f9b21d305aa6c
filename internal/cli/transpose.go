package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chordsheet/pkg/chord"
	errs "github.com/matzehuels/chordsheet/pkg/errors"
)

// transposeCommand creates the transpose command for single chord symbols.
func (c *CLI) transposeCommand() *cobra.Command {
	var by int

	cmd := &cobra.Command{
		Use:   "transpose <chord>...",
		Short: "Transpose chord symbols by a number of semitones",
		Long: `Transpose chord symbols by a number of semitones.

The root and any slash bass note are shifted; the quality is kept. Results
use sharps. To transpose a whole song, pass --transpose to 'render'.

Examples:
  chordsheet transpose --by 2 G D/F# Em7     # A E/G# F#m7
  chordsheet transpose --by=-3 Bb`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]string, 0, len(args))
			for _, sym := range args {
				if _, ok := chord.Semitone(rootOf(sym)); !ok {
					return errs.New(errs.ErrCodeInvalidInput, "%q is not a chord symbol", sym)
				}
				out = append(out, chord.Transpose(sym, by))
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), strings.Join(out, " "))
			return err
		},
	}

	cmd.Flags().IntVarP(&by, "by", "n", 0, "semitones to shift (negative transposes down)")

	return cmd
}

// rootOf returns the note name that starts sym, e.g. "F#" for "F#m7".
func rootOf(sym string) string {
	if len(sym) > 1 && (sym[1] == '#' || sym[1] == 'b') {
		return sym[:2]
	}
	if sym == "" {
		return ""
	}
	return sym[:1]
}
