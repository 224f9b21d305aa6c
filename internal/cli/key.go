package cli

import (
	"cmp"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chordsheet/pkg/chord"
	errs "github.com/matzehuels/chordsheet/pkg/errors"
	"github.com/matzehuels/chordsheet/pkg/pipeline"
)

// keyCommand creates the key command, which detects the key of a song.
func (c *CLI) keyCommand() *cobra.Command {
	var (
		chords  string
		ranking bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "key [url|file]",
		Short: "Detect the key of a song or a list of chords",
		Long: `Detect the key of a song or a list of chords.

Chords are reduced to their triads and matched against every major key;
the best-fitting key wins. A song with an explicit key reports that key
alongside the detected one.

Examples:
  chordsheet key song.json
  chordsheet key --chords D:4,A:3,G:2,Bm --ranking`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				occ      map[string]int
				explicit string
			)
			switch {
			case chords != "" && len(args) == 0:
				var err error
				if occ, err = parseChordCounts(chords); err != nil {
					return err
				}
			case chords == "" && len(args) == 1:
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				runner, err := c.newRunner(cmd.Context(), cfg, noCache)
				if err != nil {
					return fmt.Errorf("initialize runner: %w", err)
				}
				defer runner.Close()
				s, err := runner.Parse(cmd.Context(), pipeline.Options{Source: args[0], Logger: c.Logger})
				if err != nil {
					return err
				}
				occ = s.Occurrences()
				explicit, _ = s.Key.Value()
			default:
				return errs.New(errs.ErrCodeInvalidInput, "pass either a source or --chords")
			}

			out := cmd.OutOrStdout()
			detected := chord.DetectKey(occ)
			if explicit != "" && explicit != detected {
				fmt.Fprintf(out, "%s (detected %s)\n", explicit, detected)
			} else {
				fmt.Fprintln(out, detected)
			}
			if ranking {
				printRanking(out, occ)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&chords, "chords", "", "comma-separated chords, each optionally weighted as CHORD:COUNT")
	cmd.Flags().BoolVar(&ranking, "ranking", false, "show the best-scoring keys")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// parseChordCounts parses "D:4,A:3,G" into a histogram. A chord without a
// count counts once; repeated chords add up.
func parseChordCounts(s string) (map[string]int, error) {
	occ := make(map[string]int)
	for _, item := range strings.Split(s, ",") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		name, count, found := strings.Cut(item, ":")
		n := 1
		if found {
			var err error
			if n, err = strconv.Atoi(count); err != nil || n < 1 {
				return nil, errs.New(errs.ErrCodeInvalidInput, "invalid count in %q", item)
			}
		}
		occ[name] += n
	}
	if len(occ) == 0 {
		return nil, errs.New(errs.ErrCodeInvalidInput, "no chords given")
	}
	return occ, nil
}

// keyScore is one candidate key in the ranking.
type keyScore struct {
	key   string
	score float64
}

// rankKeys scores every major key, best first. Ties keep semitone order from C.
func rankKeys(occ map[string]int) []keyScore {
	reduced := chord.Reduced(occ)
	ranked := make([]keyScore, 0, chord.Octave)
	for shift := range chord.Octave {
		ranked = append(ranked, keyScore{
			key:   chord.Transpose("C", -shift),
			score: chord.Score(reduced, shift),
		})
	}
	slices.SortStableFunc(ranked, func(a, b keyScore) int { return cmp.Compare(b.score, a.score) })
	return ranked
}

// printRanking writes the top keys and the reduced chord counts as tables.
func printRanking(w io.Writer, occ map[string]int) {
	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)

	var keys [][]string
	for _, k := range rankKeys(occ)[:3] {
		keys = append(keys, []string{k.key, strconv.FormatFloat(k.score, 'f', 1, 64)})
	}

	reduced := chord.Reduced(occ)
	var counts [][]string
	for _, c := range slices.Sorted(maps.Keys(reduced)) {
		counts = append(counts, []string{c, strconv.Itoa(reduced[c])})
	}

	for _, t := range []*table.Table{
		newTable("Key", "Score").Rows(keys...),
		newTable("Chord", "Count").Rows(counts...),
	} {
		t.StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle.Padding(0, 1)
			}
			return cellStyle
		})
		fmt.Fprintln(w, t.Render())
	}
}

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...)
}
