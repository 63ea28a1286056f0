// internal/cli/validate.go
package lrmeval

import (
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/spf13/cobra"
)

var (
	validOK   = color.New(color.FgGreen).SprintFunc()
	validFail = color.New(color.FgRed).SprintFunc()
)

// validateCmd implements 'validate', which checks both result sources and
// reports errors instead of falling back to empty tabs.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check that the result sources load and parse",
	Long:  `The 'validate' command fetches the text results JSON (checked against its schema) and the visual results CSV, and prints how many results land in each category. It exits non-zero if either source fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		loader := newLoader(cfg)
		out := cmd.OutOrStdout()

		text, textErr := loader.FetchText(cmd.Context(), cfg.TextResultsSource())
		report(out, leaderboard.TextTaxonomy(), cfg.TextResultsSource(), text, textErr)
		visual, visualErr := loader.FetchVisual(cmd.Context(), cfg.VisualResultsSource())
		report(out, leaderboard.VisualTaxonomy(), cfg.VisualResultsSource(), visual, visualErr)

		if err := errors.Join(textErr, visualErr); err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}
		return nil
	},
}

func report(w io.Writer, tax leaderboard.Taxonomy, src string, buckets leaderboard.Buckets, err error) {
	if err != nil {
		fmt.Fprintf(w, "%s %s (%s)\n  >>> %v\n", validFail("✗"), tax.Main, src, err)
		return
	}
	fmt.Fprintf(w, "%s %s (%s): %d results\n", validOK("✓"), tax.Main, src, buckets.Count())
	for _, c := range tax.Categories {
		fmt.Fprintf(w, "  %-36s %d\n", c, len(buckets[c]))
	}
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
