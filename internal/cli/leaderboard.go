// internal/cli/leaderboard.go
package lrmeval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/tui"
	"github.com/mwiater/lrmeval/internal/util"
	"github.com/spf13/cobra"
)

var (
	leaderboardMain    string
	leaderboardTab     string
	leaderboardJSON    bool
	leaderboardAll     bool
	leaderboardOutput  string
	leaderboardNoColor bool
	leaderboardWidth   int
)

// leaderboardCmd implements 'leaderboard', which prints ranked tables.
var leaderboardCmd = &cobra.Command{
	Use:     "leaderboard",
	Aliases: []string{"lb"},
	Short:   "Print a ranked leaderboard tab",
	Long:    `The 'leaderboard' command loads the results and prints one ranked tab (or every tab with --all) as an aligned table or as JSON. Models whose score bands overlap share a rank, and the next rank skips the slots they use.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		main, err := leaderboard.ParseMain(leaderboardMain)
		if err != nil {
			return err
		}
		board := loadBoard(cmd.Context(), GetConfig())

		tables, err := selectTables(board, main, leaderboardTab, leaderboardAll)
		if err != nil {
			return err
		}

		var buf bytes.Buffer
		if leaderboardJSON {
			err = writeTablesJSON(&buf, tables)
		} else {
			opts := tui.RenderOptions{Color: !leaderboardNoColor && leaderboardOutput == "", ModelWidth: leaderboardWidth}
			err = writeTablesText(&buf, tables, opts)
		}
		if err != nil {
			return err
		}

		if leaderboardOutput != "" {
			if err := util.WriteFile(leaderboardOutput, buf.Bytes()); err != nil {
				return fmt.Errorf("write %s: %w", leaderboardOutput, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d table(s) to %s\n", len(tables), leaderboardOutput)
			return nil
		}
		_, err = cmd.OutOrStdout().Write(buf.Bytes())
		return err
	},
}

// selectTables picks the tables to print. An empty tab means the default
// tab of the task group.
func selectTables(board *leaderboard.Board, main leaderboard.Main, tab string, all bool) ([]leaderboard.Table, error) {
	tables := board.Tables(main)
	if all {
		return tables, nil
	}
	tax := board.Taxonomy(main)
	if tab == "" {
		tab = tax.DefaultTab
	}
	for _, t := range tables {
		if t.Tab.ID == tab {
			return []leaderboard.Table{t}, nil
		}
	}
	ids := make([]string, 0, len(tax.Tabs))
	for _, t := range tax.Tabs {
		ids = append(ids, fmt.Sprintf("%q", t.ID))
	}
	return nil, fmt.Errorf("unknown tab %q for %s (available: %v)", tab, main, ids)
}

func writeTablesJSON(w io.Writer, tables []leaderboard.Table) error {
	exports := make([]leaderboard.Export, 0, len(tables))
	for _, t := range tables {
		exports = append(exports, t.Export())
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(exports) == 1 {
		return enc.Encode(exports[0])
	}
	return enc.Encode(exports)
}

func writeTablesText(w io.Writer, tables []leaderboard.Table, opts tui.RenderOptions) error {
	for i, t := range tables {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := tui.RenderTable(w, t, opts); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	leaderboardCmd.Flags().StringVarP(&leaderboardMain, "main", "m", "text", "task group: text or visual")
	leaderboardCmd.Flags().StringVarP(&leaderboardTab, "tab", "t", "", "category tab id (default: the group's default tab)")
	leaderboardCmd.Flags().BoolVar(&leaderboardJSON, "json", false, "print JSON instead of a table")
	leaderboardCmd.Flags().BoolVarP(&leaderboardAll, "all", "a", false, "print every tab of the group")
	leaderboardCmd.Flags().StringVar(&leaderboardOutput, "output", "", "write to a file instead of stdout")
	leaderboardCmd.Flags().BoolVar(&leaderboardNoColor, "no-color", false, "disable colored output")
	leaderboardCmd.Flags().IntVar(&leaderboardWidth, "model-width", 0, "truncate model names to this many cells")
	rootCmd.AddCommand(leaderboardCmd)
}
