// internal/cli/browse.go
package lrmeval

import (
	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/tui"
	"github.com/spf13/cobra"
)

var (
	browseMain string
	browseTab  string
)

// startBrowser is swapped in tests.
var startBrowser = tui.Browse

// browseCmd implements 'browse', the interactive leaderboard.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the leaderboard interactively in the terminal",
	Long:  `The 'browse' command opens a full-screen leaderboard. Use ←/→ to switch category tabs, t to switch between text and visual tasks, ? for help and q to quit.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		main, err := leaderboard.ParseMain(browseMain)
		if err != nil {
			return err
		}
		board := loadBoard(cmd.Context(), GetConfig())
		return startBrowser(cmd.Context(), board, main, browseTab)
	},
}

func init() {
	browseCmd.Flags().StringVarP(&browseMain, "main", "m", "text", "initial task group: text or visual")
	browseCmd.Flags().StringVarP(&browseTab, "tab", "t", "", "initial category tab id")
	rootCmd.AddCommand(browseCmd)
}
