// internal/cli/show_models.go
package lrmeval

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/lrmeval/internal/catalog"
	"github.com/mwiater/lrmeval/internal/leaderboard"
	"github.com/mwiater/lrmeval/internal/logging"
	"github.com/spf13/cobra"
)

var (
	showModelsMain string
	showModelsOrg  string
)

// showModelsCmd implements 'show models', which lists the display catalog
// grouped by organization.
var showModelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List the model display catalog by organization",
	RunE: func(cmd *cobra.Command, args []string) error {
		main, err := leaderboard.ParseMain(showModelsMain)
		if err != nil {
			return err
		}
		file, err := catalog.WithOverrides(GetConfig().ModelsFile)
		if err != nil {
			logging.LogEvent("[CATALOG] %v; using built-in catalog", err)
		}
		cat := file.Text
		if main == leaderboard.VisualTasks {
			cat = file.Visual
		}

		byOrg := cat.ByOrganization()
		orgs := make([]string, 0, len(byOrg))
		for org := range byOrg {
			if showModelsOrg == "" || org == showModelsOrg {
				orgs = append(orgs, org)
			}
		}
		sort.Strings(orgs)

		out := cmd.OutOrStdout()
		for _, org := range orgs {
			nodeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(catalog.OrganizationColor(org)))
			fmt.Fprintln(out, nodeStyle.Render(fmt.Sprintf("%s:", org)))
			for _, key := range byOrg[org] {
				fmt.Fprintf(out, "  >>> %s (%s)\n", cat[key].FullName, key)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	showModelsCmd.Flags().StringVarP(&showModelsMain, "main", "m", "text", "task group: text or visual")
	showModelsCmd.Flags().StringVar(&showModelsOrg, "org", "", "only list one organization")
	showCmd.AddCommand(showModelsCmd)
}
