// internal/cli/build.go
package lrmeval

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/mwiater/lrmeval/internal/appconfig"
	"github.com/mwiater/lrmeval/internal/site"
	"github.com/spf13/cobra"
)

var (
	buildOutDir      string
	buildPublicDir   string
	buildPrecompress bool
)

// buildCmd implements 'build', which renders the static site export.
var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Render the leaderboard site into a static export",
	Long:  `The 'build' command loads the text and visual results, ranks every category and writes a static site (HTML, assets and data files) ready for any static host. Sources that cannot be read produce empty tabs rather than failing the build.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := buildConfig(cmd)
		res, err := runBuild(cmd, cfg)
		if err != nil {
			return err
		}
		nodeStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
		fmt.Fprintln(cmd.OutOrStdout(), nodeStyle.Render(fmt.Sprintf("Built %d files into %s", len(res.Files), cfg.OutputPath())))
		if res.Compressed > 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "  >>> %d precompressed siblings\n", res.Compressed)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "  >>> site root %s\n", cfg.WithPrefix("/"))
		return nil
	},
}

// buildConfig applies the build flags on top of the merged configuration.
func buildConfig(cmd *cobra.Command) *appconfig.Config {
	cfg := *GetConfig()
	if cmd.Flags().Changed("out") {
		cfg.OutputDir = buildOutDir
	}
	if cmd.Flags().Changed("public") {
		cfg.PublicDir = buildPublicDir
	}
	if cmd.Flags().Changed("precompress") {
		cfg.Precompress = buildPrecompress
	}
	return &cfg
}

func runBuild(cmd *cobra.Command, cfg *appconfig.Config) (site.Result, error) {
	board := loadBoard(cmd.Context(), cfg)
	return site.Build(cmd.Context(), site.Options{
		Board:       board,
		OutputDir:   cfg.OutputPath(),
		PublicDir:   cfg.PublicPath(),
		BasePath:    cfg.SiteBasePath(),
		DataFiles:   []string{cfg.TextResultsSource(), cfg.VisualResultsSource()},
		Precompress: cfg.Precompress,
	})
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&buildOutDir, "out", "o", "", "output directory (default \"out\")")
	cmd.Flags().StringVar(&buildPublicDir, "public", "", "static assets directory (default \"public\")")
	cmd.Flags().BoolVar(&buildPrecompress, "precompress", false, "write .gz siblings for text assets")
}

func init() {
	addBuildFlags(buildCmd)
	rootCmd.AddCommand(buildCmd)
}
