// internal/cli/show_config.go
package lrmeval

import (
	"github.com/k0kubun/pp"
	"github.com/mwiater/lrmeval/internal/appconfig"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showConfigRaw bool

// showConfigCmd implements 'show config', which prints the merged settings.
var showConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Show config settings",
	Long:  `Show config settings ensuring that the JSON configs are loaded properly and overridden by flags and environment accordingly.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if showConfigRaw {
			pp.ColoringEnabled = false
			_, err := pp.Fprintln(cmd.OutOrStdout(), GetConfig())
			return err
		}
		appconfig.ShowConfig(cmd.OutOrStdout(), viper.ConfigFileUsed(), GetConfig())
		return nil
	},
}

func init() {
	showConfigCmd.Flags().BoolVar(&showConfigRaw, "raw", false, "dump the config struct")
	showCmd.AddCommand(showConfigCmd)
}
