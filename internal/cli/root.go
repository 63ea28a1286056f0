// internal/cli/root.go
package lrmeval

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/mwiater/lrmeval/internal/appconfig"
	"github.com/mwiater/lrmeval/internal/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile       string
	currentConfig *appconfig.Config

	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// boolKeys and stringKeys are the persistent flags that mirror config keys.
var (
	boolKeys   = []string{"debug"}
	stringKeys = map[string]string{
		"text":      "textResults",
		"visual":    "visualResults",
		"models":    "modelsFile",
		"base-path": "basePath",
		"log-file":  "logFile",
	}
)

var rootCmd = &cobra.Command{
	Use:           "lrmeval",
	Short:         "lrmeval: tie-aware leaderboard builder for the LRM-Eval results",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// 1) Load config (file or defaults)
		if err := ensureConfigLoaded(cmd); err != nil {
			return err
		}

		// 2) If user did NOT set a flag, copy the config value into the flag so
		//    both pflags and viper reflect the same, final value.
		for _, name := range boolKeys {
			if f := cmd.Flags().Lookup(name); f != nil && !f.Changed {
				_ = cmd.Flags().Set(name, strconv.FormatBool(viper.GetBool(name)))
			}
		}

		// 3) Materialize the fully merged configuration into currentConfig
		//    (flags > env > config > defaults).
		var cfg appconfig.Config
		if err := viper.Unmarshal(&cfg); err != nil {
			return fmt.Errorf("unmarshal config: %w", err)
		}
		cfg.ConfigPath = viper.ConfigFileUsed()
		currentConfig = &cfg

		if err := logging.Init(cfg.LogFilePath(), cfg.Debug); err != nil {
			return fmt.Errorf("init logging: %w", err)
		}
		logging.LogEvent("[CLI] command=%q config=%q", cmd.CommandPath(), cfg.ConfigPath)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logging.Close()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// SetVersionInfo records build metadata injected by the linker.
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
	rootCmd.Version = fmt.Sprintf("%s (commit %s, built %s)", v, c, d)
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", appconfig.DefaultConfigPath, "config file (e.g., config/config.json)")

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging to stderr")
	rootCmd.PersistentFlags().String("text", "", "text results JSON (path or URL)")
	rootCmd.PersistentFlags().String("visual", "", "visual results CSV (path or URL)")
	rootCmd.PersistentFlags().String("models", "", "YAML file with extra model display metadata")
	rootCmd.PersistentFlags().String("base-path", "", "URL prefix for every page and asset")
	rootCmd.PersistentFlags().String("log-file", "", "log file path")

	// Bind flags to Viper keys (flags override config)
	for _, name := range boolKeys {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	for flag, key := range stringKeys {
		_ = viper.BindPFlag(key, rootCmd.PersistentFlags().Lookup(flag))
	}
	_ = viper.BindEnv("deployTarget", appconfig.DeployTargetEnv)
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	}
}

// ensureConfigLoaded reads the config and sets safe defaults. A missing file
// is fine unless the user named it explicitly.
func ensureConfigLoaded(cmd *cobra.Command) error {
	viper.SetDefault("debug", false)
	viper.SetDefault("precompress", false)

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
		if missing && !cmd.Flags().Changed("config") {
			return nil
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	// viper ignores unknown keys; the strict loader catches typos.
	if _, err := appconfig.Load(viper.ConfigFileUsed()); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// GetConfig returns the loaded application configuration for other packages.
func GetConfig() *appconfig.Config {
	if currentConfig == nil {
		return &appconfig.Config{}
	}
	return currentConfig
}
