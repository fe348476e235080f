package cmd

import (
	"strings"

	"github.com/Iron-Ham/tgen/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "tgen",
	Short: "Scripted long-haul progress narrative for the terminal",
	Long: `tgen plays a scripted "scraper" narrative in the terminal: a boot log,
an hours-long collection run with a slowly creeping progress bar, a short
blackout and a high-precision final counter that crawls to 100%.

Without a subcommand, tgen behaves like 'tgen run'.`,
	RunE:         runNarrative,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/tgen/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))

	addRunFlags(rootCmd)
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("TGEN")
	// Replace dots with underscores for nested keys in env vars
	// e.g., TGEN_NARRATIVE_COLLECTION_DURATION_MS for narrative.collection_duration_ms
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}
