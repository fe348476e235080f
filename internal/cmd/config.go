package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/Iron-Ham/tgen/internal/config"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "View or create tgen configuration",
	Long: `View or create tgen configuration.

Without arguments, displays the current configuration.`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Long:  `Create a default config file at ~/.config/tgen/config.yaml with all available options.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the config file path",
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

func init() {
	configCmd.PersistentFlags().String("format", "yaml", "output format: yaml or toml")
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	out, err := marshalConfig(cfg, format)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	// Show where config is being read from
	if used := viper.ConfigFileUsed(); used != "" {
		_, _ = fmt.Fprintf(w, "# Config file: %s\n", used)
	} else {
		_, _ = fmt.Fprintln(w, "# Config file: (none - using defaults)")
	}
	_, err = w.Write(out)
	return err
}

func marshalConfig(cfg *config.Config, format string) ([]byte, error) {
	switch format {
	case "yaml", "yml":
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return buf.Bytes(), nil
	case "toml":
		out, err := toml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to encode config: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown format %q (valid: yaml, toml)", format)
	}
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configDir := config.ConfigDir()
	configFile := config.ConfigFile()

	// Check if config file already exists
	if _, err := os.Stat(configFile); err == nil {
		return fmt.Errorf("config file already exists at %s", configFile)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out, err := marshalConfig(config.Default(), "yaml")
	if err != nil {
		return err
	}
	content := append([]byte("# tgen configuration\n# Durations are in milliseconds.\n\n"), out...)

	if err := os.WriteFile(configFile, content, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created config file at %s\n", configFile)
	return nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(w, "Config directory: %s\n", config.ConfigDir())
	_, _ = fmt.Fprintf(w, "Config file:      %s\n", config.ConfigFile())

	if used := viper.ConfigFileUsed(); used != "" {
		_, _ = fmt.Fprintf(w, "Active config:    %s\n", used)
	}
	if _, err := os.Stat(config.ConfigFile()); os.IsNotExist(err) {
		_, _ = fmt.Fprintln(w, "\nConfig file does not exist. Run 'tgen config init' to create one.")
	}
	return nil
}
