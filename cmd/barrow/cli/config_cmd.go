package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/meigma/barrow/cmd/barrow/cli/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage barrow configuration",
	Long: `View and modify barrow configuration.

Without arguments, displays the current effective configuration.
Use subcommands to view the config path, initialize a config file,
or set configuration values.`,
	RunE: runConfigShow,
}

func init() {
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configSetCmd)
	rootCmd.AddCommand(configCmd)
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	RunE: func(cmd *cobra.Command, _ []string) error {
		path, err := configPath()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create default configuration file",
	Long: `Create a default configuration file at the XDG config path.

The file will be created at ~/.config/barrow/config.yaml (or
$XDG_CONFIG_HOME/barrow/config.yaml if set).`,
	RunE: runConfigInit,
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path, err := configPath()
	if err != nil {
		return err
	}

	if _, statErr := os.Stat(path); statErr == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(path), 0o750); mkdirErr != nil {
		return mkdirErr
	}

	data, err := yaml.Marshal(config.Defaults())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if writeErr := os.WriteFile(path, data, 0o600); writeErr != nil {
		return writeErr
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Created config file: %s\n", path)
	return nil
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the config file.

Examples:
  barrow config set fill '#'
  barrow config set progress plain
  barrow config set color false`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	key, value := args[0], args[1]
	if _, known := config.Defaults()[key]; !known {
		return fmt.Errorf("unknown config key %q", key)
	}

	var parsedValue any = value
	if b, err := strconv.ParseBool(value); err == nil && key == "color" {
		parsedValue = b
	}

	path, err := configPath()
	if err != nil {
		return err
	}

	// Write only what the file already holds plus the new key, so flags
	// and environment variables of this invocation are not persisted.
	file := viper.New()
	file.SetConfigFile(path)
	file.SetConfigType("yaml")
	if _, statErr := os.Stat(path); statErr == nil {
		if readErr := file.ReadInConfig(); readErr != nil {
			return fmt.Errorf("read config: %w", readErr)
		}
	}
	file.Set(key, parsedValue)

	// Reject values that would leave the config unusable.
	check := viper.New()
	for k, v := range config.Defaults() {
		check.SetDefault(k, v)
	}
	for k, v := range file.AllSettings() {
		check.Set(k, v)
	}
	if _, loadErr := config.Load(check); loadErr != nil {
		return loadErr
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return err
	}
	if err := file.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Updated %s = %v\n", key, parsedValue)
	return nil
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	// Show all settings with their effective values
	data, err := yaml.Marshal(map[string]any{
		"fill":     cfg.Fill,
		"open":     cfg.Open,
		"close":    cfg.Close,
		"progress": cfg.Progress,
		"color":    cfg.Color,
		"delay":    cfg.Delay.String(),
	})
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(data))
	return nil
}

// configPath returns the config file in use: --config if given, else the XDG path.
func configPath() (string, error) {
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.Path()
}
