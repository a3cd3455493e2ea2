package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Progress modes.
const (
	ModeAuto  = "auto"
	ModeTTY   = "tty"
	ModePlain = "plain"
)

// Config represents the barrow CLI configuration.
// Use mapstructure tags for Viper unmarshaling.
type Config struct {
	// Fill is the glyph a bar is filled with.
	Fill string `mapstructure:"fill"`
	// Open and Close delimit bounded bars.
	Open  string `mapstructure:"open"`
	Close string `mapstructure:"close"`
	// Progress selects how bars are drawn: auto, tty, or plain.
	Progress string `mapstructure:"progress"`
	// Color enables coloured bars on terminals.
	Color bool `mapstructure:"color"`
	// Delay is the simulated work per item in the demo command.
	Delay time.Duration `mapstructure:"delay"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"fill":     "=",
		"open":     "<",
		"close":    ">",
		"progress": ModeAuto,
		"color":    true,
		"delay":    "1s",
	}
}

// Init prepares v to read barrow settings. Values are resolved in order:
// flags bound by the caller, BARROW_* environment variables, the config
// file, then defaults. A missing config file is not an error.
func Init(v *viper.Viper, file string) error {
	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetEnvPrefix("barrow")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		dir, err := Dir()
		if err != nil {
			return err
		}
		v.SetConfigName(strings.TrimSuffix(FileName, ".yaml"))
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || (file == "" && errors.Is(err, os.ErrNotExist)) {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

// Load decodes the effective configuration from v.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration can be used.
func (c Config) Validate() error {
	switch c.Progress {
	case ModeAuto, ModeTTY, ModePlain:
	default:
		return fmt.Errorf("invalid progress mode %q (expected %s, %s, or %s)",
			c.Progress, ModeAuto, ModeTTY, ModePlain)
	}
	if c.Delay < 0 {
		return fmt.Errorf("delay must not be negative, got %s", c.Delay)
	}
	return nil
}
