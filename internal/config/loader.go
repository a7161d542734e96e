package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration for the given root directory with the
// following priority (highest to lowest):
//  1. Environment variables (CLJDOC_*)
//  2. Config file (.cljdoc/config.yml or .cljdoc/config.yaml)
//  3. Default values
func Load(rootDir string) (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(rootDir, ".cljdoc")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("CLJDOC")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("output.file")
	v.BindEnv("output.pretty")
	v.BindEnv("log.level")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable; defaults + env apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("paths.ignore", defaults.Paths.Ignore)
	v.SetDefault("output.file", defaults.Output.File)
	v.SetDefault("output.pretty", defaults.Output.Pretty)
	v.SetDefault("log.level", defaults.Log.Level)
}
