// Package config loads analyzer configuration from defaults, a
// .cljdoc/config.yml under the analyzed root, and CLJDOC_* environment
// variables.
package config

// Config represents the complete analyzer configuration.
type Config struct {
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// PathsConfig defines which files to exclude from discovery.
type PathsConfig struct {
	Ignore []string `yaml:"ignore" mapstructure:"ignore"` // glob patterns on root-relative paths
}

// OutputConfig defines where and how results are written.
type OutputConfig struct {
	File   string `yaml:"file" mapstructure:"file"`     // destination path, "-" for stdout
	Pretty bool   `yaml:"pretty" mapstructure:"pretty"` // indent the JSON output
}

// LogConfig configures diagnostic logging.
type LogConfig struct {
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Paths: PathsConfig{
			Ignore: []string{
				"target/**",
				".git/**",
				".cpcache/**",
				"node_modules/**",
			},
		},
		Output: OutputConfig{
			File:   "-",
			Pretty: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}
