package config

import (
	"fmt"

	"github.com/gobwas/glob"
)

var logLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks a configuration for errors that would otherwise
// surface mid-run.
func Validate(cfg *Config) error {
	for _, pattern := range cfg.Paths.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			return fmt.Errorf("ignore pattern %q: %w", pattern, err)
		}
	}
	if cfg.Output.File == "" {
		return fmt.Errorf("output.file must not be empty (use \"-\" for stdout)")
	}
	if !logLevels[cfg.Log.Level] {
		return fmt.Errorf("log.level %q: must be one of debug, info, warn, error", cfg.Log.Level)
	}
	return nil
}
