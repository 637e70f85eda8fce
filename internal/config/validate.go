package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json"}
	validOutputs    = []string{"table", "json"}
)

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DataDir) == "" {
		return fmt.Errorf("data_dir is required")
	}
	if !slices.Contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level %q (want one of %s)", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !slices.Contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("invalid log_format %q (want one of %s)", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	if !slices.Contains(validOutputs, strings.ToLower(c.Output)) {
		return fmt.Errorf("invalid output %q (want one of %s)", c.Output, strings.Join(validOutputs, ", "))
	}
	return nil
}
