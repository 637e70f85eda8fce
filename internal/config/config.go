// Package config loads rotterdb settings from defaults, a YAML file, the
// environment and command-line flags.
package config

import (
	"io"
	"log/slog"
	"strings"
)

// Default values.
const (
	DefaultDataDir     = "donnees"
	DefaultLogLevel    = "warn"
	DefaultLogFormat   = "text"
	DefaultHistoryFile = "~/.rotterdb_history"
	DefaultOutput      = "table"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "ROTTERDB_"

// Config holds the settings of one rotterdb invocation.
type Config struct {
	// DataDir is the directory holding the table files.
	DataDir string `koanf:"data_dir"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `koanf:"log_level"`
	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`
	// HistoryFile is the REPL history path; empty disables history.
	HistoryFile string `koanf:"history_file"`
	// Output is the result format: table or json.
	Output string `koanf:"output"`

	// ConfigFile is the YAML file that was loaded, if any.
	ConfigFile string `koanf:"-"`
}

// Level returns the slog level named by LogLevel. Unknown names map to
// warn; Validate rejects them first.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// NewLogger builds the process logger writing to w.
func (c *Config) NewLogger(w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level()}
	if strings.EqualFold(c.LogFormat, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
