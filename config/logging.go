package config

import (
	"fmt"
	"strings"
)

// LoggingConfig defines the application log output.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level"`
	// Format selects "json" or "console" output.
	Format string `json:"format"`
	// File, when set, writes logs to a rotated file instead of stdout.
	File string `json:"file"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb" validate:"gte=0"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups" validate:"gte=0"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days" validate:"gte=0"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.Format == "" {
		c.Format = "json"
	}
	if c.File != "" && c.MaxSizeMB == 0 {
		c.MaxSizeMB = 10
	}
}

// Validate checks the level and format.
func (c LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %s", c.Level)
	}
	if c.Format != "json" && c.Format != "console" {
		return fmt.Errorf("unknown log format %s", c.Format)
	}
	return nil
}
