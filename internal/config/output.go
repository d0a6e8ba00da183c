package config

import (
	"fmt"
	"log/slog"

	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// LogConfig holds settings for structured logging.
type LogConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `toml:"level"`
}

// NewLogConfig creates a LogConfig with default values.
func NewLogConfig() *LogConfig {
	return &LogConfig{Level: "info"}
}

// SlogLevel converts Level to a slog.Level.
func (c *LogConfig) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		return slog.LevelInfo, fmt.Errorf("log level %q: %w", c.Level, errors.ErrInvalidConfig)
	}
	return level, nil
}

// Validate checks that Level names a known level.
func (c *LogConfig) Validate() error {
	_, err := c.SlogLevel()
	return err
}

// StorageConfig holds settings for the game database.
type StorageConfig struct {
	// Dir is the database directory; empty disables storage.
	Dir string `toml:"dir"`
}

// Enabled reports whether games should be stored.
func (c *StorageConfig) Enabled() bool {
	return c.Dir != ""
}

// ExportFormat selects how stored games are written.
type ExportFormat string

const (
	PGNFormat  ExportFormat = "pgn"
	JSONFormat ExportFormat = "json"
)

// ExportConfig holds settings for exporting stored games.
type ExportConfig struct {
	Format ExportFormat `toml:"format"`
	// MaxLineLength wraps PGN movetext.
	MaxLineLength int `toml:"max_line_length"`
	// IncludeFENs adds the position after every move to JSON output.
	IncludeFENs bool `toml:"include_fens"`
}

// NewExportConfig creates an ExportConfig with default values.
func NewExportConfig() *ExportConfig {
	return &ExportConfig{
		Format:        PGNFormat,
		MaxLineLength: 80,
	}
}

// Validate checks the format name and line length.
func (c *ExportConfig) Validate() error {
	switch c.Format {
	case PGNFormat, JSONFormat:
	default:
		return fmt.Errorf("export format %q: %w", c.Format, errors.ErrInvalidConfig)
	}
	if c.MaxLineLength < 20 {
		return fmt.Errorf("export max_line_length %d is below 20: %w", c.MaxLineLength, errors.ErrInvalidConfig)
	}
	return nil
}
