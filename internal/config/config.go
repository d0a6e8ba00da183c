// Package config holds pinpawn's settings: defaults, TOML file loading and
// validation.
package config

import (
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// Config holds all program configuration. The tagged sections mirror the
// tables of the TOML file.
type Config struct {
	Game     GameConfig     `toml:"game"`
	Log      LogConfig      `toml:"log"`
	Storage  StorageConfig  `toml:"storage"`
	SelfPlay SelfPlayConfig `toml:"selfplay"`
	Export   ExportConfig   `toml:"export"`

	// Streams used by the interactive session.
	Input  io.Reader `toml:"-"`
	Output io.Writer `toml:"-"`
	// LogFile receives structured log output.
	LogFile io.Writer `toml:"-"`
}

// NewConfig creates a new Config with default values.
func NewConfig() *Config {
	return &Config{
		Game:     *NewGameConfig(),
		Log:      *NewLogConfig(),
		SelfPlay: *NewSelfPlayConfig(),
		Export:   *NewExportConfig(),
		Input:    os.Stdin,
		Output:   os.Stdout,
		LogFile:  os.Stderr,
	}
}

// Load reads a TOML file over the defaults and validates the result.
// Keys the file sets that Config does not know are rejected.
func Load(path string) (*Config, error) {
	cfg := NewConfig()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, decodeError(path, err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, errors.Wrap(err, path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, path)
	}
	return cfg, nil
}

// Decode is Load for TOML text that does not come from a file.
func Decode(data string) (*Config, error) {
	cfg := NewConfig()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, decodeError("", err)
	}
	if err := checkUndecoded(md); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeError(path string, err error) error {
	var perr toml.ParseError
	if stderrors.As(err, &perr) {
		return &errors.ParseError{
			Err:    errors.ErrInvalidConfig,
			File:   path,
			Line:   perr.Position.Line,
			Column: perr.Position.Col,
			Detail: perr.Message,
		}
	}
	var pathErr *fs.PathError
	if stderrors.As(err, &pathErr) {
		return fmt.Errorf("load config: %w", err)
	}
	return fmt.Errorf("%v: %w", err, errors.ErrInvalidConfig)
}

func checkUndecoded(md toml.MetaData) error {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return nil
	}
	keys := make([]string, len(undecoded))
	for i, k := range undecoded {
		keys[i] = k.String()
	}
	return fmt.Errorf("unknown keys %s: %w", strings.Join(keys, ", "), errors.ErrInvalidConfig)
}

// Validate checks every section and returns the first problem found.
func (c *Config) Validate() error {
	if err := c.Game.Validate(); err != nil {
		return err
	}
	if err := c.Log.Validate(); err != nil {
		return err
	}
	if err := c.SelfPlay.Validate(); err != nil {
		return err
	}
	return c.Export.Validate()
}
