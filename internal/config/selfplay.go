package config

import (
	"fmt"
	"runtime"

	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// SelfPlayConfig holds settings for batches of computer-versus-computer games.
type SelfPlayConfig struct {
	// Games is the number of games to play; 0 disables self-play.
	Games int `toml:"games"`

	// Workers is the number of games played concurrently.
	Workers int `toml:"workers"`

	// MaxPlies ends a game as unfinished after this many plies.
	MaxPlies int `toml:"max_plies"`
}

// NewSelfPlayConfig creates a SelfPlayConfig with default values.
func NewSelfPlayConfig() *SelfPlayConfig {
	return &SelfPlayConfig{
		Workers:  runtime.NumCPU(),
		MaxPlies: 200,
	}
}

// Validate checks that the counts are usable.
func (c *SelfPlayConfig) Validate() error {
	if c.Games < 0 {
		return fmt.Errorf("selfplay games %d is negative: %w", c.Games, errors.ErrInvalidConfig)
	}
	if c.Workers < 1 {
		return fmt.Errorf("selfplay workers %d must be at least 1: %w", c.Workers, errors.ErrInvalidConfig)
	}
	if c.MaxPlies < 1 {
		return fmt.Errorf("selfplay max_plies %d must be at least 1: %w", c.MaxPlies, errors.ErrInvalidConfig)
	}
	return nil
}
