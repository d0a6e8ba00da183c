package config

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// PlayerKind selects who controls one side of the board.
type PlayerKind int

const (
	Human PlayerKind = iota
	Computer
)

// String returns the name used in flags and config files.
func (k PlayerKind) String() string {
	if k == Computer {
		return "ai"
	}
	return "human"
}

// ParsePlayerKind accepts "human", "ai" or "computer" in any case.
func ParsePlayerKind(s string) (PlayerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human":
		return Human, nil
	case "ai", "computer":
		return Computer, nil
	}
	return Human, fmt.Errorf("player %q must be human or ai: %w", s, errors.ErrInvalidConfig)
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML decoding.
func (k *PlayerKind) UnmarshalText(text []byte) error {
	kind, err := ParsePlayerKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (k PlayerKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// MaxDepth bounds the search depth a user may request.
const MaxDepth = 6

// GameConfig holds settings for a single game.
type GameConfig struct {
	White PlayerKind `toml:"white"`
	Black PlayerKind `toml:"black"`

	// Depth is the computer's search depth in plies; 0 plays random moves.
	Depth int `toml:"depth"`

	// Seed fixes the computer's move order; 0 seeds from the clock.
	Seed int64 `toml:"seed"`

	// StartFEN is the starting position; empty means the standard one.
	StartFEN string `toml:"start_fen"`

	// TUI draws the board full-screen instead of printing it.
	TUI bool `toml:"tui"`
}

// NewGameConfig creates a GameConfig with default values: a human playing
// White against the computer at depth 2.
func NewGameConfig() *GameConfig {
	return &GameConfig{
		White: Human,
		Black: Computer,
		Depth: 2,
	}
}

// Player returns the controller of the given side.
func (c *GameConfig) Player(colour chess.Colour) PlayerKind {
	if colour == chess.Black {
		return c.Black
	}
	return c.White
}

// Validate checks the depth range and the start position.
func (c *GameConfig) Validate() error {
	if c.Depth < 0 || c.Depth > MaxDepth {
		return fmt.Errorf("depth %d out of range 0..%d: %w", c.Depth, MaxDepth, errors.ErrInvalidConfig)
	}
	if c.StartFEN != "" {
		if _, err := engine.NewPositionFromFEN(c.StartFEN); err != nil {
			return fmt.Errorf("start_fen: %v: %w", err, errors.ErrInvalidConfig)
		}
	}
	return nil
}
