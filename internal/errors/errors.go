// Package errors provides sentinel errors and error types for pinpawn.
// It defines common error conditions and structured error types that preserve
// context while allowing error inspection with errors.Is() and errors.As().
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure conditions.
// Use these with errors.Is() to check for specific error types.
var (
	// ErrOutOfRange indicates a square coordinate outside [0,7].
	ErrOutOfRange = errors.New("square out of range")

	// ErrIllegalMove indicates a move that violates chess rules.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoKingFound indicates a position without a king of the colour asked
	// about. Reachable games never produce one, so it signals a defect.
	ErrNoKingFound = errors.New("no king found")

	// ErrInvalidFEN indicates a malformed FEN string.
	ErrInvalidFEN = errors.New("invalid FEN string")

	// ErrInvalidNotation indicates malformed square or move text.
	ErrInvalidNotation = errors.New("invalid notation")

	// ErrInvalidConfig indicates invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrStorage indicates a failure reading or writing persisted games.
	ErrStorage = errors.New("storage failure")
)

// GameError locates a failure inside a batch of games: which game, which
// ply and, when known, the move and the position it was played from.
type GameError struct {
	Err      error
	GameNum  int    // 1-based within the batch
	PlyNum   int    // 0 when the game failed before its first move
	MoveText string // empty when no move was chosen
	FEN      string // position before the failing move
}

func (e *GameError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "game %d", e.GameNum)
	if e.PlyNum > 0 {
		fmt.Fprintf(&sb, ", ply %d", e.PlyNum)
	}
	if e.MoveText != "" {
		fmt.Fprintf(&sb, ", move %q", e.MoveText)
	}
	if e.FEN != "" {
		fmt.Fprintf(&sb, ", position %q", e.FEN)
	}
	if e.Err != nil {
		fmt.Fprintf(&sb, ": %v", e.Err)
	}
	return sb.String()
}

func (e *GameError) Unwrap() error {
	return e.Err
}

// ParseError is a syntax error in a configuration file, located by line and
// column.
type ParseError struct {
	Err    error
	File   string // empty for text that did not come from a file
	Line   int    // 1-based; 0 when unknown
	Column int    // 1-based; 0 when unknown
	Detail string // decoder message
}

func (e *ParseError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.File)
	if e.Line > 0 {
		fmt.Fprintf(&sb, ":%d", e.Line)
		if e.Column > 0 {
			fmt.Fprintf(&sb, ":%d", e.Column)
		}
	}
	for _, part := range []string{e.Detail, errText(e.Err)} {
		if part == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString(": ")
		}
		sb.WriteString(part)
	}
	if sb.Len() == 0 {
		return "parse error"
	}
	return sb.String()
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

// Wrap prefixes err with context, keeping it visible to errors.Is and
// errors.As. A nil err stays nil.
func Wrap(err error, context string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}
