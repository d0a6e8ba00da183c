package chess

import (
	"fmt"
	"strings"

	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// Move is a source-destination pair. Promotion is NoRole unless a specific
// promotion piece was requested.
type Move struct {
	From      Square
	To        Square
	Promotion Role
}

// NewMove creates a move without a promotion choice.
func NewMove(from, to Square) Move {
	return Move{From: from, To: to}
}

// IsZero reports whether m is the zero move.
func (m Move) IsZero() bool {
	return m == Move{}
}

// String returns the long algebraic form of the move, e.g. "e2e4" or "e7e8q".
func (m Move) String() string {
	s := m.From.String() + m.To.String()
	if m.Promotion != NoRole {
		s += string(rune(m.Promotion.Letter() + 'a' - 'A'))
	}
	return s
}

// ParseMove parses long algebraic move text. It accepts "e2e4", "e2-e4" and
// a trailing promotion letter such as "e7e8q" or "e7e8=N".
func ParseMove(text string) (Move, error) {
	t := strings.TrimSpace(text)
	t = strings.ReplaceAll(t, "-", "")
	t = strings.ReplaceAll(t, "=", "")
	if len(t) != 4 && len(t) != 5 {
		return Move{}, fmt.Errorf("move %q: %w", text, errors.ErrInvalidNotation)
	}

	from, err := ParseSquare(t[:2])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", text, err)
	}
	to, err := ParseSquare(t[2:4])
	if err != nil {
		return Move{}, fmt.Errorf("move %q: %w", text, err)
	}

	move := Move{From: from, To: to}
	if len(t) == 5 {
		role := RoleFromLetter(t[4])
		if role == NoRole || role == King || role == Pawn {
			return Move{}, fmt.Errorf("move %q: bad promotion piece: %w", text, errors.ErrInvalidNotation)
		}
		move.Promotion = role
	}
	return move, nil
}
