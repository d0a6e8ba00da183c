package chess

import (
	"fmt"

	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// Square is a (rank, file) pair. Rank 0 is White's home rank and file 0 is
// the a-file.
type Square struct {
	Rank int
	File int
}

// NoSquare is the absent square, used for an unset en passant target.
var NoSquare = Square{Rank: -1, File: -1}

// Sq creates a square from rank and file indices.
func Sq(rank, file int) Square {
	return Square{Rank: rank, File: file}
}

// SquareAt returns the square with the given 0..63 index (rank-major).
func SquareAt(index int) Square {
	return Square{Rank: index / BoardSize, File: index % BoardSize}
}

// Valid reports whether both coordinates lie in [0,7].
func (s Square) Valid() bool {
	return s.Rank >= 0 && s.Rank < BoardSize && s.File >= 0 && s.File < BoardSize
}

// Index returns the rank-major 0..63 index of the square.
func (s Square) Index() int {
	return s.Rank*BoardSize + s.File
}

// Mirror returns the square reflected across the board's horizontal midline.
func (s Square) Mirror() Square {
	return Square{Rank: BoardSize - 1 - s.Rank, File: s.File}
}

// Offset returns the square shifted by the given deltas. The result may be invalid.
func (s Square) Offset(dRank, dFile int) Square {
	return Square{Rank: s.Rank + dRank, File: s.File + dFile}
}

// String returns the algebraic name of the square, e.g. "e4".
func (s Square) String() string {
	if !s.Valid() {
		return "-"
	}
	return string([]byte{byte(FileBase + s.File), byte(RankBase + s.Rank)})
}

// ParseSquare converts algebraic notation such as "e2" to a square.
func ParseSquare(text string) (Square, error) {
	if len(text) != 2 {
		return NoSquare, fmt.Errorf("square %q: %w", text, errors.ErrInvalidNotation)
	}
	letter, digit := text[0]|0x20, text[1]
	if letter < 'a' || letter > 'z' || digit < '0' || digit > '9' {
		return NoSquare, fmt.Errorf("square %q: %w", text, errors.ErrInvalidNotation)
	}
	s := Square{Rank: int(digit) - RankBase, File: int(letter) - FileBase}
	if !s.Valid() {
		return NoSquare, fmt.Errorf("square %q: %w", text, errors.ErrOutOfRange)
	}
	return s, nil
}

// MustParseSquare is like ParseSquare but panics on malformed input.
// It is intended for fixed square names in tables and tests.
func MustParseSquare(text string) Square {
	s, err := ParseSquare(text)
	if err != nil {
		panic(err)
	}
	return s
}
