package chess

import (
	"fmt"

	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// Board is an 8x8 grid of pieces indexed [rank][file]. It owns raw placement
// only; turn order and legality live in the engine package.
//
// Board is a value type: assigning it copies every square.
type Board struct {
	Squares [BoardSize][BoardSize]Piece
}

var backRank = [BoardSize]Role{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewBoard creates a new empty board.
func NewBoard() *Board {
	return &Board{}
}

// NewInitialBoard creates a board holding the standard starting array.
func NewInitialBoard() *Board {
	b := NewBoard()
	b.SetupInitialPosition()
	return b
}

// SetupInitialPosition sets up the standard chess starting position,
// overwriting every square.
func (b *Board) SetupInitialPosition() {
	b.Clear()
	for file := 0; file < BoardSize; file++ {
		b.Squares[White.HomeRank()][file] = W(backRank[file])
		b.Squares[White.PawnRank()][file] = W(Pawn)
		b.Squares[Black.PawnRank()][file] = B(Pawn)
		b.Squares[Black.HomeRank()][file] = B(backRank[file])
	}
}

// Clear empties every square.
func (b *Board) Clear() {
	b.Squares = [BoardSize][BoardSize]Piece{}
}

// At returns the piece on s, or NoPiece when s is empty or off the board.
func (b *Board) At(s Square) Piece {
	if !s.Valid() {
		return NoPiece
	}
	return b.Squares[s.Rank][s.File]
}

// IsEmpty reports whether s holds no piece.
func (b *Board) IsEmpty(s Square) bool {
	return b.At(s).IsEmpty()
}

// Place puts p on s, replacing any occupant.
func (b *Board) Place(s Square, p Piece) error {
	if !s.Valid() {
		return fmt.Errorf("place on %d,%d: %w", s.Rank, s.File, errors.ErrOutOfRange)
	}
	b.Squares[s.Rank][s.File] = p
	return nil
}

// Remove empties s and returns what was there.
func (b *Board) Remove(s Square) Piece {
	if !s.Valid() {
		return NoPiece
	}
	p := b.Squares[s.Rank][s.File]
	b.Squares[s.Rank][s.File] = NoPiece
	return p
}

// Relocate moves whatever occupies src (possibly nothing) onto dst and
// clears src. It performs no legality checking.
func (b *Board) Relocate(src, dst Square) error {
	if !src.Valid() {
		return fmt.Errorf("relocate from %d,%d: %w", src.Rank, src.File, errors.ErrOutOfRange)
	}
	if !dst.Valid() {
		return fmt.Errorf("relocate to %d,%d: %w", dst.Rank, dst.File, errors.ErrOutOfRange)
	}
	p := b.Squares[src.Rank][src.File]
	b.Squares[src.Rank][src.File] = NoPiece
	b.Squares[dst.Rank][dst.File] = p
	return nil
}

// IsPathClear reports whether every square strictly between src and dst is
// empty. It returns false unless src and dst share a rank, file or diagonal.
func (b *Board) IsPathClear(src, dst Square) bool {
	if !src.Valid() || !dst.Valid() {
		return false
	}
	dRank := dst.Rank - src.Rank
	dFile := dst.File - src.File
	if dRank != 0 && dFile != 0 && abs(dRank) != abs(dFile) {
		return false
	}

	stepRank, stepFile := sign(dRank), sign(dFile)
	s := src.Offset(stepRank, stepFile)
	for s != dst && s.Valid() {
		if !b.Squares[s.Rank][s.File].IsEmpty() {
			return false
		}
		s = s.Offset(stepRank, stepFile)
	}
	return true
}

// FindKing returns the square of the king of the given colour.
// The second result is false when there is no such king.
func (b *Board) FindKing(colour Colour) (Square, bool) {
	for rank := 0; rank < BoardSize; rank++ {
		for file := 0; file < BoardSize; file++ {
			if b.Squares[rank][file].Is(colour, King) {
				return Square{Rank: rank, File: file}, true
			}
		}
	}
	return NoSquare, false
}

// Copy creates a deep copy of the board.
func (b *Board) Copy() *Board {
	newBoard := &Board{}
	*newBoard = *b
	return newBoard
}

// abs returns the absolute value of x.
func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign(x int) int {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}
