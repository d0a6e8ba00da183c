// Package engine provides chess move validation and board manipulation.
package engine

import (
	"fmt"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// CastlingRights records which castling pieces of one side have moved.
type CastlingRights struct {
	KingMoved  bool
	RookAMoved bool // queen-side rook, a-file
	RookHMoved bool // king-side rook, h-file
}

// CanKingside reports whether king-side castling rights remain.
func (r CastlingRights) CanKingside() bool {
	return !r.KingMoved && !r.RookHMoved
}

// CanQueenside reports whether queen-side castling rights remain.
func (r CastlingRights) CanQueenside() bool {
	return !r.KingMoved && !r.RookAMoved
}

// noCastling is the rights value of a side that may never castle again.
var noCastling = CastlingRights{KingMoved: true, RookAMoved: true, RookHMoved: true}

// Position is the full game state: board, side to move, castling rights and
// the en passant target. It is mutated in place by move application; callers
// that want to explore must Clone first.
type Position struct {
	Board     chess.Board
	ToMove    chess.Colour
	Castling  [chess.NumColours]CastlingRights
	EnPassant chess.Square // chess.NoSquare when unset
}

// NewPosition returns the standard starting position.
func NewPosition() *Position {
	p := &Position{
		ToMove:    chess.White,
		EnPassant: chess.NoSquare,
	}
	p.Board.SetupInitialPosition()
	return p
}

// NewEmptyPosition returns a position with no pieces, White to move and no
// castling rights. Callers place pieces with Board.Place.
func NewEmptyPosition() *Position {
	return &Position{
		ToMove:    chess.White,
		Castling:  [chess.NumColours]CastlingRights{noCastling, noCastling},
		EnPassant: chess.NoSquare,
	}
}

// Clone creates a deep copy of the position.
func (p *Position) Clone() *Position {
	c := *p
	return &c
}

// Opponent returns the colour not on move.
func (p *Position) Opponent() chess.Colour {
	return p.ToMove.Opposite()
}

// HasEnPassant reports whether an en passant target is set.
func (p *Position) HasEnPassant() bool {
	return p.EnPassant.Valid()
}

// KingSquare returns the square of the given colour's king.
func (p *Position) KingSquare(colour chess.Colour) (chess.Square, error) {
	sq, ok := p.Board.FindKing(colour)
	if !ok {
		return chess.NoSquare, fmt.Errorf("%v king: %w", colour, errors.ErrNoKingFound)
	}
	return sq, nil
}

// InCheck returns true if the given colour's king is attacked.
func (p *Position) InCheck(colour chess.Colour) (bool, error) {
	sq, err := p.KingSquare(colour)
	if err != nil {
		return false, err
	}
	return p.IsSquareAttacked(sq, colour.Opposite()), nil
}
