package engine

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// InitialFEN is the FEN string for the standard starting position.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// NewPositionFromFEN creates a position from a FEN string. The halfmove and
// fullmove fields are accepted but not tracked. Each side must have exactly
// one king.
func NewPositionFromFEN(fen string) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 1 {
		return nil, fmt.Errorf("empty FEN string: %w", errors.ErrInvalidFEN)
	}

	p := NewEmptyPosition()

	if err := parsePiecePositions(p, parts[0]); err != nil {
		return nil, err
	}

	if err := parseSideToMove(p, parts); err != nil {
		return nil, err
	}

	if err := parseCastlingRights(p, parts); err != nil {
		return nil, err
	}

	if err := parseEnPassant(p, parts); err != nil {
		return nil, err
	}

	return p, nil
}

// MustPositionFromFEN is like NewPositionFromFEN but panics on error.
func MustPositionFromFEN(fen string) *Position {
	p, err := NewPositionFromFEN(fen)
	if err != nil {
		panic(err)
	}
	return p
}

// parsePiecePositions parses the piece placement field of a FEN string.
func parsePiecePositions(p *Position, positions string) error {
	rank := chess.BoardSize - 1
	file := 0
	var kings [chess.NumColours]int

	for _, c := range positions {
		switch {
		case c == '/':
			if file != chess.BoardSize {
				return fmt.Errorf("rank %d has %d files: %w", rank+1, file, errors.ErrInvalidFEN)
			}
			rank--
			file = 0
		case c >= '1' && c <= '8':
			file += int(c - '0')
		default:
			role := chess.RoleFromLetter(byte(c))
			if role == chess.NoRole {
				return fmt.Errorf("invalid piece character: %c: %w", c, errors.ErrInvalidFEN)
			}
			sq := chess.Sq(rank, file)
			if !sq.Valid() {
				return fmt.Errorf("position out of bounds: %w", errors.ErrInvalidFEN)
			}

			colour := chess.White
			if unicode.IsLower(c) {
				colour = chess.Black
			}
			if role == chess.King {
				kings[colour]++
			}

			_ = p.Board.Place(sq, chess.NewPiece(colour, role))
			file++
		}
		if file > chess.BoardSize {
			return fmt.Errorf("rank %d overflows: %w", rank+1, errors.ErrInvalidFEN)
		}
	}

	if rank != 0 || file != chess.BoardSize {
		return fmt.Errorf("piece placement must describe 8 ranks: %w", errors.ErrInvalidFEN)
	}
	for colour, n := range kings {
		if n != 1 {
			return fmt.Errorf("%v has %d kings: %w", chess.Colour(colour), n, errors.ErrInvalidFEN)
		}
	}
	return nil
}

// parseSideToMove parses the side to move field.
func parseSideToMove(p *Position, parts []string) error {
	if len(parts) < 2 {
		return nil
	}
	switch parts[1] {
	case "w":
		p.ToMove = chess.White
	case "b":
		p.ToMove = chess.Black
	default:
		return fmt.Errorf("invalid side to move: %s: %w", parts[1], errors.ErrInvalidFEN)
	}
	return nil
}

// parseCastlingRights parses the castling availability field. A side that
// keeps any right is treated as not having moved its king; a missing letter
// marks the matching rook as moved.
func parseCastlingRights(p *Position, parts []string) error {
	if len(parts) < 3 || parts[2] == "-" {
		return nil
	}

	var kingside, queenside [chess.NumColours]bool
	for _, c := range parts[2] {
		switch c {
		case 'K':
			kingside[chess.White] = true
		case 'Q':
			queenside[chess.White] = true
		case 'k':
			kingside[chess.Black] = true
		case 'q':
			queenside[chess.Black] = true
		default:
			return fmt.Errorf("invalid castling availability %q: %w", parts[2], errors.ErrInvalidFEN)
		}
	}

	for colour := chess.White; colour <= chess.Black; colour++ {
		if !kingside[colour] && !queenside[colour] {
			continue
		}
		p.Castling[colour] = CastlingRights{
			RookAMoved: !queenside[colour],
			RookHMoved: !kingside[colour],
		}
	}
	return nil
}

// parseEnPassant parses the en passant target square field.
func parseEnPassant(p *Position, parts []string) error {
	p.EnPassant = chess.NoSquare
	if len(parts) < 4 || parts[3] == "-" {
		return nil
	}
	sq, err := chess.ParseSquare(parts[3])
	if err != nil {
		return fmt.Errorf("en passant square %q: %v: %w", parts[3], err, errors.ErrInvalidFEN)
	}
	p.EnPassant = sq
	return nil
}

// ToFEN converts the position to a FEN string. The clocks are always "0 1".
func (p *Position) ToFEN() string {
	var sb strings.Builder

	writePiecePositions(&sb, p)
	sb.WriteByte(' ')
	if p.ToMove == chess.White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}
	sb.WriteByte(' ')
	writeCastlingRights(&sb, p)
	sb.WriteByte(' ')
	sb.WriteString(p.EnPassant.String())
	sb.WriteString(" 0 1")

	return sb.String()
}

// writePiecePositions writes the piece placement to the builder.
func writePiecePositions(sb *strings.Builder, p *Position) {
	for rank := chess.BoardSize - 1; rank >= 0; rank-- {
		emptyCount := 0
		for file := 0; file < chess.BoardSize; file++ {
			piece := p.Board.At(chess.Sq(rank, file))
			if piece.IsEmpty() {
				emptyCount++
				continue
			}
			if emptyCount > 0 {
				sb.WriteByte(byte('0' + emptyCount))
				emptyCount = 0
			}
			sb.WriteByte(piece.Letter())
		}
		if emptyCount > 0 {
			sb.WriteByte(byte('0' + emptyCount))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}
}

// writeCastlingRights writes the castling availability to the builder.
func writeCastlingRights(sb *strings.Builder, p *Position) {
	start := sb.Len()
	letters := [chess.NumColours][2]byte{chess.White: {'K', 'Q'}, chess.Black: {'k', 'q'}}
	for colour := chess.White; colour <= chess.Black; colour++ {
		rights := p.Castling[colour]
		if rights.CanKingside() {
			sb.WriteByte(letters[colour][0])
		}
		if rights.CanQueenside() {
			sb.WriteByte(letters[colour][1])
		}
	}
	if sb.Len() == start {
		sb.WriteByte('-')
	}
}
