package engine

import "github.com/lgbarn/pinpawn-go/internal/chess"

// IsSquareAttacked returns true if a piece of byColour could move to sq
// next turn. Turn order and the occupant of sq are ignored.
func (p *Position) IsSquareAttacked(sq chess.Square, byColour chess.Colour) bool {
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			from := chess.Sq(rank, file)
			if from == sq {
				continue
			}
			piece := p.Board.Squares[rank][file]
			if piece.IsEmpty() || piece.Colour != byColour {
				continue
			}
			if p.attacks(piece, from, sq) {
				return true
			}
		}
	}
	return false
}

// attacks reports whether piece standing on from attacks to.
func (p *Position) attacks(piece chess.Piece, from, to chess.Square) bool {
	if p.checkGeometry(piece, from, to, true) != ReasonNone {
		return false
	}
	if piece.Role.IsSlider() {
		return p.Board.IsPathClear(from, to)
	}
	return true
}

// Attackers returns the squares of every byColour piece attacking sq.
func (p *Position) Attackers(sq chess.Square, byColour chess.Colour) []chess.Square {
	var squares []chess.Square
	for i := 0; i < chess.NumSquares; i++ {
		from := chess.SquareAt(i)
		piece := p.Board.At(from)
		if from == sq || piece.IsEmpty() || piece.Colour != byColour {
			continue
		}
		if p.attacks(piece, from, sq) {
			squares = append(squares, from)
		}
	}
	return squares
}
