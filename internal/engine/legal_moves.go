package engine

import "github.com/lgbarn/pinpawn-go/internal/chess"

// LegalMoves returns every move player may make, in scan order: sources
// rank-major then file, and destinations in the same order per source.
// Promotions appear once, as the plain source-destination pair.
func (p *Position) LegalMoves(player chess.Colour) []chess.Move {
	var moves []chess.Move
	for from := 0; from < chess.NumSquares; from++ {
		src := chess.SquareAt(from)
		piece := p.Board.At(src)
		if piece.IsEmpty() || piece.Colour != player {
			continue
		}
		for to := 0; to < chess.NumSquares; to++ {
			dst := chess.SquareAt(to)
			if p.IsLegal(src, dst, player) == nil {
				moves = append(moves, chess.NewMove(src, dst))
			}
		}
	}
	return moves
}

// LegalMovesFrom returns the legal destinations of the piece on src.
func (p *Position) LegalMovesFrom(src chess.Square) []chess.Move {
	piece := p.Board.At(src)
	if piece.IsEmpty() {
		return nil
	}
	var moves []chess.Move
	for to := 0; to < chess.NumSquares; to++ {
		dst := chess.SquareAt(to)
		if p.IsLegal(src, dst, piece.Colour) == nil {
			moves = append(moves, chess.NewMove(src, dst))
		}
	}
	return moves
}

// HasLegalMoves returns true if the given colour has at least one legal move.
func (p *Position) HasLegalMoves(colour chess.Colour) bool {
	for from := 0; from < chess.NumSquares; from++ {
		src := chess.SquareAt(from)
		piece := p.Board.At(src)
		if piece.IsEmpty() || piece.Colour != colour {
			continue
		}
		for to := 0; to < chess.NumSquares; to++ {
			if p.IsLegal(src, chess.SquareAt(to), colour) == nil {
				return true
			}
		}
	}
	return false
}

// IsPromotion reports whether m moves a pawn onto its last rank.
func (p *Position) IsPromotion(m chess.Move) bool {
	piece := p.Board.At(m.From)
	return piece.Role == chess.Pawn && m.To.Rank == piece.Colour.PromotionRank()
}
