package engine

import (
	"github.com/lgbarn/pinpawn-go/internal/chess"
)

// Undo holds what MakeMove needs to restore the position exactly.
type Undo struct {
	Move       chess.Move
	Moved      chess.Piece
	Captured   chess.Piece
	CapturedAt chess.Square
	RookFrom   chess.Square // chess.NoSquare unless the move castled
	RookTo     chess.Square
	Castling   [chess.NumColours]CastlingRights
	EnPassant  chess.Square
}

// Apply plays src to dst, auto-promoting pawns to queens. The move must
// already have passed IsLegal; it is not re-validated.
func (p *Position) Apply(src, dst chess.Square) {
	p.MakeMove(chess.NewMove(src, dst))
}

// ApplyPromotion is Apply with a chosen promotion role. Roles other than
// queen, rook, bishop and knight promote to a queen.
func (p *Position) ApplyPromotion(src, dst chess.Square, role chess.Role) {
	p.MakeMove(chess.Move{From: src, To: dst, Promotion: role})
}

// MakeMove applies m in place and returns the record UnmakeMove needs.
// It handles castling, en passant and promotion side effects, updates
// castling rights and the en passant target, and flips the side to move.
func (p *Position) MakeMove(m chess.Move) Undo {
	src, dst := m.From, m.To
	piece := p.Board.At(src)
	colour := piece.Colour

	undo := Undo{
		Move:       m,
		Moved:      piece,
		Captured:   p.Board.At(dst),
		CapturedAt: dst,
		RookFrom:   chess.NoSquare,
		RookTo:     chess.NoSquare,
		Castling:   p.Castling,
		EnPassant:  p.EnPassant,
	}

	switch {
	case isCastleShape(piece, src, dst):
		_ = p.Board.Relocate(src, dst)
		undo.RookFrom, undo.RookTo = castleRookSquares(src.Rank, dst.File > src.File)
		_ = p.Board.Relocate(undo.RookFrom, undo.RookTo)

	case piece.Role == chess.Pawn && dst.File != src.File && p.isEnPassantCapture(colour, dst):
		_ = p.Board.Relocate(src, dst)
		undo.CapturedAt = chess.Sq(src.Rank, dst.File)
		undo.Captured = p.Board.Remove(undo.CapturedAt)

	default:
		_ = p.Board.Relocate(src, dst)
	}

	p.updateCastlingRights(piece, src)
	p.updateCastlingRights(undo.Captured, undo.CapturedAt)

	p.EnPassant = chess.NoSquare
	if piece.Role == chess.Pawn && abs(dst.Rank-src.Rank) == 2 {
		p.EnPassant = chess.Sq((src.Rank+dst.Rank)/2, src.File)
	}

	if piece.Role == chess.Pawn && dst.Rank == colour.PromotionRank() {
		_ = p.Board.Place(dst, chess.NewPiece(colour, promotionRole(m.Promotion)))
	}

	p.ToMove = p.ToMove.Opposite()
	return undo
}

// UnmakeMove reverses the MakeMove call that produced u. Calls must be
// paired in last-in first-out order.
func (p *Position) UnmakeMove(u Undo) {
	p.ToMove = p.ToMove.Opposite()

	if u.RookFrom.Valid() {
		_ = p.Board.Relocate(u.RookTo, u.RookFrom)
	}
	p.Board.Remove(u.Move.To)
	_ = p.Board.Place(u.CapturedAt, u.Captured)
	_ = p.Board.Place(u.Move.From, u.Moved)

	p.Castling = u.Castling
	p.EnPassant = u.EnPassant
}

// promotionRole maps a requested promotion to the role actually placed.
func promotionRole(role chess.Role) chess.Role {
	switch role {
	case chess.Queen, chess.Rook, chess.Bishop, chess.Knight:
		return role
	default:
		return chess.Queen
	}
}
