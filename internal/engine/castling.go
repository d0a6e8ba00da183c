package engine

import "github.com/lgbarn/pinpawn-go/internal/chess"

const (
	kingFile      = 4
	queenRookFile = 0
	kingRookFile  = chess.BoardSize - 1
)

// isCastleShape reports whether a king steps exactly two files along a rank.
func isCastleShape(piece chess.Piece, src, dst chess.Square) bool {
	return piece.Role == chess.King && src.Rank == dst.Rank && abs(dst.File-src.File) == 2
}

// castleRookSquares returns where the castling rook starts and lands.
func castleRookSquares(rank int, kingside bool) (from, to chess.Square) {
	if kingside {
		return chess.Sq(rank, kingRookFile), chess.Sq(rank, kingFile+1)
	}
	return chess.Sq(rank, queenRookFile), chess.Sq(rank, kingFile-1)
}

// CanCastle reports whether player may castle by moving the king from src to
// dst. Every condition must hold; there is no partial credit.
func (p *Position) CanCastle(src, dst chess.Square, player chess.Colour) bool {
	piece := p.Board.At(src)
	if !piece.Is(player, chess.King) {
		return false
	}

	home := player.HomeRank()
	if src.Rank != home || src.File != kingFile || !isCastleShape(piece, src, dst) {
		return false
	}

	rights := p.Castling[player]
	if rights.KingMoved {
		return false
	}

	opponent := player.Opposite()
	if p.IsSquareAttacked(src, opponent) {
		return false
	}

	kingside := dst.File > src.File
	if (kingside && rights.RookHMoved) || (!kingside && rights.RookAMoved) {
		return false
	}

	rookFrom, _ := castleRookSquares(home, kingside)
	if !p.Board.At(rookFrom).Is(player, chess.Rook) {
		return false
	}
	if !p.Board.IsPathClear(src, rookFrom) {
		return false
	}

	step := sign(dst.File - src.File)
	for file := src.File + step; ; file += step {
		if p.IsSquareAttacked(chess.Sq(home, file), opponent) {
			return false
		}
		if file == dst.File {
			break
		}
	}
	return true
}

// updateCastlingRights marks king and rook movement. It is called with the
// moving piece and origin, and again with any captured piece and its square.
func (p *Position) updateCastlingRights(piece chess.Piece, sq chess.Square) {
	if piece.IsEmpty() {
		return
	}
	rights := &p.Castling[piece.Colour]
	switch piece.Role {
	case chess.King:
		rights.KingMoved = true
	case chess.Rook:
		if sq.Rank != piece.Colour.HomeRank() {
			return
		}
		switch sq.File {
		case queenRookFile:
			rights.RookAMoved = true
		case kingRookFile:
			rights.RookHMoved = true
		}
	}
}
