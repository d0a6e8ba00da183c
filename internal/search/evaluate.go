// Package search chooses moves for the computer player with a fixed-depth
// minimax search over a material and piece-square evaluation.
package search

import (
	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
)

// Material values in centipawns. The king is never traded, so it scores 0.
const (
	PawnValue   = 100
	KnightValue = 320
	BishopValue = 330
	RookValue   = 500
	QueenValue  = 900
	KingValue   = 0
)

var pieceValues = [chess.NumRoles]int{
	chess.Pawn:   PawnValue,
	chess.Knight: KnightValue,
	chess.Bishop: BishopValue,
	chess.Rook:   RookValue,
	chess.Queen:  QueenValue,
	chess.King:   KingValue,
}

// Piece-square tables, laid out as seen by White: the first row is rank 8.

var pawnPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	50, 50, 50, 50, 50, 50, 50, 50,
	10, 10, 20, 30, 30, 20, 10, 10,
	5, 5, 10, 25, 25, 10, 5, 5,
	0, 0, 0, 20, 20, 0, 0, 0,
	5, -5, -10, 0, 0, -10, -5, 5,
	5, 10, 10, -20, -20, 10, 10, 5,
	0, 0, 0, 0, 0, 0, 0, 0,
}

var knightPST = [64]int{
	-50, -40, -30, -30, -30, -30, -40, -50,
	-40, -20, 0, 0, 0, 0, -20, -40,
	-30, 0, 10, 15, 15, 10, 0, -30,
	-30, 5, 15, 20, 20, 15, 5, -30,
	-30, 0, 15, 20, 20, 15, 0, -30,
	-30, 5, 10, 15, 15, 10, 5, -30,
	-40, -20, 0, 5, 5, 0, -20, -40,
	-50, -40, -30, -30, -30, -30, -40, -50,
}

var bishopPST = [64]int{
	-20, -10, -10, -10, -10, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 10, 10, 5, 0, -10,
	-10, 5, 5, 10, 10, 5, 5, -10,
	-10, 0, 10, 10, 10, 10, 0, -10,
	-10, 10, 10, 10, 10, 10, 10, -10,
	-10, 5, 0, 0, 0, 0, 5, -10,
	-20, -10, -10, -10, -10, -10, -10, -20,
}

var rookPST = [64]int{
	0, 0, 0, 0, 0, 0, 0, 0,
	5, 10, 10, 10, 10, 10, 10, 5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	-5, 0, 0, 0, 0, 0, 0, -5,
	0, 0, 0, 5, 5, 0, 0, 0,
}

var queenPST = [64]int{
	-20, -10, -10, -5, -5, -10, -10, -20,
	-10, 0, 0, 0, 0, 0, 0, -10,
	-10, 0, 5, 5, 5, 5, 0, -10,
	-5, 0, 5, 5, 5, 5, 0, -5,
	0, 0, 5, 5, 5, 5, 0, -5,
	-10, 5, 5, 5, 5, 5, 0, -10,
	-10, 0, 5, 0, 0, 0, 0, -10,
	-20, -10, -10, -5, -5, -10, -10, -20,
}

var kingPST = [64]int{
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-30, -40, -40, -50, -50, -40, -40, -30,
	-20, -30, -30, -40, -40, -30, -30, -20,
	-10, -20, -20, -20, -20, -20, -20, -10,
	20, 20, 0, 0, 0, 0, 20, 20,
	20, 30, 10, 0, 0, 10, 30, 20,
}

var pieceSquareTables = [chess.NumRoles]*[64]int{
	chess.Pawn:   &pawnPST,
	chess.Knight: &knightPST,
	chess.Bishop: &bishopPST,
	chess.Rook:   &rookPST,
	chess.Queen:  &queenPST,
	chess.King:   &kingPST,
}

// tableIndex maps a square to its table entry for colour. Black reads the
// vertically mirrored square.
func tableIndex(sq chess.Square, colour chess.Colour) int {
	if colour == chess.White {
		return (chess.BoardSize-1-sq.Rank)*chess.BoardSize + sq.File
	}
	return sq.Rank*chess.BoardSize + sq.File
}

// PieceValue returns the material plus positional value of piece on sq,
// always as a positive contribution for the piece's own side.
func PieceValue(piece chess.Piece, sq chess.Square) int {
	if piece.IsEmpty() {
		return 0
	}
	return pieceValues[piece.Role] + pieceSquareTables[piece.Role][tableIndex(sq, piece.Colour)]
}

// Evaluate scores the position statically from White's point of view:
// positive favours White, negative favours Black.
func Evaluate(pos *engine.Position) int {
	score := 0
	for rank := 0; rank < chess.BoardSize; rank++ {
		for file := 0; file < chess.BoardSize; file++ {
			piece := pos.Board.Squares[rank][file]
			if piece.IsEmpty() {
				continue
			}
			v := PieceValue(piece, chess.Sq(rank, file))
			if piece.Colour == chess.White {
				score += v
			} else {
				score -= v
			}
		}
	}
	return score
}
