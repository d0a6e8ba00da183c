package hashing

import (
	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
)

// Zobrist keys, generated from a fixed seed so hashes are stable across runs.
var (
	zobristPiece      [chess.NumColours][chess.NumRoles][chess.NumSquares]uint64
	zobristEnPassant  [chess.BoardSize]uint64
	zobristCastling   [16]uint64
	zobristSideToMove uint64
)

func init() {
	rng := prng{state: 0x98F107A2BEEF1234}

	for c := range zobristPiece {
		for role := chess.Pawn; role <= chess.King; role++ {
			for sq := 0; sq < chess.NumSquares; sq++ {
				zobristPiece[c][role][sq] = rng.next()
			}
		}
	}
	for file := range zobristEnPassant {
		zobristEnPassant[file] = rng.next()
	}
	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}
	zobristSideToMove = rng.next()
}

// prng is an xorshift64* generator.
type prng struct {
	state uint64
}

func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

// Zobrist returns the Zobrist hash of a position: pieces, side to move,
// castling rights and en passant file.
func Zobrist(pos *engine.Position) uint64 {
	var h uint64
	for i := 0; i < chess.NumSquares; i++ {
		piece := pos.Board.At(chess.SquareAt(i))
		if piece.IsEmpty() {
			continue
		}
		h ^= zobristPiece[piece.Colour][piece.Role][i]
	}
	if pos.ToMove == chess.Black {
		h ^= zobristSideToMove
	}
	h ^= zobristCastling[castlingIndex(pos)]
	if pos.HasEnPassant() {
		h ^= zobristEnPassant[pos.EnPassant.File]
	}
	return h
}

// castlingIndex packs the four castling rights into a 4-bit index.
func castlingIndex(pos *engine.Position) int {
	idx := 0
	for colour := chess.White; colour <= chess.Black; colour++ {
		rights := pos.Castling[colour]
		shift := 2 * int(colour)
		if rights.CanKingside() {
			idx |= 1 << shift
		}
		if rights.CanQueenside() {
			idx |= 2 << shift
		}
	}
	return idx
}
