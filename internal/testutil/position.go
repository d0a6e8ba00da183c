package testutil

import (
	"testing"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
)

// Well-known test positions.
const (
	// Kiwipete exercises castling, en passant and promotions at low depth.
	Kiwipete = "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"

	// FoolsMate is the position after 1.f3 e5 2.g4; Black mates with d8h4.
	FoolsMate = "rnbqkbnr/pppp1ppp/8/4p3/6P1/5P2/PPPPP2P/RNBQKBNR b KQkq - 0 2"

	// Stalemate has Black to move with no legal move and not in check.
	Stalemate = "7k/5Q2/6K1/8/8/8/8/8 b - - 0 1"

	// BackRankMate has Black checkmated by a rook on the eighth rank.
	BackRankMate = "R5k1/5ppp/8/8/8/8/8/6K1 b - - 0 1"
)

// MustPosition parses fen or fails the test.
func MustPosition(t testing.TB, fen string) *engine.Position {
	t.Helper()
	pos, err := engine.NewPositionFromFEN(fen)
	if err != nil {
		t.Fatalf("NewPositionFromFEN(%q): %v", fen, err)
	}
	return pos
}

// MustMove parses UCI move text or fails the test.
func MustMove(t testing.TB, text string) chess.Move {
	t.Helper()
	m, err := chess.ParseMove(text)
	if err != nil {
		t.Fatalf("ParseMove(%q): %v", text, err)
	}
	return m
}

// MustGame starts a game from fen (the initial position when empty) and
// plays moves, failing the test on the first rejected move.
func MustGame(t testing.TB, fen string, moves ...string) *engine.Game {
	t.Helper()
	g := engine.NewGame()
	if fen != "" {
		var err error
		if g, err = engine.NewGameFromFEN(fen); err != nil {
			t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
		}
	}
	for _, text := range moves {
		if _, err := g.Play(MustMove(t, text)); err != nil {
			t.Fatalf("Play(%s): %v", text, err)
		}
	}
	return g
}
