package engine

import (
	"fmt"

	"github.com/lgbarn/pinpawn-go/internal/chess"
)

// Game is a played sequence of moves from a start position. It validates
// every move before applying it and keeps the resulting status current.
type Game struct {
	pos      *Position
	startFEN string
	moves    []chess.Move
	status   Status
}

// NewGame starts a game from the standard initial position.
func NewGame() *Game {
	return &Game{pos: NewPosition(), startFEN: InitialFEN, status: Ongoing}
}

// NewGameFromFEN starts a game from a FEN position.
func NewGameFromFEN(fen string) (*Game, error) {
	pos, err := NewPositionFromFEN(fen)
	if err != nil {
		return nil, err
	}
	status, err := pos.Status()
	if err != nil {
		return nil, err
	}
	return &Game{pos: pos, startFEN: pos.ToFEN(), status: status}, nil
}

// Position returns a copy of the current position.
func (g *Game) Position() *Position {
	return g.pos.Clone()
}

// Turn returns the colour to move.
func (g *Game) Turn() chess.Colour {
	return g.pos.ToMove
}

// Status returns the status after the last move.
func (g *Game) Status() Status {
	return g.status
}

// Moves returns the moves played so far.
func (g *Game) Moves() []chess.Move {
	out := make([]chess.Move, len(g.moves))
	copy(out, g.moves)
	return out
}

// StartFEN returns the FEN of the start position.
func (g *Game) StartFEN() string {
	return g.startFEN
}

// Result returns the PGN result string of the game so far.
func (g *Game) Result() string {
	return Result(g.status, g.pos.ToMove)
}

// LegalMoves returns the legal moves of the side to move.
func (g *Game) LegalMoves() []chess.Move {
	return g.pos.LegalMoves(g.pos.ToMove)
}

// Play validates m for the side to move, applies it and returns the new
// status. A rejected move leaves the game unchanged.
func (g *Game) Play(m chess.Move) (Status, error) {
	if err := g.pos.IsLegal(m.From, m.To, g.pos.ToMove); err != nil {
		return g.status, err
	}

	if g.pos.IsPromotion(m) {
		m.Promotion = promotionRole(m.Promotion)
	} else {
		m.Promotion = chess.NoRole
	}
	g.pos.ApplyPromotion(m.From, m.To, m.Promotion)
	g.moves = append(g.moves, m)

	status, err := g.pos.Status()
	if err != nil {
		return g.status, fmt.Errorf("after %s: %w", m, err)
	}
	g.status = status
	return status, nil
}
