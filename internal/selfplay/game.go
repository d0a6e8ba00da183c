// Package selfplay plays computer-versus-computer games, singly or in
// parallel batches.
package selfplay

import (
	"log/slog"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
	"github.com/lgbarn/pinpawn-go/internal/errors"
	"github.com/lgbarn/pinpawn-go/internal/search"
	"github.com/lgbarn/pinpawn-go/internal/storage"
)

// Settings describes how each game of a batch is played.
type Settings struct {
	StartFEN   string // empty means the initial position
	WhiteDepth int    // 0 plays random moves
	BlackDepth int
	MaxPlies   int // 0 means no cap
}

func (s Settings) depth(colour chess.Colour) int {
	if colour == chess.Black {
		return s.BlackDepth
	}
	return s.WhiteDepth
}

// Outcome is a finished self-play game.
type Outcome struct {
	Game        *engine.Game
	Termination storage.Termination
}

// Record converts the outcome into a storable record.
func (o *Outcome) Record(s Settings, seed int64) *storage.GameRecord {
	rec := storage.NewGameRecord(o.Game, o.Termination, s.WhiteDepth, s.BlackDepth)
	rec.Seed = seed
	return rec
}

// PlayGame plays one game with both sides chosen by a searcher seeded with
// seed. gameNum is only used to label errors. Failures are returned as
// *errors.GameError.
func PlayGame(s Settings, gameNum int, seed int64, logger *slog.Logger) (*Outcome, error) {
	if logger == nil {
		logger = slog.Default().With("component", "selfplay")
	}

	g := engine.NewGame()
	if s.StartFEN != "" {
		var err error
		if g, err = engine.NewGameFromFEN(s.StartFEN); err != nil {
			return nil, &errors.GameError{Err: err, GameNum: gameNum, FEN: s.StartFEN}
		}
	}

	searcher := search.NewSeeded(seed, search.WithLogger(logger))

	for !g.Status().IsTerminal() {
		ply := len(g.Moves()) + 1
		if s.MaxPlies > 0 && ply > s.MaxPlies {
			return finish(g, storage.TerminationMaxPlies, gameNum, logger), nil
		}

		pos := g.Position()
		m, ok, err := searcher.Choose(pos, s.depth(pos.ToMove))
		if err != nil {
			return nil, &errors.GameError{Err: err, GameNum: gameNum, PlyNum: ply, FEN: pos.ToFEN()}
		}
		if !ok {
			break
		}
		if _, err := g.Play(m); err != nil {
			return nil, &errors.GameError{
				Err:      err,
				GameNum:  gameNum,
				PlyNum:   ply,
				MoveText: m.String(),
				FEN:      pos.ToFEN(),
			}
		}
	}

	return finish(g, storage.TerminationFor(g.Status()), gameNum, logger), nil
}

func finish(g *engine.Game, t storage.Termination, gameNum int, logger *slog.Logger) *Outcome {
	logger.Debug("game finished",
		"game", gameNum,
		"plies", len(g.Moves()),
		"status", g.Status(),
		"termination", string(t),
	)
	return &Outcome{Game: g, Termination: t}
}
