// play.go - Interactive game loop
package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/config"
	"github.com/lgbarn/pinpawn-go/internal/engine"
	"github.com/lgbarn/pinpawn-go/internal/errors"
	"github.com/lgbarn/pinpawn-go/internal/search"
	"github.com/lgbarn/pinpawn-go/internal/storage"
	"github.com/lgbarn/pinpawn-go/internal/ui"
)

const helpText = "Enter moves as e2e4 (e7e8n to under-promote). " +
	"Commands: moves, board, help, exit."

// session is one interactive game between any mix of humans and computers.
type session struct {
	cfg      *config.Config
	game     *engine.Game
	display  ui.Display
	searcher *search.Searcher
	store    *storage.Store
	seed     int64
	logger   *slog.Logger
}

func newSession(cfg *config.Config, display ui.Display, store *storage.Store, seed int64, logger *slog.Logger) (*session, error) {
	g := engine.NewGame()
	if cfg.Game.StartFEN != "" {
		var err error
		if g, err = engine.NewGameFromFEN(cfg.Game.StartFEN); err != nil {
			return nil, err
		}
	}
	s := &session{
		cfg:      cfg,
		game:     g,
		display:  display,
		searcher: search.NewSeeded(seed, search.WithLogger(logger)),
		store:    store,
		seed:     seed,
		logger:   logger,
	}
	return s, nil
}

// run plays until the game ends or the human leaves, then records the game.
func (s *session) run() (storage.Termination, error) {
	termination, err := s.loop()
	if err != nil {
		return termination, err
	}
	return termination, s.record(termination)
}

func (s *session) loop() (storage.Termination, error) {
	if err := s.draw(); err != nil {
		return storage.TerminationAbandoned, err
	}
	for {
		if s.game.Status().IsTerminal() {
			return storage.TerminationFor(s.game.Status()), nil
		}

		if s.cfg.Game.Player(s.game.Turn()) == config.Computer {
			if s.bothComputers() && len(s.game.Moves()) >= s.cfg.SelfPlay.MaxPlies {
				return storage.TerminationMaxPlies, s.display.Message("Ply limit reached.")
			}
			if err := s.computerMove(); err != nil {
				return storage.TerminationAbandoned, err
			}
			continue
		}

		line, err := s.display.ReadLine(fmt.Sprintf("%s to move: ", s.game.Turn()))
		if stderrors.Is(err, io.EOF) {
			return storage.TerminationAbandoned, nil
		}
		if err != nil {
			return storage.TerminationAbandoned, err
		}
		quit, err := s.command(strings.ToLower(line))
		if err != nil {
			return storage.TerminationAbandoned, err
		}
		if quit {
			return storage.TerminationAbandoned, nil
		}
	}
}

func (s *session) bothComputers() bool {
	return s.cfg.Game.White == config.Computer && s.cfg.Game.Black == config.Computer
}

// command handles one line of human input and reports whether to quit.
func (s *session) command(line string) (bool, error) {
	switch line {
	case "":
		return false, nil
	case "exit", "quit":
		return true, nil
	case "help":
		return false, s.display.Message(helpText)
	case "board":
		return false, s.draw()
	case "moves":
		return false, s.display.Message(movesText(s.game.Turn(), s.game.LegalMoves()))
	}

	m, err := chess.ParseMove(line)
	if err != nil {
		return false, s.display.Message("Invalid input. Please use algebraic notation such as e2e4.")
	}
	if err := s.play(m); err != nil {
		if stderrors.Is(err, errors.ErrIllegalMove) {
			return false, s.display.Message(err.Error())
		}
		return false, err
	}
	return false, s.draw()
}

func (s *session) computerMove() error {
	colour := s.game.Turn()
	m, ok, err := s.searcher.Choose(s.game.Position(), s.cfg.Game.Depth)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s has no move in an ongoing game: %w", colour, errors.ErrIllegalMove)
	}
	if err := s.play(m); err != nil {
		return err
	}
	if err := s.display.Message(fmt.Sprintf("%s plays %s", colour, m)); err != nil {
		return err
	}
	return s.draw()
}

func (s *session) play(m chess.Move) error {
	colour := s.game.Turn()
	status, err := s.game.Play(m)
	if err != nil {
		return err
	}
	s.logger.Info("move played", "side", colour, "move", m.String(), "status", status)
	return nil
}

func (s *session) draw() error {
	return s.display.Draw(s.game.Position(), statusText(s.game))
}

func (s *session) record(t storage.Termination) error {
	if s.store == nil || len(s.game.Moves()) == 0 {
		return nil
	}
	rec := storage.NewGameRecord(s.game, t, s.depth(chess.White), s.depth(chess.Black))
	rec.Seed = s.seed
	id, err := s.store.RecordGame(rec)
	if err != nil {
		return err
	}
	s.logger.Info("game stored", "id", id, "result", rec.Result, "termination", string(t))
	return nil
}

func (s *session) depth(colour chess.Colour) int {
	if s.cfg.Game.Player(colour) == config.Human {
		return storage.HumanDepth
	}
	return s.cfg.Game.Depth
}

// statusText describes the game state for the side to move.
func statusText(g *engine.Game) string {
	toMove := g.Turn()
	switch g.Status() {
	case engine.Check:
		return fmt.Sprintf("%s is in check.", toMove)
	case engine.Checkmate:
		return fmt.Sprintf("%s is in checkmate! %s is the winner!", toMove, toMove.Opposite())
	case engine.Stalemate:
		return "Stalemate! It's a draw."
	}
	return fmt.Sprintf("%s's turn", toMove)
}

// movesText lists legal moves in generation order.
func movesText(colour chess.Colour, moves []chess.Move) string {
	plural := "s"
	if len(moves) == 1 {
		plural = ""
	}
	texts := make([]string, len(moves))
	for i, m := range moves {
		texts[i] = m.String()
	}
	return fmt.Sprintf("%s has %d legal move%s: %s", colour, len(moves), plural, strings.Join(texts, " "))
}
