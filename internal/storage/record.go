package storage

import (
	"time"

	"github.com/lgbarn/pinpawn-go/internal/engine"
)

// Termination says how a stored game ended.
type Termination string

const (
	TerminationCheckmate Termination = "checkmate"
	TerminationStalemate Termination = "stalemate"
	TerminationMaxPlies  Termination = "max plies"
	TerminationAbandoned Termination = "abandoned"
)

// HumanDepth marks a side played by a person in GameRecord depths.
const HumanDepth = -1

// GameRecord is a finished or abandoned game as stored in the database.
type GameRecord struct {
	ID          string      `json:"id"`
	StartFEN    string      `json:"start_fen"`
	Moves       []string    `json:"moves"`
	Result      string      `json:"result"`
	Termination Termination `json:"termination"`
	Plies       int         `json:"plies"`
	WhiteDepth  int         `json:"white_depth"`
	BlackDepth  int         `json:"black_depth"`
	Seed        int64       `json:"seed,omitempty"`
	PlayedAt    time.Time   `json:"played_at"`
}

// NewGameRecord builds a record from a game session. Games that are not over
// are recorded with result "*".
func NewGameRecord(g *engine.Game, termination Termination, whiteDepth, blackDepth int) *GameRecord {
	moves := g.Moves()
	texts := make([]string, len(moves))
	for i, m := range moves {
		texts[i] = m.String()
	}

	return &GameRecord{
		StartFEN:    g.StartFEN(),
		Moves:       texts,
		Result:      g.Result(),
		Termination: termination,
		Plies:       len(moves),
		WhiteDepth:  whiteDepth,
		BlackDepth:  blackDepth,
	}
}

// TerminationFor maps a terminal status to its termination.
func TerminationFor(s engine.Status) Termination {
	switch s {
	case engine.Checkmate:
		return TerminationCheckmate
	case engine.Stalemate:
		return TerminationStalemate
	}
	return TerminationAbandoned
}

// Stats aggregates the results of every recorded game.
type Stats struct {
	Played     int `json:"played"`
	WhiteWins  int `json:"white_wins"`
	BlackWins  int `json:"black_wins"`
	Draws      int `json:"draws"`
	Unfinished int `json:"unfinished"`
}

// Add counts one game result.
func (s *Stats) Add(result string) {
	s.Played++
	switch result {
	case "1-0":
		s.WhiteWins++
	case "0-1":
		s.BlackWins++
	case "1/2-1/2":
		s.Draws++
	default:
		s.Unfinished++
	}
}

// Merge adds the counts of other.
func (s *Stats) Merge(other Stats) {
	s.Played += other.Played
	s.WhiteWins += other.WhiteWins
	s.BlackWins += other.BlackWins
	s.Draws += other.Draws
	s.Unfinished += other.Unfinished
}
