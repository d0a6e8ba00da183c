package engine

import "github.com/lgbarn/pinpawn-go/internal/chess"

// Status classifies a position for the side to move.
type Status int

const (
	Ongoing Status = iota
	Check
	Checkmate
	Stalemate
)

// String returns the status name.
func (s Status) String() string {
	switch s {
	case Ongoing:
		return "ongoing"
	case Check:
		return "check"
	case Checkmate:
		return "checkmate"
	case Stalemate:
		return "stalemate"
	}
	return "unknown"
}

// IsTerminal reports whether the game is over.
func (s Status) IsTerminal() bool {
	return s == Checkmate || s == Stalemate
}

// Status classifies the position for the side to move. A missing king is
// reported as an error wrapping errors.ErrNoKingFound.
func (p *Position) Status() (Status, error) {
	inCheck, err := p.InCheck(p.ToMove)
	if err != nil {
		return Ongoing, err
	}
	hasMoves := p.HasLegalMoves(p.ToMove)
	switch {
	case inCheck && !hasMoves:
		return Checkmate, nil
	case !hasMoves:
		return Stalemate, nil
	case inCheck:
		return Check, nil
	}
	return Ongoing, nil
}

// IsCheckmate returns true if the position is checkmate for the side to move.
func (p *Position) IsCheckmate() bool {
	s, err := p.Status()
	return err == nil && s == Checkmate
}

// IsStalemate returns true if the position is stalemate for the side to move.
func (p *Position) IsStalemate() bool {
	s, err := p.Status()
	return err == nil && s == Stalemate
}

// Result returns the PGN result string for a status reached with toMove on
// move: "1-0", "0-1", "1/2-1/2", or "*" while the game goes on.
func Result(s Status, toMove chess.Colour) string {
	switch s {
	case Checkmate:
		if toMove == chess.White {
			return "0-1"
		}
		return "1-0"
	case Stalemate:
		return "1/2-1/2"
	}
	return "*"
}

// Winner returns the side that won, if s ended the game decisively with
// toMove on move.
func Winner(s Status, toMove chess.Colour) (chess.Colour, bool) {
	if s != Checkmate {
		return chess.White, false
	}
	return toMove.Opposite(), true
}
