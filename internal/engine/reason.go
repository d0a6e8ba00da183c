package engine

import (
	stderrors "errors"
	"fmt"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// Reason names the first legality check a move failed.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonNoOp
	ReasonEmptySource
	ReasonWrongSide
	ReasonFriendlyCapture
	ReasonIllegalShape
	ReasonShapeOrBlocked
	ReasonBlocked
	ReasonExposesKing
)

var reasonText = [...]string{
	ReasonNone:            "legal",
	ReasonNoOp:            "no-op move",
	ReasonEmptySource:     "empty source",
	ReasonWrongSide:       "wrong side",
	ReasonFriendlyCapture: "friendly capture",
	ReasonIllegalShape:    "illegal shape",
	ReasonShapeOrBlocked:  "illegal shape or blocked",
	ReasonBlocked:         "blocked",
	ReasonExposesKing:     "exposes own king",
}

// String returns the reason tag.
func (r Reason) String() string {
	if r >= 0 && int(r) < len(reasonText) {
		return reasonText[r]
	}
	return fmt.Sprintf("Reason(%d)", int(r))
}

// IllegalMoveError reports a rejected move and why it was rejected.
// It unwraps to errors.ErrIllegalMove.
type IllegalMoveError struct {
	Reason Reason
	Move   chess.Move
	Piece  chess.Piece // piece on the source square, if any
	Mover  chess.Colour
}

// Error returns a message suitable for showing to a player.
func (e *IllegalMoveError) Error() string {
	switch e.Reason {
	case ReasonWrongSide:
		return fmt.Sprintf("%s %s: %s, it is %s's turn", errors.ErrIllegalMove, e.Move, e.Reason, e.Mover)
	case ReasonIllegalShape, ReasonShapeOrBlocked, ReasonBlocked:
		return fmt.Sprintf("%s %s: %s for %s", errors.ErrIllegalMove, e.Move, e.Reason, e.Piece.Role)
	default:
		return fmt.Sprintf("%s %s: %s", errors.ErrIllegalMove, e.Move, e.Reason)
	}
}

// Unwrap returns errors.ErrIllegalMove.
func (e *IllegalMoveError) Unwrap() error {
	return errors.ErrIllegalMove
}

// ReasonOf extracts the rejection reason from an error returned by IsLegal.
// It returns ReasonNone for nil and for errors that are not move rejections.
func ReasonOf(err error) Reason {
	var moveErr *IllegalMoveError
	if stderrors.As(err, &moveErr) {
		return moveErr.Reason
	}
	return ReasonNone
}

func illegal(reason Reason, src, dst chess.Square, piece chess.Piece, mover chess.Colour) error {
	return &IllegalMoveError{
		Reason: reason,
		Move:   chess.NewMove(src, dst),
		Piece:  piece,
		Mover:  mover,
	}
}
