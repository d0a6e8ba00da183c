package engine

import (
	"fmt"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// IsLegal checks whether mover may play src to dst in the current position.
// Checks run in a fixed order and the first failure is reported as an
// *IllegalMoveError. Off-board squares yield a wrapped errors.ErrOutOfRange
// and a mover without a king yields a wrapped errors.ErrNoKingFound.
func (p *Position) IsLegal(src, dst chess.Square, mover chess.Colour) error {
	if !src.Valid() || !dst.Valid() {
		return fmt.Errorf("move %d,%d to %d,%d: %w", src.Rank, src.File, dst.Rank, dst.File, errors.ErrOutOfRange)
	}

	if src == dst {
		return illegal(ReasonNoOp, src, dst, chess.NoPiece, mover)
	}

	piece := p.Board.At(src)
	if piece.IsEmpty() {
		return illegal(ReasonEmptySource, src, dst, piece, mover)
	}
	if piece.Colour != mover {
		return illegal(ReasonWrongSide, src, dst, piece, mover)
	}

	// A castling attempt that fails its own checks falls through to the
	// ordinary king rules, which reject a two-file step.
	if isCastleShape(piece, src, dst) && p.CanCastle(src, dst, mover) {
		return nil
	}

	target := p.Board.At(dst)
	if !target.IsEmpty() && target.Colour == mover {
		return illegal(ReasonFriendlyCapture, src, dst, piece, mover)
	}

	if reason := p.checkGeometry(piece, src, dst, false); reason != ReasonNone {
		return illegal(reason, src, dst, piece, mover)
	}

	if piece.Role.IsSlider() && !p.Board.IsPathClear(src, dst) {
		return illegal(ReasonBlocked, src, dst, piece, mover)
	}

	exposed, err := p.exposesKing(src, dst, mover)
	if err != nil {
		return err
	}
	if exposed {
		return illegal(ReasonExposesKing, src, dst, piece, mover)
	}
	return nil
}

// exposesKing plays the move speculatively and reports whether mover's king
// is then attacked. The position is restored before returning.
func (p *Position) exposesKing(src, dst chess.Square, mover chess.Colour) (bool, error) {
	undo := p.MakeMove(chess.NewMove(src, dst))
	defer p.UnmakeMove(undo)

	king, err := p.KingSquare(mover)
	if err != nil {
		return false, err
	}
	return p.IsSquareAttacked(king, mover.Opposite()), nil
}

// checkGeometry applies the per-role movement rule to src->dst. In attack
// mode pawns are tested for their diagonal capture only, regardless of what
// stands on dst.
func (p *Position) checkGeometry(piece chess.Piece, src, dst chess.Square, attackOnly bool) Reason {
	rankDelta := dst.Rank - src.Rank
	dRank := abs(rankDelta)
	dFile := abs(dst.File - src.File)

	switch piece.Role {
	case chess.King:
		if dRank <= 1 && dFile <= 1 {
			return ReasonNone
		}
	case chess.Rook:
		if dRank == 0 || dFile == 0 {
			return ReasonNone
		}
	case chess.Bishop:
		if dRank == dFile {
			return ReasonNone
		}
	case chess.Queen:
		if dRank == 0 || dFile == 0 || dRank == dFile {
			return ReasonNone
		}
	case chess.Knight:
		if (dRank == 2 && dFile == 1) || (dRank == 1 && dFile == 2) {
			return ReasonNone
		}
	case chess.Pawn:
		return p.checkPawnGeometry(piece.Colour, src, dst, rankDelta, dFile, attackOnly)
	}
	return ReasonIllegalShape
}

func (p *Position) checkPawnGeometry(colour chess.Colour, src, dst chess.Square, rankDelta, dFile int, attackOnly bool) Reason {
	forward := colour.Forward()

	if rankDelta == forward && dFile == 1 {
		if attackOnly {
			return ReasonNone
		}
		target := p.Board.At(dst)
		if !target.IsEmpty() && target.Colour != colour {
			return ReasonNone
		}
		if p.isEnPassantCapture(colour, dst) {
			return ReasonNone
		}
		return ReasonIllegalShape
	}

	if attackOnly || dFile != 0 {
		return ReasonIllegalShape
	}

	switch {
	case rankDelta == forward:
		if p.Board.IsEmpty(dst) {
			return ReasonNone
		}
		return ReasonIllegalShape
	case rankDelta == 2*forward && src.Rank == colour.PawnRank():
		if p.Board.IsEmpty(dst) && p.Board.IsEmpty(src.Offset(forward, 0)) {
			return ReasonNone
		}
		return ReasonShapeOrBlocked
	}
	return ReasonIllegalShape
}

// isEnPassantCapture reports whether a pawn of colour landing diagonally on
// dst captures en passant: dst is the current target and an enemy pawn
// stands one rank behind it.
func (p *Position) isEnPassantCapture(colour chess.Colour, dst chess.Square) bool {
	if !p.HasEnPassant() || dst != p.EnPassant || !p.Board.IsEmpty(dst) {
		return false
	}
	victim := dst.Offset(-colour.Forward(), 0)
	return p.Board.At(victim).Is(colour.Opposite(), chess.Pawn)
}
