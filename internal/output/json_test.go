package output

import (
	"testing"

	"github.com/lgbarn/pinpawn-go/internal/errors"
	"github.com/lgbarn/pinpawn-go/internal/storage"
	"github.com/lgbarn/pinpawn-go/internal/testutil"
)

func TestGameToJSON(t *testing.T) {
	rec := record(t, "", storage.TerminationCheckmate, foolsMateMoves...)

	jg, err := GameToJSON(rec, false)
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, jg.ID, "game/test")
	testutil.AssertEqual(t, jg.Result, "0-1")
	testutil.AssertEqual(t, jg.Termination, "checkmate")
	testutil.AssertEqual(t, jg.Tags["White"], "Human")

	want := []JSONMove{
		{MoveNumber: 1, Color: "white", Move: "f2f3", From: "f2", To: "f3", Piece: "pawn"},
		{Color: "black", Move: "e7e5", From: "e7", To: "e5", Piece: "pawn"},
		{MoveNumber: 2, Color: "white", Move: "g2g4", From: "g2", To: "g4", Piece: "pawn"},
		{Color: "black", Move: "d8h4", From: "d8", To: "h4", Piece: "queen", Checkmate: true},
	}
	testutil.AssertEqual(t, jg.Moves, want)
}

func TestGameToJSON_IncludeFENs(t *testing.T) {
	rec := record(t, "", storage.TerminationCheckmate, foolsMateMoves...)

	jg, err := GameToJSON(rec, true)
	testutil.AssertNoError(t, err)

	g := testutil.MustGame(t, "", foolsMateMoves...)
	testutil.AssertEqual(t, jg.Moves[len(jg.Moves)-1].FEN, g.Position().ToFEN())
	for i, m := range jg.Moves {
		if m.FEN == "" {
			t.Errorf("move %d has no FEN", i+1)
		}
	}
}

func TestGameToJSON_SpecialMoves(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		check func(t *testing.T, last JSONMove)
	}{
		{
			name:  "en passant capture",
			moves: []string{"e2e4", "a7a6", "e4e5", "d7d5", "e5d6"},
			check: func(t *testing.T, last JSONMove) {
				testutil.AssertEqual(t, last.Captured, "pawn")
			},
		},
		{
			name:  "ordinary capture",
			moves: []string{"e2e4", "d7d5", "e4d5"},
			check: func(t *testing.T, last JSONMove) {
				testutil.AssertEqual(t, last.Captured, "pawn")
			},
		},
		{
			name:  "default promotion",
			fen:   "8/P6k/8/8/8/8/8/K7 w - - 0 1",
			moves: []string{"a7a8"},
			check: func(t *testing.T, last JSONMove) {
				testutil.AssertEqual(t, last.Promotion, "queen")
			},
		},
		{
			name:  "underpromotion",
			fen:   "8/P6k/8/8/8/8/8/K7 w - - 0 1",
			moves: []string{"a7a8n"},
			check: func(t *testing.T, last JSONMove) {
				testutil.AssertEqual(t, last.Promotion, "knight")
			},
		},
		{
			name:  "check",
			fen:   "4k3/8/8/8/8/8/8/R3K3 w - - 0 1",
			moves: []string{"a1a8"},
			check: func(t *testing.T, last JSONMove) {
				testutil.AssertEqual(t, last.Check, true)
				testutil.AssertEqual(t, last.Checkmate, false)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := record(t, tt.fen, storage.TerminationAbandoned, tt.moves...)
			jg, err := GameToJSON(rec, false)
			testutil.AssertNoError(t, err)
			tt.check(t, jg.Moves[len(jg.Moves)-1])
		})
	}
}

func TestGameToJSON_BadRecord(t *testing.T) {
	tests := []struct {
		name string
		rec  *storage.GameRecord
		want error
	}{
		{"illegal move", &storage.GameRecord{Moves: []string{"e2e4", "e7e4"}}, errors.ErrIllegalMove},
		{"bad notation", &storage.GameRecord{Moves: []string{"castle"}}, errors.ErrInvalidNotation},
		{"bad start", &storage.GameRecord{StartFEN: "8/8/8/8/8/8/8/8 w - - 0 1"}, errors.ErrInvalidFEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := GameToJSON(tt.rec, false)
			testutil.AssertErrorIs(t, err, tt.want)
		})
	}
}
