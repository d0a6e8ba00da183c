package testutil

import (
	"fmt"
	"testing"

	"github.com/lgbarn/pinpawn-go/internal/engine"
	pperrors "github.com/lgbarn/pinpawn-go/internal/errors"
)

// recorder captures failures instead of failing the enclosing test.
type recorder struct {
	testing.TB
	failures []string
}

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func (r *recorder) Fatalf(format string, args ...interface{}) {
	r.failures = append(r.failures, fmt.Sprintf(format, args...))
}

func TestAssertions(t *testing.T) {
	pos := engine.NewPosition()

	tests := []struct {
		name     string
		run      func(tb testing.TB)
		wantFail bool
	}{
		{"equal", func(tb testing.TB) { AssertEqual(tb, []int{1, 2}, []int{1, 2}) }, false},
		{"not equal", func(tb testing.TB) { AssertEqual(tb, 1, 2, "count") }, true},
		{"no error", func(tb testing.TB) { AssertNoError(tb, nil) }, false},
		{"unexpected error", func(tb testing.TB) { AssertNoError(tb, pperrors.ErrStorage) }, true},
		{
			"wrapped error matches",
			func(tb testing.TB) {
				AssertErrorIs(tb, fmt.Errorf("load: %w", pperrors.ErrInvalidFEN), pperrors.ErrInvalidFEN)
			},
			false,
		},
		{"wrong error", func(tb testing.TB) { AssertErrorIs(tb, pperrors.ErrStorage, pperrors.ErrInvalidFEN) }, true},
		{
			"moves in any order",
			func(tb testing.TB) {
				AssertMoves(tb, pos.LegalMovesFrom(MustMove(t, "g1f3").From), "g1h3", "g1f3")
			},
			false,
		},
		{
			"missing move",
			func(tb testing.TB) {
				AssertMoves(tb, pos.LegalMovesFrom(MustMove(t, "g1f3").From), "g1f3")
			},
			true,
		},
		{"fen", func(tb testing.TB) { AssertFEN(tb, pos, engine.InitialFEN) }, false},
		{"wrong fen", func(tb testing.TB) { AssertFEN(tb, pos, Stalemate) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{TB: t}
			tt.run(rec)
			if failed := len(rec.failures) > 0; failed != tt.wantFail {
				t.Errorf("failed = %v (%q); want %v", failed, rec.failures, tt.wantFail)
			}
		})
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"hello"}, "hello"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"hello %s", "world"}, "hello world"},
		{"format multiple", []interface{}{"%s %d %s", "test", 42, "end"}, "test 42 end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMessage(tt.args...); got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}

func TestFixtures(t *testing.T) {
	tests := []struct {
		name       string
		fen        string
		wantStatus engine.Status
	}{
		{"kiwipete", Kiwipete, engine.Ongoing},
		{"fools mate", FoolsMate, engine.Ongoing},
		{"stalemate", Stalemate, engine.Stalemate},
		{"back rank mate", BackRankMate, engine.Checkmate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, err := MustPosition(t, tt.fen).Status()
			AssertNoError(t, err)
			AssertEqual(t, status, tt.wantStatus)
		})
	}
}

func TestMustGame(t *testing.T) {
	g := MustGame(t, FoolsMate, "d8h4")
	AssertEqual(t, g.Status(), engine.Checkmate)
	AssertEqual(t, g.Result(), "0-1")

	g = MustGame(t, "", "e2e4", "e7e5")
	AssertEqual(t, len(g.Moves()), 2)
}
