package main

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/lgbarn/pinpawn-go/internal/config"
	"github.com/lgbarn/pinpawn-go/internal/storage"
	"github.com/lgbarn/pinpawn-go/internal/testutil"
	"github.com/lgbarn/pinpawn-go/internal/ui"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// playScript runs a text-mode session fed with input and returns its
// termination and everything it printed.
func playScript(t *testing.T, b *config.ConfigBuilder, store *storage.Store, input string) (storage.Termination, string) {
	t.Helper()
	var out bytes.Buffer
	cfg := b.WithInput(strings.NewReader(input)).WithOutput(&out).Build()
	display := ui.NewTextDisplay(cfg.Input, cfg.Output, ui.WithASCII())

	s, err := newSession(cfg, display, store, 1, quietLogger())
	testutil.AssertNoError(t, err, "newSession")
	termination, err := s.run()
	testutil.AssertNoError(t, err, "run")
	return termination, out.String()
}

func TestSession(t *testing.T) {
	humans := func() *config.ConfigBuilder {
		return config.NewConfigBuilder().WithPlayers(config.Human, config.Human)
	}

	tests := []struct {
		name            string
		builder         *config.ConfigBuilder
		input           string
		wantTermination storage.Termination
		wantOutput      []string
	}{
		{
			name:            "fools mate between humans",
			builder:         humans(),
			input:           "f2f3\ne7e5\ng2g4\nd8h4\n",
			wantTermination: storage.TerminationCheckmate,
			wantOutput:      []string{"White is in checkmate! Black is the winner!"},
		},
		{
			name:            "rejections and commands",
			builder:         humans(),
			input:           "e7e5\nhello\nE2E5\nmoves\nhelp\nexit\n",
			wantTermination: storage.TerminationAbandoned,
			wantOutput: []string{
				"illegal move e7e5: wrong side, it is White's turn",
				"Invalid input. Please use algebraic notation such as e2e4.",
				"illegal move e2e5",
				"White has 20 legal moves: b1a3 b1c3",
				"Commands: moves, board, help, exit.",
			},
		},
		{
			name:            "end of input abandons",
			builder:         humans(),
			input:           "e2e4\n",
			wantTermination: storage.TerminationAbandoned,
			wantOutput:      []string{"White to move: ", "Black to move: "},
		},
		{
			name:            "repeated positions do not end the game",
			builder:         humans(),
			input:           "g1f3\ng8f6\nf3g1\nf6g8\ng1f3\ng8f6\nf3g1\nf6g8\ne2e4\n",
			wantTermination: storage.TerminationAbandoned,
			wantOutput:      []string{"Black to move: "},
		},
		{
			name: "computer mates a human",
			builder: config.NewConfigBuilder().
				WithPlayers(config.Human, config.Computer).
				WithDepth(2).
				WithStartFEN(testutil.FoolsMate),
			wantTermination: storage.TerminationCheckmate,
			wantOutput:      []string{"Black plays d8h4", "White is in checkmate!"},
		},
		{
			name: "computers stop at the ply cap",
			builder: config.NewConfigBuilder().
				WithPlayers(config.Computer, config.Computer).
				WithDepth(0).
				WithSelfPlay(0, 1, 6),
			wantTermination: storage.TerminationMaxPlies,
			wantOutput:      []string{"White plays", "Black plays", "Ply limit reached."},
		},
		{
			name:            "stalemated start",
			builder:         humans().WithStartFEN(testutil.Stalemate),
			wantTermination: storage.TerminationStalemate,
			wantOutput:      []string{"Stalemate! It's a draw."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			termination, out := playScript(t, tt.builder, nil, tt.input)
			testutil.AssertEqual(t, termination, tt.wantTermination, "termination")
			for _, want := range tt.wantOutput {
				if !strings.Contains(out, want) {
					t.Errorf("output missing %q:\n%s", want, out)
				}
			}
		})
	}
}

func TestSession_RecordsGame(t *testing.T) {
	store, err := storage.OpenInMemory(storage.WithLogger(quietLogger()))
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { store.Close() })

	b := config.NewConfigBuilder().WithPlayers(config.Human, config.Human)
	playScript(t, b, store, "f2f3\ne7e5\ng2g4\nd8h4\n")
	playScript(t, b, store, "exit\n") // no moves, not stored

	games, err := store.Games(10)
	testutil.AssertNoError(t, err)
	if len(games) != 1 {
		t.Fatalf("stored %d games; want 1", len(games))
	}
	got := games[0]
	testutil.AssertEqual(t, got.Moves, []string{"f2f3", "e7e5", "g2g4", "d8h4"})
	testutil.AssertEqual(t, got.Result, "0-1")
	testutil.AssertEqual(t, got.Termination, storage.TerminationCheckmate)
	testutil.AssertEqual(t, got.WhiteDepth, storage.HumanDepth)

	stats, err := store.Stats()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats, storage.Stats{Played: 1, BlackWins: 1})
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		name  string
		fen   string
		moves []string
		want  string
	}{
		{"start", "", nil, "White's turn"},
		{"check", "4k3/8/8/8/8/8/8/R3K3 w - - 0 1", []string{"a1a8"}, "Black is in check."},
		{"checkmate", testutil.FoolsMate, []string{"d8h4"}, "White is in checkmate! Black is the winner!"},
		{"stalemate", testutil.Stalemate, nil, "Stalemate! It's a draw."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.MustGame(t, tt.fen, tt.moves...)
			testutil.AssertEqual(t, statusText(g), tt.want)
		})
	}
}

func TestMovesText(t *testing.T) {
	g := testutil.MustGame(t, "7k/8/8/8/8/8/8/K7 w - - 0 1")
	testutil.AssertEqual(t, movesText(g.Turn(), g.LegalMoves()), "White has 3 legal moves: a1b1 a1a2 a1b2")

	g = testutil.MustGame(t, "k7/8/8/8/8/8/8/1R5K b - - 0 1")
	testutil.AssertEqual(t, movesText(g.Turn(), g.LegalMoves()), "Black has 1 legal move: a8a7")
}
