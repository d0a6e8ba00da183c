package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/lgbarn/pinpawn-go/internal/config"
	"github.com/lgbarn/pinpawn-go/internal/errors"
	"github.com/lgbarn/pinpawn-go/internal/storage"
	"github.com/lgbarn/pinpawn-go/internal/testutil"
)

func TestRunPerft(t *testing.T) {
	tests := []struct {
		name      string
		fen       string
		depth     int
		wantTotal string
		wantLine  string
	}{
		{"initial depth 1", "", 1, "Nodes searched: 20\n", "e2e4: 1\n"},
		{"initial depth 2", "", 2, "Nodes searched: 400\n", "g1f3: 20\n"},
		{"kiwipete depth 1", testutil.Kiwipete, 1, "Nodes searched: 48\n", "e1g1: 1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			testutil.AssertNoError(t, runPerft(&out, tt.fen, tt.depth, quietLogger()))
			for _, want := range []string{tt.wantTotal, tt.wantLine} {
				if !strings.Contains(out.String(), want) {
					t.Errorf("output missing %q:\n%s", want, out.String())
				}
			}
		})
	}
}

func TestRunPerft_InvalidFEN(t *testing.T) {
	var out bytes.Buffer
	err := runPerft(&out, "nonsense", 1, quietLogger())
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
}

func openMemoryStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.OpenInMemory(storage.WithLogger(quietLogger()))
	testutil.AssertNoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRunSelfPlay(t *testing.T) {
	store := openMemoryStore(t)
	cfg := config.NewConfigBuilder().
		WithPlayers(config.Computer, config.Computer).
		WithDepth(0).
		WithSelfPlay(5, 2, 10).
		Build()

	var out bytes.Buffer
	testutil.AssertNoError(t, runSelfPlay(context.Background(), &out, cfg, store, 77, quietLogger()))

	for _, want := range []string{"Games played: 5\n", "Duplicates:   "} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}

	stats, err := store.Stats()
	testutil.AssertNoError(t, err)
	testutil.AssertEqual(t, stats.Played, 5, "stored games")
}

func TestRunSelfPlay_FailedGames(t *testing.T) {
	cfg := config.NewConfigBuilder().WithSelfPlay(2, 1, 10).Build()
	cfg.Game.StartFEN = "8/8/8/8/8/8/8/8 w - - 0 1"

	var out bytes.Buffer
	err := runSelfPlay(context.Background(), &out, cfg, nil, 1, quietLogger())
	testutil.AssertErrorIs(t, err, errors.ErrInvalidFEN)
	if got := strings.Count(out.String(), "Failed: game "); got != 2 {
		t.Errorf("reported %d failures; want 2:\n%s", got, out.String())
	}
}

func TestRunStats(t *testing.T) {
	store := openMemoryStore(t)
	for _, result := range []string{"1-0", "0-1", "1-0"} {
		_, err := store.RecordGame(&storage.GameRecord{
			Moves:       []string{"e2e4"},
			Result:      result,
			Termination: storage.TerminationCheckmate,
			Plies:       1,
		})
		testutil.AssertNoError(t, err)
	}

	var out bytes.Buffer
	testutil.AssertNoError(t, runStats(&out, store, 2))

	text := out.String()
	for _, want := range []string{"Games played: 3\n", "White wins:   2\n", "Black wins:   1\n"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
	if got := strings.Count(text, "game/"); got != 2 {
		t.Errorf("listed %d games; want 2:\n%s", got, text)
	}
}

func TestRunExport(t *testing.T) {
	store := openMemoryStore(t)
	for _, moves := range [][]string{{"e2e4", "e7e5"}, {"d2d4"}} {
		_, err := store.RecordGame(&storage.GameRecord{
			Moves:       moves,
			Result:      "*",
			Termination: storage.TerminationAbandoned,
			Plies:       len(moves),
			WhiteDepth:  storage.HumanDepth,
			BlackDepth:  2,
		})
		testutil.AssertNoError(t, err)
	}

	t.Run("pgn oldest first", func(t *testing.T) {
		var out bytes.Buffer
		testutil.AssertNoError(t, runExport(&out, store, config.NewExportConfig(), 0, quietLogger()))

		text := out.String()
		first, second := strings.Index(text, "1. e2e4 e7e5 *"), strings.Index(text, "1. d2d4 *")
		if first < 0 || second < 0 || first > second {
			t.Errorf("games missing or out of order:\n%s", text)
		}
	})

	t.Run("json limited", func(t *testing.T) {
		cfg := config.NewConfigBuilder().WithExport(config.JSONFormat, true).Build()
		var out bytes.Buffer
		testutil.AssertNoError(t, runExport(&out, store, &cfg.Export, 1, quietLogger()))

		text := out.String()
		if got := strings.Count(text, `"start_fen"`); got != 1 {
			t.Errorf("exported %d games; want 1:\n%s", got, text)
		}
		if !strings.Contains(text, `"move": "d2d4"`) || !strings.Contains(text, `"fen": `) {
			t.Errorf("expected the most recent game with positions:\n%s", text)
		}
	})
}
