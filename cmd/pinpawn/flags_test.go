package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/lgbarn/pinpawn-go/internal/config"
	"github.com/lgbarn/pinpawn-go/internal/errors"
	"github.com/lgbarn/pinpawn-go/internal/testutil"
)

func saveRestoreBool(ptr *bool, val bool) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreInt(ptr *int, val int) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

func saveRestoreString(ptr *string, val string) func() {
	old := *ptr
	*ptr = val
	return func() { *ptr = old }
}

// visitNames visits the named flags as if they were given on the command line.
func visitNames(names ...string) func(func(*flag.Flag)) {
	return func(fn func(*flag.Flag)) {
		for _, name := range names {
			fn(flag.Lookup(name))
		}
	}
}

func TestApplyFlags_OnlyVisitedOverride(t *testing.T) {
	defer saveRestoreInt(depth, 4)()
	defer saveRestoreString(blackPlayer, "human")()
	defer saveRestoreString(logLevel, "debug")()

	cfg := config.NewConfigBuilder().WithDepth(1).WithLogLevel("warn").Build()
	testutil.AssertNoError(t, applyFlags(cfg, visitNames("depth", "black")))

	testutil.AssertEqual(t, cfg.Game.Depth, 4, "depth")
	testutil.AssertEqual(t, cfg.Game.Black, config.Human, "black")
	testutil.AssertEqual(t, cfg.Log.Level, "warn", "log level not visited")
}

func TestApplyFlags(t *testing.T) {
	defer saveRestoreString(whitePlayer, "ai")()
	defer saveRestoreString(startFEN, testutil.Kiwipete)()
	defer saveRestoreBool(tuiMode, true)()
	defer saveRestoreString(dbDir, "/tmp/games")()
	defer saveRestoreInt(selfPlayGames, 12)()
	defer saveRestoreInt(workers, 3)()
	defer saveRestoreInt(maxPlies, 80)()
	defer saveRestoreString(exportFormat, "json")()
	defer saveRestoreBool(includeFENs, true)()

	cfg := config.NewConfig()
	err := applyFlags(cfg, visitNames("white", "fen", "tui", "db", "selfplay", "workers", "max-plies", "export", "fens"))
	testutil.AssertNoError(t, err)

	testutil.AssertEqual(t, cfg.Game.White, config.Computer, "white")
	testutil.AssertEqual(t, cfg.Game.StartFEN, testutil.Kiwipete, "fen")
	testutil.AssertEqual(t, cfg.Game.TUI, true, "tui")
	testutil.AssertEqual(t, cfg.Storage.Dir, "/tmp/games", "db")
	testutil.AssertEqual(t, cfg.SelfPlay, config.SelfPlayConfig{Games: 12, Workers: 3, MaxPlies: 80})
	testutil.AssertEqual(t, cfg.Export, config.ExportConfig{Format: config.JSONFormat, MaxLineLength: 80, IncludeFENs: true})
}

func TestApplyFlags_ZeroWorkersKeepsDefault(t *testing.T) {
	defer saveRestoreInt(workers, 0)()

	cfg := config.NewConfig()
	want := cfg.SelfPlay.Workers
	testutil.AssertNoError(t, applyFlags(cfg, visitNames("workers")))
	testutil.AssertEqual(t, cfg.SelfPlay.Workers, want)
}

func TestApplyFlags_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		setup   func() func()
		visited string
	}{
		{"unknown player", func() func() { return saveRestoreString(whitePlayer, "robot") }, "white"},
		{"depth too deep", func() func() { return saveRestoreInt(depth, config.MaxDepth+1) }, "depth"},
		{"negative depth", func() func() { return saveRestoreInt(depth, -1) }, "depth"},
		{"bad fen", func() func() { return saveRestoreString(startFEN, "8/8 w") }, "fen"},
		{"bad log level", func() func() { return saveRestoreString(logLevel, "loud") }, "log-level"},
		{"zero ply cap", func() func() { return saveRestoreInt(maxPlies, 0) }, "max-plies"},
		{"unknown export format", func() func() { return saveRestoreString(exportFormat, "csv") }, "export"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer tt.setup()()
			err := applyFlags(config.NewConfig(), visitNames(tt.visited))
			testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Run("defaults without a file", func(t *testing.T) {
		defer saveRestoreString(configFile, "")()
		cfg, err := loadConfig()
		testutil.AssertNoError(t, err)
		testutil.AssertEqual(t, cfg.Game.Depth, 2)
	})

	t.Run("file then flags", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pinpawn.toml")
		data := "[game]\nwhite = \"ai\"\ndepth = 3\n\n[selfplay]\nmax_plies = 50\n"
		if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
			t.Fatal(err)
		}
		defer saveRestoreString(configFile, path)()
		defer saveRestoreInt(depth, 5)()

		cfg, err := loadConfig()
		testutil.AssertNoError(t, err)
		testutil.AssertNoError(t, applyFlags(cfg, visitNames("depth")))

		testutil.AssertEqual(t, cfg.Game.White, config.Computer, "white from file")
		testutil.AssertEqual(t, cfg.Game.Depth, 5, "depth from flag")
		testutil.AssertEqual(t, cfg.SelfPlay.MaxPlies, 50, "max_plies from file")
	})

	t.Run("invalid file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.toml")
		if err := os.WriteFile(path, []byte("[game]\ncolour = \"red\"\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		defer saveRestoreString(configFile, path)()

		_, err := loadConfig()
		testutil.AssertErrorIs(t, err, errors.ErrInvalidConfig)
	})
}

func TestCheckFlagCombinations(t *testing.T) {
	tests := []struct {
		name    string
		perft   int
		stats   bool
		games   int
		list    int
		export  string
		wantErr bool
	}{
		{"nothing", 0, false, 0, 0, "", false},
		{"perft alone", 3, false, 0, 0, "", false},
		{"stats with listing", 0, true, 0, 5, "", false},
		{"export with listing", 0, false, 0, 5, "pgn", false},
		{"perft and stats", 2, true, 0, 0, "", true},
		{"stats and selfplay", 0, true, 4, 0, "", true},
		{"export and stats", 0, true, 0, 0, "json", true},
		{"negative listing", 0, true, 0, -1, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer saveRestoreInt(perftDepth, tt.perft)()
			defer saveRestoreBool(showStats, tt.stats)()
			defer saveRestoreInt(selfPlayGames, tt.games)()
			defer saveRestoreInt(listGames, tt.list)()
			defer saveRestoreString(exportFormat, tt.export)()

			err := checkFlagCombinations()
			if (err != nil) != tt.wantErr {
				t.Errorf("checkFlagCombinations() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveSeed(t *testing.T) {
	testutil.AssertEqual(t, resolveSeed(42), int64(42))
	if resolveSeed(0) == 0 {
		t.Error("resolveSeed(0) = 0; want a clock seed")
	}
}
