// flags.go - Command-line flag definitions and configuration
package main

import (
	"flag"
	"fmt"

	"github.com/lgbarn/pinpawn-go/internal/config"
	"github.com/lgbarn/pinpawn-go/internal/errors"
)

var (
	// Configuration file
	configFile = flag.String("config", "", "TOML configuration file; flags override its values")

	// Players
	whitePlayer = flag.String("white", "human", "White player: human or ai")
	blackPlayer = flag.String("black", "ai", "Black player: human or ai")
	depth       = flag.Int("depth", 2, "Search depth of the computer player (0 = random moves)")
	seed        = flag.Int64("seed", 0, "Random seed for the computer player (0 = time-based)")
	startFEN    = flag.String("fen", "", "Start from this FEN position instead of the initial position")

	// Display
	tuiMode   = flag.Bool("tui", false, "Use the full-screen terminal board")
	asciiMode = flag.Bool("ascii", false, "Draw pieces as letters instead of Unicode glyphs")

	// Logging
	logLevel = flag.String("log-level", "info", "Log level: debug, info, warn, error")

	// Storage
	dbDir     = flag.String("db", "", "Game database directory (empty = do not store games)")
	showStats = flag.Bool("stats", false, "Print stored game statistics and exit")
	listGames = flag.Int("games", 0, "With -stats, also list the N most recent games; with -export, export only them")

	// Export
	exportFormat = flag.String("export", "", "Write stored games to standard output as pgn or json and exit")
	includeFENs  = flag.Bool("fens", false, "With -export json, add the position after every move")

	// Self-play
	selfPlayGames = flag.Int("selfplay", 0, "Play N computer-versus-computer games and report the results")
	workers       = flag.Int("workers", 0, "Self-play games run at once (0 = number of CPUs)")
	maxPlies      = flag.Int("max-plies", 200, "Self-play ply cap; capped games are unfinished")

	// Move generation
	perftDepth = flag.Int("perft", 0, "Count move-generation leaf nodes to depth D and exit")

	// Other options
	help    = flag.Bool("h", false, "Show help")
	version = flag.Bool("version", false, "Show version")
)

// applyFlags copies every flag visited by visit into cfg and validates the
// result. Pass flag.Visit so that only flags given on the command line
// override values from the configuration file.
func applyFlags(cfg *config.Config, visit func(func(*flag.Flag))) error {
	var err error
	visit(func(f *flag.Flag) {
		if err == nil {
			err = applyFlag(cfg, f.Name)
		}
	})
	if err != nil {
		return err
	}
	return cfg.Validate()
}

// applyFlag copies the named flag into cfg.
func applyFlag(cfg *config.Config, name string) error {
	switch name {
	case "white":
		return parsePlayer(&cfg.Game.White, *whitePlayer)
	case "black":
		return parsePlayer(&cfg.Game.Black, *blackPlayer)
	case "depth":
		cfg.Game.Depth = *depth
	case "seed":
		cfg.Game.Seed = *seed
	case "fen":
		cfg.Game.StartFEN = *startFEN
	case "tui":
		cfg.Game.TUI = *tuiMode
	case "log-level":
		cfg.Log.Level = *logLevel
	case "db":
		cfg.Storage.Dir = *dbDir
	case "selfplay":
		cfg.SelfPlay.Games = *selfPlayGames
	case "workers":
		if *workers > 0 {
			cfg.SelfPlay.Workers = *workers
		}
	case "max-plies":
		cfg.SelfPlay.MaxPlies = *maxPlies
	case "export":
		cfg.Export.Format = config.ExportFormat(*exportFormat)
	case "fens":
		cfg.Export.IncludeFENs = *includeFENs
	}
	return nil
}

func parsePlayer(dst *config.PlayerKind, value string) error {
	kind, err := config.ParsePlayerKind(value)
	if err != nil {
		return err
	}
	*dst = kind
	return nil
}

// loadConfig reads the -config file, or returns defaults when none is given.
func loadConfig() (*config.Config, error) {
	if *configFile == "" {
		return config.NewConfig(), nil
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, errors.Wrap(err, "config")
	}
	return cfg, nil
}

// checkFlagCombinations rejects mutually exclusive commands.
func checkFlagCombinations() error {
	commands := 0
	for _, on := range []bool{*perftDepth > 0, *showStats, *selfPlayGames > 0, *exportFormat != ""} {
		if on {
			commands++
		}
	}
	if commands > 1 {
		return fmt.Errorf("-perft, -stats, -selfplay and -export are mutually exclusive: %w", errors.ErrInvalidConfig)
	}
	if *listGames < 0 || *perftDepth < 0 {
		return fmt.Errorf("-games and -perft must not be negative: %w", errors.ErrInvalidConfig)
	}
	return nil
}
