// pinpawn plays chess in the terminal against a person or a minimax engine,
// runs computer self-play batches and keeps a database of finished games.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/lgbarn/pinpawn-go/internal/config"
	"github.com/lgbarn/pinpawn-go/internal/errors"
	"github.com/lgbarn/pinpawn-go/internal/storage"
	"github.com/lgbarn/pinpawn-go/internal/ui"
)

const programVersion = "0.1.0"

func main() {
	flag.Usage = usage
	flag.Parse()

	if *help {
		usage()
		os.Exit(0)
	}

	if *version {
		fmt.Printf("pinpawn version %s\n", programVersion)
		os.Exit(0)
	}

	if err := checkFlagCombinations(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := applyFlags(cfg, flag.Visit); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	logger, err := setupLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err = run(ctx, cfg, logger)
	stop()
	if err != nil {
		logger.Error("pinpawn failed", "error", err)
		os.Exit(1)
	}
}

// run dispatches to the command selected by the flags.
func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if *perftDepth > 0 {
		return runPerft(cfg.Output, cfg.Game.StartFEN, *perftDepth, logger)
	}

	store, err := openStore(cfg, logger)
	if err != nil {
		return err
	}
	if store != nil {
		defer store.Close()
	}

	seed := resolveSeed(cfg.Game.Seed)
	logger.Debug("starting", "seed", seed)

	switch {
	case *showStats:
		if store == nil {
			return fmt.Errorf("-stats needs a database directory (-db or [storage] dir): %w", errors.ErrInvalidConfig)
		}
		return runStats(cfg.Output, store, *listGames)
	case *exportFormat != "":
		if store == nil {
			return fmt.Errorf("-export needs a database directory (-db or [storage] dir): %w", errors.ErrInvalidConfig)
		}
		return runExport(cfg.Output, store, &cfg.Export, *listGames, logger)
	case cfg.SelfPlay.Games > 0:
		return runSelfPlay(ctx, cfg.Output, cfg, store, seed, logger)
	}

	display, err := openDisplay(cfg)
	if err != nil {
		return err
	}
	defer display.Close()

	s, err := newSession(cfg, display, store, seed, logger)
	if err != nil {
		return err
	}
	_, err = s.run()
	return err
}

// setupLogger installs a text logger on cfg.LogFile as the default logger.
func setupLogger(cfg *config.Config) (*slog.Logger, error) {
	level, err := cfg.Log.SlogLevel()
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(cfg.LogFile, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, nil
}

// openStore opens the game database, or returns nil when storage is disabled.
func openStore(cfg *config.Config, logger *slog.Logger) (*storage.Store, error) {
	if !cfg.Storage.Enabled() {
		return nil, nil
	}
	return storage.Open(cfg.Storage.Dir, storage.WithLogger(logger.With("component", "storage")))
}

func openDisplay(cfg *config.Config) (ui.Display, error) {
	if cfg.Game.TUI {
		return ui.OpenScreen()
	}
	var opts []ui.TextOption
	if *asciiMode {
		opts = append(opts, ui.WithASCII())
	}
	return ui.NewTextDisplay(cfg.Input, cfg.Output, opts...), nil
}

// resolveSeed replaces the zero seed with one taken from the clock.
func resolveSeed(seed int64) int64 {
	if seed != 0 {
		return seed
	}
	return time.Now().UnixNano()
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: pinpawn [options]\n\n")
	fmt.Fprintf(os.Stderr, "Play chess against a person or the computer.\n\n")
	fmt.Fprintf(os.Stderr, "Options:\n")
	flag.PrintDefaults()
	fmt.Fprintf(os.Stderr, "\nDuring a game:\n")
	fmt.Fprintf(os.Stderr, "  e2e4   move a piece (append q, r, b or n to choose a promotion)\n")
	fmt.Fprintf(os.Stderr, "  moves  list the legal moves\n")
	fmt.Fprintf(os.Stderr, "  board  redraw the board\n")
	fmt.Fprintf(os.Stderr, "  exit   leave the game\n")
}
