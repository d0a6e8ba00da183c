// commands.go - Non-interactive commands: perft, stats, export and self-play
package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"time"

	"github.com/lgbarn/pinpawn-go/internal/config"
	"github.com/lgbarn/pinpawn-go/internal/engine"
	"github.com/lgbarn/pinpawn-go/internal/output"
	"github.com/lgbarn/pinpawn-go/internal/selfplay"
	"github.com/lgbarn/pinpawn-go/internal/storage"
)

// runPerft prints the node count below each root move and the total.
func runPerft(w io.Writer, fen string, depth int, logger *slog.Logger) error {
	pos := engine.NewPosition()
	if fen != "" {
		var err error
		if pos, err = engine.NewPositionFromFEN(fen); err != nil {
			return err
		}
	}

	start := time.Now()
	divide := pos.Divide(depth)
	moves := make([]string, 0, len(divide))
	total := 0
	for m, n := range divide {
		moves = append(moves, m)
		total += n
	}
	sort.Strings(moves)

	for _, m := range moves {
		fmt.Fprintf(w, "%s: %d\n", m, divide[m])
	}
	fmt.Fprintf(w, "\nNodes searched: %d\n", total)
	logger.Info("perft complete", "depth", depth, "nodes", total, "elapsed", time.Since(start))
	return nil
}

// runStats prints the aggregate results in store and up to limit of the
// most recent games.
func runStats(w io.Writer, store *storage.Store, limit int) error {
	stats, err := store.Stats()
	if err != nil {
		return err
	}
	printStats(w, stats)

	if limit <= 0 {
		return nil
	}
	games, err := store.Games(limit)
	if err != nil {
		return err
	}
	fmt.Fprintln(w)
	for _, g := range games {
		fmt.Fprintf(w, "%s  %-7s  %-10s  %3d plies  %s\n",
			g.PlayedAt.Format(time.RFC3339), g.Result, g.Termination, g.Plies, g.ID)
	}
	return nil
}

func printStats(w io.Writer, stats storage.Stats) {
	fmt.Fprintf(w, "Games played: %d\n", stats.Played)
	fmt.Fprintf(w, "White wins:   %d\n", stats.WhiteWins)
	fmt.Fprintf(w, "Black wins:   %d\n", stats.BlackWins)
	fmt.Fprintf(w, "Draws:        %d\n", stats.Draws)
	fmt.Fprintf(w, "Unfinished:   %d\n", stats.Unfinished)
}

// runExport writes up to limit stored games, oldest first, in cfg.Format.
// A limit of 0 exports every game.
func runExport(w io.Writer, store *storage.Store, cfg *config.ExportConfig, limit int, logger *slog.Logger) error {
	games, err := store.Games(limit)
	if err != nil {
		return err
	}

	gw := output.NewGameWriter(w, cfg)
	for i := len(games) - 1; i >= 0; i-- {
		if err := gw.WriteGame(&games[i]); err != nil {
			return err
		}
	}
	if err := gw.Close(); err != nil {
		return err
	}
	logger.Info("export complete", "format", cfg.Format, "games", len(games))
	return nil
}

// runSelfPlay plays the configured batch and prints its summary. Failed
// games are reported and make the command fail.
func runSelfPlay(ctx context.Context, w io.Writer, cfg *config.Config, store *storage.Store, seed int64, logger *slog.Logger) error {
	settings := selfplay.Settings{
		StartFEN:   cfg.Game.StartFEN,
		WhiteDepth: cfg.Game.Depth,
		BlackDepth: cfg.Game.Depth,
		MaxPlies:   cfg.SelfPlay.MaxPlies,
	}
	opts := []selfplay.Option{
		selfplay.WithWorkers(cfg.SelfPlay.Workers),
		selfplay.WithLogger(logger),
	}
	if store != nil {
		opts = append(opts, selfplay.WithStore(store))
	}

	summary, err := selfplay.NewRunner(settings, opts...).Run(ctx, cfg.SelfPlay.Games, seed)

	printStats(w, summary.Stats)
	fmt.Fprintf(w, "Duplicates:   %d\n", summary.Duplicates)
	for _, gameErr := range summary.Errors {
		fmt.Fprintf(w, "Failed: %v\n", gameErr)
	}

	if err != nil {
		return err
	}
	if len(summary.Errors) > 0 {
		return fmt.Errorf("%d of %d games failed: %w", len(summary.Errors), cfg.SelfPlay.Games, stderrors.Join(summary.Errors...))
	}
	return nil
}
