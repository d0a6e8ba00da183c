package selfplay

import (
	"context"
	stderrors "errors"
	"log/slog"
	"sort"

	"github.com/lgbarn/pinpawn-go/internal/hashing"
	"github.com/lgbarn/pinpawn-go/internal/storage"
	"github.com/lgbarn/pinpawn-go/internal/worker"
)

// Summary aggregates one batch of games.
type Summary struct {
	Stats      storage.Stats
	Duplicates int                  // games identical to another game of the batch
	Games      []storage.GameRecord // in batch order
	Errors     []error              // one *errors.GameError per failed game
}

// Runner plays batches of games on a worker pool. Every game gets its own
// position and searcher, so workers share nothing but the result channel.
type Runner struct {
	settings Settings
	workers  int
	store    *storage.Store
	logger   *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithWorkers sets the number of games played at once.
func WithWorkers(n int) Option {
	return func(r *Runner) {
		if n >= 1 {
			r.workers = n
		}
	}
}

// WithStore records every finished game in store.
func WithStore(store *storage.Store) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRunner creates a runner playing games with settings.
func NewRunner(settings Settings, opts ...Option) *Runner {
	r := &Runner{
		settings: settings,
		workers:  1,
		logger:   slog.Default().With("component", "selfplay"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run plays games games. Game i is seeded with seed+i, so a batch is
// reproducible for a fixed seed. Cancelling ctx stops games that have not
// started; the summary then covers the games that finished. The returned
// error is non-nil only when ctx was cancelled or a record could not be
// stored; individual game failures are collected in Summary.Errors.
func (r *Runner) Run(ctx context.Context, games int, seed int64) (Summary, error) {
	var summary Summary
	if games <= 0 {
		return summary, nil
	}

	dupes := hashing.NewThreadSafeDuplicateDetector(true, 0)
	processFunc := func(item worker.WorkItem) worker.ProcessResult {
		return r.play(item, dupes)
	}

	pool := worker.NewPool(r.workers, min(games, 100), processFunc)
	pool.Start()

	go func() {
		defer pool.Close()
		for i := 0; i < games; i++ {
			select {
			case <-ctx.Done():
				pool.Stop()
				return
			default:
			}
			pool.Submit(worker.WorkItem{Index: i, Seed: seed + int64(i)})
		}
	}()

	type indexed struct {
		index int
		rec   storage.GameRecord
	}
	var finished []indexed
	var storeErr error

	// Single consumer: summary and store are only touched here.
	for res := range pool.Results() {
		if ctx.Err() != nil {
			pool.Stop()
		}
		if res.Error != nil {
			r.logger.Warn("game failed", "game", res.Index+1, "error", res.Error)
			summary.Errors = append(summary.Errors, res.Error)
			continue
		}

		summary.Stats.Add(res.Record.Result)
		if res.Duplicate {
			summary.Duplicates++
		}
		if r.store != nil && storeErr == nil {
			if _, err := r.store.RecordGame(res.Record); err != nil {
				storeErr = err
				pool.Stop()
			}
		}
		finished = append(finished, indexed{res.Index, *res.Record})
	}

	sort.Slice(finished, func(i, j int) bool { return finished[i].index < finished[j].index })
	for _, f := range finished {
		summary.Games = append(summary.Games, f.rec)
	}

	r.logger.Info("self-play batch complete",
		"games", summary.Stats.Played,
		"white_wins", summary.Stats.WhiteWins,
		"black_wins", summary.Stats.BlackWins,
		"draws", summary.Stats.Draws,
		"unfinished", summary.Stats.Unfinished,
		"duplicates", summary.Duplicates,
		"failed", len(summary.Errors),
	)
	return summary, stderrors.Join(storeErr, ctx.Err())
}

func (r *Runner) play(item worker.WorkItem, dupes *hashing.ThreadSafeDuplicateDetector) worker.ProcessResult {
	out, err := PlayGame(r.settings, item.Index+1, item.Seed, r.logger)
	if err != nil {
		return worker.ProcessResult{Index: item.Index, Error: err}
	}
	return worker.ProcessResult{
		Index:     item.Index,
		Record:    out.Record(r.settings, item.Seed),
		Moves:     out.Game.Moves(),
		Final:     out.Game.Position(),
		Duplicate: dupes.CheckGame(out.Game),
	}
}
