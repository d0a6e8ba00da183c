// Package storage persists played games and aggregate results in a badger
// database.
package storage

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/lgbarn/pinpawn-go/internal/errors"
)

// Storage keys
const (
	keyStats   = "stats"
	gamePrefix = "game/"
)

// Store wraps a badger database holding game records and stats.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
	seq    atomic.Uint64
	now    func() time.Time

	// writeMu serializes the read-modify-write of the stats key.
	writeMu sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger for the store and the database engine.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the clock used to timestamp records.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Open opens or creates a database in dir.
func Open(dir string, opts ...Option) (*Store, error) {
	return open(badger.DefaultOptions(dir), dir, opts)
}

// OpenInMemory opens a database that lives only as long as the Store.
func OpenInMemory(opts ...Option) (*Store, error) {
	return open(badger.DefaultOptions("").WithInMemory(true), ":memory:", opts)
}

func open(bopts badger.Options, name string, opts []Option) (*Store, error) {
	s := &Store{
		logger: slog.Default().With("component", "storage"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	bopts = bopts.WithLogger(badgerLogger{s.logger})
	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", name, errors.ErrStorage, err)
	}
	s.db = db
	s.logger.Info("storage opened", "dir", name)
	return s, nil
}

// Close closes the database
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	s.logger.Info("storage closed")
	if err != nil {
		return fmt.Errorf("close: %w: %w", errors.ErrStorage, err)
	}
	return nil
}

// RecordGame stores rec and folds its result into the stats in a single
// transaction. It assigns rec.ID and rec.PlayedAt and returns the ID.
func (s *Store) RecordGame(rec *GameRecord) (string, error) {
	now := s.now()
	rec.PlayedAt = now
	rec.ID = fmt.Sprintf("%s%020d-%06d", gamePrefix, now.UnixNano(), s.seq.Add(1))

	data, err := json.Marshal(rec)
	if err != nil {
		return "", fmt.Errorf("encode game: %w: %w", errors.ErrStorage, err)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	err = s.db.Update(func(txn *badger.Txn) error {
		stats, err := loadStats(txn)
		if err != nil {
			return err
		}
		stats.Add(rec.Result)
		statsData, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		if err := txn.Set([]byte(rec.ID), data); err != nil {
			return err
		}
		return txn.Set([]byte(keyStats), statsData)
	})
	if err != nil {
		return "", fmt.Errorf("record game: %w: %w", errors.ErrStorage, err)
	}

	s.logger.Debug("game recorded", "id", rec.ID, "result", rec.Result, "plies", rec.Plies)
	return rec.ID, nil
}

// Stats returns the aggregate results; an empty database has zero stats.
func (s *Store) Stats() (Stats, error) {
	var stats Stats
	err := s.db.View(func(txn *badger.Txn) error {
		var err error
		stats, err = loadStats(txn)
		return err
	})
	if err != nil {
		return Stats{}, fmt.Errorf("load stats: %w: %w", errors.ErrStorage, err)
	}
	return stats, nil
}

func loadStats(txn *badger.Txn) (Stats, error) {
	var stats Stats
	item, err := txn.Get([]byte(keyStats))
	if stderrors.Is(err, badger.ErrKeyNotFound) {
		return stats, nil
	}
	if err != nil {
		return stats, err
	}
	err = item.Value(func(val []byte) error {
		return json.Unmarshal(val, &stats)
	})
	return stats, err
}

// Game loads a single record by ID.
func (s *Store) Game(id string) (*GameRecord, error) {
	if !strings.HasPrefix(id, gamePrefix) {
		return nil, fmt.Errorf("game %q: %w: not a game id", id, errors.ErrStorage)
	}
	rec := &GameRecord{}
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(id))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, rec)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("game %q: %w: %w", id, errors.ErrStorage, err)
	}
	return rec, nil
}

// Games returns up to limit records, most recent first. A limit of 0 or
// less returns every record.
func (s *Store) Games(limit int) ([]GameRecord, error) {
	var games []GameRecord
	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Reverse = true
		opts.Prefix = []byte(gamePrefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		// Reverse iteration starts from the last key sharing the prefix.
		for it.Seek([]byte(gamePrefix + "\xff")); it.ValidForPrefix([]byte(gamePrefix)); it.Next() {
			var rec GameRecord
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &rec)
			}); err != nil {
				return err
			}
			games = append(games, rec)
			if limit > 0 && len(games) >= limit {
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list games: %w: %w", errors.ErrStorage, err)
	}
	return games, nil
}

// badgerLogger routes the database engine's log output through slog.
// Engine info chatter is demoted to debug.
type badgerLogger struct {
	l *slog.Logger
}

func (b badgerLogger) Errorf(format string, args ...interface{}) {
	b.l.Error(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Warningf(format string, args ...interface{}) {
	b.l.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Infof(format string, args ...interface{}) {
	b.l.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}

func (b badgerLogger) Debugf(format string, args ...interface{}) {
	b.l.Debug(strings.TrimSpace(fmt.Sprintf(format, args...)))
}
