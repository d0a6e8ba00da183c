package worker

import (
	"math/rand"
	"testing"

	"github.com/lgbarn/pinpawn-go/internal/engine"
	"github.com/lgbarn/pinpawn-go/internal/storage"
)

// randomGameFunc plays up to plies random legal moves seeded by the item.
func randomGameFunc(plies int) ProcessFunc {
	return func(item WorkItem) ProcessResult {
		rng := rand.New(rand.NewSource(item.Seed))
		g := engine.NewGame()
		for i := 0; i < plies && !g.Status().IsTerminal(); i++ {
			legal := g.LegalMoves()
			if _, err := g.Play(legal[rng.Intn(len(legal))]); err != nil {
				return ProcessResult{Index: item.Index, Error: err}
			}
		}
		return ProcessResult{
			Index:  item.Index,
			Record: storage.NewGameRecord(g, storage.TerminationFor(g.Status()), 0, 0),
			Moves:  g.Moves(),
			Final:  g.Position(),
		}
	}
}

// playBatch submits games seeded base..base+n-1 and returns the results by index.
func playBatch(t *testing.T, pool *Pool, n int, base int64) map[int]ProcessResult {
	t.Helper()
	pool.Start()
	go func() {
		for i := 0; i < n; i++ {
			pool.Submit(WorkItem{Index: i, Seed: base + int64(i)})
		}
		pool.Close()
	}()

	byIndex := make(map[int]ProcessResult)
	for res := range pool.Results() {
		if res.Error != nil {
			t.Errorf("game %d: %v", res.Index, res.Error)
		}
		if _, dup := byIndex[res.Index]; dup {
			t.Errorf("game %d reported twice", res.Index)
		}
		byIndex[res.Index] = res
	}
	return byIndex
}

func TestPoolPlaysGames(t *testing.T) {
	tests := []struct {
		name    string
		workers int
		buffer  int
		games   int
		plies   int
	}{
		{"single worker", 1, 2, 4, 10},
		{"more workers than games", 6, 1, 3, 8},
		{"small buffer", 3, 1, 9, 12},
		{"long games", 2, 4, 4, 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPoolWithOptions(randomGameFunc(tt.plies), WithWorkers(tt.workers), WithBufferSize(tt.buffer))
			byIndex := playBatch(t, pool, tt.games, 100)
			if len(byIndex) != tt.games {
				t.Fatalf("results = %d; want %d", len(byIndex), tt.games)
			}

			for i, res := range byIndex {
				if res.Record == nil || res.Final == nil {
					t.Fatalf("game %d: missing record or final position", i)
				}
				if res.Record.Plies != len(res.Moves) {
					t.Errorf("game %d: record plies = %d; moves = %d", i, res.Record.Plies, len(res.Moves))
				}
				if len(res.Moves) > tt.plies {
					t.Errorf("game %d: played %d plies; cap is %d", i, len(res.Moves), tt.plies)
				}
			}
		})
	}
}

func TestPoolPlaysGames_Deterministic(t *testing.T) {
	finals := func() map[int]string {
		fens := make(map[int]string)
		for i, res := range playBatch(t, NewPool(4, 2, randomGameFunc(20)), 8, 7) {
			fens[i] = res.Final.ToFEN()
		}
		return fens
	}

	a, b := finals(), finals()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("game %d: same seed produced %q and %q", i, a[i], b[i])
		}
	}
}

func TestPoolStop_SkipsUnstartedGames(t *testing.T) {
	t.Run("stopped before start", func(t *testing.T) {
		pool := NewPool(2, 10, randomGameFunc(10))
		for i := 0; i < 5; i++ {
			pool.Submit(WorkItem{Index: i, Seed: int64(i)})
		}
		pool.Stop()
		if !pool.IsStopped() {
			t.Fatal("IsStopped() = false after Stop()")
		}
		pool.Start()
		go pool.Close()

		for res := range pool.Results() {
			t.Errorf("game %d was played after Stop()", res.Index)
		}
	})

	t.Run("stopped by the first game", func(t *testing.T) {
		var pool *Pool
		games := randomGameFunc(10)
		pool = NewPool(1, 10, func(item WorkItem) ProcessResult {
			res := games(item)
			pool.Stop()
			return res
		})
		byIndex := playBatch(t, pool, 6, 1)
		if len(byIndex) != 1 {
			t.Errorf("played %d games; want only the one in progress", len(byIndex))
		}
		if _, ok := byIndex[0]; !ok {
			t.Error("the game in progress was not reported")
		}
	})
}

func TestPoolTrySubmit(t *testing.T) {
	pool := NewPool(1, 1, randomGameFunc(4))

	if !pool.TrySubmit(WorkItem{Index: 0, Seed: 1}) {
		t.Error("TrySubmit() into an empty buffer = false")
	}
	if pool.TrySubmit(WorkItem{Index: 1, Seed: 2}) {
		t.Error("TrySubmit() into a full buffer = true")
	}

	pool.Start()
	pool.Stop()
	if pool.TrySubmit(WorkItem{Index: 2, Seed: 3}) {
		t.Error("TrySubmit() after Stop() = true")
	}
	go pool.Close()
	for range pool.Results() {
	}
}

func TestNewPoolWithOptions(t *testing.T) {
	tests := []struct {
		name        string
		opts        []PoolOption
		wantWorkers int
		wantBuffer  int
	}{
		{"defaults", nil, 1, 10},
		{"workers and buffer", []PoolOption{WithWorkers(8), WithBufferSize(100)}, 8, 100},
		{"invalid values ignored", []PoolOption{WithWorkers(0), WithBufferSize(-5)}, 1, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool := NewPoolWithOptions(randomGameFunc(1), tt.opts...)
			if pool.NumWorkers() != tt.wantWorkers {
				t.Errorf("NumWorkers() = %d; want %d", pool.NumWorkers(), tt.wantWorkers)
			}
			if pool.bufferSize != tt.wantBuffer {
				t.Errorf("bufferSize = %d; want %d", pool.bufferSize, tt.wantBuffer)
			}
		})
	}

	if got := NewPool(-1, 10, randomGameFunc(1)).NumWorkers(); got != 1 {
		t.Errorf("NewPool(-1).NumWorkers() = %d; want 1", got)
	}
}

// Meant to be run with -race: every game owns its own Game and RNG.
func TestPoolNoRace(t *testing.T) {
	const games = 40
	byIndex := playBatch(t, NewPool(8, 16, randomGameFunc(30)), games, 500)
	for i := 0; i < games; i++ {
		if _, ok := byIndex[i]; !ok {
			t.Errorf("missing game %d", i)
		}
	}
}
