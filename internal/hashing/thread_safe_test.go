package hashing

import (
	"sync"
	"testing"

	"github.com/lgbarn/pinpawn-go/internal/engine"
	"github.com/lgbarn/pinpawn-go/internal/testutil"
)

func TestThreadSafeDuplicateDetector_Concurrent(t *testing.T) {
	detector := NewThreadSafeDuplicateDetector(true, 0)

	// Ten workers each check the same two games five times.
	games := []*engine.Game{
		testutil.MustGame(t, "", "e2e4", "e7e5", "g1f3"),
		testutil.MustGame(t, "", "d2d4", "d7d5"),
	}
	const numWorkers = 10
	const rounds = 5

	var wg sync.WaitGroup
	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < rounds; j++ {
				for _, g := range games {
					detector.CheckGame(g)
				}
			}
		}()
	}
	wg.Wait()

	unique, duplicates := detector.Counts()
	testutil.AssertEqual(t, unique, 2, "unique")
	testutil.AssertEqual(t, duplicates, numWorkers*rounds*len(games)-2, "duplicates")
}

func TestThreadSafeDuplicateDetector_CheckGame(t *testing.T) {
	detector := NewThreadSafeDuplicateDetector(true, 0)

	if detector.CheckGame(testutil.MustGame(t, "", "g1f3", "g8f6", "b1c3")) {
		t.Error("first game reported as duplicate")
	}
	if detector.CheckGame(testutil.MustGame(t, "", "b1c3", "g8f6", "g1f3")) {
		t.Error("transposed game reported as duplicate by the exact detector")
	}
	if !detector.CheckGame(testutil.MustGame(t, "", "g1f3", "g8f6", "b1c3")) {
		t.Error("identical game not reported")
	}
	if detector.CheckGame(engine.NewGame()) {
		t.Error("empty game reported as duplicate")
	}
}

func TestThreadSafeDuplicateDetector_MaxCapacity(t *testing.T) {
	detector := NewThreadSafeDuplicateDetector(false, 2)
	for _, script := range [][]string{{"e2e4"}, {"d2d4"}, {"c2c4"}} {
		detector.CheckGame(testutil.MustGame(t, "", script...))
	}
	unique, duplicates := detector.Counts()
	testutil.AssertEqual(t, unique, 2, "unique stops at capacity")
	testutil.AssertEqual(t, duplicates, 0)
}
