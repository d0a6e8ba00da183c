package hashing

import (
	"sync"

	"github.com/lgbarn/pinpawn-go/internal/engine"
)

// ThreadSafeDuplicateDetector lets the workers of a self-play batch check
// their finished games against each other.
type ThreadSafeDuplicateDetector struct {
	mu       sync.Mutex
	detector *DuplicateDetector
}

// NewThreadSafeDuplicateDetector creates a detector safe for concurrent use.
// maxCapacity of 0 means unlimited capacity.
func NewThreadSafeDuplicateDetector(exactMatch bool, maxCapacity int) *ThreadSafeDuplicateDetector {
	return &ThreadSafeDuplicateDetector{
		detector: NewDuplicateDetector(exactMatch, maxCapacity),
	}
}

// CheckGame reports whether g duplicates a game already checked, and
// remembers it otherwise. Which of two identical games counts as the
// duplicate depends on scheduling; the count does not.
func (d *ThreadSafeDuplicateDetector) CheckGame(g *engine.Game) bool {
	moves, final := g.Moves(), g.Position()

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.CheckAndAdd(moves, final)
}

// Counts returns the number of unique and duplicate games seen so far.
func (d *ThreadSafeDuplicateDetector) Counts() (unique, duplicates int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.detector.UniqueCount(), d.detector.DuplicateCount()
}
