// Package hashing identifies positions and games: Zobrist position hashes
// and duplicate detection across games.
package hashing

import (
	"github.com/cespare/xxhash/v2"

	"github.com/lgbarn/pinpawn-go/internal/chess"
	"github.com/lgbarn/pinpawn-go/internal/engine"
)

// DuplicateDetector tracks finished games for duplicate detection.
type DuplicateDetector struct {
	// hashTable stores signatures keyed by final position hash
	hashTable map[uint64][]GameSignature
	// useExactMatch also compares the move sequence
	useExactMatch bool
	// duplicateCount tracks number of duplicates found
	duplicateCount int
	// maxCapacity limits stored signatures; 0 is unlimited
	maxCapacity int
	size        int
}

// GameSignature stores identifying information about a game.
type GameSignature struct {
	// Hash is the Zobrist hash of the final position
	Hash uint64
	// MoveCount is the number of plies in the game
	MoveCount int
	// SequenceHash is the hash of the move text
	SequenceHash uint64
}

// NewDuplicateDetector creates a new duplicate detector. With exactMatch,
// games must share their move sequence as well as their final position.
// maxCapacity of 0 means unlimited capacity.
func NewDuplicateDetector(exactMatch bool, maxCapacity int) *DuplicateDetector {
	return &DuplicateDetector{
		hashTable:     make(map[uint64][]GameSignature),
		useExactMatch: exactMatch,
		maxCapacity:   maxCapacity,
	}
}

// CheckAndAdd checks if a game is a duplicate and adds it to the hash table.
// Returns true if the game is a duplicate. Once full, new games are checked
// but not stored.
func (d *DuplicateDetector) CheckAndAdd(moves []chess.Move, final *engine.Position) bool {
	if final == nil {
		return false
	}

	sig := GameSignature{
		Hash:         Zobrist(final),
		MoveCount:    len(moves),
		SequenceHash: MoveSequenceHash(moves),
	}

	for _, existing := range d.hashTable[sig.Hash] {
		if d.signaturesMatch(sig, existing) {
			d.duplicateCount++
			return true
		}
	}

	if d.IsFull() {
		return false
	}
	d.hashTable[sig.Hash] = append(d.hashTable[sig.Hash], sig)
	d.size++
	return false
}

// signaturesMatch checks if two game signatures match.
func (d *DuplicateDetector) signaturesMatch(a, b GameSignature) bool {
	if a.Hash != b.Hash {
		return false
	}
	if d.useExactMatch {
		return a.MoveCount == b.MoveCount && a.SequenceHash == b.SequenceHash
	}
	return true
}

// DuplicateCount returns the number of duplicates detected.
func (d *DuplicateDetector) DuplicateCount() int {
	return d.duplicateCount
}

// UniqueCount returns the number of unique games.
func (d *DuplicateDetector) UniqueCount() int {
	return d.size
}

// IsFull returns true if the detector has reached its capacity limit.
func (d *DuplicateDetector) IsFull() bool {
	return d.maxCapacity > 0 && d.size >= d.maxCapacity
}

// MoveSequenceHash hashes the text of a move list.
func MoveSequenceHash(moves []chess.Move) uint64 {
	h := xxhash.New()
	for _, m := range moves {
		_, _ = h.WriteString(m.String())
		_, _ = h.WriteString(" ")
	}
	return h.Sum64()
}
