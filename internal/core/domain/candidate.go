package domain

import (
	"sort"
	"time"
)

type Candidate struct {
	ID        string    `json:"candidate_id"`
	Name      string    `json:"name"`
	VoteCount uint64    `json:"vote_count"`
	CreatedAt time.Time `json:"created_at,omitempty"`
}

// CandidateTally is the in-memory tally projection: a fixed-capacity table of
// candidates in insertion order. It is derived state; the ballot ledger is
// authoritative and the tally is rebuilt from it on startup.
type CandidateTally struct {
	capacity int
	entries  []Candidate
}

func NewCandidateTally(capacity int) *CandidateTally {
	return &CandidateTally{
		capacity: capacity,
		entries:  make([]Candidate, 0, capacity),
	}
}

func (t *CandidateTally) Len() int {
	return len(t.entries)
}

func (t *CandidateTally) Capacity() int {
	return t.capacity
}

// Insert registers a candidate with a zero count. It fails without mutating
// state when the table is full or the id is already present.
func (t *CandidateTally) Insert(id, name string) error {
	if len(t.entries) >= t.capacity {
		return ErrCapacity
	}
	if t.indexOf(id) != -1 {
		return ErrDuplicateCandidate
	}
	t.entries = append(t.entries, Candidate{ID: id, Name: name})
	return nil
}

func (t *CandidateTally) indexOf(id string) int {
	for i := range t.entries {
		if t.entries[i].ID == id {
			return i
		}
	}
	return -1
}

func (t *CandidateTally) Contains(id string) bool {
	return t.indexOf(id) != -1
}

func (t *CandidateTally) Get(id string) (Candidate, bool) {
	i := t.indexOf(id)
	if i == -1 {
		return Candidate{}, false
	}
	return t.entries[i], true
}

// Increment adds one vote to the candidate's count. Returns false for an
// unknown id.
func (t *CandidateTally) Increment(id string) bool {
	i := t.indexOf(id)
	if i == -1 {
		return false
	}
	t.entries[i].VoteCount++
	return true
}

// Decrement removes one vote, flooring at zero. Returns false for an unknown
// id.
func (t *CandidateTally) Decrement(id string) bool {
	i := t.indexOf(id)
	if i == -1 {
		return false
	}
	if t.entries[i].VoteCount > 0 {
		t.entries[i].VoteCount--
	}
	return true
}

// SetCount overwrites a candidate's count. Used by projection rebuilds.
func (t *CandidateTally) SetCount(id string, count uint64) bool {
	i := t.indexOf(id)
	if i == -1 {
		return false
	}
	t.entries[i].VoteCount = count
	return true
}

// Reset zeroes every count, keeping the candidate set intact.
func (t *CandidateTally) Reset() {
	for i := range t.entries {
		t.entries[i].VoteCount = 0
	}
}

// Ranked returns candidates ordered by vote count descending. The sort is
// stable, so ties keep insertion order.
func (t *CandidateTally) Ranked() []Candidate {
	out := make([]Candidate, len(t.entries))
	copy(out, t.entries)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VoteCount > out[j].VoteCount
	})
	return out
}

// Winner returns the candidate with the highest count; among equals the
// first-inserted candidate wins. ok is false for an empty table.
func (t *CandidateTally) Winner() (Candidate, bool) {
	if len(t.entries) == 0 {
		return Candidate{}, false
	}
	best := 0
	for i := 1; i < len(t.entries); i++ {
		if t.entries[i].VoteCount > t.entries[best].VoteCount {
			best = i
		}
	}
	return t.entries[best], true
}

func (t *CandidateTally) TotalVotes() uint64 {
	var total uint64
	for i := range t.entries {
		total += t.entries[i].VoteCount
	}
	return total
}
