package services

import (
	"context"
	"fmt"
	"time"

	"github.com/adi3433/DS-project/internal/core/domain"
	"github.com/adi3433/DS-project/internal/core/ports"
)

// ElectionState holds the shared in-memory side of the election: the two
// projections, the LIFO undo log, and the gate serializing every mutating
// operation. Cast and undo contend for the same gate because undo touches the
// same highest-sequence ledger slot a concurrent cast would create.
type ElectionState struct {
	gate    chan struct{}
	maxWait time.Duration

	tally *domain.CandidateTally
	index *domain.VoterStatusIndex
	audit *domain.AuditLog
}

const defaultGateWait = 5 * time.Second

func NewElectionState(tallyCapacity, indexBuckets int) *ElectionState {
	return &ElectionState{
		gate:    make(chan struct{}, 1),
		maxWait: defaultGateWait,
		tally:   domain.NewCandidateTally(tallyCapacity),
		index:   domain.NewVoterStatusIndex(indexBuckets),
		audit:   domain.NewAuditLog(),
	}
}

// WithGateWait overrides the bounded wait, for tests.
func (s *ElectionState) WithGateWait(d time.Duration) *ElectionState {
	s.maxWait = d
	return s
}

// acquire takes the gate, waiting at most maxWait. Contention past the bound
// surfaces as ErrBusy instead of blocking indefinitely.
func (s *ElectionState) acquire(ctx context.Context) error {
	timer := time.NewTimer(s.maxWait)
	defer timer.Stop()
	select {
	case s.gate <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return domain.ErrBusy
	}
}

func (s *ElectionState) release() {
	<-s.gate
}

// LoadCatalog seeds the tally with the candidate set. The catalog is
// read-only startup input; it defines which candidate ids a cast may name.
func (s *ElectionState) LoadCatalog(ctx context.Context, catalog ports.CandidateCatalog) error {
	candidates, err := catalog.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load candidate catalog: %w", err)
	}
	if err := s.acquire(ctx); err != nil {
		return err
	}
	defer s.release()

	for _, c := range candidates {
		if err := s.tally.Insert(c.ID, c.Name); err != nil {
			return fmt.Errorf("failed to seed candidate %q: %w", c.ID, err)
		}
	}
	return nil
}
