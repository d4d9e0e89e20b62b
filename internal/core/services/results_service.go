package services

import (
	"context"

	"github.com/adi3433/DS-project/internal/core/domain"
	"github.com/adi3433/DS-project/internal/core/ports"
)

type resultsService struct {
	state       *ElectionState
	store       ports.Store
	undoEnabled bool
}

func NewResultsService(state *ElectionState, store ports.Store, undoEnabled bool) ports.ResultsService {
	return &resultsService{
		state:       state,
		store:       store,
		undoEnabled: undoEnabled,
	}
}

func (s *resultsService) Results(ctx context.Context) (ports.Results, error) {
	if err := s.state.acquire(ctx); err != nil {
		return ports.Results{}, err
	}
	defer s.state.release()

	out := ports.Results{
		Ranked:     s.state.tally.Ranked(),
		TotalVotes: s.state.tally.TotalVotes(),
	}
	if w, ok := s.state.tally.Winner(); ok {
		out.Winner = &w
	}
	return out, nil
}

func (s *resultsService) VerifyBallot(ctx context.Context, digest string) (*domain.Ballot, error) {
	ballot, err := s.store.Ballots().FindByDigest(ctx, digest)
	if err != nil {
		return nil, err
	}
	if ballot == nil {
		return nil, domain.ErrBallotNotFound
	}
	return ballot, nil
}

// Stats reads the store counts and the projection sizes under one gate hold,
// so a cast committing mid-read cannot skew the response.
func (s *resultsService) Stats(ctx context.Context) (ports.SystemStats, error) {
	if err := s.state.acquire(ctx); err != nil {
		return ports.SystemStats{}, err
	}
	defer s.state.release()

	totalVoters, err := s.store.Voters().Count(ctx)
	if err != nil {
		return ports.SystemStats{}, err
	}
	voted, err := s.store.Voters().CountVoted(ctx)
	if err != nil {
		return ports.SystemStats{}, err
	}
	ballots, err := s.store.Ballots().Count(ctx)
	if err != nil {
		return ports.SystemStats{}, err
	}

	return ports.SystemStats{
		TotalVoters:     totalVoters,
		VotedCount:      voted,
		RemainingVoters: totalVoters - voted,
		TotalBallots:    ballots,
		IndexSize:       s.state.index.Len(),
		AuditDepth:      s.state.audit.Len(),
		UndoEnabled:     s.undoEnabled,
	}, nil
}
