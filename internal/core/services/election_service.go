package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/adi3433/DS-project/internal/core/domain"
	"github.com/adi3433/DS-project/internal/core/ports"
)

// electionService is the vote-casting transaction. Every mutating operation
// runs under the election gate, so ledger sequence assignment is globally
// serialized and undo can never race a concurrent cast.
type electionService struct {
	state       *ElectionState
	store       ports.Store
	verifiers   ports.CredentialVerifierFactory
	undoEnabled bool
	now         func() time.Time
}

func NewElectionService(state *ElectionState, store ports.Store, verifiers ports.CredentialVerifierFactory, undoEnabled bool) ports.ElectionService {
	return &electionService{
		state:       state,
		store:       store,
		verifiers:   verifiers,
		undoEnabled: undoEnabled,
		now:         time.Now,
	}
}

// Cast runs the gates in order: code redemption, duplicate check, candidate
// check. All persistent writes happen inside one transaction; the in-memory
// projections are touched only after the commit, so a rejected cast leaves
// every structure exactly as it was.
func (s *electionService) Cast(ctx context.Context, input ports.CastInput) (domain.CastReceipt, error) {
	if err := s.state.acquire(ctx); err != nil {
		return domain.CastReceipt{}, err
	}
	defer s.state.release()

	var (
		receipt domain.CastReceipt
		event   domain.CastEvent
	)
	err := s.store.WithinTx(ctx, func(tx ports.TxRepos) error {
		code, err := s.verifiers.Bind(tx).Redeem(ctx, input.Code)
		if err != nil {
			return err
		}

		if rec, ok := s.state.index.Lookup(code.IdentityDigest); ok && rec.HasVoted {
			return domain.ErrAlreadyVoted
		}
		voter, err := tx.Voters().GetByDigest(ctx, code.IdentityDigest)
		if err != nil {
			return err
		}
		if voter == nil {
			return domain.ErrVoterNotFound
		}
		if voter.HasVoted {
			return domain.ErrAlreadyVoted
		}

		if !s.state.tally.Contains(input.CandidateID) {
			return domain.ErrUnknownCandidate
		}

		if err := tx.Voters().SetHasVoted(ctx, code.IdentityDigest, true); err != nil {
			return err
		}

		headSeq, headDigest, err := tx.Ballots().Head(ctx)
		if err != nil {
			return err
		}
		nonce := make([]byte, 32)
		if _, err := rand.Read(nonce); err != nil {
			return fmt.Errorf("failed to generate ballot nonce: %w", err)
		}
		now := s.now()
		ballot := domain.Ballot{
			Sequence:    headSeq + 1,
			Digest:      domain.BallotDigest(nonce, input.CandidateID, headDigest),
			CandidateID: input.CandidateID,
			PrevDigest:  headDigest,
			CreatedAt:   now,
		}
		if err := tx.Ballots().Insert(ctx, ballot); err != nil {
			return err
		}

		event = domain.NewCastEvent(now, code.IdentityDigest, code.CodeDigest, ballot.Digest, ballot.CandidateID, ballot.Sequence)
		if err := tx.Audit().Insert(ctx, event); err != nil {
			return err
		}

		receipt = domain.CastReceipt{
			BallotDigest: ballot.Digest,
			Sequence:     ballot.Sequence,
			CreatedAt:    now,
		}
		return nil
	})
	if err != nil {
		return domain.CastReceipt{}, asRejection(err,
			domain.ErrInvalidOrUsedCode,
			domain.ErrAlreadyVoted,
			domain.ErrVoterNotFound,
			domain.ErrUnknownCandidate,
		)
	}

	// Ledger write is committed; projections follow.
	s.state.tally.Increment(event.CandidateID)
	s.state.index.Upsert(domain.VoterRecord{IdentityDigest: event.IdentityDigest, HasVoted: true})
	s.state.audit.Push(event)

	return receipt, nil
}

// Undo reverses the most recent cast as one unit: ledger row removed (only
// while it is still the highest sequence), voter and access code restored,
// UNDO event recorded. A popped non-CAST event is consumed and not restored.
func (s *electionService) Undo(ctx context.Context) (domain.UndoEvent, error) {
	if !s.undoEnabled {
		return domain.UndoEvent{}, domain.ErrUndoDisabled
	}
	if err := s.state.acquire(ctx); err != nil {
		return domain.UndoEvent{}, err
	}
	defer s.state.release()

	popped, err := s.state.audit.Pop()
	if err != nil {
		return domain.UndoEvent{}, err
	}
	cast, ok := popped.(domain.CastEvent)
	if !ok {
		return domain.UndoEvent{}, domain.ErrUnsupportedUndoTarget
	}

	undo := domain.NewUndoEvent(s.now(), cast)
	err = s.store.WithinTx(ctx, func(tx ports.TxRepos) error {
		if _, err := tx.Ballots().RemoveHighest(ctx, cast.Sequence); err != nil {
			return err
		}
		if err := tx.Voters().SetHasVoted(ctx, cast.IdentityDigest, false); err != nil {
			return err
		}
		if err := tx.Codes().Restore(ctx, cast.CodeDigest); err != nil {
			return err
		}
		return tx.Audit().Insert(ctx, undo)
	})
	if err != nil {
		// Failed undo must leave state observably unchanged, so the cast
		// event goes back on the log.
		s.state.audit.Push(cast)
		return domain.UndoEvent{}, asRejection(err, domain.ErrSequenceConflict)
	}

	s.state.tally.Decrement(cast.CandidateID)
	s.state.index.SetHasVoted(cast.IdentityDigest, false)
	s.state.audit.Push(undo)

	return undo, nil
}

// Rebuild recomputes the projections and the undo log from persistent state.
// Run at startup and by any resynchronization pass; the ledger is truth, the
// projections are derived.
func (s *electionService) Rebuild(ctx context.Context) error {
	if err := s.state.acquire(ctx); err != nil {
		return err
	}
	defer s.state.release()

	ballots, err := s.store.Ballots().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load ledger: %w", err)
	}
	s.state.tally.Reset()
	for _, b := range ballots {
		if !s.state.tally.Increment(b.CandidateID) {
			return fmt.Errorf("ledger references unknown candidate %q", b.CandidateID)
		}
	}

	voters, err := s.store.Voters().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load voters: %w", err)
	}
	s.state.index.Clear()
	for _, v := range voters {
		s.state.index.Upsert(v)
	}

	events, err := s.store.Audit().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to load audit events: %w", err)
	}
	s.state.audit = rebuildAuditLog(events)

	return nil
}

// asRejection passes the listed gate rejections through untouched and tags
// anything else from the transaction as an internal failure.
func asRejection(err error, rejections ...error) error {
	for _, r := range rejections {
		if errors.Is(err, r) {
			return err
		}
	}
	return fmt.Errorf("%w: %v", domain.ErrInternal, err)
}

// rebuildAuditLog replays persisted events oldest first. A cast that was
// later undone is no longer undoable history, so the matching UNDO removes
// it from the replay before both land on the log.
func rebuildAuditLog(events []domain.AuditEvent) *domain.AuditLog {
	replay := make([]domain.AuditEvent, 0, len(events))
	for _, e := range events {
		if u, ok := e.(domain.UndoEvent); ok {
			for i := len(replay) - 1; i >= 0; i-- {
				if replay[i].EventID() == u.UndoneEventID {
					replay = append(replay[:i], replay[i+1:]...)
					break
				}
			}
		}
		replay = append(replay, e)
	}
	log := domain.NewAuditLog()
	for _, e := range replay {
		log.Push(e)
	}
	return log
}
