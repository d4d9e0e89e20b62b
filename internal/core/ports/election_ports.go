package ports

import (
	"context"

	"github.com/adi3433/DS-project/internal/core/domain"
)

type CastInput struct {
	Code        string
	CandidateID string
}

type ElectionService interface {
	// Cast redeems the access code and appends a ballot, or rejects with one
	// of the domain sentinel errors leaving no state change behind.
	Cast(ctx context.Context, input CastInput) (domain.CastReceipt, error)
	// Undo reverses the most recent cast. Administrative, single-step.
	Undo(ctx context.Context) (domain.UndoEvent, error)
	// Rebuild recomputes the tally and voter-status projections and the undo
	// log from persistent state.
	Rebuild(ctx context.Context) error
}

type Results struct {
	Ranked     []domain.Candidate `json:"results"`
	TotalVotes uint64             `json:"total_votes"`
	Winner     *domain.Candidate  `json:"winner,omitempty"`
}

type SystemStats struct {
	TotalVoters     int64 `json:"total_voters"`
	VotedCount      int64 `json:"voted_count"`
	RemainingVoters int64 `json:"remaining_voters"`
	TotalBallots    int64 `json:"total_ballots"`
	IndexSize       int   `json:"index_size"`
	AuditDepth      int   `json:"audit_depth"`
	UndoEnabled     bool  `json:"undo_enabled"`
}

type ResultsService interface {
	Results(ctx context.Context) (Results, error)
	// VerifyBallot reports whether a ballot exists in the ledger by digest.
	// This is an existence check, not a cryptographic inclusion proof.
	VerifyBallot(ctx context.Context, digest string) (*domain.Ballot, error)
	Stats(ctx context.Context) (SystemStats, error)
}

type AuditReporter interface {
	// RecentEvents returns up to limit redacted events, most recent first.
	// Strictly read-only. Contention surfaces as an error, never as an empty
	// trail.
	RecentEvents(ctx context.Context, limit int) ([]domain.AuditEvent, error)
}
