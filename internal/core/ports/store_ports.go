package ports

import (
	"context"

	"github.com/adi3433/DS-project/internal/core/domain"
)

type VoterRepository interface {
	GetByDigest(ctx context.Context, identityDigest string) (*domain.VoterRecord, error)
	Create(ctx context.Context, voter *domain.VoterRecord) error
	SetHasVoted(ctx context.Context, identityDigest string, hasVoted bool) error
	List(ctx context.Context) ([]domain.VoterRecord, error)
	Count(ctx context.Context) (int64, error)
	CountVoted(ctx context.Context) (int64, error)
}

type CodeRepository interface {
	Insert(ctx context.Context, code domain.AccessCode) error
	// Redeem marks the code used and returns the bound identity digest. The
	// check-and-mark is a single atomic statement; a concurrent redemption of
	// the same code sees domain.ErrInvalidOrUsedCode.
	Redeem(ctx context.Context, codeDigest string) (string, error)
	// Restore clears the used flag, for undo of the cast that consumed it.
	Restore(ctx context.Context, codeDigest string) error
}

type BallotRepository interface {
	// Head returns the current highest sequence and its digest, or (0,
	// domain.GenesisDigest) for an empty ledger.
	Head(ctx context.Context) (uint64, string, error)
	Insert(ctx context.Context, ballot domain.Ballot) error
	FindByDigest(ctx context.Context, digest string) (*domain.Ballot, error)
	// RemoveHighest deletes and returns the top ledger entry, but only if it
	// still carries expectedSeq; otherwise domain.ErrSequenceConflict.
	RemoveHighest(ctx context.Context, expectedSeq uint64) (*domain.Ballot, error)
	List(ctx context.Context) ([]domain.Ballot, error)
	Count(ctx context.Context) (int64, error)
}

type AuditRepository interface {
	Insert(ctx context.Context, event domain.AuditEvent) error
	// List returns every persisted event oldest first, for rebuilding the
	// in-memory undo log on startup.
	List(ctx context.Context) ([]domain.AuditEvent, error)
}

// TxRepos is the repository set bound to one transaction scope.
type TxRepos interface {
	Voters() VoterRepository
	Codes() CodeRepository
	Ballots() BallotRepository
	Audit() AuditRepository
}

// Store hands out transaction-scoped repositories. WithinTx commits when fn
// returns nil and rolls back on error or panic; no partial writes escape.
// The TxRepos methods on Store itself run in autocommit mode, for reads.
type Store interface {
	TxRepos
	WithinTx(ctx context.Context, fn func(tx TxRepos) error) error
}

// CandidateCatalog supplies the valid candidate set at startup. The core
// treats it as read-only input.
type CandidateCatalog interface {
	List(ctx context.Context) ([]domain.Candidate, error)
}
