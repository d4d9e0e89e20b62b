package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adi3433/DS-project/internal/core/ports"
)

// dbtx is the subset of database/sql shared by *sql.DB and *sql.Tx, so every
// repository works both in autocommit mode and inside a transaction scope.
type dbtx interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Store implements ports.Store over postgres.
type Store struct {
	db *sql.DB
	repos
}

type repos struct {
	voters  *voterRepository
	codes   *codeRepository
	ballots *ballotRepository
	audit   *auditRepository
}

func newRepos(q dbtx) repos {
	return repos{
		voters:  &voterRepository{q: q},
		codes:   &codeRepository{q: q},
		ballots: &ballotRepository{q: q},
		audit:   &auditRepository{q: q},
	}
}

func (r repos) Voters() ports.VoterRepository   { return r.voters }
func (r repos) Codes() ports.CodeRepository     { return r.codes }
func (r repos) Ballots() ports.BallotRepository { return r.ballots }
func (r repos) Audit() ports.AuditRepository    { return r.audit }

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, repos: newRepos(db)}
}

// WithinTx runs fn against transaction-bound repositories. The transaction
// commits only when fn returns nil; every other exit path, panics included,
// rolls back.
func (s *Store) WithinTx(ctx context.Context, fn func(tx ports.TxRepos) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	if err := fn(newRepos(tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	committed = true
	return nil
}
