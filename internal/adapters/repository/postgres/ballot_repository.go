package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adi3433/DS-project/internal/core/domain"
)

type ballotRepository struct {
	q dbtx
}

func (r *ballotRepository) Head(ctx context.Context) (uint64, string, error) {
	query := `
		SELECT seq, ballot_digest FROM ballots
		ORDER BY seq DESC LIMIT 1
	`
	var (
		seq    uint64
		digest string
	)
	err := r.q.QueryRowContext(ctx, query).Scan(&seq, &digest)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, domain.GenesisDigest, nil
		}
		return 0, "", fmt.Errorf("failed to read ledger head: %w", err)
	}
	return seq, digest, nil
}

func (r *ballotRepository) Insert(ctx context.Context, ballot domain.Ballot) error {
	query := `
		INSERT INTO ballots (seq, ballot_digest, candidate_id, prev_digest, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.q.ExecContext(ctx, query, ballot.Sequence, ballot.Digest, ballot.CandidateID, ballot.PrevDigest, ballot.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append ballot: %w", err)
	}
	return nil
}

func (r *ballotRepository) FindByDigest(ctx context.Context, digest string) (*domain.Ballot, error) {
	query := `
		SELECT seq, ballot_digest, candidate_id, prev_digest, created_at
		FROM ballots
		WHERE ballot_digest = $1
	`
	var b domain.Ballot
	err := r.q.QueryRowContext(ctx, query, digest).Scan(&b.Sequence, &b.Digest, &b.CandidateID, &b.PrevDigest, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ballot: %w", err)
	}
	return &b, nil
}

// RemoveHighest deletes the top ledger entry only while it still carries
// expectedSeq. Removing anything below the head is forbidden; a mismatch
// means another mutation won and the caller must not remove the wrong row.
func (r *ballotRepository) RemoveHighest(ctx context.Context, expectedSeq uint64) (*domain.Ballot, error) {
	query := `
		DELETE FROM ballots
		WHERE seq = $1 AND seq = (SELECT MAX(seq) FROM ballots)
		RETURNING seq, ballot_digest, candidate_id, prev_digest, created_at
	`
	var b domain.Ballot
	err := r.q.QueryRowContext(ctx, query, expectedSeq).Scan(&b.Sequence, &b.Digest, &b.CandidateID, &b.PrevDigest, &b.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrSequenceConflict
		}
		return nil, fmt.Errorf("failed to remove ledger head: %w", err)
	}
	return &b, nil
}

func (r *ballotRepository) List(ctx context.Context) ([]domain.Ballot, error) {
	query := `
		SELECT seq, ballot_digest, candidate_id, prev_digest, created_at
		FROM ballots
		ORDER BY seq
	`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list ballots: %w", err)
	}
	defer rows.Close()

	var ballots []domain.Ballot
	for rows.Next() {
		var b domain.Ballot
		if err := rows.Scan(&b.Sequence, &b.Digest, &b.CandidateID, &b.PrevDigest, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan ballot: %w", err)
		}
		ballots = append(ballots, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ballots: %w", err)
	}
	return ballots, nil
}

func (r *ballotRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM ballots`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count ballots: %w", err)
	}
	return count, nil
}
