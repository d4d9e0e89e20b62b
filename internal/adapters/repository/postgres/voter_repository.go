package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adi3433/DS-project/internal/core/domain"
)

type voterRepository struct {
	q dbtx
}

func (r *voterRepository) GetByDigest(ctx context.Context, identityDigest string) (*domain.VoterRecord, error) {
	query := `
		SELECT identity_digest, has_voted, registered_at
		FROM voters
		WHERE identity_digest = $1
	`
	var v domain.VoterRecord
	err := r.q.QueryRowContext(ctx, query, identityDigest).Scan(&v.IdentityDigest, &v.HasVoted, &v.RegisteredAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get voter: %w", err)
	}
	return &v, nil
}

func (r *voterRepository) Create(ctx context.Context, voter *domain.VoterRecord) error {
	query := `
		INSERT INTO voters (identity_digest, has_voted, registered_at)
		VALUES ($1, $2, $3)
	`
	_, err := r.q.ExecContext(ctx, query, voter.IdentityDigest, voter.HasVoted, voter.RegisteredAt)
	if err != nil {
		return fmt.Errorf("failed to create voter: %w", err)
	}
	return nil
}

func (r *voterRepository) SetHasVoted(ctx context.Context, identityDigest string, hasVoted bool) error {
	query := `UPDATE voters SET has_voted = $2 WHERE identity_digest = $1`
	res, err := r.q.ExecContext(ctx, query, identityDigest, hasVoted)
	if err != nil {
		return fmt.Errorf("failed to update voter status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to update voter status: %w", err)
	}
	if affected == 0 {
		return domain.ErrVoterNotFound
	}
	return nil
}

func (r *voterRepository) List(ctx context.Context) ([]domain.VoterRecord, error) {
	query := `SELECT identity_digest, has_voted, registered_at FROM voters ORDER BY registered_at`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list voters: %w", err)
	}
	defer rows.Close()

	var voters []domain.VoterRecord
	for rows.Next() {
		var v domain.VoterRecord
		if err := rows.Scan(&v.IdentityDigest, &v.HasVoted, &v.RegisteredAt); err != nil {
			return nil, fmt.Errorf("failed to scan voter: %w", err)
		}
		voters = append(voters, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating voters: %w", err)
	}
	return voters, nil
}

func (r *voterRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM voters`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count voters: %w", err)
	}
	return count, nil
}

func (r *voterRepository) CountVoted(ctx context.Context) (int64, error) {
	var count int64
	err := r.q.QueryRowContext(ctx, `SELECT COUNT(*) FROM voters WHERE has_voted`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count voted voters: %w", err)
	}
	return count, nil
}
