package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adi3433/DS-project/internal/core/domain"
)

type codeRepository struct {
	q dbtx
}

func (r *codeRepository) Insert(ctx context.Context, code domain.AccessCode) error {
	query := `
		INSERT INTO otac_codes (code_digest, identity_digest, used, issued_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.q.ExecContext(ctx, query, code.CodeDigest, code.IdentityDigest, code.Used, code.IssuedAt)
	if err != nil {
		return fmt.Errorf("failed to insert access code: %w", err)
	}
	return nil
}

// Redeem is a single-statement check-and-mark: of two concurrent redemptions
// of the same code, exactly one sees a row.
func (r *codeRepository) Redeem(ctx context.Context, codeDigest string) (string, error) {
	query := `
		UPDATE otac_codes SET used = TRUE
		WHERE code_digest = $1 AND NOT used
		RETURNING identity_digest
	`
	var identityDigest string
	err := r.q.QueryRowContext(ctx, query, codeDigest).Scan(&identityDigest)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", domain.ErrInvalidOrUsedCode
		}
		return "", fmt.Errorf("failed to redeem access code: %w", err)
	}
	return identityDigest, nil
}

func (r *codeRepository) Restore(ctx context.Context, codeDigest string) error {
	query := `UPDATE otac_codes SET used = FALSE WHERE code_digest = $1`
	res, err := r.q.ExecContext(ctx, query, codeDigest)
	if err != nil {
		return fmt.Errorf("failed to restore access code: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to restore access code: %w", err)
	}
	if affected == 0 {
		return domain.ErrInvalidOrUsedCode
	}
	return nil
}
