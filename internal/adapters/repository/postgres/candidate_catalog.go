package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/adi3433/DS-project/internal/core/domain"
	"github.com/adi3433/DS-project/internal/core/ports"
)

// candidateCatalog reads the seeded candidate table. Position preserves the
// insertion order ties and winners are resolved by.
type candidateCatalog struct {
	db *sql.DB
}

func NewCandidateCatalog(db *sql.DB) ports.CandidateCatalog {
	return &candidateCatalog{db: db}
}

func (c *candidateCatalog) List(ctx context.Context) ([]domain.Candidate, error) {
	query := `SELECT candidate_id, name FROM candidates ORDER BY position`
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidates: %w", err)
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var cand domain.Candidate
		if err := rows.Scan(&cand.ID, &cand.Name); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		candidates = append(candidates, cand)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidates: %w", err)
	}
	return candidates, nil
}
