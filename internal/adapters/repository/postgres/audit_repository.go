package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/adi3433/DS-project/internal/core/domain"
)

type auditRepository struct {
	q dbtx
}

func (r *auditRepository) Insert(ctx context.Context, event domain.AuditEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode audit event: %w", err)
	}
	query := `
		INSERT INTO audit_events (id, kind, payload, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err = r.q.ExecContext(ctx, query, event.EventID(), string(event.Kind()), payload, event.OccurredAt())
	if err != nil {
		return fmt.Errorf("failed to insert audit event: %w", err)
	}
	return nil
}

func (r *auditRepository) List(ctx context.Context) ([]domain.AuditEvent, error) {
	query := `SELECT kind, payload FROM audit_events ORDER BY ord`
	rows, err := r.q.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []domain.AuditEvent
	for rows.Next() {
		var (
			kind    string
			payload []byte
		)
		if err := rows.Scan(&kind, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		event, err := domain.DecodeAuditEvent(domain.AuditKind(kind), payload)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating audit events: %w", err)
	}
	return events, nil
}
