package services

import (
	"context"

	"github.com/adi3433/DS-project/internal/core/domain"
	"github.com/adi3433/DS-project/internal/core/ports"
)

type auditService struct {
	state *ElectionState
}

func NewAuditService(state *ElectionState) ports.AuditReporter {
	return &auditService{state: state}
}

// RecentEvents is read-only display material: redacted copies, most recent
// first, never used to drive state changes. A contended gate is reported as
// an error; an empty trail must mean no events.
func (s *auditService) RecentEvents(ctx context.Context, limit int) ([]domain.AuditEvent, error) {
	if err := s.state.acquire(ctx); err != nil {
		return nil, err
	}
	defer s.state.release()

	return s.state.audit.Recent(limit), nil
}
