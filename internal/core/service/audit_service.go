package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService persisting events to the trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Process persists a single activity event.
func (s *auditService) Process(ctx context.Context, in ports.AuditEventInput) error {
	event := &domain.AuditEvent{
		Actor:     in.Actor,
		Action:    in.Action,
		Detail:    in.Detail,
		ClinicID:  in.ClinicID,
		Timestamp: in.Timestamp,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("audit insert: %w", err)
	}

	s.log.Debug().Str("actor", in.Actor).Str("action", in.Action).Msg("audit event recorded")
	return nil
}
