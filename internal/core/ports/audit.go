package ports

import (
	"context"
	"time"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// AuditEventInput is the DTO handed to the audit dispatcher.
type AuditEventInput struct {
	Actor     string
	Action    string
	Detail    string
	ClinicID  *int64
	Timestamp time.Time
}

// AuditService persists activity-trail events; invoked from dispatcher workers.
type AuditService interface {
	Process(ctx context.Context, in AuditEventInput) error
}

// AuditRepository is the persistence interface for the activity trail.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}
