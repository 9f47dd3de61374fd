package ports

import (
	"context"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// DirectoryService exposes "current clinic for this session". A session with
// no principal or no resolvable clinic yields domain.ErrClinicNotFound, which
// callers recover from with domain.DefaultClinic.
type DirectoryService interface {
	CurrentClinic(ctx context.Context, session domain.Session) (*domain.Clinic, error)
}
