package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

// DirectoryService resolves the current clinic for a session.
type DirectoryService struct {
	clinics ports.ClinicRepository
	log     zerolog.Logger
}

func NewDirectoryService(clinics ports.ClinicRepository, log zerolog.Logger) *DirectoryService {
	return &DirectoryService{clinics: clinics, log: log}
}

// CurrentClinic returns the clinic the session is scoped to.
// domain.ErrClinicNotFound is recoverable: callers display
// domain.DefaultClinic instead of failing.
func (s *DirectoryService) CurrentClinic(ctx context.Context, session domain.Session) (*domain.Clinic, error) {
	if session.Principal == nil || session.Principal.ClinicID == nil {
		return nil, domain.ErrClinicNotFound
	}

	clinic, err := s.clinics.FindByID(ctx, *session.Principal.ClinicID)
	if err != nil {
		if !errors.Is(err, domain.ErrClinicNotFound) {
			s.log.Warn().Err(err).Int64("clinic_id", *session.Principal.ClinicID).Msg("clinic lookup failed")
		}
		return nil, err
	}
	return clinic, nil
}
