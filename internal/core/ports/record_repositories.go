package ports

import (
	"context"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// The four independently-owned record collections consumed by the search
// aggregator. Each Search is scoped server-side to a clinic; clinicID 0 means
// no clinic restriction (admin scope). Results come back in the collection's
// own relevance ordering.

type PatientRepository interface {
	Search(ctx context.Context, query string, clinicID int64) ([]domain.Patient, error)
}

type AppointmentRepository interface {
	Search(ctx context.Context, query string, clinicID int64) ([]domain.Appointment, error)
}

type TreatmentPlanRepository interface {
	Search(ctx context.Context, query string, clinicID int64) ([]domain.TreatmentPlan, error)
}

type TreatmentOrderRepository interface {
	Search(ctx context.Context, query string, clinicID int64) ([]domain.TreatmentOrder, error)
}

// ClinicRepository resolves clinic records for the directory.
type ClinicRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.Clinic, error)
}
