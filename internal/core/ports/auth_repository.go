package ports

import (
	"context"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// AuthRepository defines the interface for user account persistence.
type AuthRepository interface {
	FindByPhone(ctx context.Context, phone string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
