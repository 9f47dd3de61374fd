package ports

import (
	"context"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// LoginResult is what a successful login hands back to the transport layer.
// Degraded is set when the session could only be stored in the non-durable
// tier; the user may proceed but the session may not survive a reload.
type LoginResult struct {
	SessionID   string
	AccessToken string
	User        domain.Principal
	Degraded    bool
}

// CreateUserInput carries a new account request from the admin panel.
type CreateUserInput struct {
	FullName string
	Phone    string
	Password string
	Role     domain.Role
	ClinicID *int64
}

type AuthService interface {
	Login(ctx context.Context, phone, password string) (*LoginResult, error)
	Logout(ctx context.Context, sessionID string) error
	Register(ctx context.Context, in CreateUserInput) (*domain.Principal, error)
}
