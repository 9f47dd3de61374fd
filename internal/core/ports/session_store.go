package ports

import (
	"context"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// SessionStore is the single source of truth for "who is using this client".
// Implementations persist the principal and token together: after any
// sequence of Set/Clear calls a session is either complete or absent, never
// partial.
type SessionStore interface {
	// Get returns the current session for the given session id,
	// reconstructing it from durable storage when memory is empty. A
	// missing or partial record yields an empty session, not an error.
	Get(ctx context.Context, sid string) (domain.Session, error)

	// Set atomically persists principal and token. When the durable tier
	// rejects the write, the store falls back to its in-memory tier and
	// reports degraded=true: the session works but may not survive a
	// restart.
	Set(ctx context.Context, sid string, principal *domain.Principal, token string) (degraded bool, err error)

	// Clear removes principal and token from every tier.
	Clear(ctx context.Context, sid string) error
}
