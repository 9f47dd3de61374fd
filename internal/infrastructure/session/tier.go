// Package session implements the two-tier session store: a durable,
// restart-surviving tier (Redis) with an in-memory, process-scoped fallback
// for when the durable medium rejects a write.
package session

import (
	"context"
	"errors"
)

// ErrNotFound is returned by a Tier when no record exists for the session id.
var ErrNotFound = errors.New("session record not found")

// Record is the raw persisted form of a session: the two key-value slots.
// User holds the JSON-serialized principal.
type Record struct {
	Token string
	User  []byte
}

// Complete reports whether both slots are populated. A record with one slot
// missing is partial and must be treated as no session.
func (r Record) Complete() bool {
	return r.Token != "" && len(r.User) > 0
}

// Tier is one persistence medium for session records.
type Tier interface {
	Read(ctx context.Context, sid string) (Record, error)
	Write(ctx context.Context, sid string, rec Record) error
	Delete(ctx context.Context, sid string) error
}
