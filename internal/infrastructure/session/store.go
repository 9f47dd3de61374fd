package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/dentalcare/clinic-portal/internal/api/metrics"
	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// memoryTier is the non-durable fallback: process-scoped, lost on restart.
type memoryTier struct {
	mu      sync.RWMutex
	records map[string]Record
}

func newMemoryTier() *memoryTier {
	return &memoryTier{records: make(map[string]Record)}
}

func (t *memoryTier) Read(_ context.Context, sid string) (Record, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	rec, ok := t.records[sid]
	if !ok {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

func (t *memoryTier) Write(_ context.Context, sid string, rec Record) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.records[sid] = rec
	return nil
}

func (t *memoryTier) Delete(_ context.Context, sid string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.records, sid)
	return nil
}

// Store implements ports.SessionStore over a durable tier with an in-memory
// fallback. Principal and token are always written together; a partial record
// in either tier reads back as no session.
type Store struct {
	durable  Tier
	fallback *memoryTier
	log      zerolog.Logger
}

func NewStore(durable Tier, log zerolog.Logger) *Store {
	return &Store{
		durable:  durable,
		fallback: newMemoryTier(),
		log:      log,
	}
}

// Get returns the session for sid, consulting memory first and reconstructing
// from the durable tier when memory is empty. Missing and partial records
// both yield an empty session.
func (s *Store) Get(ctx context.Context, sid string) (domain.Session, error) {
	rec, err := s.fallback.Read(ctx, sid)
	if errors.Is(err, ErrNotFound) {
		rec, err = s.durable.Read(ctx, sid)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return domain.Session{}, nil
			}
			return domain.Session{}, err
		}
		// Keep the reconstructed session warm for subsequent reads.
		_ = s.fallback.Write(ctx, sid, rec)
	}

	if !rec.Complete() {
		return domain.Session{}, nil
	}

	var principal domain.Principal
	if err := json.Unmarshal(rec.User, &principal); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("corrupt session record, treating as unauthenticated")
		return domain.Session{}, nil
	}

	return domain.Session{Principal: &principal, Token: rec.Token}, nil
}

// Set atomically persists principal and token. On a durable-tier failure the
// record lands in the in-memory tier only and degraded=true is reported: the
// caller proceeds, warned that the session may not survive a restart.
func (s *Store) Set(ctx context.Context, sid string, principal *domain.Principal, token string) (bool, error) {
	if principal == nil || token == "" {
		return false, fmt.Errorf("session set: principal and token are both required")
	}

	user, err := json.Marshal(principal)
	if err != nil {
		return false, fmt.Errorf("session set: %w", err)
	}
	rec := Record{Token: token, User: user}

	if err := s.durable.Write(ctx, sid, rec); err != nil {
		metrics.SessionFallbackTotal.Inc()
		s.log.Warn().Err(err).Str("sid", sid).Msg("durable session write failed, falling back to memory tier")
		_ = s.fallback.Write(ctx, sid, rec)
		return true, nil
	}

	_ = s.fallback.Write(ctx, sid, rec)
	return false, nil
}

// Clear removes the session from every tier. A durable-tier failure is
// logged, not surfaced: the caller is logged out locally either way.
func (s *Store) Clear(ctx context.Context, sid string) error {
	_ = s.fallback.Delete(ctx, sid)
	if err := s.durable.Delete(ctx, sid); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("durable session delete failed")
	}
	return nil
}
