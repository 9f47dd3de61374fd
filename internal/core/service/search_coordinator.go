package service

import (
	"context"
	"sync"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

// callerSearch is the supersession state of one caller's in-flight search.
type callerSearch struct {
	gen    uint64
	cancel context.CancelFunc
}

// SearchCoordinator guarantees that, per caller, only the newest query's
// results ever surface. Issuing a search bumps the caller's generation
// counter and cancels that caller's in-flight predecessor; a search that
// finishes after being superseded returns domain.ErrSearchSuperseded instead
// of stale results. Searches by different callers never affect each other.
type SearchCoordinator struct {
	inner ports.SearchService

	mu      sync.Mutex
	callers map[string]*callerSearch
}

func NewSearchCoordinator(inner ports.SearchService) *SearchCoordinator {
	return &SearchCoordinator{
		inner:   inner,
		callers: make(map[string]*callerSearch),
	}
}

// Search runs the query for the given caller, superseding that caller's
// previous in-flight search.
func (c *SearchCoordinator) Search(ctx context.Context, caller, query string, clinicID int64) ([]domain.SearchResult, error) {
	c.mu.Lock()
	st := c.callers[caller]
	if st == nil {
		st = &callerSearch{}
		c.callers[caller] = st
	}
	st.gen++
	gen := st.gen
	if st.cancel != nil {
		st.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	st.cancel = cancel
	c.mu.Unlock()

	results, err := c.inner.Search(ctx, query, clinicID)

	c.mu.Lock()
	superseded := st.gen != gen
	if !superseded {
		cancel()
		// No newer search in flight for this caller: drop the state so
		// the map does not grow with every session ever seen.
		delete(c.callers, caller)
	}
	c.mu.Unlock()

	if superseded {
		return nil, domain.ErrSearchSuperseded
	}
	return results, err
}
