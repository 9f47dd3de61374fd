package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// blockingSearch parks the first call until released or cancelled, so a test
// can deterministically overlap two searches.
type blockingSearch struct {
	mu      sync.Mutex
	started chan struct{}
	release chan struct{}
	calls   int
}

func newBlockingSearch() *blockingSearch {
	return &blockingSearch{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (s *blockingSearch) Search(ctx context.Context, query string, _ int64) ([]domain.SearchResult, error) {
	s.mu.Lock()
	s.calls++
	first := s.calls == 1
	s.mu.Unlock()

	if first {
		close(s.started)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.release:
		}
	}
	return []domain.SearchResult{{EntityType: domain.EntityPatient, ID: 1, Title: query}}, nil
}

type searchOutcome struct {
	results []domain.SearchResult
	err     error
}

func TestSearchCoordinator_NewerQueryWins(t *testing.T) {
	stub := newBlockingSearch()
	coordinator := NewSearchCoordinator(stub)

	firstDone := make(chan searchOutcome, 1)
	go func() {
		results, err := coordinator.Search(context.Background(), "sid-1", "iva", 1)
		firstDone <- searchOutcome{results, err}
	}()

	// Wait until the first search is parked inside the stub before
	// issuing the one that supersedes it.
	select {
	case <-stub.started:
	case <-time.After(time.Second):
		t.Fatal("first search never started")
	}

	results, err := coordinator.Search(context.Background(), "sid-1", "ivanov", 1)
	if err != nil {
		t.Fatalf("second search returned error: %v", err)
	}
	if len(results) != 1 || results[0].Title != "ivanov" {
		t.Fatalf("second search returned unexpected results: %+v", results)
	}

	select {
	case out := <-firstDone:
		if !errors.Is(out.err, domain.ErrSearchSuperseded) {
			t.Fatalf("expected ErrSearchSuperseded from superseded search, got %v", out.err)
		}
		if out.results != nil {
			t.Fatalf("superseded search must not surface results, got %+v", out.results)
		}
	case <-time.After(time.Second):
		t.Fatal("superseded search never returned")
	}
}

func TestSearchCoordinator_CallersAreIndependent(t *testing.T) {
	stub := newBlockingSearch()
	coordinator := NewSearchCoordinator(stub)

	firstDone := make(chan searchOutcome, 1)
	go func() {
		results, err := coordinator.Search(context.Background(), "sid-doctor", "ivanov", 1)
		firstDone <- searchOutcome{results, err}
	}()

	select {
	case <-stub.started:
	case <-time.After(time.Second):
		t.Fatal("first search never started")
	}

	// A different caller searching must not cancel the one in flight.
	results, err := coordinator.Search(context.Background(), "sid-nurse", "bekova", 2)
	if err != nil {
		t.Fatalf("other caller's search returned error: %v", err)
	}
	if len(results) != 1 || results[0].Title != "bekova" {
		t.Fatalf("other caller got unexpected results: %+v", results)
	}

	close(stub.release)

	select {
	case out := <-firstDone:
		if out.err != nil {
			t.Fatalf("first caller's search must survive the other caller's query, got %v", out.err)
		}
		if len(out.results) != 1 || out.results[0].Title != "ivanov" {
			t.Fatalf("first caller got unexpected results: %+v", out.results)
		}
	case <-time.After(time.Second):
		t.Fatal("first caller's search never returned")
	}
}

type echoSearch struct{}

func (echoSearch) Search(_ context.Context, query string, _ int64) ([]domain.SearchResult, error) {
	return []domain.SearchResult{{EntityType: domain.EntityPatient, ID: 1, Title: query}}, nil
}

func TestSearchCoordinator_SingleSearchPassesThrough(t *testing.T) {
	coordinator := NewSearchCoordinator(echoSearch{})

	results, err := coordinator.Search(context.Background(), "sid-1", "bekova", 1)
	if err != nil {
		t.Fatalf("search returned error: %v", err)
	}
	if len(results) != 1 || results[0].Title != "bekova" {
		t.Fatalf("unexpected results: %+v", results)
	}
}
