package ports

import (
	"context"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
)

// SearchService turns one free-text query into a unified ranked list spanning
// all record collections, tolerating partial lookup failure.
type SearchService interface {
	Search(ctx context.Context, query string, clinicID int64) ([]domain.SearchResult, error)
}
