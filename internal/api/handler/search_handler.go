package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

// AuditSink enqueues activity events without blocking the request path.
type AuditSink interface {
	Enqueue(event ports.AuditEventInput)
}

// SearchService runs a query on behalf of one caller; the caller identity
// scopes newest-query-wins supersession so concurrent users stay independent.
type SearchService interface {
	Search(ctx context.Context, caller, query string, clinicID int64) ([]domain.SearchResult, error)
}

// SearchHandler handles the cross-entity search box.
type SearchHandler struct {
	search SearchService
	audit  AuditSink
}

func NewSearchHandler(search SearchService, audit AuditSink) *SearchHandler {
	return &SearchHandler{search: search, audit: audit}
}

// Search fans the query out across patients, appointments, treatment plans
// and treatment orders, scoped to the caller's clinic. Non-admin callers are
// always confined to their own clinic; admins may pass clinic_id explicitly.
//
// @Summary      Cross-entity search
// @Tags         search
// @Produce      json
// @Security     BearerAuth
// @Param        q          query     string  true   "Free-text query"
// @Param        clinic_id  query     int     false  "Clinic scope (admin only)"
// @Success      200   {object}  searchResponse
// @Failure      401   {object}  errorResponse
// @Router       /search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	phone, role, clinicID, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	requested, _ := strconv.ParseInt(c.QueryParam("clinic_id"), 10, 64)
	scope := searchScope(role, clinicID, requested)
	query := c.QueryParam("q")

	results, err := h.search.Search(c.Request().Context(), ctxSessionID(c), query, scope)
	if err != nil {
		return err
	}

	if h.audit != nil && len(results) > 0 {
		h.audit.Enqueue(ports.AuditEventInput{
			Actor:     phone,
			Action:    domain.AuditActionSearch,
			Detail:    query,
			ClinicID:  clinicID,
			Timestamp: time.Now().UTC(),
		})
	}

	return c.JSON(http.StatusOK, searchResponse{
		Query:   query,
		Count:   len(results),
		Results: results,
	})
}
