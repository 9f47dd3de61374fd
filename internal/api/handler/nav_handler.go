package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic-portal/internal/api/metrics"
	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

// HeaderSessionID carries the client's session handle on navigation checks,
// which happen before (and without) bearer authentication.
const HeaderSessionID = "X-Session-Id"

// NavigationGate is the authorization decision surface consumed by the
// router collaborator.
type NavigationGate interface {
	Resolve(path string) domain.ViewRequest
	Authorize(view domain.ViewRequest, session domain.Session) domain.Decision
}

// NavHandler resolves navigation requests through the authorization gate.
type NavHandler struct {
	gate     NavigationGate
	sessions ports.SessionStore
}

func NewNavHandler(gate NavigationGate, sessions ports.SessionStore) *NavHandler {
	return &NavHandler{gate: gate, sessions: sessions}
}

// Resolve decides whether the current session may render the requested path.
// The decision is recomputed on every call; a missing or partial session is
// treated as unauthenticated, never as an error.
//
// @Summary      Resolve a navigation request
// @Tags         navigation
// @Produce      json
// @Param        path          query     string  true   "Requested view path"
// @Param        X-Session-Id  header    string  false  "Session id"
// @Success      200   {object}  navResolveResponse
// @Failure      400   {object}  errorResponse
// @Router       /nav/resolve [get]
func (h *NavHandler) Resolve(c echo.Context) error {
	path := c.QueryParam("path")
	if path == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "path is required")
	}

	var session domain.Session
	if sid := c.Request().Header.Get(HeaderSessionID); sid != "" {
		s, err := h.sessions.Get(c.Request().Context(), sid)
		if err == nil {
			session = s
		}
	}

	view := h.gate.Resolve(path)
	decision := h.gate.Authorize(view, session)

	if decision.Allowed {
		metrics.AuthzDecisionsTotal.WithLabelValues("allow").Inc()
	} else {
		metrics.AuthzDecisionsTotal.WithLabelValues("redirect").Inc()
	}

	return c.JSON(http.StatusOK, navResolveResponse{
		Path:     path,
		Allowed:  decision.Allowed,
		Redirect: decision.Redirect,
	})
}
