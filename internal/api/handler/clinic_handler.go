package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/dentalcare/clinic-portal/internal/core/domain"
	"github.com/dentalcare/clinic-portal/internal/core/ports"
)

// ClinicHandler exposes the clinic directory.
type ClinicHandler struct {
	directory ports.DirectoryService
	sessions  ports.SessionStore
}

func NewClinicHandler(directory ports.DirectoryService, sessions ports.SessionStore) *ClinicHandler {
	return &ClinicHandler{directory: directory, sessions: sessions}
}

// Current returns the clinic the caller's session is scoped to. When no
// clinic can be resolved, the default display identity is returned instead
// of an error.
//
// @Summary      Current clinic
// @Tags         clinic
// @Produce      json
// @Security     BearerAuth
// @Success      200   {object}  domain.Clinic
// @Failure      401   {object}  errorResponse
// @Router       /clinic/current [get]
func (h *ClinicHandler) Current(c echo.Context) error {
	sid := ctxSessionID(c)
	if sid == "" {
		return echo.NewHTTPError(http.StatusUnauthorized, "missing session")
	}

	session, err := h.sessions.Get(c.Request().Context(), sid)
	if err != nil {
		session = domain.Session{}
	}

	clinic, err := h.directory.CurrentClinic(c.Request().Context(), session)
	if err != nil {
		if errors.Is(err, domain.ErrClinicNotFound) {
			fallback := domain.DefaultClinic()
			return c.JSON(http.StatusOK, fallback)
		}
		return err
	}

	return c.JSON(http.StatusOK, clinic)
}
